package clock

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// HTTPTimeSource fetches authoritative time from an HTTP endpoint returning
// a JSON body of the form {"epochMillis": 1767225600000}.
type HTTPTimeSource struct {
	url    string
	client *http.Client
}

// NewHTTPTimeSource creates a time source for the given endpoint. The timeout
// bounds the whole round trip; a slow source degrades clock sync, it must
// not stall startup.
func NewHTTPTimeSource(url string, timeout time.Duration) *HTTPTimeSource {
	return &HTTPTimeSource{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

var _ RemoteTimeSource = (*HTTPTimeSource)(nil)

// FetchTime performs the unary round trip.
func (s *HTTPTimeSource) FetchTime(ctx context.Context) (time.Time, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to build time request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return time.Time{}, fmt.Errorf("time source round trip failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return time.Time{}, fmt.Errorf("time source returned status %d", resp.StatusCode)
	}

	var body struct {
		EpochMillis int64 `json:"epochMillis"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return time.Time{}, fmt.Errorf("failed to decode time response: %w", err)
	}
	if body.EpochMillis <= 0 {
		return time.Time{}, fmt.Errorf("time source returned invalid epochMillis %d", body.EpochMillis)
	}

	return time.UnixMilli(body.EpochMillis).UTC(), nil
}
