// Package clock supplies the single "current instant" used for every expiry
// comparison, so that status derivation is consistent across front-desk
// terminals with inaccurate local clocks.
package clock

import (
	"context"
	"log/slog"
	"time"
)

// Clock yields the current instant. It is an explicit dependency of every
// component that classifies or bills, never an ambient singleton.
type Clock interface {
	Now() time.Time
}

// RemoteTimeSource fetches an authoritative instant. Any protocol works; a
// single unary call is sufficient.
type RemoteTimeSource interface {
	FetchTime(ctx context.Context) (time.Time, error)
}

// SyncedClock corrects the local clock by a fixed offset measured once
// against a remote time source.
type SyncedClock struct {
	offset time.Duration
}

// NewSyncedClock performs one round trip to the source: local send time t0,
// local receive time t1, one-way latency (t1-t0)/2, and
// offset = serverTime - (t1 - latency). If the round trip fails the offset
// stays zero and the local clock is used as-is. It never returns an error
// and does not retry on later calls.
func NewSyncedClock(ctx context.Context, source RemoteTimeSource, logger *slog.Logger) *SyncedClock {
	c := &SyncedClock{}
	if source == nil {
		return c
	}

	t0 := time.Now()
	serverTime, err := source.FetchTime(ctx)
	t1 := time.Now()
	if err != nil {
		logger.Warn("Clock sync failed, falling back to local clock", slog.String("error", err.Error()))
		return c
	}

	latency := t1.Sub(t0) / 2
	c.offset = serverTime.Sub(t1.Add(-latency))
	logger.Info("Clock synchronized",
		slog.Duration("offset", c.offset),
		slog.Duration("round_trip", t1.Sub(t0)),
	)
	return c
}

// Now returns the corrected current instant in UTC.
func (c *SyncedClock) Now() time.Time {
	return time.Now().Add(c.offset).UTC()
}

// Fixed returns a clock pinned to a single instant, for tests.
func Fixed(t time.Time) Clock {
	return fixedClock{t: t}
}

type fixedClock struct {
	t time.Time
}

func (f fixedClock) Now() time.Time {
	return f.t
}
