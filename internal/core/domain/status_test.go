package domain_test

import (
	"testing"
	"time"

	"github.com/shelfdesk/shelfdesk_backend/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestClassifyStatus(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		expiry time.Time
		want   domain.MemberStatus
	}{
		{
			name:   "expiry well in the future",
			expiry: now.Add(30 * 24 * time.Hour),
			want:   domain.StatusActive,
		},
		{
			name:   "expiry just past the expiring window",
			expiry: now.Add(72*time.Hour + time.Second),
			want:   domain.StatusActive,
		},
		{
			name:   "expiry exactly at the window edge",
			expiry: now.Add(72 * time.Hour),
			want:   domain.StatusExpiring,
		},
		{
			name:   "expiry in two days",
			expiry: now.Add(48 * time.Hour),
			want:   domain.StatusExpiring,
		},
		{
			name:   "expiry equals now classifies expiring, not expired",
			expiry: now,
			want:   domain.StatusExpiring,
		},
		{
			name:   "expiry a second ago",
			expiry: now.Add(-time.Second),
			want:   domain.StatusExpired,
		},
		{
			name:   "expiry ten days ago",
			expiry: now.Add(-10 * 24 * time.Hour),
			want:   domain.StatusExpired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.ClassifyStatus(tt.expiry, now)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMember_Status_DelegatesToClassifier(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	m := domain.Member{ExpiryDate: now.Add(48 * time.Hour)}
	assert.Equal(t, domain.StatusExpiring, m.Status(now))
}

func TestMember_Holds(t *testing.T) {
	locker := "L5"
	seat := "A-1"
	m := domain.Member{
		LockerAssigned: true,
		LockerNumber:   &locker,
		SeatNo:         &seat,
	}

	assert.True(t, m.Holds(domain.ResourceLocker, "L5"))
	assert.False(t, m.Holds(domain.ResourceLocker, "L6"))
	assert.True(t, m.Holds(domain.ResourceSeat, "A-1"))
	assert.False(t, m.Holds(domain.ResourceSeat, "A-2"))

	// A released locker no longer counts as held even if the number lingers.
	m.LockerAssigned = false
	assert.False(t, m.Holds(domain.ResourceLocker, "L5"))
}
