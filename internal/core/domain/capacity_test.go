package domain_test

import (
	"testing"
	"time"

	"github.com/shelfdesk/shelfdesk_backend/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func carded(expiry time.Time, returned bool) domain.Member {
	return domain.Member{
		CardIssued:   true,
		CardReturned: returned,
		ExpiryDate:   expiry,
	}
}

func TestComputeCardStats(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	active := now.Add(60 * 24 * time.Hour)
	expiring := now.Add(48 * time.Hour)
	expired := now.Add(-10 * 24 * time.Hour)

	members := []domain.Member{
		carded(active, false),
		carded(expiring, false),
		carded(expired, false), // expired, not yet returned
		carded(expired, true),  // returned, back in stock
		{ExpiryDate: active},   // no card at all
	}

	stats := domain.ComputeCardStats(10, members, now)
	assert.Equal(t, 10, stats.Total)
	assert.Equal(t, 2, stats.InCirculation)
	assert.Equal(t, 1, stats.NotReturned)
	assert.Equal(t, 7, stats.Available)
}

func TestComputeCardStats_ClampsAtZero(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	active := now.Add(60 * 24 * time.Hour)

	members := []domain.Member{
		carded(active, false),
		carded(active, false),
		carded(active, false),
	}

	// Under-provisioned stock is a business event flagged by Available == 0,
	// never a negative count.
	stats := domain.ComputeCardStats(2, members, now)
	assert.Equal(t, 0, stats.Available)
	assert.Equal(t, 3, stats.InCirculation)
}

func TestComputeLockerStats(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	l1, l2, l3 := "L1", "L2", "L3"

	members := []domain.Member{
		{LockerAssigned: true, LockerNumber: &l1, ExpiryDate: now.Add(60 * 24 * time.Hour)},
		{LockerAssigned: true, LockerNumber: &l2, ExpiryDate: now.Add(24 * time.Hour)},
		{LockerAssigned: true, LockerNumber: &l3, ExpiryDate: now.Add(-5 * 24 * time.Hour)}, // expired holder
		{ExpiryDate: now.Add(60 * 24 * time.Hour)},
	}

	stats := domain.ComputeLockerStats(5, members, now)
	assert.Equal(t, 5, stats.Total)
	assert.Equal(t, 2, stats.InCirculation)
	assert.Equal(t, 3, stats.Available)
}
