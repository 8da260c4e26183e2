package domain

import "time"

// MemberStatus is a member's lifecycle state, derived purely from dates.
type MemberStatus string

const (
	StatusActive   MemberStatus = "ACTIVE"
	StatusExpiring MemberStatus = "EXPIRING"
	StatusExpired  MemberStatus = "EXPIRED"
)

// ExpiringWindow is how far ahead of expiry a membership is reported as EXPIRING.
const ExpiringWindow = 72 * time.Hour

// ClassifyStatus maps a membership expiry and a reference instant to a
// lifecycle state. It is the single source of truth for status derivation;
// no other code compares expiry dates directly.
//
// EXPIRED iff expiry < now. EXPIRING iff now <= expiry <= now+72h; at the
// boundary, expiry == now classifies EXPIRING, not EXPIRED. Otherwise ACTIVE.
func ClassifyStatus(expiry, now time.Time) MemberStatus {
	if expiry.Before(now) {
		return StatusExpired
	}
	if !expiry.After(now.Add(ExpiringWindow)) {
		return StatusExpiring
	}
	return StatusActive
}
