package domain

import "time"

// CardStats describes a branch's physical card stock at an instant.
type CardStats struct {
	Total         int `json:"total"`
	InCirculation int `json:"inCirculation"`
	NotReturned   int `json:"notReturned"`
	Available     int `json:"available"`
}

// LockerStats describes a branch's locker stock at an instant. Lockers have
// no "not returned" bucket: an expired holder's locker frees up for reuse on
// expiry, so only ACTIVE and EXPIRING holders count as in circulation.
type LockerStats struct {
	Total         int `json:"total"`
	InCirculation int `json:"inCirculation"`
	Available     int `json:"available"`
}

// ComputeCardStats counts cards in circulation (held by ACTIVE/EXPIRING
// members), not returned (held by EXPIRED members who have not returned
// them), and the stock left to issue. Available is clamped at zero: stock
// under-provisioning surfaces as Available == 0, not as an error.
func ComputeCardStats(total int, members []Member, now time.Time) CardStats {
	stats := CardStats{Total: total}
	for _, m := range members {
		if !m.CardIssued || m.CardReturned {
			continue
		}
		if m.Status(now) == StatusExpired {
			stats.NotReturned++
		} else {
			stats.InCirculation++
		}
	}
	stats.Available = max(0, total-stats.InCirculation-stats.NotReturned)
	return stats
}

// ComputeLockerStats counts lockers currently assigned to ACTIVE/EXPIRING
// members and the stock left to issue.
func ComputeLockerStats(total int, members []Member, now time.Time) LockerStats {
	stats := LockerStats{Total: total}
	for _, m := range members {
		if !m.LockerAssigned {
			continue
		}
		if m.Status(now) != StatusExpired {
			stats.InCirculation++
		}
	}
	stats.Available = max(0, total-stats.InCirculation)
	return stats
}
