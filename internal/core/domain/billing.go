package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// FeeSchedule holds the fixed fees charged at the front desk, in rupees.
// Card and locker fees are refundable deposits.
type FeeSchedule struct {
	Registration decimal.Decimal
	Card         decimal.Decimal
	Locker       decimal.Decimal
}

// DefaultFees returns the standard fee schedule: ₹50 registration,
// ₹100 card deposit, ₹200 locker deposit.
func DefaultFees() FeeSchedule {
	return FeeSchedule{
		Registration: decimal.NewFromInt(50),
		Card:         decimal.NewFromInt(100),
		Locker:       decimal.NewFromInt(200),
	}
}

// ComputeTotal computes the amount payable when a plan and optional card and
// locker add-ons are bundled into one checkout.
//
// The card fee applies only when the card is newly granted; a renewal of an
// already-carded member is never re-charged. The locker fee additionally
// waives when the plan tier bundles a free locker. PlanFee may be zero when a
// member is only adding extras to an existing plan.
func (f FeeSchedule) ComputeTotal(planFee decimal.Decimal, wantsCard, alreadyHasCard, wantsLocker, alreadyHasLocker, lockerFreeWithPlan bool) decimal.Decimal {
	total := planFee
	if wantsCard && !alreadyHasCard {
		total = total.Add(f.Card)
	}
	if wantsLocker && !alreadyHasLocker && !lockerFreeWithPlan {
		total = total.Add(f.Locker)
	}
	return total
}

// SplitMode selects how strictly a split payment is validated.
type SplitMode int

const (
	// SplitStrict requires cash + upi to equal the total exactly.
	SplitStrict SplitMode = iota
	// SplitLegacyTolerant allows a ±₹1 deviation, for backfilled historical
	// entries only. New registrations always validate strictly.
	SplitLegacyTolerant
)

// legacySplitEpsilon absorbs integer truncation in backfilled records.
var legacySplitEpsilon = decimal.NewFromInt(1)

// SplitMismatchError carries the sums of a failed split validation.
type SplitMismatchError struct {
	Total decimal.Decimal
	Cash  decimal.Decimal
	Upi   decimal.Decimal
}

func (e *SplitMismatchError) Error() string {
	return fmt.Sprintf("split payment cash %s + upi %s = %s does not match total %s",
		e.Cash.String(), e.Upi.String(), e.Cash.Add(e.Upi).String(), e.Total.String())
}

// ValidateSplit checks that a CASH/UPI breakdown covers the total.
func ValidateSplit(total, cash, upi decimal.Decimal, mode SplitMode) error {
	diff := cash.Add(upi).Sub(total)
	if mode == SplitLegacyTolerant {
		if diff.Abs().LessThanOrEqual(legacySplitEpsilon) {
			return nil
		}
	} else if diff.IsZero() {
		return nil
	}
	return &SplitMismatchError{Total: total, Cash: cash, Upi: upi}
}
