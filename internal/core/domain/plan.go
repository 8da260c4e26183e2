package domain

import (
	"fmt"
	"time"
)

// PlanType is a subscription plan tier.
type PlanType string

const (
	PlanMonthly    PlanType = "MONTHLY"
	PlanQuarterly  PlanType = "QUARTERLY"
	PlanHalfYearly PlanType = "HALF_YEARLY"
	PlanAnnual     PlanType = "ANNUAL"
	PlanCustom     PlanType = "CUSTOM"
)

// CustomUnit is the unit of a CUSTOM plan's duration.
type CustomUnit string

const (
	UnitDay   CustomUnit = "DAY"
	UnitMonth CustomUnit = "MONTH"
	UnitYear  CustomUnit = "YEAR"
)

// planDays is the fixed duration table for standard plans.
var planDays = map[PlanType]int{
	PlanMonthly:    30,
	PlanQuarterly:  90,
	PlanHalfYearly: 180,
	PlanAnnual:     365,
}

// PlanDuration resolves a plan to its duration. Standard plans come from the
// fixed table; CUSTOM plans take an explicit value and unit.
func PlanDuration(plan PlanType, customValue int, customUnit CustomUnit) (time.Duration, error) {
	if plan == PlanCustom {
		if customValue <= 0 {
			return 0, fmt.Errorf("custom plan duration must be positive, got %d", customValue)
		}
		switch customUnit {
		case UnitDay:
			return time.Duration(customValue) * 24 * time.Hour, nil
		case UnitMonth:
			return time.Duration(customValue) * 30 * 24 * time.Hour, nil
		case UnitYear:
			return time.Duration(customValue) * 365 * 24 * time.Hour, nil
		default:
			return 0, fmt.Errorf("unknown custom duration unit %q", customUnit)
		}
	}
	days, ok := planDays[plan]
	if !ok {
		return 0, fmt.Errorf("unknown plan type %q", plan)
	}
	return time.Duration(days) * 24 * time.Hour, nil
}
