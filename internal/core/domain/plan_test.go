package domain_test

import (
	"testing"
	"time"

	"github.com/shelfdesk/shelfdesk_backend/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanDuration(t *testing.T) {
	day := 24 * time.Hour

	tests := []struct {
		name        string
		plan        domain.PlanType
		customValue int
		customUnit  domain.CustomUnit
		want        time.Duration
		wantErr     bool
	}{
		{name: "monthly", plan: domain.PlanMonthly, want: 30 * day},
		{name: "quarterly", plan: domain.PlanQuarterly, want: 90 * day},
		{name: "half yearly", plan: domain.PlanHalfYearly, want: 180 * day},
		{name: "annual", plan: domain.PlanAnnual, want: 365 * day},
		{name: "custom days", plan: domain.PlanCustom, customValue: 15, customUnit: domain.UnitDay, want: 15 * day},
		{name: "custom months", plan: domain.PlanCustom, customValue: 2, customUnit: domain.UnitMonth, want: 60 * day},
		{name: "custom years", plan: domain.PlanCustom, customValue: 1, customUnit: domain.UnitYear, want: 365 * day},
		{name: "custom zero value", plan: domain.PlanCustom, customValue: 0, customUnit: domain.UnitDay, wantErr: true},
		{name: "custom bad unit", plan: domain.PlanCustom, customValue: 3, customUnit: domain.CustomUnit("FORTNIGHT"), wantErr: true},
		{name: "unknown plan", plan: domain.PlanType("WEEKLY"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := domain.PlanDuration(tt.plan, tt.customValue, tt.customUnit)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
