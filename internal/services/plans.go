// internal/services/plans.go
package services

import (
	"math"

	"github.com/dlartartfinal-hash/chronos-app-sub000/internal/models"
)

const (
	PlanBasico       = "Básico"
	PlanProfissional = "Profissional"
	PlanEmpresarial  = "Empresarial"
)

// Monthly list prices in cents. The yearly price is the monthly price
// twelve times with a 20% discount.
var planMonthlyPriceCents = map[string]int64{
	PlanBasico:       2990,
	PlanProfissional: 5989,
}

func PlanMonthlyPriceCents(plan string) (int64, bool) {
	price, ok := planMonthlyPriceCents[plan]
	return price, ok
}

func PlanYearlyPriceCents(plan string) (int64, bool) {
	monthly, ok := planMonthlyPriceCents[plan]
	if !ok {
		return 0, false
	}
	return int64(math.Round(float64(monthly) * 12 * 0.8)), true
}

// PlanMRRCents is a subscription's contribution to monthly recurring
// revenue: the monthly price, or the discounted yearly price spread over
// twelve months.
func PlanMRRCents(plan string, cycle models.BillingCycle) int64 {
	monthly, ok := planMonthlyPriceCents[plan]
	if !ok {
		return 0
	}
	if cycle == models.BillingCycleYearly {
		yearly, _ := PlanYearlyPriceCents(plan)
		return int64(math.Round(float64(yearly) / 12))
	}
	return monthly
}
