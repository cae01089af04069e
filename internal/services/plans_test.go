// internal/services/plans_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dlartartfinal-hash/chronos-app-sub000/internal/models"
)

func TestPlanPrices(t *testing.T) {
	basico, ok := PlanMonthlyPriceCents(PlanBasico)
	assert.True(t, ok)
	assert.Equal(t, int64(2990), basico)

	pro, ok := PlanMonthlyPriceCents(PlanProfissional)
	assert.True(t, ok)
	assert.Equal(t, int64(5989), pro)

	_, ok = PlanMonthlyPriceCents(PlanEmpresarial)
	assert.False(t, ok)

	basicoYearly, ok := PlanYearlyPriceCents(PlanBasico)
	assert.True(t, ok)
	assert.Equal(t, int64(28704), basicoYearly)

	proYearly, ok := PlanYearlyPriceCents(PlanProfissional)
	assert.True(t, ok)
	assert.Equal(t, int64(57494), proYearly)
}

func TestPlanMRRCents(t *testing.T) {
	assert.Equal(t, int64(2990), PlanMRRCents(PlanBasico, models.BillingCycleMonthly))
	assert.Equal(t, int64(5989), PlanMRRCents(PlanProfissional, models.BillingCycleMonthly))

	// Yearly contributes the discounted price spread over twelve months.
	assert.Equal(t, int64(2392), PlanMRRCents(PlanBasico, models.BillingCycleYearly))
	assert.Equal(t, int64(4791), PlanMRRCents(PlanProfissional, models.BillingCycleYearly))

	assert.Equal(t, int64(0), PlanMRRCents("Desconhecido", models.BillingCycleMonthly))
}
