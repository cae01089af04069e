// internal/services/checkout_test.go
package services

import (
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"github.com/dlartartfinal-hash/chronos-app-sub000/internal/models"
)

func testSettings() *models.Settings {
	return &models.Settings{
		PaymentRates: models.JSONB{
			string(models.PaymentMethodDinheiro): "0",
			string(models.PaymentMethodPix):      "0",
			string(models.PaymentMethodDebito):   "1.99",
			string(models.PaymentMethodFiado):    "0",
		},
		CreditRates: pq.StringArray{
			"3.15", "5.39", "6.12", "6.85", "7.57", "8.28",
			"8.99", "9.69", "10.39", "10.39", "10.39", "10.39",
		},
	}
}

func TestResolveRatePercent(t *testing.T) {
	settings := testSettings()

	t.Run("flat rate for debit", func(t *testing.T) {
		rate := ResolveRatePercent(settings, models.PaymentMethodDebito, 1)
		assert.Equal(t, 1.99, rate)
	})

	t.Run("credit indexed by installments", func(t *testing.T) {
		assert.Equal(t, 3.15, ResolveRatePercent(settings, models.PaymentMethodCredito, 1))
		assert.Equal(t, 6.85, ResolveRatePercent(settings, models.PaymentMethodCredito, 4))
		assert.Equal(t, 10.39, ResolveRatePercent(settings, models.PaymentMethodCredito, 12))
	})

	t.Run("out of range installments resolve to zero", func(t *testing.T) {
		assert.Equal(t, 0.0, ResolveRatePercent(settings, models.PaymentMethodCredito, 0))
		assert.Equal(t, 0.0, ResolveRatePercent(settings, models.PaymentMethodCredito, 13))
	})

	t.Run("comma decimal separator", func(t *testing.T) {
		s := testSettings()
		s.PaymentRates[string(models.PaymentMethodDebito)] = "1,99"
		assert.Equal(t, 1.99, ResolveRatePercent(s, models.PaymentMethodDebito, 1))
	})

	t.Run("unparseable entries resolve to zero", func(t *testing.T) {
		s := testSettings()
		s.PaymentRates[string(models.PaymentMethodDebito)] = "abc"
		s.CreditRates[0] = ""
		assert.Equal(t, 0.0, ResolveRatePercent(s, models.PaymentMethodDebito, 1))
		assert.Equal(t, 0.0, ResolveRatePercent(s, models.PaymentMethodCredito, 1))
	})

	t.Run("negative rates resolve to zero", func(t *testing.T) {
		s := testSettings()
		s.CreditRates[0] = "-2.5"
		assert.Equal(t, 0.0, ResolveRatePercent(s, models.PaymentMethodCredito, 1))
	})

	t.Run("nil settings", func(t *testing.T) {
		assert.Equal(t, 0.0, ResolveRatePercent(nil, models.PaymentMethodPix, 1))
	})
}

func TestComputeFeeQuoteAbsorbed(t *testing.T) {
	settings := testSettings()

	quote := ComputeFeeQuote(settings, 10000, models.PaymentMethodDebito, 1)

	assert.Equal(t, int64(10000), quote.SubtotalCents)
	assert.Equal(t, 1.99, quote.RatePercent)
	assert.Equal(t, int64(199), quote.FeeCents)
	assert.Equal(t, int64(10199), quote.TotalCents)
	assert.False(t, quote.FeePassedOn)
	assert.Equal(t, quote.SubtotalCents+quote.FeeCents, quote.TotalCents)
}

func TestComputeFeeQuoteGrossUp(t *testing.T) {
	settings := testSettings()
	settings.PassFeeToCustomer = true

	subtotals := []int64{1, 99, 3550, 10000, 999999}
	for _, subtotal := range subtotals {
		quote := ComputeFeeQuote(settings, subtotal, models.PaymentMethodCredito, 3)

		assert.True(t, quote.FeePassedOn)
		assert.Equal(t, quote.TotalCents-quote.FeeCents, quote.SubtotalCents)

		// After gross-up, deducting the fee from the total must leave the
		// merchant within a cent of the original subtotal.
		net := quote.TotalCents - int64(float64(quote.TotalCents)*quote.RatePercent/100)
		assert.InDelta(t, float64(subtotal), float64(net), 1)
	}
}

func TestComputeFeeQuoteZeroRate(t *testing.T) {
	settings := testSettings()

	quote := ComputeFeeQuote(settings, 5000, models.PaymentMethodPix, 1)

	assert.Equal(t, int64(0), quote.FeeCents)
	assert.Equal(t, int64(5000), quote.TotalCents)
	assert.False(t, quote.FeePassedOn)
}

func TestComputeFeeQuoteDegenerateRate(t *testing.T) {
	settings := testSettings()
	settings.PassFeeToCustomer = true
	settings.CreditRates[0] = "100"

	quote := ComputeFeeQuote(settings, 5000, models.PaymentMethodCredito, 1)

	assert.Equal(t, int64(0), quote.FeeCents)
	assert.Equal(t, int64(5000), quote.TotalCents)
	assert.False(t, quote.FeePassedOn)
}
