// internal/services/checkout.go
package services

import (
	"math"
	"strconv"
	"strings"

	"github.com/dlartartfinal-hash/chronos-app-sub000/internal/models"
)

// FeeQuote is the result of the POS checkout fee calculation: the resolved
// processor rate, the fee and the amount the customer pays, all in cents.
type FeeQuote struct {
	SubtotalCents int64   `json:"subtotalCents"`
	RatePercent   float64 `json:"ratePercent"`
	FeeCents      int64   `json:"feeCents"`
	TotalCents    int64   `json:"totalCents"`
	FeePassedOn   bool    `json:"feePassedOn"`
}

// ResolveRatePercent picks the processor rate for a payment method. Credit
// rates are indexed by installments-1; every other method uses the flat
// table. Missing or unparseable entries resolve to 0, never an error.
func ResolveRatePercent(settings *models.Settings, method models.PaymentMethod, installments int) float64 {
	if settings == nil {
		return 0
	}

	var raw string
	if method == models.PaymentMethodCredito {
		raw = settings.CreditRate(installments)
	} else {
		raw = settings.FlatRate(method)
	}

	raw = strings.TrimSpace(strings.ReplaceAll(raw, ",", "."))
	if raw == "" {
		return 0
	}

	rate, err := strconv.ParseFloat(raw, 64)
	if err != nil || rate < 0 {
		return 0
	}
	return rate
}

// ComputeFeeQuote applies the merchant's fee configuration to a cart
// subtotal.
//
// When passFeeToCustomer is set the total is grossed up so the merchant
// still nets the subtotal: total = subtotal / (1 - rate/100). Otherwise the
// fee is computed on top of the subtotal and the customer is still charged
// subtotal + fee; the original system behaves this way even though the
// toggle reads "merchant absorbs", and that behavior is kept as is.
func ComputeFeeQuote(settings *models.Settings, subtotalCents int64, method models.PaymentMethod, installments int) FeeQuote {
	rate := ResolveRatePercent(settings, method, installments)

	quote := FeeQuote{
		SubtotalCents: subtotalCents,
		RatePercent:   rate,
		TotalCents:    subtotalCents,
	}

	if rate <= 0 || rate >= 100 {
		return quote
	}

	passFee := settings != nil && settings.PassFeeToCustomer
	if passFee {
		total := int64(math.Round(float64(subtotalCents) / (1 - rate/100)))
		quote.TotalCents = total
		quote.FeeCents = total - subtotalCents
		quote.FeePassedOn = true
		return quote
	}

	fee := int64(math.Round(float64(subtotalCents) * rate / 100))
	quote.FeeCents = fee
	quote.TotalCents = subtotalCents + fee
	return quote
}
