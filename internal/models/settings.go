// internal/models/settings.go
package models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Settings is the per-tenant POS configuration. PaymentRates maps a
// payment method to its flat fee percentage as a string ("2.5");
// CreditRates carries the 12 per-installment credit percentages, indexed
// by installments-1. Unparseable entries are treated as zero downstream.
type Settings struct {
	BaseModel
	UserID            uuid.UUID      `json:"userId" gorm:"type:uuid;not null;uniqueIndex"`
	PaymentRates      JSONB          `json:"paymentRates" gorm:"type:jsonb"`
	CreditRates       pq.StringArray `json:"creditRates" gorm:"type:text[]"`
	PassFeeToCustomer bool           `json:"passFeeToCustomer" gorm:"default:false"`
	ThemeNameLight    string         `json:"themeNameLight" gorm:"size:50;default:'Padrão'"`
	ThemeNameDark     string         `json:"themeNameDark" gorm:"size:50;default:'Padrão'"`
}

// FlatRate returns the configured percentage for a non-credit method,
// or the empty string when unset.
func (s *Settings) FlatRate(method PaymentMethod) string {
	if s.PaymentRates == nil {
		return ""
	}
	if v, ok := s.PaymentRates[string(method)]; ok {
		if str, ok := v.(string); ok {
			return str
		}
	}
	return ""
}

// CreditRate returns the percentage string for the given installment
// count, or the empty string when out of range.
func (s *Settings) CreditRate(installments int) string {
	idx := installments - 1
	if idx < 0 || idx >= len(s.CreditRates) {
		return ""
	}
	return s.CreditRates[idx]
}
