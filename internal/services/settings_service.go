// internal/services/settings_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/dlartartfinal-hash/chronos-app-sub000/internal/models"
)

type SettingsService struct {
	db *gorm.DB
}

func NewSettingsService(db *gorm.DB) *SettingsService {
	return &SettingsService{db: db}
}

type UpdateSettingsRequest struct {
	PaymentRates      map[string]interface{} `json:"paymentRates,omitempty"`
	CreditRates       []string               `json:"creditRates,omitempty"`
	PassFeeToCustomer *bool                  `json:"passFeeToCustomer,omitempty"`
	ThemeNameLight    *string                `json:"themeNameLight,omitempty"`
	ThemeNameDark     *string                `json:"themeNameDark,omitempty"`
}

// GetOrCreate returns the tenant's settings, creating the default row on
// first access.
func (s *SettingsService) GetOrCreate(userID uuid.UUID) (*models.Settings, error) {
	var settings models.Settings
	err := s.db.Where("user_id = ?", userID).First(&settings).Error
	if err == nil {
		return &settings, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("database error: %w", err)
	}

	settings = models.Settings{
		UserID:       userID,
		PaymentRates: defaultPaymentRates(),
		CreditRates:  defaultCreditRates(),
	}
	if err := s.db.Create(&settings).Error; err != nil {
		if isUniqueViolation(err) {
			// Concurrent first access; reread the winner
			if rerr := s.db.Where("user_id = ?", userID).First(&settings).Error; rerr == nil {
				return &settings, nil
			}
		}
		return nil, fmt.Errorf("failed to create settings: %w", err)
	}
	return &settings, nil
}

func (s *SettingsService) Update(userID uuid.UUID, req *UpdateSettingsRequest) (*models.Settings, error) {
	settings, err := s.GetOrCreate(userID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.PaymentRates != nil {
		updates["payment_rates"] = models.JSONB(req.PaymentRates)
	}
	if req.CreditRates != nil {
		if len(req.CreditRates) != 12 {
			return nil, errors.New("creditRates must carry exactly 12 entries")
		}
		updates["credit_rates"] = pq.StringArray(req.CreditRates)
	}
	if req.PassFeeToCustomer != nil {
		updates["pass_fee_to_customer"] = *req.PassFeeToCustomer
	}
	if req.ThemeNameLight != nil {
		updates["theme_name_light"] = *req.ThemeNameLight
	}
	if req.ThemeNameDark != nil {
		updates["theme_name_dark"] = *req.ThemeNameDark
	}

	if len(updates) == 0 {
		return settings, nil
	}

	if err := s.db.Model(settings).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update settings: %w", err)
	}

	s.db.Where("user_id = ?", userID).First(settings)
	return settings, nil
}

func defaultPaymentRates() models.JSONB {
	return models.JSONB{
		string(models.PaymentMethodDinheiro): "0",
		string(models.PaymentMethodPix):      "0",
		string(models.PaymentMethodDebito):   "1.99",
		string(models.PaymentMethodFiado):    "0",
	}
}

func defaultCreditRates() pq.StringArray {
	return pq.StringArray{
		"3.15", "4.29", "4.99", "5.59", "6.19", "6.79",
		"7.39", "7.99", "8.59", "9.19", "9.79", "10.39",
	}
}
