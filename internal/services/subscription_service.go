// internal/services/subscription_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dlartartfinal-hash/chronos-app-sub000/internal/models"
	"github.com/dlartartfinal-hash/chronos-app-sub000/internal/utils"
)

type SubscriptionService struct {
	db        *gorm.DB
	trialDays int
}

func NewSubscriptionService(db *gorm.DB, trialDays int) *SubscriptionService {
	if trialDays <= 0 {
		trialDays = 30
	}
	return &SubscriptionService{db: db, trialDays: trialDays}
}

type UpdateSubscriptionRequest struct {
	BillingCycle models.BillingCycle `json:"billingCycle" validate:"required,billing_cycle"`
}

// GetOrCreate returns the user's subscription, lazily creating the default
// trial on first access.
func (s *SubscriptionService) GetOrCreate(userID uuid.UUID) (*models.Subscription, error) {
	var subscription models.Subscription
	err := s.db.Where("user_id = ?", userID).First(&subscription).Error
	if err == nil {
		return &subscription, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("database error: %w", err)
	}

	trialEnd := time.Now().AddDate(0, 0, s.trialDays)
	subscription = models.Subscription{
		UserID:       userID,
		Plan:         PlanBasico,
		BillingCycle: models.BillingCycleMonthly,
		Status:       models.SubscriptionStatusTrial,
		TrialEndsAt:  &trialEnd,
	}

	if err := s.db.Create(&subscription).Error; err != nil {
		if isUniqueViolation(err) {
			if rerr := s.db.Where("user_id = ?", userID).First(&subscription).Error; rerr == nil {
				return &subscription, nil
			}
		}
		return nil, fmt.Errorf("failed to create subscription: %w", err)
	}
	return &subscription, nil
}

// UpdateBillingCycle is the only client-facing subscription mutation; plan
// and status changes flow through the payment processor webhooks.
func (s *SubscriptionService) UpdateBillingCycle(userID uuid.UUID, req *UpdateSubscriptionRequest) (*models.Subscription, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	subscription, err := s.GetOrCreate(userID)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(subscription).UpdateColumn("billing_cycle", req.BillingCycle).Error; err != nil {
		return nil, fmt.Errorf("failed to update subscription: %w", err)
	}
	subscription.BillingCycle = req.BillingCycle
	return subscription, nil
}
