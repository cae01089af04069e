// internal/services/referral_service.go
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

const referralCodeMaxAttempts = 10

type ReferralService struct {
	db *gorm.DB

	// generateCode is swappable so collision handling is testable.
	generateCode func() (string, error)
}

func NewReferralService(db *gorm.DB) *ReferralService {
	return &ReferralService{
		db:           db,
		generateCode: utils.GenerateReferralCode,
	}
}

// ReferralView is the referral page payload: the shareable code, aggregate
// counters and the commission history.
type ReferralView struct {
	models.Referral
	Commissions []models.ReferralCommission `json:"commissions"`
}

// GetOrCreate returns the user's referral, issuing a code on first access.
// Issuance runs inside a transaction relying on the unique index: a
// concurrent duplicate surfaces as a unique violation and counts as a
// collision, bounded at ten attempts.
func (s *ReferralService) GetOrCreate(userID uuid.UUID) (*ReferralView, error) {
	var referral models.Referral
	err := s.db.Where("user_id = ?", userID).First(&referral).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("database error: %w", err)
		}
		created, cerr := s.create(userID)
		if cerr != nil {
			return nil, cerr
		}
		referral = *created
	}

	var commissions []models.ReferralCommission
	if err := s.db.Where("referral_id = ?", referral.ID).
		Order("created_at DESC").
		Find(&commissions).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch commissions: %w", err)
	}
	if commissions == nil {
		commissions = []models.ReferralCommission{}
	}

	return &ReferralView{Referral: referral, Commissions: commissions}, nil
}

func (s *ReferralService) create(userID uuid.UUID) (*models.Referral, error) {
	for attempt := 0; attempt < referralCodeMaxAttempts; attempt++ {
		code, err := s.generateCode()
		if err != nil {
			return nil, fmt.Errorf("failed to generate referral code: %w", err)
		}

		referral := &models.Referral{UserID: userID, ReferralCode: code}
		err = s.db.Transaction(func(tx *gorm.DB) error {
			var count int64
			if err := tx.Model(&models.Referral{}).
				Where("referral_code = ?", code).
				Count(&count).Error; err != nil {
				return fmt.Errorf("database error: %w", err)
			}
			if count > 0 {
				return gorm.ErrDuplicatedKey
			}
			return tx.Create(referral).Error
		})
		if err == nil {
			return referral, nil
		}
		if isUniqueViolation(err) {
			continue
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			continue
		}
		return nil, fmt.Errorf("failed to create referral: %w", err)
	}

	return nil, errors.New("could not issue a unique referral code")
}

// FindByCode resolves a shared code to its referral row.
func (s *ReferralService) FindByCode(code string) (*models.Referral, error) {
	var referral models.Referral
	if err := s.db.Where("referral_code = ?", code).First(&referral).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("referral not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &referral, nil
}

// RecordCommission accrues a pending commission and bumps the referrer's
// referred-user counter with an atomic column increment.
func (s *ReferralService) RecordCommission(tx *gorm.DB, referral *models.Referral, referredUser *models.User, planLabel string, amountCents int64, countReferredUser bool) error {
	if tx == nil {
		tx = s.db
	}

	commission := &models.ReferralCommission{
		ReferralID:        referral.ID,
		ReferredUserID:    referredUser.ID,
		ReferredUserEmail: referredUser.Email,
		Plan:              planLabel,
		AmountCents:       amountCents,
		Status:            models.CommissionStatusPending,
	}

	if err := tx.Create(commission).Error; err != nil {
		return fmt.Errorf("failed to create commission: %w", err)
	}

	if countReferredUser {
		if err := tx.Model(&models.Referral{}).
			Where("id = ?", referral.ID).
			UpdateColumn("referred_users", gorm.Expr("referred_users + 1")).Error; err != nil {
			return fmt.Errorf("failed to bump referred users: %w", err)
		}
	}
	return nil
}

// HasCommissionForPlan reports whether a commission with the given plan
// label already exists for the referred user, the idempotency check behind
// second-installment accrual.
func (s *ReferralService) HasCommissionForPlan(referralID, referredUserID uuid.UUID, planLabel string) (bool, error) {
	var count int64
	if err := s.db.Model(&models.ReferralCommission{}).
		Where("referral_id = ? AND referred_user_id = ? AND plan = ?", referralID, referredUserID, planLabel).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("database error: %w", err)
	}
	return count > 0, nil
}

// ApproveCommission marks a pending commission paid and credits the
// referrer's earned total atomically.
func (s *ReferralService) ApproveCommission(commissionID uuid.UUID) (*models.ReferralCommission, error) {
	var commission models.ReferralCommission

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&commission, "id = ?", commissionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.New("commission not found")
			}
			return fmt.Errorf("database error: %w", err)
		}

		if commission.Status != models.CommissionStatusPending {
			return errors.New("commission is not pending")
		}

		now := time.Now()
		if err := tx.Model(&commission).Updates(map[string]interface{}{
			"status":  models.CommissionStatusPaid,
			"paid_at": now,
		}).Error; err != nil {
			return fmt.Errorf("failed to update commission: %w", err)
		}
		commission.Status = models.CommissionStatusPaid
		commission.PaidAt = &now

		if err := tx.Model(&models.Referral{}).
			Where("id = ?", commission.ReferralID).
			UpdateColumn("commission_earned_cents",
				gorm.Expr("commission_earned_cents + ?", commission.AmountCents)).Error; err != nil {
			return fmt.Errorf("failed to credit referral: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &commission, nil
}
