// internal/services/admin_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dlartartfinal-hash/chronos-app-sub000/internal/models"
	"github.com/dlartartfinal-hash/chronos-app-sub000/internal/utils"
)

type AdminService struct {
	db        *gorm.DB
	referrals *ReferralService
}

func NewAdminService(db *gorm.DB, referrals *ReferralService) *AdminService {
	return &AdminService{db: db, referrals: referrals}
}

type AdminStats struct {
	TotalUsers              int64                       `json:"totalUsers"`
	ActiveSubscriptions     int64                       `json:"activeSubscriptions"`
	MRRCents                int64                       `json:"mrrCents"`
	PendingCommissionsCents int64                       `json:"pendingCommissionsCents"`
	PendingCommissionsCount int64                       `json:"pendingCommissionsCount"`
	TotalReferrals          int64                       `json:"totalReferrals"`
	ActiveReferrers         int64                       `json:"activeReferrers"`
	PendingCommissions      []models.ReferralCommission `json:"pendingCommissions"`
	LatestUsers             []models.User               `json:"latestUsers"`
}

type ApproveCommissionRequest struct {
	CommissionID uuid.UUID `json:"commissionId" validate:"required"`
}

type GrantAccessRequest struct {
	Email    string `json:"email" validate:"required,email"`
	OwnerPin string `json:"ownerPin" validate:"required,min=4"`
}

type ResetSubscriptionRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// GetStats aggregates the admin dashboard: user counts, MRR from the plan
// price table, and the referral program backlog.
func (s *AdminService) GetStats() (*AdminStats, error) {
	stats := &AdminStats{}

	if err := s.db.Model(&models.User{}).Count(&stats.TotalUsers).Error; err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}

	var subscriptions []models.Subscription
	if err := s.db.Where("status IN ?", []models.SubscriptionStatus{
		models.SubscriptionStatusActive, models.SubscriptionStatusTrial,
	}).Find(&subscriptions).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch subscriptions: %w", err)
	}
	stats.ActiveSubscriptions = int64(len(subscriptions))
	for _, sub := range subscriptions {
		stats.MRRCents += PlanMRRCents(sub.Plan, sub.BillingCycle)
	}

	if err := s.db.Model(&models.ReferralCommission{}).
		Where("status = ?", models.CommissionStatusPending).
		Count(&stats.PendingCommissionsCount).Error; err != nil {
		return nil, fmt.Errorf("failed to count commissions: %w", err)
	}
	if err := s.db.Model(&models.ReferralCommission{}).
		Where("status = ?", models.CommissionStatusPending).
		Select("COALESCE(SUM(amount_cents), 0)").
		Scan(&stats.PendingCommissionsCents).Error; err != nil {
		return nil, fmt.Errorf("failed to sum commissions: %w", err)
	}

	if err := s.db.Model(&models.Referral{}).Count(&stats.TotalReferrals).Error; err != nil {
		return nil, fmt.Errorf("failed to count referrals: %w", err)
	}
	if err := s.db.Model(&models.Referral{}).
		Where("referred_users > 0").
		Count(&stats.ActiveReferrers).Error; err != nil {
		return nil, fmt.Errorf("failed to count referrers: %w", err)
	}

	if err := s.db.Where("status = ?", models.CommissionStatusPending).
		Preload("Referral").Preload("Referral.User").
		Order("created_at DESC").Limit(50).
		Find(&stats.PendingCommissions).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch pending commissions: %w", err)
	}

	if err := s.db.Preload("Subscription").
		Order("created_at DESC").Limit(100).
		Find(&stats.LatestUsers).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch users: %w", err)
	}

	return stats, nil
}

func (s *AdminService) ApproveCommission(req *ApproveCommissionRequest) (*models.ReferralCommission, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	return s.referrals.ApproveCommission(req.CommissionID)
}

// GrantAccess promotes an account to admin and seeds its owner PIN.
func (s *AdminService) GrantAccess(req *GrantAccessRequest) (*models.User, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var user models.User
	if err := s.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("user not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if err := s.db.Model(&user).Updates(map[string]interface{}{
		"is_admin":  true,
		"owner_pin": req.OwnerPin,
	}).Error; err != nil {
		return nil, fmt.Errorf("failed to grant access: %w", err)
	}
	user.IsAdmin = true
	user.OwnerPin = req.OwnerPin
	return &user, nil
}

// ResetSubscription removes a cancelled subscription row so the account
// falls back to the lazy trial on next access.
func (s *AdminService) ResetSubscription(req *ResetSubscriptionRequest) error {
	if err := utils.ValidateStruct(req); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	var user models.User
	if err := s.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("user not found")
		}
		return fmt.Errorf("database error: %w", err)
	}

	var subscription models.Subscription
	if err := s.db.Where("user_id = ?", user.ID).First(&subscription).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("subscription not found")
		}
		return fmt.Errorf("database error: %w", err)
	}

	if subscription.Status != models.SubscriptionStatusCancelled {
		return errors.New("only cancelled subscriptions can be reset")
	}

	if err := s.db.Unscoped().Delete(&subscription).Error; err != nil {
		return fmt.Errorf("failed to delete subscription: %w", err)
	}
	return nil
}

// CleanupReport lists subscription rows that look inconsistent, for manual
// review.
type CleanupReport struct {
	OrphanedSubscriptions []models.Subscription `json:"orphanedSubscriptions"`
	MissingProcessorIDs   []models.Subscription `json:"missingProcessorIds"`
	Checked               int64                 `json:"checked"`
}

func (s *AdminService) CleanupSubscriptions() (*CleanupReport, error) {
	report := &CleanupReport{}

	if err := s.db.Model(&models.Subscription{}).Count(&report.Checked).Error; err != nil {
		return nil, fmt.Errorf("failed to count subscriptions: %w", err)
	}

	if err := s.db.
		Where("user_id NOT IN (?)", s.db.Model(&models.User{}).Select("id")).
		Find(&report.OrphanedSubscriptions).Error; err != nil {
		return nil, fmt.Errorf("failed to scan for orphans: %w", err)
	}

	if err := s.db.
		Where("status = ? AND stripe_subscription_id IS NULL", models.SubscriptionStatusActive).
		Find(&report.MissingProcessorIDs).Error; err != nil {
		return nil, fmt.Errorf("failed to scan for missing ids: %w", err)
	}

	return report, nil
}
