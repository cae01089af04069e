// internal/models/billing.go
package models

import (
	"time"

	"github.com/google/uuid"
)

type Subscription struct {
	BaseModel
	UserID                 uuid.UUID          `json:"userId" gorm:"type:uuid;not null;uniqueIndex"`
	Plan                   string             `json:"plan" gorm:"size:50;not null"`
	BillingCycle           BillingCycle       `json:"billingCycle" gorm:"type:varchar(10);not null;default:'MONTHLY'"`
	Status                 SubscriptionStatus `json:"status" gorm:"type:varchar(10);not null;index"`
	TrialEndsAt            *time.Time         `json:"trialEndsAt,omitempty"`
	StripeCustomerID       *string            `json:"stripeCustomerId,omitempty" gorm:"size:100;index"`
	StripeSubscriptionID   *string            `json:"stripeSubscriptionId,omitempty" gorm:"size:100;index"`
	StripeCurrentPeriodEnd *time.Time         `json:"stripeCurrentPeriodEnd,omitempty"`
	CancelledAt            *time.Time         `json:"cancelledAt,omitempty"`
	EndDate                *time.Time         `json:"endDate,omitempty"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// Referral carries a user's shareable code plus aggregate counters.
// Counters are bumped with atomic column increments, never read-modify-write.
type Referral struct {
	BaseModel
	UserID                uuid.UUID `json:"userId" gorm:"type:uuid;not null;uniqueIndex"`
	ReferralCode          string    `json:"referralCode" gorm:"size:20;not null;uniqueIndex"`
	ReferredUsers         int       `json:"referredUsers" gorm:"default:0"`
	CommissionEarnedCents int64     `json:"commissionEarned" gorm:"default:0"`

	User        *User                `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Commissions []ReferralCommission `json:"commissions,omitempty" gorm:"foreignKey:ReferralID"`
}

type ReferralCommission struct {
	BaseModel
	ReferralID        uuid.UUID        `json:"referralId" gorm:"type:uuid;not null;index"`
	ReferredUserID    uuid.UUID        `json:"referredUserId" gorm:"type:uuid;not null;index"`
	ReferredUserEmail string           `json:"referredUserEmail" gorm:"size:255;not null"`
	Plan              string           `json:"plan" gorm:"size:100;not null"`
	AmountCents       int64            `json:"amountCents" gorm:"not null"`
	Status            CommissionStatus `json:"status" gorm:"type:varchar(10);not null;default:'PENDING';index"`
	PaidAt            *time.Time       `json:"paidAt,omitempty"`

	Referral *Referral `json:"referral,omitempty" gorm:"foreignKey:ReferralID"`
}
