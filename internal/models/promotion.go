// internal/models/promotion.go
package models

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// Promotion holds a discount window for a single product or service.
// The stored Status column is advisory only: the effective state is a pure
// function of the clock and the interval, recomputed on every read.
type Promotion struct {
	BaseModel
	UserID    uuid.UUID         `json:"userId" gorm:"type:uuid;not null;index"`
	ProductID *uuid.UUID        `json:"productId,omitempty" gorm:"type:uuid;index"`
	ServiceID *uuid.UUID        `json:"serviceId,omitempty" gorm:"type:uuid;index"`
	ItemName  string            `json:"itemName" gorm:"size:255;not null"`
	ItemType  PromotionItemType `json:"itemType" gorm:"type:varchar(10);not null"`
	Discount  int               `json:"discount" gorm:"not null"`
	StartDate time.Time         `json:"startDate" gorm:"not null;index"`
	EndDate   time.Time         `json:"endDate" gorm:"not null;index"`
	Status    PromotionStatus   `json:"status" gorm:"type:varchar(10);default:'Agendada'"`
}

// StatusAt derives the lifecycle state from the interval. The window is
// inclusive on both ends.
func (p *Promotion) StatusAt(now time.Time) PromotionStatus {
	if now.Before(p.StartDate) {
		return PromotionStatusAgendada
	}
	if now.After(p.EndDate) {
		return PromotionStatusExpirada
	}
	return PromotionStatusAtiva
}

// ItemID returns whichever side of the product/service pair is set.
func (p *Promotion) ItemID() uuid.UUID {
	if p.ProductID != nil {
		return *p.ProductID
	}
	if p.ServiceID != nil {
		return *p.ServiceID
	}
	return uuid.Nil
}

// DiscountedCents applies the percentage discount to a price in cents,
// rounding half away from zero.
func (p *Promotion) DiscountedCents(priceCents int64) int64 {
	return int64(math.Round(float64(priceCents) * (1 - float64(p.Discount)/100)))
}
