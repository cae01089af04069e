// internal/models/sale.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// Sale is an immutable snapshot of a transaction. Item names, prices and
// costs are denormalized at sale time so later catalog edits never rewrite
// history.
type Sale struct {
	BaseModel
	UserID        uuid.UUID     `json:"userId" gorm:"type:uuid;not null;index"`
	CustomerID    *uuid.UUID    `json:"customerId,omitempty" gorm:"type:uuid;index"`
	Vendedor      string        `json:"vendedor" gorm:"size:255"`
	Status        SaleStatus    `json:"status" gorm:"type:varchar(10);not null;index"`
	PaymentMethod PaymentMethod `json:"paymentMethod" gorm:"type:varchar(10);not null"`
	Installments  *int          `json:"installments,omitempty"`
	SubtotalCents int64         `json:"subtotalCents" gorm:"not null"`
	FeesCents     int64         `json:"feesCents" gorm:"not null;default:0"`
	TotalCents    int64         `json:"totalCents" gorm:"not null"`

	Customer *Customer  `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	Items    []SaleItem `json:"items,omitempty" gorm:"foreignKey:SaleID;constraint:OnDelete:CASCADE"`
}

type SaleItem struct {
	BaseModel
	SaleID             uuid.UUID  `json:"saleId" gorm:"type:uuid;not null;index"`
	ProductID          *uuid.UUID `json:"productId,omitempty" gorm:"type:uuid"`
	ProductVariationID *uuid.UUID `json:"productVariationId,omitempty" gorm:"type:uuid"`
	ServiceID          *uuid.UUID `json:"serviceId,omitempty" gorm:"type:uuid"`
	PromotionID        *uuid.UUID `json:"promotionId,omitempty" gorm:"type:uuid"`
	Name               string     `json:"name" gorm:"size:255;not null"`
	Quantity           int        `json:"quantity" gorm:"not null"`
	PriceCents         int64      `json:"priceCents" gorm:"not null"`
	OriginalPriceCents int64      `json:"originalPriceCents" gorm:"not null"`
	CostCents          *int64     `json:"costCents,omitempty"`
	ImageURL           *string    `json:"imageUrl,omitempty" gorm:"size:500"`
}

// FinancialTransaction is a manual ledger entry. AmountCents carries the
// sign: Despesa rows are stored negative, Receita rows positive.
type FinancialTransaction struct {
	BaseModel
	UserID      uuid.UUID       `json:"userId" gorm:"type:uuid;not null;index"`
	Description string          `json:"description" gorm:"size:500;not null"`
	AmountCents int64           `json:"amountCents" gorm:"not null"`
	Type        TransactionType `json:"type" gorm:"type:varchar(10);not null"`
	Date        time.Time       `json:"date" gorm:"not null;index"`
}
