// internal/models/catalog.go
package models

import (
	"github.com/google/uuid"
)

type Category struct {
	BaseModel
	UserID uuid.UUID `json:"userId" gorm:"type:uuid;not null;index;uniqueIndex:uix_categories_user_name"`
	Name   string    `json:"name" gorm:"size:100;not null;uniqueIndex:uix_categories_user_name"`

	Products []Product `json:"products,omitempty" gorm:"foreignKey:CategoryID"`
}

// Product is either "simple" (stock/price directly on it) or
// variant-based (stock/price only on variations), never both.
type Product struct {
	BaseModel
	UserID        uuid.UUID  `json:"userId" gorm:"type:uuid;not null;index;uniqueIndex:uix_products_user_sku"`
	CategoryID    *uuid.UUID `json:"categoryId,omitempty" gorm:"type:uuid;index"`
	Name          string     `json:"name" gorm:"size:255;not null"`
	SKU           *string    `json:"sku,omitempty" gorm:"size:100;uniqueIndex:uix_products_user_sku"`
	Stock         *int       `json:"stock,omitempty"`
	PriceCents    *int64     `json:"priceCents,omitempty"`
	CostCents     *int64     `json:"costCents,omitempty"`
	HasVariations bool       `json:"hasVariations" gorm:"default:false"`
	ImageURL      *string    `json:"imageUrl,omitempty" gorm:"size:500"`
	ImageID       *string    `json:"imageId,omitempty" gorm:"size:100"`

	Category   *Category          `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Variations []ProductVariation `json:"variations,omitempty" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

type ProductVariation struct {
	BaseModel
	ProductID  uuid.UUID `json:"productId" gorm:"type:uuid;not null;index"`
	Name       string    `json:"name" gorm:"size:255;not null"`
	SKU        *string   `json:"sku,omitempty" gorm:"size:100"`
	Stock      int       `json:"stock" gorm:"default:0"`
	PriceCents int64     `json:"priceCents" gorm:"not null"`
	CostCents  *int64    `json:"costCents,omitempty"`
}

type Service struct {
	BaseModel
	UserID     uuid.UUID `json:"userId" gorm:"type:uuid;not null;index;uniqueIndex:uix_services_user_code"`
	Name       string    `json:"name" gorm:"size:255;not null"`
	Code       string    `json:"code" gorm:"size:100;not null;uniqueIndex:uix_services_user_code"`
	PriceCents int64     `json:"priceCents" gorm:"not null"`
	CostCents  *int64    `json:"costCents,omitempty"`
	ImageURL   *string   `json:"imageUrl,omitempty" gorm:"size:500"`
	ImageID    *string   `json:"imageId,omitempty" gorm:"size:100"`
}
