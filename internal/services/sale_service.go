// internal/services/sale_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dlartartfinal-hash/chronos-app-sub000/internal/models"
	"github.com/dlartartfinal-hash/chronos-app-sub000/internal/utils"
)

type SaleService struct {
	db         *gorm.DB
	settings   *SettingsService
	promotions *PromotionService
}

func NewSaleService(db *gorm.DB, settings *SettingsService, promotions *PromotionService) *SaleService {
	return &SaleService{db: db, settings: settings, promotions: promotions}
}

type SaleItemInput struct {
	ProductID          *uuid.UUID `json:"productId,omitempty"`
	ProductVariationID *uuid.UUID `json:"productVariationId,omitempty"`
	ServiceID          *uuid.UUID `json:"serviceId,omitempty"`
	Quantity           int        `json:"quantity" validate:"required,min=1"`
}

type CreateSaleRequest struct {
	CustomerID    *uuid.UUID           `json:"customerId,omitempty"`
	Vendedor      string               `json:"vendedor,omitempty"`
	PaymentMethod models.PaymentMethod `json:"paymentMethod" validate:"required,payment_method"`
	Installments  *int                 `json:"installments,omitempty"`
	Items         []SaleItemInput      `json:"items" validate:"required,min=1,dive"`
}

type UpdateSaleRequest struct {
	ID     uuid.UUID         `json:"id" validate:"required"`
	Status models.SaleStatus `json:"status" validate:"required"`
}

type QuoteRequest struct {
	SubtotalCents int64                `json:"subtotalCents" validate:"min=0"`
	PaymentMethod models.PaymentMethod `json:"paymentMethod" validate:"required,payment_method"`
	Installments  *int                 `json:"installments,omitempty"`
}

var saleSortFields = []string{"created_at", "total_cents", "status"}

func (s *SaleService) List(userID uuid.UUID, params utils.PaginationParams) ([]models.Sale, int64, error) {
	var total int64
	if err := s.db.Model(&models.Sale{}).Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count sales: %w", err)
	}

	var sales []models.Sale
	query := s.db.Where("user_id = ?", userID)
	query = utils.ApplySort(query, params, saleSortFields)
	query = utils.ApplyPagination(query, params)
	if err := query.Preload("Customer").Preload("Items").
		Find(&sales).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch sales: %w", err)
	}
	return sales, total, nil
}

// Quote computes the fee breakdown for a cart without persisting anything.
func (s *SaleService) Quote(userID uuid.UUID, req *QuoteRequest) (*FeeQuote, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	settings, err := s.settings.GetOrCreate(userID)
	if err != nil {
		return nil, err
	}

	installments := 1
	if req.Installments != nil {
		installments = *req.Installments
	}

	quote := ComputeFeeQuote(settings, req.SubtotalCents, req.PaymentMethod, installments)
	return &quote, nil
}

// Create records the sale and decrements stock in a single database
// transaction. Each line resolves its live catalog row, applies the first
// active promotion and snapshots name/price/cost so later catalog edits
// never rewrite history. Stock clamps at zero.
func (s *SaleService) Create(userID uuid.UUID, req *CreateSaleRequest) (*models.Sale, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if req.PaymentMethod == models.PaymentMethodCredito {
		if req.Installments == nil || *req.Installments < 1 || *req.Installments > 12 {
			return nil, errors.New("credit sales require installments between 1 and 12")
		}
	}

	if req.CustomerID != nil {
		var count int64
		if err := s.db.Model(&models.Customer{}).
			Where("id = ? AND user_id = ?", *req.CustomerID, userID).
			Count(&count).Error; err != nil {
			return nil, fmt.Errorf("database error: %w", err)
		}
		if count == 0 {
			return nil, errors.New("customer not found")
		}
	}

	settings, err := s.settings.GetOrCreate(userID)
	if err != nil {
		return nil, err
	}

	var sale *models.Sale
	err = s.db.Transaction(func(tx *gorm.DB) error {
		var items []models.SaleItem
		var subtotal int64

		for i := range req.Items {
			item, err := s.resolveItem(tx, userID, &req.Items[i])
			if err != nil {
				return err
			}
			items = append(items, *item)
			subtotal += item.PriceCents * int64(item.Quantity)
		}

		installments := 1
		if req.Installments != nil {
			installments = *req.Installments
		}
		quote := ComputeFeeQuote(settings, subtotal, req.PaymentMethod, installments)

		status := models.SaleStatusConcluida
		if req.PaymentMethod == models.PaymentMethodFiado {
			status = models.SaleStatusPendente
		}

		sale = &models.Sale{
			UserID:        userID,
			CustomerID:    req.CustomerID,
			Vendedor:      req.Vendedor,
			Status:        status,
			PaymentMethod: req.PaymentMethod,
			Installments:  req.Installments,
			SubtotalCents: subtotal,
			FeesCents:     quote.FeeCents,
			TotalCents:    quote.TotalCents,
			Items:         items,
		}

		if err := tx.Create(sale).Error; err != nil {
			return fmt.Errorf("failed to create sale: %w", err)
		}

		for i := range req.Items {
			if err := decrementStock(tx, &req.Items[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.db.Preload("Customer").Preload("Items").First(sale, sale.ID)
	return sale, nil
}

// UpdateStatus is the only mutation a recorded sale accepts.
func (s *SaleService) UpdateStatus(userID uuid.UUID, req *UpdateSaleRequest) (*models.Sale, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	switch req.Status {
	case models.SaleStatusConcluida, models.SaleStatusPendente, models.SaleStatusCancelada:
	default:
		return nil, errors.New("unknown sale status")
	}

	var sale models.Sale
	if err := s.db.Where("id = ? AND user_id = ?", req.ID, userID).First(&sale).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("sale not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if err := s.db.Model(&sale).UpdateColumn("status", req.Status).Error; err != nil {
		return nil, fmt.Errorf("failed to update sale: %w", err)
	}
	sale.Status = req.Status

	s.db.Preload("Customer").Preload("Items").First(&sale, sale.ID)
	return &sale, nil
}

// resolveItem loads the referenced catalog row inside the sale transaction
// and builds the denormalized line snapshot, discounting against the first
// active promotion for the item.
func (s *SaleService) resolveItem(tx *gorm.DB, userID uuid.UUID, input *SaleItemInput) (*models.SaleItem, error) {
	switch {
	case input.ServiceID != nil:
		var service models.Service
		if err := tx.Where("id = ? AND user_id = ?", *input.ServiceID, userID).
			First(&service).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errors.New("service not found")
			}
			return nil, fmt.Errorf("database error: %w", err)
		}

		item := &models.SaleItem{
			ServiceID:          input.ServiceID,
			Name:               service.Name,
			Quantity:           input.Quantity,
			PriceCents:         service.PriceCents,
			OriginalPriceCents: service.PriceCents,
			CostCents:          service.CostCents,
			ImageURL:           service.ImageURL,
		}
		s.applyPromotion(userID, models.PromotionItemService, service.ID, item)
		return item, nil

	case input.ProductID != nil:
		var product models.Product
		if err := tx.Where("id = ? AND user_id = ?", *input.ProductID, userID).
			First(&product).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errors.New("product not found")
			}
			return nil, fmt.Errorf("database error: %w", err)
		}

		if input.ProductVariationID != nil {
			var variation models.ProductVariation
			if err := tx.Where("id = ? AND product_id = ?", *input.ProductVariationID, product.ID).
				First(&variation).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, errors.New("product variation not found")
				}
				return nil, fmt.Errorf("database error: %w", err)
			}

			item := &models.SaleItem{
				ProductID:          input.ProductID,
				ProductVariationID: input.ProductVariationID,
				Name:               product.Name + " - " + variation.Name,
				Quantity:           input.Quantity,
				PriceCents:         variation.PriceCents,
				OriginalPriceCents: variation.PriceCents,
				CostCents:          variation.CostCents,
				ImageURL:           product.ImageURL,
			}
			s.applyPromotion(userID, models.PromotionItemProduct, product.ID, item)
			return item, nil
		}

		if product.HasVariations {
			return nil, errors.New("variant product requires a variation id")
		}
		if product.PriceCents == nil {
			return nil, errors.New("product has no price")
		}

		item := &models.SaleItem{
			ProductID:          input.ProductID,
			Name:               product.Name,
			Quantity:           input.Quantity,
			PriceCents:         *product.PriceCents,
			OriginalPriceCents: *product.PriceCents,
			CostCents:          product.CostCents,
			ImageURL:           product.ImageURL,
		}
		s.applyPromotion(userID, models.PromotionItemProduct, product.ID, item)
		return item, nil

	default:
		return nil, errors.New("sale item must reference a product or a service")
	}
}

func (s *SaleService) applyPromotion(userID uuid.UUID, itemType models.PromotionItemType, itemID uuid.UUID, item *models.SaleItem) {
	promo, err := s.promotions.ActivePromotionFor(userID, itemType, itemID)
	if err != nil || promo == nil {
		return
	}
	item.PromotionID = &promo.ID
	item.PriceCents = promo.DiscountedCents(item.OriginalPriceCents)
}

// decrementStock subtracts sold quantity from the live stock without going
// below zero. Services carry no stock.
func decrementStock(tx *gorm.DB, input *SaleItemInput) error {
	switch {
	case input.ProductVariationID != nil:
		if err := tx.Model(&models.ProductVariation{}).
			Where("id = ?", *input.ProductVariationID).
			UpdateColumn("stock", gorm.Expr("GREATEST(stock - ?, 0)", input.Quantity)).Error; err != nil {
			return fmt.Errorf("failed to decrement variation stock: %w", err)
		}
	case input.ProductID != nil:
		if err := tx.Model(&models.Product{}).
			Where("id = ? AND stock IS NOT NULL", *input.ProductID).
			UpdateColumn("stock", gorm.Expr("GREATEST(stock - ?, 0)", input.Quantity)).Error; err != nil {
			return fmt.Errorf("failed to decrement product stock: %w", err)
		}
	}
	return nil
}
