// internal/services/promotion_service.go
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

type PromotionService struct {
	db *gorm.DB
}

func NewPromotionService(db *gorm.DB) *PromotionService {
	return &PromotionService{db: db}
}

type CreatePromotionRequest struct {
	ProductID *uuid.UUID `json:"productId,omitempty"`
	ServiceID *uuid.UUID `json:"serviceId,omitempty"`
	Discount  int        `json:"discount" validate:"required,min=1,max=100"`
	StartDate time.Time  `json:"startDate" validate:"required"`
	EndDate   time.Time  `json:"endDate" validate:"required"`
}

// List returns the tenant's promotions with the lifecycle state recomputed
// from the clock; the stored column is refreshed opportunistically so stale
// rows converge.
func (s *PromotionService) List(userID uuid.UUID) ([]models.Promotion, error) {
	var promotions []models.Promotion
	if err := s.db.Where("user_id = ?", userID).
		Order("start_date DESC").
		Find(&promotions).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch promotions: %w", err)
	}

	now := time.Now()
	for i := range promotions {
		effective := promotions[i].StatusAt(now)
		if promotions[i].Status != effective {
			s.db.Model(&promotions[i]).UpdateColumn("status", effective)
			promotions[i].Status = effective
		}
	}
	return promotions, nil
}

func (s *PromotionService) Create(userID uuid.UUID, req *CreatePromotionRequest) (*models.Promotion, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if (req.ProductID == nil) == (req.ServiceID == nil) {
		return nil, errors.New("promotion must target exactly one product or service")
	}
	if req.EndDate.Before(req.StartDate) {
		return nil, errors.New("end date must not precede start date")
	}

	promotion := &models.Promotion{
		UserID:    userID,
		ProductID: req.ProductID,
		ServiceID: req.ServiceID,
		Discount:  req.Discount,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	}

	if req.ProductID != nil {
		var product models.Product
		if err := s.db.Where("id = ? AND user_id = ?", *req.ProductID, userID).
			First(&product).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errors.New("product not found")
			}
			return nil, fmt.Errorf("database error: %w", err)
		}
		promotion.ItemName = product.Name
		promotion.ItemType = models.PromotionItemProduct
	} else {
		var service models.Service
		if err := s.db.Where("id = ? AND user_id = ?", *req.ServiceID, userID).
			First(&service).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errors.New("service not found")
			}
			return nil, fmt.Errorf("database error: %w", err)
		}
		promotion.ItemName = service.Name
		promotion.ItemType = models.PromotionItemService
	}

	promotion.Status = promotion.StatusAt(time.Now())

	if err := s.db.Create(promotion).Error; err != nil {
		return nil, fmt.Errorf("failed to create promotion: %w", err)
	}
	return promotion, nil
}

func (s *PromotionService) Delete(userID, id uuid.UUID) error {
	var promotion models.Promotion
	if err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&promotion).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("promotion not found")
		}
		return fmt.Errorf("database error: %w", err)
	}

	if err := s.db.Delete(&promotion).Error; err != nil {
		return fmt.Errorf("failed to delete promotion: %w", err)
	}
	return nil
}

// ActivePromotionFor finds the promotion applying to a cart line. When
// windows overlap the first active one wins, newest start date first, so
// repeated lookups stay deterministic.
func (s *PromotionService) ActivePromotionFor(userID uuid.UUID, itemType models.PromotionItemType, itemID uuid.UUID) (*models.Promotion, error) {
	column := "product_id"
	if itemType == models.PromotionItemService {
		column = "service_id"
	}

	now := time.Now()
	var promotions []models.Promotion
	if err := s.db.Where("user_id = ? AND "+column+" = ?", userID, itemID).
		Where("start_date <= ? AND end_date >= ?", now, now).
		Order("start_date DESC").
		Find(&promotions).Error; err != nil {
		return nil, fmt.Errorf("failed to look up promotions: %w", err)
	}

	for i := range promotions {
		if promotions[i].StatusAt(now) == models.PromotionStatusAtiva {
			return &promotions[i], nil
		}
	}
	return nil, nil
}
