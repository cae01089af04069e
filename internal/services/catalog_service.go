// internal/services/catalog_service.go
package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dlartartfinal-hash/chronos-app-sub000/internal/models"
	"github.com/dlartartfinal-hash/chronos-app-sub000/internal/utils"
)

type CatalogService struct {
	db *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

// Money fields come in as either decimal reais ("price") or integer cents
// ("priceCents"); cents win when both are present.
type MoneyInput struct {
	Price      *float64 `json:"price,omitempty"`
	PriceCents *int64   `json:"priceCents,omitempty"`
	Cost       *float64 `json:"cost,omitempty"`
	CostCents  *int64   `json:"costCents,omitempty"`
}

func (m *MoneyInput) ResolvePriceCents() *int64 {
	if m.PriceCents != nil {
		return m.PriceCents
	}
	if m.Price != nil {
		cents := utils.CentsFromReais(*m.Price)
		return &cents
	}
	return nil
}

func (m *MoneyInput) ResolveCostCents() *int64 {
	if m.CostCents != nil {
		return m.CostCents
	}
	if m.Cost != nil {
		cents := utils.CentsFromReais(*m.Cost)
		return &cents
	}
	return nil
}

type ProductVariationInput struct {
	MoneyInput
	Name  string  `json:"name" validate:"required,min=1,max=255"`
	SKU   *string `json:"sku,omitempty"`
	Stock int     `json:"stock" validate:"min=0"`
}

type CreateProductRequest struct {
	MoneyInput
	Name          string                  `json:"name" validate:"required,min=1,max=255"`
	SKU           *string                 `json:"sku,omitempty"`
	Stock         *int                    `json:"stock,omitempty"`
	CategoryID    *uuid.UUID              `json:"categoryId,omitempty"`
	HasVariations bool                    `json:"hasVariations"`
	Variations    []ProductVariationInput `json:"variations,omitempty"`
	ImageURL      *string                 `json:"imageUrl,omitempty"`
	ImageID       *string                 `json:"imageId,omitempty"`
}

type UpdateProductRequest struct {
	CreateProductRequest
	ID uuid.UUID `json:"id" validate:"required"`
}

type CreateServiceRequest struct {
	MoneyInput
	Name     string  `json:"name" validate:"required,min=1,max=255"`
	Code     string  `json:"code" validate:"required,min=1,max=100"`
	ImageURL *string `json:"imageUrl,omitempty"`
	ImageID  *string `json:"imageId,omitempty"`
}

type UpdateServiceRequest struct {
	CreateServiceRequest
	ID uuid.UUID `json:"id" validate:"required"`
}

// Categories

func (s *CatalogService) ListCategories(userID uuid.UUID) ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.Where("user_id = ?", userID).Order("name ASC").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch categories: %w", err)
	}
	return categories, nil
}

func (s *CatalogService) CreateCategory(userID uuid.UUID, req *CreateCategoryRequest) (*models.Category, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	category := &models.Category{
		UserID: userID,
		Name:   strings.TrimSpace(req.Name),
	}

	if err := s.db.Create(category).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, errors.New("category already exists")
		}
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	return category, nil
}

func (s *CatalogService) DeleteCategory(userID, id uuid.UUID) error {
	var category models.Category
	if err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("category not found")
		}
		return fmt.Errorf("database error: %w", err)
	}

	if err := s.db.Delete(&category).Error; err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	return nil
}

// Products

func (s *CatalogService) ListProducts(userID uuid.UUID) ([]models.Product, error) {
	var products []models.Product
	if err := s.db.Where("user_id = ?", userID).
		Preload("Category").Preload("Variations").
		Order("name ASC").
		Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	return products, nil
}

func (s *CatalogService) CreateProduct(userID uuid.UUID, req *CreateProductRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	if err := validateProductShape(req); err != nil {
		return nil, err
	}

	if req.CategoryID != nil {
		if err := s.verifyCategoryOwnership(userID, *req.CategoryID); err != nil {
			return nil, err
		}
	}

	product := &models.Product{
		UserID:        userID,
		CategoryID:    req.CategoryID,
		Name:          strings.TrimSpace(req.Name),
		SKU:           normalizeSKU(req.SKU),
		HasVariations: req.HasVariations,
		ImageURL:      req.ImageURL,
		ImageID:       req.ImageID,
	}

	if req.HasVariations {
		for _, v := range req.Variations {
			price := v.ResolvePriceCents()
			if price == nil {
				return nil, errors.New("variation price is required")
			}
			product.Variations = append(product.Variations, models.ProductVariation{
				Name:       strings.TrimSpace(v.Name),
				SKU:        normalizeSKU(v.SKU),
				Stock:      v.Stock,
				PriceCents: *price,
				CostCents:  v.ResolveCostCents(),
			})
		}
	} else {
		product.Stock = req.Stock
		product.PriceCents = req.ResolvePriceCents()
		product.CostCents = req.ResolveCostCents()
	}

	if err := s.db.Create(product).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, errors.New("a product with this SKU already exists")
		}
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.db.Preload("Category").Preload("Variations").First(product, product.ID)
	return product, nil
}

// UpdateProduct rewrites the product row and replaces the full variation
// set: existing variations are deleted and the incoming ones recreated.
func (s *CatalogService) UpdateProduct(userID uuid.UUID, req *UpdateProductRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	if err := validateProductShape(&req.CreateProductRequest); err != nil {
		return nil, err
	}

	var product models.Product
	if err := s.db.Where("id = ? AND user_id = ?", req.ID, userID).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("product not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if req.CategoryID != nil {
		if err := s.verifyCategoryOwnership(userID, *req.CategoryID); err != nil {
			return nil, err
		}
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"name":           strings.TrimSpace(req.Name),
			"sku":            normalizeSKU(req.SKU),
			"category_id":    req.CategoryID,
			"has_variations": req.HasVariations,
			"image_url":      req.ImageURL,
			"image_id":       req.ImageID,
		}

		if req.HasVariations {
			updates["stock"] = nil
			updates["price_cents"] = nil
			updates["cost_cents"] = nil
		} else {
			updates["stock"] = req.Stock
			updates["price_cents"] = req.ResolvePriceCents()
			updates["cost_cents"] = req.ResolveCostCents()
		}

		if err := tx.Model(&product).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update product: %w", err)
		}

		// Replace variations wholesale
		if err := tx.Unscoped().Where("product_id = ?", product.ID).
			Delete(&models.ProductVariation{}).Error; err != nil {
			return fmt.Errorf("failed to clear variations: %w", err)
		}

		if req.HasVariations {
			for _, v := range req.Variations {
				price := v.ResolvePriceCents()
				if price == nil {
					return errors.New("variation price is required")
				}
				variation := models.ProductVariation{
					ProductID:  product.ID,
					Name:       strings.TrimSpace(v.Name),
					SKU:        normalizeSKU(v.SKU),
					Stock:      v.Stock,
					PriceCents: *price,
					CostCents:  v.ResolveCostCents(),
				}
				if err := tx.Create(&variation).Error; err != nil {
					return fmt.Errorf("failed to create variation: %w", err)
				}
			}
		}

		return nil
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, errors.New("a product with this SKU already exists")
		}
		return nil, err
	}

	s.db.Preload("Category").Preload("Variations").First(&product, product.ID)
	return &product, nil
}

func (s *CatalogService) DeleteProduct(userID, id uuid.UUID) error {
	var product models.Product
	if err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("product not found")
		}
		return fmt.Errorf("database error: %w", err)
	}

	if err := s.db.Select("Variations").Delete(&product).Error; err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return nil
}

func (s *CatalogService) verifyCategoryOwnership(userID, categoryID uuid.UUID) error {
	var count int64
	if err := s.db.Model(&models.Category{}).
		Where("id = ? AND user_id = ?", categoryID, userID).
		Count(&count).Error; err != nil {
		return fmt.Errorf("database error: %w", err)
	}
	if count == 0 {
		return errors.New("category not found")
	}
	return nil
}

// Services

func (s *CatalogService) ListServices(userID uuid.UUID) ([]models.Service, error) {
	var services []models.Service
	if err := s.db.Where("user_id = ?", userID).Order("name ASC").Find(&services).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch services: %w", err)
	}
	return services, nil
}

func (s *CatalogService) CreateService(userID uuid.UUID, req *CreateServiceRequest) (*models.Service, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	price := req.ResolvePriceCents()
	if price == nil {
		return nil, errors.New("service price is required")
	}

	service := &models.Service{
		UserID:     userID,
		Name:       strings.TrimSpace(req.Name),
		Code:       strings.TrimSpace(req.Code),
		PriceCents: *price,
		CostCents:  req.ResolveCostCents(),
		ImageURL:   req.ImageURL,
		ImageID:    req.ImageID,
	}

	if err := s.db.Create(service).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, errors.New("a service with this code already exists")
		}
		return nil, fmt.Errorf("failed to create service: %w", err)
	}
	return service, nil
}

func (s *CatalogService) UpdateService(userID uuid.UUID, req *UpdateServiceRequest) (*models.Service, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var service models.Service
	if err := s.db.Where("id = ? AND user_id = ?", req.ID, userID).First(&service).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("service not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	price := req.ResolvePriceCents()
	if price == nil {
		return nil, errors.New("service price is required")
	}

	updates := map[string]interface{}{
		"name":        strings.TrimSpace(req.Name),
		"code":        strings.TrimSpace(req.Code),
		"price_cents": *price,
		"cost_cents":  req.ResolveCostCents(),
		"image_url":   req.ImageURL,
		"image_id":    req.ImageID,
	}

	if err := s.db.Model(&service).Updates(updates).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, errors.New("a service with this code already exists")
		}
		return nil, fmt.Errorf("failed to update service: %w", err)
	}
	return &service, nil
}

func (s *CatalogService) DeleteService(userID, id uuid.UUID) error {
	var service models.Service
	if err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&service).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("service not found")
		}
		return fmt.Errorf("database error: %w", err)
	}

	if err := s.db.Delete(&service).Error; err != nil {
		return fmt.Errorf("failed to delete service: %w", err)
	}
	return nil
}

// Helpers

// validateProductShape enforces the simple-or-variant invariant: a product
// carries stock/price either directly or on its variations, never both.
func validateProductShape(req *CreateProductRequest) error {
	if req.HasVariations {
		if len(req.Variations) == 0 {
			return errors.New("variant product requires at least one variation")
		}
		if req.Stock != nil || req.ResolvePriceCents() != nil {
			return errors.New("variant product cannot carry its own stock or price")
		}
		return nil
	}

	if len(req.Variations) > 0 {
		return errors.New("simple product cannot carry variations")
	}
	if req.ResolvePriceCents() == nil {
		return errors.New("product price is required")
	}
	return nil
}

func normalizeSKU(sku *string) *string {
	if sku == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*sku)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "duplicate key value") ||
		strings.Contains(err.Error(), "SQLSTATE 23505")
}
