//go:build integration
// +build integration

// internal/services/integration_test.go
package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/dlartartfinal-hash/chronos-app-sub000/internal/database"
	"github.com/dlartartfinal-hash/chronos-app-sub000/internal/models"
)

type ServicesSuite struct {
	suite.Suite
	container *tcpostgres.PostgresContainer
	db        *gorm.DB

	settings   *SettingsService
	promotions *PromotionService
	catalog    *CatalogService
	customers  *CustomerService
	sales      *SaleService
	referrals  *ReferralService
}

func (s *ServicesSuite) SetupSuite() {
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("chronos_test"),
		tcpostgres.WithUsername("chronos"),
		tcpostgres.WithPassword("chronos"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	s.Require().NoError(err)
	s.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	s.Require().NoError(err)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	s.Require().NoError(err)
	s.db = db

	s.Require().NoError(database.RunMigrations(db))

	s.settings = NewSettingsService(db)
	s.promotions = NewPromotionService(db)
	s.catalog = NewCatalogService(db)
	s.customers = NewCustomerService(db)
	s.sales = NewSaleService(db, s.settings, s.promotions)
	s.referrals = NewReferralService(db)
}

func (s *ServicesSuite) TearDownSuite() {
	if s.container != nil {
		_ = s.container.Terminate(context.Background())
	}
}

func (s *ServicesSuite) newUser(email string) *models.User {
	user := &models.User{Email: email, Name: "Test User", OwnerPin: "4321"}
	s.Require().NoError(user.SetPassword("123456"))
	s.Require().NoError(s.db.Create(user).Error)
	return user
}

func (s *ServicesSuite) TestSettingsDefaultsOnFirstAccess() {
	user := s.newUser("settings@example.com")

	settings, err := s.settings.GetOrCreate(user.ID)
	s.Require().NoError(err)
	s.Len(settings.CreditRates, 12)
	s.False(settings.PassFeeToCustomer)
	s.Equal("1.99", settings.FlatRate(models.PaymentMethodDebito))

	again, err := s.settings.GetOrCreate(user.ID)
	s.Require().NoError(err)
	s.Equal(settings.ID, again.ID)
}

func (s *ServicesSuite) TestSaleDecrementsStockAndClampsAtZero() {
	user := s.newUser("stock@example.com")

	stock := 3
	price := int64(1000)
	product, err := s.catalog.CreateProduct(user.ID, &CreateProductRequest{
		Name:       "Caneca",
		Stock:      &stock,
		MoneyInput: MoneyInput{PriceCents: &price},
	})
	s.Require().NoError(err)

	sale, err := s.sales.Create(user.ID, &CreateSaleRequest{
		PaymentMethod: models.PaymentMethodPix,
		Items: []SaleItemInput{
			{ProductID: &product.ID, Quantity: 5},
		},
	})
	s.Require().NoError(err)
	s.Equal(models.SaleStatusConcluida, sale.Status)
	s.Equal(int64(5000), sale.SubtotalCents)
	s.Require().Len(sale.Items, 1)
	s.Equal("Caneca", sale.Items[0].Name)

	// Oversell clamps at zero rather than going negative.
	var reloaded models.Product
	s.Require().NoError(s.db.First(&reloaded, product.ID).Error)
	s.Require().NotNil(reloaded.Stock)
	s.Equal(0, *reloaded.Stock)
}

func (s *ServicesSuite) TestFiadoSaleStartsPending() {
	user := s.newUser("fiado@example.com")

	price := int64(2500)
	product, err := s.catalog.CreateProduct(user.ID, &CreateProductRequest{
		Name:       "Cinto",
		MoneyInput: MoneyInput{PriceCents: &price},
	})
	s.Require().NoError(err)

	sale, err := s.sales.Create(user.ID, &CreateSaleRequest{
		PaymentMethod: models.PaymentMethodFiado,
		Items:         []SaleItemInput{{ProductID: &product.ID, Quantity: 1}},
	})
	s.Require().NoError(err)
	s.Equal(models.SaleStatusPendente, sale.Status)
}

func (s *ServicesSuite) TestSaleSnapshotSurvivesCatalogEdits() {
	user := s.newUser("snapshot@example.com")

	price := int64(9900)
	product, err := s.catalog.CreateProduct(user.ID, &CreateProductRequest{
		Name:       "Tênis",
		MoneyInput: MoneyInput{PriceCents: &price},
	})
	s.Require().NoError(err)

	sale, err := s.sales.Create(user.ID, &CreateSaleRequest{
		PaymentMethod: models.PaymentMethodDinheiro,
		Items:         []SaleItemInput{{ProductID: &product.ID, Quantity: 1}},
	})
	s.Require().NoError(err)

	newPrice := int64(12900)
	_, err = s.catalog.UpdateProduct(user.ID, &UpdateProductRequest{
		ID: product.ID,
		CreateProductRequest: CreateProductRequest{
			Name:       "Tênis Novo",
			MoneyInput: MoneyInput{PriceCents: &newPrice},
		},
	})
	s.Require().NoError(err)

	var item models.SaleItem
	s.Require().NoError(s.db.Where("sale_id = ?", sale.ID).First(&item).Error)
	s.Equal("Tênis", item.Name)
	s.Equal(int64(9900), item.PriceCents)
}

func (s *ServicesSuite) TestActivePromotionDiscountsSaleLine() {
	user := s.newUser("promo@example.com")

	price := int64(10000)
	product, err := s.catalog.CreateProduct(user.ID, &CreateProductRequest{
		Name:       "Relógio",
		MoneyInput: MoneyInput{PriceCents: &price},
	})
	s.Require().NoError(err)

	now := time.Now()
	promo, err := s.promotions.Create(user.ID, &CreatePromotionRequest{
		ProductID: &product.ID,
		Discount:  10,
		StartDate: now.Add(-time.Hour),
		EndDate:   now.Add(time.Hour),
	})
	s.Require().NoError(err)
	s.Equal(models.PromotionStatusAtiva, promo.Status)

	sale, err := s.sales.Create(user.ID, &CreateSaleRequest{
		PaymentMethod: models.PaymentMethodPix,
		Items:         []SaleItemInput{{ProductID: &product.ID, Quantity: 1}},
	})
	s.Require().NoError(err)
	s.Require().Len(sale.Items, 1)
	s.Equal(int64(9000), sale.Items[0].PriceCents)
	s.Equal(int64(10000), sale.Items[0].OriginalPriceCents)
	s.Require().NotNil(sale.Items[0].PromotionID)
	s.Equal(promo.ID, *sale.Items[0].PromotionID)
}

func (s *ServicesSuite) TestCrossTenantAccessReadsAsNotFound() {
	owner := s.newUser("owner@example.com")
	intruder := s.newUser("intruder@example.com")

	price := int64(5000)
	product, err := s.catalog.CreateProduct(owner.ID, &CreateProductRequest{
		Name:       "Bolsa",
		MoneyInput: MoneyInput{PriceCents: &price},
	})
	s.Require().NoError(err)

	_, err = s.catalog.UpdateProduct(intruder.ID, &UpdateProductRequest{
		ID: product.ID,
		CreateProductRequest: CreateProductRequest{
			Name:       "Bolsa Roubada",
			MoneyInput: MoneyInput{PriceCents: &price},
		},
	})
	s.Require().Error(err)
	s.Contains(err.Error(), "not found")

	err = s.catalog.DeleteProduct(intruder.ID, product.ID)
	s.Require().Error(err)
	s.Contains(err.Error(), "not found")

	// The row is untouched.
	var count int64
	s.db.Model(&models.Product{}).Where("id = ?", product.ID).Count(&count)
	s.Equal(int64(1), count)
}

func (s *ServicesSuite) TestReferralCodeRetriesOnCollision() {
	taken := s.newUser("taken@example.com")
	s.Require().NoError(s.db.Create(&models.Referral{
		UserID:       taken.ID,
		ReferralCode: "CHRONOS-AAAAA",
	}).Error)

	user := s.newUser("collide@example.com")
	attempts := 0
	s.referrals.generateCode = func() (string, error) {
		attempts++
		if attempts <= 3 {
			return "CHRONOS-AAAAA", nil
		}
		return fmt.Sprintf("CHRONOS-FRE%02d", attempts), nil
	}

	view, err := s.referrals.GetOrCreate(user.ID)
	s.Require().NoError(err)
	s.Equal(4, attempts)
	s.Equal("CHRONOS-FRE04", view.ReferralCode)
	s.Empty(view.Commissions)
}

func (s *ServicesSuite) TestReferralCodeGivesUpAfterTenCollisions() {
	taken := s.newUser("taken2@example.com")
	s.Require().NoError(s.db.Create(&models.Referral{
		UserID:       taken.ID,
		ReferralCode: "CHRONOS-BBBBB",
	}).Error)

	user := s.newUser("unlucky@example.com")
	s.referrals.generateCode = func() (string, error) {
		return "CHRONOS-BBBBB", nil
	}

	_, err := s.referrals.GetOrCreate(user.ID)
	s.Require().Error(err)
	s.Contains(err.Error(), "unique referral code")
}

func (s *ServicesSuite) TestApproveCommissionCreditsReferrer() {
	referrer := s.newUser("referrer@example.com")
	referred := s.newUser("referred@example.com")

	s.referrals.generateCode = func() (string, error) { return "CHRONOS-CCCCC", nil }
	view, err := s.referrals.GetOrCreate(referrer.ID)
	s.Require().NoError(err)

	referral := &view.Referral
	s.Require().NoError(s.referrals.RecordCommission(nil, referral, referred, "Básico (MONTHLY)", 1495, true))

	var commission models.ReferralCommission
	s.Require().NoError(s.db.Where("referral_id = ?", referral.ID).First(&commission).Error)
	s.Equal(models.CommissionStatusPending, commission.Status)

	approved, err := s.referrals.ApproveCommission(commission.ID)
	s.Require().NoError(err)
	s.Equal(models.CommissionStatusPaid, approved.Status)
	s.Require().NotNil(approved.PaidAt)

	// Approving twice is rejected.
	_, err = s.referrals.ApproveCommission(commission.ID)
	s.Require().Error(err)
	s.Contains(err.Error(), "not pending")

	var reloaded models.Referral
	s.Require().NoError(s.db.First(&reloaded, referral.ID).Error)
	s.Equal(int64(1495), reloaded.CommissionEarnedCents)
	s.Equal(1, reloaded.ReferredUsers)
}

func (s *ServicesSuite) TestCollaboratorPinFallsBackToOwner() {
	user := s.newUser("pin@example.com")

	_, err := s.customers.CreateCollaborator(user.ID, &CreateCollaboratorRequest{
		Name: "Maria",
		Pin:  "7777",
	})
	s.Require().NoError(err)

	result, err := s.customers.VerifyPin(user, &VerifyPinRequest{Pin: "7777"})
	s.Require().NoError(err)
	s.False(result.IsOwner)
	s.Require().NotNil(result.Collaborator)
	s.Equal("Maria", result.Collaborator.Name)

	result, err = s.customers.VerifyPin(user, &VerifyPinRequest{Pin: "4321"})
	s.Require().NoError(err)
	s.True(result.IsOwner)

	_, err = s.customers.VerifyPin(user, &VerifyPinRequest{Pin: "0000"})
	s.Require().Error(err)
}

func (s *ServicesSuite) TestVariantProductRequiresVariationID() {
	user := s.newUser("variant@example.com")

	product, err := s.catalog.CreateProduct(user.ID, &CreateProductRequest{
		Name:          "Camiseta",
		HasVariations: true,
		Variations: []ProductVariationInput{
			{Name: "P", Stock: 5, MoneyInput: MoneyInput{PriceCents: ptrInt64(4900)}},
			{Name: "M", Stock: 5, MoneyInput: MoneyInput{PriceCents: ptrInt64(4900)}},
		},
	})
	s.Require().NoError(err)

	_, err = s.sales.Create(user.ID, &CreateSaleRequest{
		PaymentMethod: models.PaymentMethodPix,
		Items:         []SaleItemInput{{ProductID: &product.ID, Quantity: 1}},
	})
	s.Require().Error(err)
	s.Contains(err.Error(), "variation")

	var small models.ProductVariation
	s.Require().NoError(s.db.Where("product_id = ? AND name = ?", product.ID, "P").First(&small).Error)

	variationID := small.ID
	sale, err := s.sales.Create(user.ID, &CreateSaleRequest{
		PaymentMethod: models.PaymentMethodPix,
		Items: []SaleItemInput{
			{ProductID: &product.ID, ProductVariationID: &variationID, Quantity: 2},
		},
	})
	s.Require().NoError(err)
	s.Require().Len(sale.Items, 1)
	s.Equal("Camiseta - P", sale.Items[0].Name)

	var variation models.ProductVariation
	s.Require().NoError(s.db.First(&variation, variationID).Error)
	s.Equal(3, variation.Stock)
}

func ptrInt64(v int64) *int64 { return &v }

func TestServicesSuite(t *testing.T) {
	suite.Run(t, new(ServicesSuite))
}
