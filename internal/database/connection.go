// internal/database/connection.go
package database

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/dlartartfinal-hash/chronos-app-sub000/internal/config"
	"github.com/dlartartfinal-hash/chronos-app-sub000/internal/models"
)

var DB *gorm.DB

func Initialize(cfg config.DatabaseConfig) (*gorm.DB, error) {
	var err error
	var gormConfig *gorm.Config

	// Configure GORM logger
	if cfg.LogLevel == "silent" {
		gormConfig = &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		}
	} else {
		gormConfig = &gorm.Config{
			Logger: logger.Default.LogMode(logger.Warn),
		}
	}

	// Connect to database
	DB, err = gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying sql.DB
	sqlDB, err := DB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Configure connection pool
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.MaxLifetime) * time.Second)

	// Test connection
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Println("Database connection established successfully")
	return DB, nil
}

func Close(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("Error getting underlying sql.DB: %v", err)
		return
	}

	if err := sqlDB.Close(); err != nil {
		log.Printf("Error closing database connection: %v", err)
	} else {
		log.Println("Database connection closed successfully")
	}
}

func RunMigrations(db *gorm.DB) error {
	log.Println("Running database migrations...")

	// Enable UUID extension
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\"").Error; err != nil {
		return fmt.Errorf("failed to create UUID extension: %w", err)
	}

	// Run auto-migrations
	err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.ProductVariation{},
		&models.Service{},
		&models.Customer{},
		&models.Collaborator{},
		&models.Sale{},
		&models.SaleItem{},
		&models.Promotion{},
		&models.FinancialTransaction{},
		&models.Subscription{},
		&models.Referral{},
		&models.ReferralCommission{},
		&models.Settings{},
		&models.AuditLog{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// Create indexes
	if err := createIndexes(db); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

func createIndexes(db *gorm.DB) error {
	indexes := []string{
		// User indexes
		"CREATE INDEX IF NOT EXISTS idx_users_email ON users(email)",
		"CREATE INDEX IF NOT EXISTS idx_users_referred_by ON users(referred_by)",

		// Catalog indexes
		"CREATE INDEX IF NOT EXISTS idx_products_user_category ON products(user_id, category_id)",
		"CREATE INDEX IF NOT EXISTS idx_products_created_at ON products(created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_product_variations_product ON product_variations(product_id)",
		"CREATE INDEX IF NOT EXISTS idx_services_user ON services(user_id)",

		// Sale indexes
		"CREATE INDEX IF NOT EXISTS idx_sales_user_created ON sales(user_id, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_sales_status ON sales(status)",
		"CREATE INDEX IF NOT EXISTS idx_sale_items_sale ON sale_items(sale_id)",

		// Promotion indexes
		"CREATE INDEX IF NOT EXISTS idx_promotions_user_window ON promotions(user_id, start_date, end_date)",

		// Finance indexes
		"CREATE INDEX IF NOT EXISTS idx_financial_transactions_user_date ON financial_transactions(user_id, date DESC)",

		// Billing indexes
		"CREATE INDEX IF NOT EXISTS idx_subscriptions_status ON subscriptions(status)",
		"CREATE INDEX IF NOT EXISTS idx_referral_commissions_status ON referral_commissions(status, created_at DESC)",

		// Audit indexes
		"CREATE INDEX IF NOT EXISTS idx_audit_logs_user_action ON audit_logs(user_id, action)",
		"CREATE INDEX IF NOT EXISTS idx_audit_logs_created ON audit_logs(created_at DESC)",
	}

	for _, index := range indexes {
		if err := db.Exec(index).Error; err != nil {
			log.Printf("Warning: Failed to create index: %s, Error: %v", index, err)
			// Continue with other indexes instead of failing completely
		}
	}

	return nil
}

// Seed initial data
func SeedInitialData(db *gorm.DB) error {
	log.Println("Seeding initial data...")

	var ownerCount int64
	db.Model(&models.User{}).Where("email = ?", "admin@localhost.com").Count(&ownerCount)

	if ownerCount == 0 {
		owner := &models.User{
			Email:    "admin@localhost.com",
			Name:     "Admin User",
			OwnerPin: "1234",
			IsAdmin:  true,
		}

		if err := owner.SetPassword("123456"); err != nil {
			return fmt.Errorf("failed to set owner password: %w", err)
		}

		if err := db.Create(owner).Error; err != nil {
			return fmt.Errorf("failed to create owner user: %w", err)
		}

		categories := []models.Category{
			{UserID: owner.ID, Name: "Eletrônicos"},
			{UserID: owner.ID, Name: "Roupas"},
		}
		if err := db.Create(&categories).Error; err != nil {
			return fmt.Errorf("failed to create seed categories: %w", err)
		}

		sku := "PROD-001"
		stock := 10
		price := int64(350000)
		cost := int64(280000)
		product := &models.Product{
			UserID:     owner.ID,
			CategoryID: &categories[0].ID,
			Name:       "Notebook Dell",
			SKU:        &sku,
			Stock:      &stock,
			PriceCents: &price,
			CostCents:  &cost,
		}
		if err := db.Create(product).Error; err != nil {
			return fmt.Errorf("failed to create seed product: %w", err)
		}

		shirtCost := int64(2500)
		shirt := &models.Product{
			UserID:        owner.ID,
			CategoryID:    &categories[1].ID,
			Name:          "Camiseta",
			HasVariations: true,
			Variations: []models.ProductVariation{
				{Name: "P - Azul", Stock: 20, PriceCents: 4900, CostCents: &shirtCost},
				{Name: "M - Azul", Stock: 15, PriceCents: 4900, CostCents: &shirtCost},
				{Name: "G - Azul", Stock: 10, PriceCents: 4900, CostCents: &shirtCost},
			},
		}
		if err := db.Create(shirt).Error; err != nil {
			return fmt.Errorf("failed to create seed product variations: %w", err)
		}

		log.Println("Default owner account created successfully")
	}

	log.Println("Initial data seeding completed")
	return nil
}

// Transaction helper
func WithTransaction(db *gorm.DB, fn func(*gorm.DB) error) error {
	tx := db.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}
