// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dlartartfinal-hash/chronos-app-sub000/internal/config"
	"github.com/dlartartfinal-hash/chronos-app-sub000/internal/handlers"
	"github.com/dlartartfinal-hash/chronos-app-sub000/internal/middleware"
	"github.com/dlartartfinal-hash/chronos-app-sub000/internal/services"
	"github.com/dlartartfinal-hash/chronos-app-sub000/internal/utils"
)

func Initialize(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// Initialize services
	storageService, _ := services.NewStorageService(cfg)
	settingsService := services.NewSettingsService(db)
	promotionService := services.NewPromotionService(db)
	referralService := services.NewReferralService(db)

	catalogService := services.NewCatalogService(db)
	customerService := services.NewCustomerService(db)
	saleService := services.NewSaleService(db, settingsService, promotionService)
	financeService := services.NewFinanceService(db)
	subscriptionService := services.NewSubscriptionService(db, cfg.Stripe.TrialDays)
	billingService := services.NewBillingService(db, cfg, referralService)
	adminService := services.NewAdminService(db, referralService)
	authService := services.NewAuthService(db, cfg)

	// Initialize handlers
	catalogHandler := handlers.NewCatalogHandler(catalogService, storageService)
	customerHandler := handlers.NewCustomerHandler(customerService)
	saleHandler := handlers.NewSaleHandler(saleService)
	promotionHandler := handlers.NewPromotionHandler(promotionService)
	financeHandler := handlers.NewFinanceHandler(financeService)
	subscriptionHandler := handlers.NewSubscriptionHandler(subscriptionService, referralService, settingsService)
	billingHandler := handlers.NewBillingHandler(billingService)
	adminHandler := handlers.NewAdminHandler(adminService)
	authHandler := handlers.NewAuthHandler(authService)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS([]string{cfg.Frontend.BaseURL}))
	r.Use(middleware.I18nMiddleware())
	r.Use(middleware.GeneralRateLimit())
	r.Use(middleware.AuditLogMiddleware(db))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	api := r.Group("/api")
	api.Use(middleware.OptionalSession())
	{
		actor := middleware.ActorRequired(db)

		// Account creation and identity-provider login run without an actor
		api.POST("/user", middleware.AuthRateLimit(), authHandler.Register)

		auth := api.Group("/auth")
		auth.Use(middleware.AuthRateLimit())
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/google-login", authHandler.GoogleLogin)
			auth.GET("/me", actor, authHandler.GetProfile)
			auth.POST("/update-owner-pin", actor, authHandler.UpdateOwnerPin)
		}

		categories := api.Group("/categories", actor)
		{
			categories.GET("", catalogHandler.GetCategories)
			categories.POST("", catalogHandler.CreateCategory)
			categories.DELETE("", catalogHandler.DeleteCategory)
		}

		customers := api.Group("/customers", actor)
		{
			customers.GET("", customerHandler.GetCustomers)
			customers.POST("", customerHandler.CreateCustomer)
			customers.PUT("", customerHandler.UpdateCustomer)
			customers.DELETE("", customerHandler.DeleteCustomer)
		}

		products := api.Group("/products", actor)
		{
			products.GET("", catalogHandler.GetProducts)
			products.POST("", catalogHandler.CreateProduct)
			products.PUT("", catalogHandler.UpdateProduct)
			products.DELETE("", catalogHandler.DeleteProduct)
			products.POST("/upload-image", middleware.UploadRateLimit(), catalogHandler.UploadProductImage)
		}

		servicesGroup := api.Group("/services", actor)
		{
			servicesGroup.GET("", catalogHandler.GetServices)
			servicesGroup.POST("", catalogHandler.CreateService)
			servicesGroup.PUT("", catalogHandler.UpdateService)
			servicesGroup.DELETE("", catalogHandler.DeleteService)
		}

		sales := api.Group("/sales", actor)
		{
			sales.GET("", saleHandler.GetSales)
			sales.POST("", saleHandler.CreateSale)
			sales.PUT("", saleHandler.UpdateSale)
			sales.POST("/quote", saleHandler.QuoteSale)
		}

		promotions := api.Group("/promotions", actor)
		{
			promotions.GET("", promotionHandler.GetPromotions)
			promotions.POST("", promotionHandler.CreatePromotion)
			promotions.DELETE("", promotionHandler.DeletePromotion)
		}

		subscriptions := api.Group("/subscriptions", actor)
		{
			subscriptions.GET("", subscriptionHandler.GetSubscription)
			subscriptions.PUT("", subscriptionHandler.UpdateSubscription)
		}

		api.GET("/referrals", actor, subscriptionHandler.GetReferral)

		transactions := api.Group("/financial-transactions", actor)
		{
			transactions.GET("", financeHandler.GetTransactions)
			transactions.POST("", financeHandler.CreateTransaction)
			transactions.DELETE("", financeHandler.DeleteTransaction)
		}

		collaborators := api.Group("/collaborators", actor)
		{
			collaborators.GET("", customerHandler.GetCollaborators)
			collaborators.POST("", customerHandler.CreateCollaborator)
			collaborators.PUT("", customerHandler.UpdateCollaborator)
			collaborators.DELETE("", customerHandler.DeleteCollaborator)
			collaborators.POST("/verify-pin", customerHandler.VerifyPin)
		}

		settings := api.Group("/settings", actor)
		{
			settings.GET("", subscriptionHandler.GetSettings)
			settings.PUT("", subscriptionHandler.UpdateSettings)
		}

		admin := api.Group("/admin", actor, middleware.AdminRequired())
		{
			admin.GET("/stats", adminHandler.GetStats)
			admin.POST("/approve-commission", adminHandler.ApproveCommission)
			admin.POST("/grant-access", adminHandler.GrantAccess)
			admin.POST("/reset-subscription", adminHandler.ResetSubscription)
			admin.POST("/cleanup-subscriptions", adminHandler.CleanupSubscriptions)
		}

		// Payment-processor surface: the webhook authenticates via its
		// signature, the client-initiated calls carry the target email.
		stripeGroup := api.Group("/stripe")
		{
			stripeGroup.POST("/create-checkout", billingHandler.CreateCheckout)
			stripeGroup.POST("/create-portal", billingHandler.CreatePortal)
			stripeGroup.POST("/update-subscription", billingHandler.UpdateSubscription)
			stripeGroup.GET("/verify-session", billingHandler.VerifySession)
			stripeGroup.POST("/webhook", billingHandler.Webhook)
		}
	}

	// Static file serving (for development)
	if cfg.Environment == "development" {
		r.Static("/uploads", "./uploads")
	}

	return r
}
