// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/kartloop/dropship-backend/internal/config"
	"github.com/kartloop/dropship-backend/internal/handlers"
	"github.com/kartloop/dropship-backend/internal/middleware"
	"github.com/kartloop/dropship-backend/internal/services"
	"github.com/kartloop/dropship-backend/internal/utils"
)

func Initialize(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// Initialize services
	notificationService := services.NewNotificationService(db, cfg)
	storageService, _ := services.NewStorageService(cfg)
	earningsService := services.NewEarningsService(db, cfg, notificationService)
	orderService := services.NewOrderService(db, notificationService, earningsService)
	checkoutService := services.NewCheckoutService(db, cfg, notificationService)
	catalogService := services.NewCatalogService(db)
	storeService := services.NewStoreService(db)
	reviewService := services.NewReviewService(db)
	authService := services.NewAuthService(db, cfg)
	adminService := services.NewAdminService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService)
	orderHandler := handlers.NewOrderHandler(orderService)
	withdrawalHandler := handlers.NewWithdrawalHandler(earningsService)
	productHandler := handlers.NewProductHandler(catalogService, storageService)
	reviewHandler := handlers.NewReviewHandler(reviewService)
	storeHandler := handlers.NewStoreHandler(storeService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	adminHandler := handlers.NewAdminHandler(adminService)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS([]string{cfg.Frontend.BaseURL}))
	r.Use(middleware.GeneralRateLimit())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// API v1 routes
	v1 := r.Group("/v1")
	{
		// Authentication routes
		auth := v1.Group("/auth")
		auth.Use(middleware.AuthRateLimit())
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.RefreshToken)
			auth.GET("/me", middleware.AuthRequired(), authHandler.GetProfile)
		}

		// Public catalog and storefront routes
		v1.GET("/products", middleware.OptionalAuth(), productHandler.ListProducts)
		v1.GET("/products/:id", productHandler.GetProduct)
		v1.GET("/products/:id/reviews", reviewHandler.ListReviews)
		v1.POST("/products/:id/reviews", reviewHandler.SubmitReview)
		v1.GET("/storefront/:slug", storeHandler.GetStorefront)

		// Public checkout
		v1.POST("/checkout", checkoutHandler.CreateOrder)
		v1.POST("/checkout/:id/payment-intent", checkoutHandler.CreatePaymentIntent)

		// Store owner routes
		stores := v1.Group("/stores")
		stores.Use(middleware.AuthRequired(), middleware.StoreOwnerRequired())
		{
			stores.POST("", storeHandler.CreateStore)
			stores.PUT("/:id", storeHandler.UpdateStore)
			stores.GET("/mine", storeHandler.ListMyStores)
		}

		earnings := v1.Group("/earnings")
		earnings.Use(middleware.AuthRequired(), middleware.StoreOwnerRequired())
		{
			earnings.GET("", withdrawalHandler.GetEarnings)
			earnings.GET("/withdrawals", withdrawalHandler.ListMyWithdrawals)
			earnings.POST("/withdrawals", withdrawalHandler.RequestWithdrawal)
		}

		// Admin back office
		admin := v1.Group("/admin")
		admin.Use(middleware.AuthRequired(), middleware.AdminRequired())
		{
			admin.GET("/dashboard", adminHandler.GetDashboard)

			admin.GET("/orders", orderHandler.ListOrders)
			admin.GET("/orders/:id", orderHandler.GetOrder)
			admin.PATCH("/orders/:id/status", orderHandler.UpdateStatus)
			admin.POST("/orders/:id/delivery", orderHandler.BeginDelivery)
			admin.POST("/orders/:id/delivery/complete", orderHandler.CompleteDelivery)
			admin.POST("/orders/:id/cancel", orderHandler.CancelOrder)

			admin.GET("/withdrawals", withdrawalHandler.ListWithdrawals)
			admin.POST("/withdrawals/:id/approve", withdrawalHandler.ApproveWithdrawal)
			admin.POST("/withdrawals/:id/reject", withdrawalHandler.RejectWithdrawal)

			admin.POST("/products", productHandler.CreateProduct)
			admin.PUT("/products/:id", productHandler.UpdateProduct)
			admin.POST("/products/upload-images", middleware.UploadRateLimit(), productHandler.UploadProductImages)

			admin.GET("/notifications", notificationHandler.ListNotifications)
			admin.POST("/notifications/:id/read", notificationHandler.MarkRead)
			admin.POST("/notifications/read-all", notificationHandler.MarkAllRead)
		}
	}

	return r
}
