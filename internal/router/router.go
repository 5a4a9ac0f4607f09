// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sokomarket/soko-backend/internal/config"
	"github.com/sokomarket/soko-backend/internal/handlers"
	"github.com/sokomarket/soko-backend/internal/middleware"
	"github.com/sokomarket/soko-backend/internal/models"
	"github.com/sokomarket/soko-backend/internal/services"
	"github.com/sokomarket/soko-backend/internal/utils"
)

func Initialize(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// Initialize services
	storageService, _ := services.NewStorageService(cfg)
	authService := services.NewAuthService(db, cfg)
	userService := services.NewUserService(db)
	productService := services.NewProductService(db)
	affiliateService := services.NewAffiliateService(db, cfg)
	orderService := services.NewOrderService(db)
	reviewService := services.NewReviewService(db)
	campaignService := services.NewCampaignService(db)
	paymentService := services.NewPaymentService(db, cfg, orderService)
	adminService := services.NewAdminService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	productHandler := handlers.NewProductHandler(productService)
	affiliateHandler := handlers.NewAffiliateHandler(affiliateService)
	orderHandler := handlers.NewOrderHandler(orderService)
	reviewHandler := handlers.NewReviewHandler(reviewService)
	campaignHandler := handlers.NewCampaignHandler(campaignService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	uploadHandler := handlers.NewUploadHandler(storageService)
	adminHandler := handlers.NewAdminHandler(adminService)

	// Set JWT secrets
	utils.SetJWTSecrets(cfg.JWT.AccessSecret, cfg.JWT.RefreshSecret)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS())
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

	// Public affiliate redirect; kept outside /api so short links stay short
	r.GET("/r/:code", affiliateHandler.Redirect)

	// Locally stored uploads
	if cfg.Upload.ServeStatic {
		r.Static("/uploads", cfg.Upload.Dir)
	}

	// Stripe webhook; verified by signature, not by session
	r.POST("/api/payments/stripe/webhook", paymentHandler.HandleWebhook)

	api := r.Group("/api")
	{
		// Authentication routes
		auth := api.Group("/auth")
		auth.Use(middleware.AuthRateLimit())
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", middleware.AuthRequired(), authHandler.Logout)
			auth.POST("/refresh", authHandler.RefreshToken)
			auth.GET("/me", middleware.AuthRequired(), authHandler.GetProfile)
		}

		// User routes
		users := api.Group("/users")
		users.Use(middleware.AuthRequired())
		{
			users.GET("", middleware.RoleRequired(models.RoleAdmin), userHandler.ListUsers)
			users.GET("/:id", middleware.RoleOrOwner("id", models.RoleAdmin), userHandler.GetUser)
			users.PATCH("/:id", middleware.RoleOrOwner("id", models.RoleAdmin), userHandler.UpdateUser)
			users.DELETE("/:id", middleware.RoleRequired(models.RoleAdmin), userHandler.DeleteUser)
		}

		// Product routes; public reads still pick up a principal when
		// the caller sends a token
		products := api.Group("/products")
		products.Use(middleware.OptionalAuth())
		{
			products.GET("", productHandler.SearchProducts)
			products.GET("/:id", productHandler.GetProduct)
			products.GET("/:id/reviews", reviewHandler.ListReviews)
			products.POST("", middleware.AuthRequired(), middleware.RoleRequired(models.RoleVendor), productHandler.CreateProduct)
			products.PATCH("/:id/approve", middleware.AuthRequired(), middleware.RoleRequired(models.RoleAdmin), productHandler.ApproveProduct)
			products.DELETE("/:id", middleware.AuthRequired(), middleware.RoleRequired(models.RoleAdmin), productHandler.DeleteProduct)
		}

		// Affiliate routes
		affiliates := api.Group("/affiliates")
		affiliates.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleAffiliate))
		{
			affiliates.POST("/links", middleware.AffiliateRateLimit(), affiliateHandler.CreateLink)
			affiliates.GET("/links", affiliateHandler.ListLinks)
			affiliates.GET("/links/:id/clicks", affiliateHandler.GetLinkClicks)
		}

		// Order routes
		orders := api.Group("/orders")
		orders.Use(middleware.AuthRequired())
		{
			orders.POST("", middleware.OrderRateLimit(), orderHandler.CreateOrder)
			orders.GET("", orderHandler.ListOrders)
			orders.GET("/:id", orderHandler.GetOrder)
			orders.POST("/:id/paid", middleware.RoleRequired(models.RoleAdmin), orderHandler.MarkPaid)
		}

		// Review routes
		reviews := api.Group("/reviews")
		reviews.Use(middleware.AuthRequired())
		{
			reviews.POST("", middleware.ReviewRateLimit(), reviewHandler.CreateReview)
		}

		// Campaign routes
		campaigns := api.Group("/campaigns")
		campaigns.Use(middleware.AuthRequired())
		{
			campaigns.GET("", campaignHandler.ListCampaigns)
			campaigns.GET("/:id", campaignHandler.GetCampaign)
			campaigns.GET("/:id/engagements", campaignHandler.ListEngagements)
			campaigns.POST("", middleware.RoleRequired(models.RoleVendor), campaignHandler.CreateCampaign)
			campaigns.POST("/:id/apply", middleware.RoleOnly(models.RoleInfluencer, models.RoleAdmin), campaignHandler.Apply)
			campaigns.POST("/:id/engagements", middleware.RoleOnly(models.RoleInfluencer, models.RoleVendor, models.RoleAdmin), campaignHandler.TrackEngagement)
		}

		// Payment routes
		payments := api.Group("/payments")
		payments.Use(middleware.AuthRequired())
		{
			payments.POST("/intent", paymentHandler.CreatePaymentIntent)
			payments.POST("/confirm", paymentHandler.ConfirmPayment)
		}

		// Upload routes
		upload := api.Group("/upload")
		upload.Use(middleware.AuthRequired(), middleware.UploadRateLimit())
		{
			upload.POST("/image", uploadHandler.UploadImage)
		}

		// Admin routes
		admin := api.Group("/admin")
		admin.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleAdmin))
		{
			admin.GET("/dashboard", adminHandler.GetDashboard)
			admin.GET("/audit-logs", adminHandler.ListAuditLogs)
			admin.GET("/products/pending", adminHandler.ListPendingProducts)
			admin.DELETE("/products/:id", productHandler.DeleteProduct)
			admin.PATCH("/users/:id/verify", userHandler.VerifyUser)
		}
	}

	return r
}
