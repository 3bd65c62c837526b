// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/damaiputra/living-backend/internal/config"
	"github.com/damaiputra/living-backend/internal/handlers"
	"github.com/damaiputra/living-backend/internal/middleware"
	"github.com/damaiputra/living-backend/internal/services"
	"github.com/damaiputra/living-backend/internal/utils"
)

func Initialize(db *gorm.DB, cfg *config.Config, cache *services.CacheService, rewardService *services.RewardService) *gin.Engine {
	// Initialize services
	notificationService := services.NewNotificationService(db, cfg)
	storageService, _ := services.NewStorageService(cfg)

	authService := services.NewAuthService(db, cfg)
	unitService := services.NewUnitService(db, notificationService)
	permitService := services.NewPermitService(db, cache, notificationService)
	paymentService := services.NewPaymentService(db, cfg)
	catalogService := services.NewCatalogService(db)
	adminService := services.NewAdminService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	unitHandler := handlers.NewUnitHandler(unitService)
	permitHandler := handlers.NewPermitHandler(permitService, storageService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	rewardHandler := handlers.NewRewardHandler(rewardService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	adminHandler := handlers.NewAdminHandler(adminService)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	// Initialize Gin router
	r := gin.New()

	limiters := middleware.NewRateLimiters(cfg.RateLimit)

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS())
	r.Use(middleware.I18nMiddleware())
	r.Use(limiters.General())
	r.Use(middleware.AuditLogMiddleware(db))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// Locally stored uploads are served directly when S3 is not configured.
	if cfg.AWS.AccessKeyID == "" {
		r.Static("/uploads", cfg.Upload.LocalDir)
	}

	// API v1 routes
	v1 := r.Group("/v1")
	{
		// Authentication routes
		auth := v1.Group("/auth")
		auth.Use(limiters.Auth())
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.RefreshToken)
			auth.POST("/logout", middleware.AuthRequired(), authHandler.Logout)
			auth.GET("/profile", middleware.AuthRequired(), authHandler.GetProfile)
			auth.PUT("/profile", middleware.AuthRequired(), authHandler.UpdateProfile)
			auth.PUT("/password", middleware.AuthRequired(), authHandler.ChangePassword)
		}

		// Unit registration and listing
		units := v1.Group("/units")
		units.Use(middleware.AuthRequired())
		{
			units.POST("", unitHandler.Register)
			units.GET("", unitHandler.List)
			units.GET("/:id", unitHandler.Get)
		}

		// Permit tickets
		permitTypes := v1.Group("/permits/types")
		{
			permitTypes.GET("", permitHandler.ListTypes)
			permitTypes.GET("/:code", permitHandler.GetType)
		}

		permits := v1.Group("/permits")
		permits.Use(middleware.AuthRequired())
		{
			permits.POST("/validate", permitHandler.ValidateStep)
			permits.POST("", permitHandler.Submit)
			permits.GET("", permitHandler.List)
			permits.GET("/:id", permitHandler.Get)
			permits.GET("/:id/timeline", permitHandler.Timeline)
			permits.POST("/:id/documents", limiters.Upload(), permitHandler.UploadDocument)
			permits.DELETE("/:id/documents/:key", permitHandler.RemoveDocument)
		}

		// Deposit payments
		payments := v1.Group("/payments")
		payments.Use(middleware.AuthRequired())
		{
			payments.POST("/deposit-intent", paymentHandler.CreateDepositIntent)
			payments.POST("/deposit-confirm", paymentHandler.ConfirmDeposit)
		}

		// Rewards
		rewards := v1.Group("/rewards")
		rewards.Use(middleware.AuthRequired())
		{
			rewards.GET("", rewardHandler.List)
			rewards.GET("/claims", rewardHandler.ListClaims)
			rewards.GET("/:id", rewardHandler.Get)
			rewards.POST("/:id/claim", rewardHandler.Claim)
			rewards.POST("/claims/:id/cancel", rewardHandler.CancelClaim)
		}

		// Notifications
		notifications := v1.Group("/notifications")
		notifications.Use(middleware.AuthRequired())
		{
			notifications.GET("", notificationHandler.List)
			notifications.GET("/unread-count", notificationHandler.UnreadCount)
			notifications.POST("/read-all", notificationHandler.MarkAllRead)
			notifications.POST("/:id/read", notificationHandler.MarkRead)
		}

		// Public township content
		properties := v1.Group("/properties")
		properties.Use(middleware.OptionalAuth())
		{
			properties.GET("", catalogHandler.ListProperties)
			properties.GET("/:id", catalogHandler.GetProperty)
		}

		events := v1.Group("/events")
		events.Use(middleware.OptionalAuth())
		{
			events.GET("", catalogHandler.ListEvents)
			events.GET("/:id", catalogHandler.GetEvent)
		}

		v1.GET("/destinations", middleware.OptionalAuth(), catalogHandler.ListDestinations)

		// Admin routes
		admin := v1.Group("/admin")
		admin.Use(middleware.AuthRequired(), middleware.AdminRequired())
		{
			admin.GET("/dashboard", adminHandler.Dashboard)

			admin.GET("/users", adminHandler.ListUsers)
			admin.PUT("/users/:id/status", adminHandler.SetUserStatus)
			admin.POST("/users/:id/points", adminHandler.AdjustPoints)

			admin.GET("/units/pending", unitHandler.ListPending)
			admin.POST("/units/:id/approve", unitHandler.Approve)
			admin.POST("/units/:id/reject", unitHandler.Reject)

			admin.GET("/permits", permitHandler.AdminList)
			admin.POST("/permits/:id/advance", permitHandler.Advance)
			admin.POST("/permits/:id/reject", permitHandler.Reject)
			admin.POST("/permits/:id/reset", permitHandler.Reset)

			admin.POST("/rewards/redeem", rewardHandler.RedeemClaim)

			admin.GET("/audit-logs", adminHandler.ListAuditLogs)
		}
	}

	return r
}
