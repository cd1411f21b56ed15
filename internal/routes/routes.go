package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"clinic-opd-server/internal/config"
	"clinic-opd-server/internal/handlers"
	"clinic-opd-server/internal/mail"
	"clinic-opd-server/internal/middleware"
	"clinic-opd-server/internal/store"
)

// SetupRoutes configures the application routes.
func SetupRoutes(router *gin.Engine, db *gorm.DB, cfg *config.Config) {
	// Initialize stores and handlers
	userStore := store.NewGormUserStore(db)
	otpStore := store.NewGormOtpStore(db)
	opdStore := store.NewGormOpdStore(db)
	mailer := mail.NewSMTPMailer(cfg.Mailer)

	authHandler := handlers.NewAuthHandler(userStore, otpStore, mailer, cfg)
	opdHandler := handlers.NewOpdHandler(opdStore)

	// Public routes (no authentication required)
	public := router.Group("/api/v1")
	{
		authRoutes := public.Group("/auth")
		{
			authRoutes.POST("/signup", authHandler.Signup)
			authRoutes.POST("/signin", authHandler.Signin)
			authRoutes.POST("/send-otp", authHandler.SendOtp)
			authRoutes.POST("/verify-otp", authHandler.VerifyOtp)
		}
	}

	// Authenticated routes
	private := router.Group("/api/v1")
	private.Use(middleware.AuthMiddleware(cfg)) // Apply JWT authentication middleware
	{
		private.POST("/auth/reset-password", authHandler.ResetPassword)

		// OPD record routes
		opdRoutes := private.Group("/opd")
		{
			opdRoutes.POST("", opdHandler.CreateOpdRecord)
			opdRoutes.GET("", opdHandler.ListOpdRecords)
			opdRoutes.GET("/:id", opdHandler.GetOpdRecordByID)
			opdRoutes.PUT("/:id", opdHandler.UpdateOpdRecord)
			opdRoutes.DELETE("/:id", opdHandler.DeleteOpdRecord)
		}
	}

	// Simple health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP"})
	})
}
