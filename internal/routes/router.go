package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"vehicle-shipping-backend/internal/config"
	"vehicle-shipping-backend/internal/delivery/http/handler"
	domainTracking "vehicle-shipping-backend/internal/domain/tracking"
	"vehicle-shipping-backend/internal/infrastructure/carrier"
	"vehicle-shipping-backend/internal/infrastructure/database/postgres"
	"vehicle-shipping-backend/internal/logger"
	"vehicle-shipping-backend/internal/middleware"
	"vehicle-shipping-backend/internal/usecase/container"
	"vehicle-shipping-backend/internal/usecase/invoice"
	"vehicle-shipping-backend/internal/usecase/shipment"
	"vehicle-shipping-backend/internal/usecase/tracking"
	"vehicle-shipping-backend/internal/usecase/user"
)

// Services bundles the wired use case layer so the worker orchestrator can
// share the exact instances the HTTP layer uses.
type Services struct {
	User     *user.Service
	Shipment *shipment.Service
	Invoice  *invoice.Service
	Tracking *tracking.Service

	CarrierSource domainTracking.Source
}

func SetupRoutes(cfg *config.Config, db *postgres.DB, log *zap.Logger) (*gin.Engine, *Services) {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware in order: recovery, request ID, logging, security headers,
	// CORS, request size limit, general rate limit
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.CORSMiddleware(&cfg.CORS))
	router.Use(middleware.RequestSizeLimitMiddleware(10 << 20))
	router.Use(middleware.RateLimitMiddleware(cfg.RateLimit.GeneralRPS, cfg.RateLimit.GeneralBurst))

	router.GET("/health", func(c *gin.Context) {
		if err := db.Health(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "unhealthy",
				"message": "Database connection failed",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "Service is running",
		})
	})

	userRepository := postgres.NewUserRepository(db)
	refreshTokenRepo := postgres.NewRefreshTokenRepository(db)
	resetTokenRepo := postgres.NewPasswordResetTokenRepository(db)
	userService := user.NewService(userRepository, refreshTokenRepo, resetTokenRepo, cfg)
	userHandler := handler.NewUserHandler(userService)

	shipmentRepository := postgres.NewShipmentRepository(db)
	shipmentService := shipment.NewService(shipmentRepository, userRepository)
	shipmentHandler := handler.NewShipmentHandler(shipmentService)

	containerRepository := postgres.NewContainerRepository(db)
	containerService := container.NewService(containerRepository, shipmentRepository)
	containerHandler := handler.NewContainerHandler(containerService)

	invoiceRepository := postgres.NewInvoiceRepository(db)
	invoiceService := invoice.NewService(invoiceRepository, containerRepository)
	invoiceHandler := handler.NewInvoiceHandler(invoiceService)

	carrierClient := carrier.NewClient(&cfg.Carrier, log)
	trackingService := tracking.NewService(carrierClient)
	trackingHandler := handler.NewTrackingHandler(trackingService)

	uploadHandler := handler.NewUploadHandler(&cfg.Upload)

	v1 := router.Group("/api/v1")
	{
		userHandler.RegisterRoutes(v1)
		trackingHandler.RegisterRoutes(v1)

		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(cfg))
		{
			userHandler.RegisterProfileRoutes(protected)
			shipmentHandler.RegisterRoutes(protected)

			admin := protected.Group("/admin")
			admin.Use(middleware.AdminOnly())
			{
				userHandler.RegisterAdminRoutes(admin)
				shipmentHandler.RegisterAdminRoutes(admin)
				containerHandler.RegisterAdminRoutes(admin)
				invoiceHandler.RegisterAdminRoutes(admin)
				uploadHandler.RegisterAdminRoutes(admin)
			}
		}
	}

	logger.Info("All routes initialized")

	return router, &Services{
		User:          userService,
		Shipment:      shipmentService,
		Invoice:       invoiceService,
		Tracking:      trackingService,
		CarrierSource: carrierClient,
	}
}
