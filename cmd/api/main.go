package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/credipyme/credipyme-backend/internal/config"
	"github.com/credipyme/credipyme-backend/internal/handler"
	"github.com/credipyme/credipyme-backend/internal/middleware"
	"github.com/credipyme/credipyme-backend/internal/repository/postgres"
	"github.com/credipyme/credipyme-backend/internal/repository/storage"
	"github.com/credipyme/credipyme-backend/internal/service"
	"github.com/credipyme/credipyme-backend/internal/websocket"
)

func main() {
	// Initialize zerolog
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("ENV") != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Connect to database
	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer pool.Close()

	// Verify database connection
	if err := pool.Ping(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to ping database")
	}
	log.Info().Msg("Connected to database")

	// Initialize repositories
	userCompanyRepo := postgres.NewUserCompanyRepository(pool)
	companyRepo := postgres.NewCompanyRepository(pool)
	profileRepo := postgres.NewProfileRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	studyRepo := postgres.NewStudyRepository(pool)
	parameterRepo := postgres.NewParameterRepository(pool)
	subscriptionRepo := postgres.NewSubscriptionRepository(pool)
	dashboardRepo := postgres.NewDashboardRepository(pool)

	// WebSocket hub pushes study lifecycle events to connected dashboards
	hub := websocket.NewHub()

	// Initialize services
	profileService := service.NewProfileService(profileRepo)
	companyService := service.NewCompanyService(companyRepo)
	customerService := service.NewCustomerService(customerRepo)
	studyService := service.NewStudyService(studyRepo, customerRepo, parameterRepo, hub)
	parameterService := service.NewParameterService(parameterRepo)
	subscriptionService := service.NewSubscriptionService(subscriptionRepo, companyRepo)
	dashboardService := service.NewDashboardService(dashboardRepo, userCompanyRepo, parameterRepo, profileRepo, subscriptionRepo)

	// Attachment storage is optional; without a bucket the endpoints answer 503
	var attachmentService *service.AttachmentService
	if cfg.S3.Enabled() {
		attachmentRepo, err := storage.NewS3AttachmentRepository(context.Background(), cfg.S3)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize attachment storage")
		}
		attachmentService = service.NewAttachmentService(attachmentRepo)
		log.Info().Str("bucket", cfg.S3.Bucket).Msg("Attachment storage enabled")
	} else {
		log.Info().Msg("Attachment storage disabled (no S3_BUCKET configured)")
	}

	// Initialize auth middleware
	authMiddleware, err := middleware.NewAuthMiddleware(cfg.Auth0Domain, cfg.Auth0Audience, userCompanyRepo)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create auth middleware")
	}

	// Per-user rate limiter shared across the API groups
	rateLimiter := middleware.NewRateLimiter()
	defer rateLimiter.Stop()

	// WebSocket auth: same Auth0 validation, token carried in the query string
	wsValidator, err := websocket.NewAuth0JWTValidator(cfg.Auth0Domain, cfg.Auth0Audience, userCompanyRepo)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create websocket JWT validator")
	}

	// Initialize handlers
	profileHandler := handler.NewProfileHandler(profileService)
	companyHandler := handler.NewCompanyHandler(companyService)
	customerHandler := handler.NewCustomerHandler(customerService)
	studyHandler := handler.NewStudyHandler(studyService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)
	parameterHandler := handler.NewParameterHandler(parameterService)
	subscriptionHandler := handler.NewSubscriptionHandler(subscriptionService)
	attachmentHandler := handler.NewAttachmentHandler(attachmentService)
	wsHandler := handler.NewWebSocketHandler(hub, wsValidator, cfg.CORSOrigins)

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Request ID middleware
	e.Use(echomiddleware.RequestID())

	// CORS middleware
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Security headers middleware (helmet-like)
	e.Use(echomiddleware.SecureWithConfig(echomiddleware.SecureConfig{
		XSSProtection:         "1; mode=block",
		ContentTypeNosniff:    "nosniff",
		XFrameOptions:         "DENY",
		HSTSMaxAge:            31536000,
		ContentSecurityPolicy: "default-src 'self'",
		ReferrerPolicy:        "strict-origin-when-cross-origin",
	}))

	// Request logging middleware with zerolog
	e.Use(zerologMiddleware())

	// Recovery middleware
	e.Use(echomiddleware.Recover())

	// Health check endpoint
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// Register API routes
	handler.RegisterRoutes(e, authMiddleware, rateLimiter, profileHandler, companyHandler, customerHandler, studyHandler, dashboardHandler, parameterHandler, subscriptionHandler, attachmentHandler, wsHandler)

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

// zerologMiddleware returns a middleware that logs requests using zerolog
func zerologMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()

			log.Info().
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Int("status", res.Status).
				Dur("latency", time.Since(start)).
				Str("request_id", res.Header().Get(echo.HeaderXRequestID)).
				Msg("request")

			return nil
		}
	}
}
