package handler

import (
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/credipyme/credipyme-backend/internal/middleware"
)

// RegisterRoutes sets up all API routes
func RegisterRoutes(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, rateLimiter *middleware.RateLimiter, profileHandler *ProfileHandler, companyHandler *CompanyHandler, customerHandler *CustomerHandler, studyHandler *StudyHandler, dashboardHandler *DashboardHandler, parameterHandler *ParameterHandler, subscriptionHandler *SubscriptionHandler, attachmentHandler *AttachmentHandler, wsHandler *WebSocketHandler) {
	// API version 1
	api := e.Group("/api/v1")

	// Company routes (protected)
	company := api.Group("/company")
	company.Use(authMiddleware.Authenticate(), middleware.RateLimitMiddleware(rateLimiter))
	company.GET("", companyHandler.GetCompany)

	// Profile routes (protected)
	profile := api.Group("/profile")
	profile.Use(authMiddleware.Authenticate(), middleware.RateLimitMiddleware(rateLimiter))
	profile.GET("", profileHandler.GetProfile)
	profile.PUT("", profileHandler.UpdateProfile)

	// Customer routes (protected)
	customers := api.Group("/customers")
	customers.Use(authMiddleware.Authenticate(), middleware.RateLimitMiddleware(rateLimiter))
	customers.POST("", customerHandler.CreateCustomer)
	customers.GET("", customerHandler.GetCustomers)
	customers.GET("/autocomplete", customerHandler.AutocompleteCustomers)
	customers.GET("/:id", customerHandler.GetCustomer)
	customers.PUT("/:id", customerHandler.UpdateCustomer)
	customers.DELETE("/:id", customerHandler.DeleteCustomer)
	customers.POST("/:id/attachments", attachmentHandler.UploadAttachment)

	// Attachment routes (protected)
	attachments := api.Group("/attachments")
	attachments.Use(authMiddleware.Authenticate(), middleware.RateLimitMiddleware(rateLimiter))
	attachments.GET("/url", attachmentHandler.GetAttachmentURL)
	attachments.DELETE("", attachmentHandler.DeleteAttachment)

	// Credit study routes (protected)
	studies := api.Group("/credit-studies")
	studies.Use(authMiddleware.Authenticate(), middleware.RateLimitMiddleware(rateLimiter))
	studies.POST("", studyHandler.CreateStudy)
	studies.GET("", studyHandler.GetStudies)
	studies.GET("/:id", studyHandler.GetStudy)
	studies.PUT("/:id", studyHandler.UpdateStudy)
	studies.DELETE("/:id", studyHandler.DeleteStudy)
	studies.POST("/:id/perform", studyHandler.PerformStudy)

	// Dashboard routes (protected)
	dashboard := api.Group("/dashboard")
	dashboard.Use(authMiddleware.Authenticate(), middleware.RateLimitMiddleware(rateLimiter))
	dashboard.GET("/basic", dashboardHandler.GetBasic)
	dashboard.GET("/advanced", dashboardHandler.GetAdvanced)

	// Parameter routes (protected)
	parameters := api.Group("/parameters")
	parameters.Use(authMiddleware.Authenticate(), middleware.RateLimitMiddleware(rateLimiter))
	parameters.GET("", parameterHandler.GetParameters)
	parameters.GET("/:id", parameterHandler.GetParameter)

	// Subscription routes (protected)
	subscriptions := api.Group("/subscriptions")
	subscriptions.Use(authMiddleware.Authenticate(), middleware.RateLimitMiddleware(rateLimiter))
	subscriptions.GET("/current", subscriptionHandler.GetCurrent)
	subscriptions.GET("/plans", subscriptionHandler.GetPlans)

	// WebSocket endpoint; authenticates via query token, not the Authorization header
	e.GET("/ws", wsHandler.HandleWS)

	// API documentation
	e.GET("/openapi.json", ServeOpenAPI3Spec)
	e.GET("/swagger/*", echoSwagger.WrapHandler)
}
