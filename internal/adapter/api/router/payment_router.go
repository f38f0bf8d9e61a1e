package router

import (
	"github.com/labstack/echo/v4"

	"github.com/Mattyonemillion/henlo/internal/adapter/api/handler"
	"github.com/Mattyonemillion/henlo/internal/adapter/api/middleware"
)

func SetupPaymentRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	paymentHandler := handler.GetPaymentHandler()

	// Checkout and the provider webhook keep their fixed /api paths, which
	// the payment provider configuration points at.
	e.POST("/api/checkout", paymentHandler.Checkout, authMiddleware.Authenticate)
	e.POST("/api/webhooks/mollie", paymentHandler.MollieWebhook)

	payments := e.Group("/v1/payments")
	payments.Use(authMiddleware.Authenticate)
	payments.GET("", paymentHandler.ListMyPayments)
	payments.GET("/:id", paymentHandler.GetPayment)
}
