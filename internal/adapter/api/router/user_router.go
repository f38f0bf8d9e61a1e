package router

import (
	"github.com/labstack/echo/v4"

	"github.com/Mattyonemillion/henlo/internal/adapter/api/handler"
	"github.com/Mattyonemillion/henlo/internal/adapter/api/middleware"
)

func SetupUserRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	userHandler := handler.GetUserHandler()
	reviewHandler := handler.GetReviewHandler()

	me := e.Group("/v1/users/me")
	me.Use(authMiddleware.Authenticate)
	me.GET("", userHandler.GetMe)
	me.PATCH("", userHandler.UpdateProfile)
	me.PATCH("/notifications", userHandler.UpdateNotificationPrefs)
	me.PUT("/password", userHandler.UpdatePassword)

	e.GET("/v1/users/:id", userHandler.GetPublicProfile)
	e.GET("/v1/users/:id/reviews", reviewHandler.ListUserReviews)
}
