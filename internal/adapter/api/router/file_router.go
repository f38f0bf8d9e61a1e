package router

import (
	"github.com/labstack/echo/v4"

	"github.com/Mattyonemillion/henlo/internal/adapter/api/handler"
	"github.com/Mattyonemillion/henlo/internal/adapter/api/middleware"
)

func SetupFileRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	fileHandler := handler.GetFileHandler()

	e.POST("/api/upload", fileHandler.UploadImage, authMiddleware.Authenticate)
}
