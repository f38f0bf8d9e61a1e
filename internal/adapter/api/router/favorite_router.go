package router

import (
	"github.com/labstack/echo/v4"

	"github.com/Mattyonemillion/henlo/internal/adapter/api/handler"
	"github.com/Mattyonemillion/henlo/internal/adapter/api/middleware"
)

func SetupFavoriteRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	favoriteHandler := handler.GetFavoriteHandler()

	favorites := e.Group("/v1/favorites")
	favorites.Use(authMiddleware.Authenticate)
	favorites.GET("", favoriteHandler.ListFavorites)
	favorites.GET("/:listingId", favoriteHandler.IsFavorite)
	favorites.POST("/:listingId", favoriteHandler.AddFavorite)
	favorites.DELETE("/:listingId", favoriteHandler.RemoveFavorite)
}
