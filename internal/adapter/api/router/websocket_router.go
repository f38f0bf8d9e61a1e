package router

import (
	"github.com/labstack/echo/v4"

	"github.com/Mattyonemillion/henlo/internal/adapter/api/handler"
)

// SetupWebSocketRouter registers the realtime endpoint. Authentication is
// handled inside the handler because browsers cannot attach headers to
// WebSocket requests.
func SetupWebSocketRouter(e *echo.Echo, wsHandler *handler.WebSocketHandler) {
	e.GET("/ws", wsHandler.HandleWebSocket)
}
