package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	ws "github.com/zizouhuweidi/trivia/internal/websocket"
)

// WebSocketHandler handles WebSocket connections
type WebSocketHandler struct {
	hub *ws.Hub
}

// NewWebSocketHandler creates a new WebSocket handler
func NewWebSocketHandler(hub *ws.Hub) *WebSocketHandler {
	return &WebSocketHandler{
		hub: hub,
	}
}

// Register registers the websocket route
func (h *WebSocketHandler) Register(e *echo.Echo) {
	e.GET("/ws", h.HandleWebSocket)
}

// HandleWebSocket subscribes a connection to question-bank events. The
// optional category query parameter narrows the stream to one category.
func (h *WebSocketHandler) HandleWebSocket(c echo.Context) error {
	category := 0
	if raw := c.QueryParam("category"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return echo.ErrBadRequest
		}
		category = n
	}

	return h.hub.Upgrade(c.Response(), c.Request(), category)
}
