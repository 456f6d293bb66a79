package http

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/MeghanathMC/Murf-30-Days-AI-Voice-Agent/internal/transport/ws"
)

// NewServer creates and configures the HTTP server: REST endpoints, the
// streaming transcription websocket, and the static web client.
func NewServer(h *Handler, wsServer *ws.Server) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	// Register routes
	h.RegisterRoutes(e)
	e.GET("/ws/transcribe", wsServer.HandleTranscribe)

	// Static web client
	e.File("/", "static/index.html")
	e.Static("/static", "static")

	return e
}
