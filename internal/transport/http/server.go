// Package http provides the HTTP server implementation for chatgate.
package http

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/lichen2025/chatgate/internal/config"
	"github.com/lichen2025/chatgate/internal/service"
	"github.com/lichen2025/chatgate/internal/store"
	"github.com/lichen2025/chatgate/internal/transport/http/admin"
	"github.com/lichen2025/chatgate/internal/transport/http/api"
	"github.com/lichen2025/chatgate/internal/transport/http/debug"
)

// NewServer creates and configures the chatgate HTTP server: the chat
// API, the admin panel and the debug console share one echo instance.
func NewServer(svc *service.Service, st store.Store, cfg *config.Config) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	// Handlers
	apiHandler := api.NewHandler(svc)
	adminHandler, err := admin.NewHandler(st, cfg)
	if err != nil {
		return nil, err
	}
	debugHandler := debug.NewHandler()

	e.Renderer = adminHandler.Renderer()

	// Register Routes
	apiHandler.RegisterRoutes(e)
	adminHandler.RegisterRoutes(e)
	debugHandler.RegisterRoutes(e)

	return e, nil
}
