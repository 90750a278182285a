// Package api provides HTTP handlers for the chat API.
package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lichen2025/chatgate/internal/domain"
	"github.com/lichen2025/chatgate/internal/service"
)

// Handler handles chat API requests.
type Handler struct {
	svc *service.Service
}

// NewHandler creates a new chat API handler.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes registers routes with the echo server.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.POST("/api/create_session", h.CreateSession)
	e.POST("/api/chat", h.Chat)
	e.GET("/health", h.Health)
}

// Health returns health status.
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "healthy",
		"version": "0.1.0",
	})
}

// CreateSession creates a new chat session for the caller's IP.
// POST /api/create_session
func (h *Handler) CreateSession(c echo.Context) error {
	ctx := c.Request().Context()

	sessionID, err := h.svc.CreateSession(ctx, c.RealIP())
	if err != nil {
		if errors.Is(err, service.ErrRateLimited) {
			return c.JSON(http.StatusTooManyRequests, map[string]string{"error": "IP cooling down"})
		}
		log.Printf("ERROR: failed to create session: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to create session"})
	}

	return c.JSON(http.StatusOK, domain.CreateSessionResponse{SessionID: sessionID})
}

// Chat runs one chat turn against an existing session.
// POST /api/chat
func (h *Handler) Chat(c echo.Context) error {
	ctx := c.Request().Context()

	var req domain.ChatRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid parameters"})
	}
	if req.SessionID == "" || req.Message == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid parameters"})
	}

	reply, err := h.svc.Chat(ctx, req.SessionID, req.Message)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSessionNotFound):
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Invalid session ID"})
		case errors.Is(err, service.ErrSessionExpired):
			return c.JSON(http.StatusForbidden, map[string]string{"error": "Session expired"})
		default:
			// Upstream and internal failures alike surface their message,
			// matching the original behavior.
			log.Printf("ERROR: chat turn failed: %v", err)
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
		}
	}

	return c.JSON(http.StatusOK, domain.ChatResponse{Response: reply})
}
