// Package admin provides the authentication-gated admin panel.
package admin

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/lichen2025/chatgate/internal/config"
	"github.com/lichen2025/chatgate/internal/store"
)

//go:embed templates/*.html
var templateFS embed.FS

// Handler serves the admin panel pages.
type Handler struct {
	store     store.Store
	config    *config.Config
	auth      *CookieAuth
	templates *template.Template
}

// NewHandler creates a new admin handler.
func NewHandler(st store.Store, cfg *config.Config) (*Handler, error) {
	auth, err := NewCookieAuth(24 * time.Hour)
	if err != nil {
		return nil, err
	}

	funcs := template.FuncMap{
		"epoch": func(ts float64) string {
			return time.Unix(int64(ts), 0).UTC().Format("2006-01-02 15:04:05")
		},
	}
	templates, err := template.New("admin").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse admin templates: %w", err)
	}

	return &Handler{
		store:     st,
		config:    cfg,
		auth:      auth,
		templates: templates,
	}, nil
}

// Renderer returns the echo renderer backed by the embedded templates.
func (h *Handler) Renderer() echo.Renderer {
	return &renderer{templates: h.templates}
}

type renderer struct {
	templates *template.Template
}

func (r *renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}

// RegisterRoutes registers admin routes with the echo server.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/admin")
	g.GET("/login", h.LoginForm)
	g.POST("/login", h.Login)

	authed := h.auth.Middleware(h.store.GetUserByUsername)
	g.GET("/dashboard", h.Dashboard, authed)
	g.GET("/chat_history", h.ChatHistory, authed)
	g.GET("/blogs", h.Blogs, authed)
	g.GET("/users", h.Users, authed)
}

// LoginForm renders the login page.
// GET /admin/login
func (h *Handler) LoginForm(c echo.Context) error {
	return c.Render(http.StatusOK, "login.html", nil)
}

// Login verifies the submitted credentials against the stored hash and
// issues the admin cookie.
// POST /admin/login
func (h *Handler) Login(c echo.Context) error {
	ctx := c.Request().Context()
	username := c.FormValue("username")
	password := c.FormValue("password")

	user, err := h.store.GetUserByUsername(ctx, username)
	if err != nil {
		log.Printf("ERROR: failed to load user %q: %v", username, err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load user")
	}
	if user == nil || !user.IsAdmin ||
		bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return c.Render(http.StatusUnauthorized, "login.html", map[string]interface{}{
			"Error": "Invalid credentials",
		})
	}

	c.SetCookie(&http.Cookie{
		Name:     cookieName,
		Value:    h.auth.Issue(user.Username, time.Now()),
		Path:     "/admin",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return c.Redirect(http.StatusFound, "/admin/dashboard")
}

// Dashboard renders the admin landing page.
// GET /admin/dashboard
func (h *Handler) Dashboard(c echo.Context) error {
	return c.Render(http.StatusOK, "dashboard.html", map[string]interface{}{
		"Username": principal(c).Username,
	})
}

// ChatHistory lists recent sessions with their message counts.
// GET /admin/chat_history
func (h *Handler) ChatHistory(c echo.Context) error {
	ctx := c.Request().Context()

	sessions, err := h.store.ListSessionSummaries(ctx, 100)
	if err != nil {
		log.Printf("ERROR: failed to list sessions: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list sessions")
	}

	return c.Render(http.StatusOK, "chat_history.html", map[string]interface{}{
		"Sessions": sessions,
	})
}

// Blogs lists blog posts, newest first.
// GET /admin/blogs
func (h *Handler) Blogs(c echo.Context) error {
	ctx := c.Request().Context()

	blogs, err := h.store.ListBlogs(ctx)
	if err != nil {
		log.Printf("ERROR: failed to list blogs: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list blogs")
	}

	return c.Render(http.StatusOK, "blogs.html", map[string]interface{}{
		"Blogs": blogs,
	})
}

// Users lists admin panel accounts.
// GET /admin/users
func (h *Handler) Users(c echo.Context) error {
	ctx := c.Request().Context()

	users, err := h.store.ListUsers(ctx)
	if err != nil {
		log.Printf("ERROR: failed to list users: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list users")
	}

	return c.Render(http.StatusOK, "users.html", map[string]interface{}{
		"Users": users,
	})
}
