package admin

import (
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/lichen2025/chatgate/internal/domain"
)

// cookieName is the admin session cookie.
const cookieName = "chatgate_admin"

// UserLookup resolves a username to its user row. The auth middleware
// takes it as a parameter instead of reaching into a login-manager
// singleton.
type UserLookup func(ctx context.Context, username string) (*domain.User, error)

// CookieAuth issues and verifies HMAC-signed admin cookies. The secret
// is generated per process, so admin logins do not survive a restart.
type CookieAuth struct {
	secret []byte
	ttl    time.Duration
}

// NewCookieAuth creates a cookie authenticator with a random secret.
func NewCookieAuth(ttl time.Duration) (*CookieAuth, error) {
	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		return nil, fmt.Errorf("failed to generate cookie secret: %w", err)
	}
	return &CookieAuth{secret: secret, ttl: ttl}, nil
}

// Issue returns a signed token for the given username.
func (a *CookieAuth) Issue(username string, now time.Time) string {
	name := base64.RawURLEncoding.EncodeToString([]byte(username))
	exp := strconv.FormatInt(now.Add(a.ttl).Unix(), 10)
	return name + "." + exp + "." + a.sign(name+"."+exp)
}

// Verify checks the token signature and expiry and returns the username.
func (a *CookieAuth) Verify(token string, now time.Time) (string, bool) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return "", false
	}
	if !hmac.Equal([]byte(a.sign(parts[0]+"."+parts[1])), []byte(parts[2])) {
		return "", false
	}
	exp, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil || now.Unix() > exp {
		return "", false
	}
	name, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return "", false
	}
	return string(name), true
}

func (a *CookieAuth) sign(payload string) string {
	mac := hmac.New(sha256.New, a.secret)
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}

// Middleware gates admin pages. It verifies the signed cookie, resolves
// the principal through lookup and stores it in the request context;
// anything short of a valid admin redirects to the login form.
func (a *CookieAuth) Middleware(lookup UserLookup) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(cookieName)
			if err != nil {
				return c.Redirect(http.StatusFound, "/admin/login")
			}

			username, ok := a.Verify(cookie.Value, time.Now())
			if !ok {
				return c.Redirect(http.StatusFound, "/admin/login")
			}

			user, err := lookup(c.Request().Context(), username)
			if err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, "failed to load user")
			}
			if user == nil || !user.IsAdmin {
				return c.Redirect(http.StatusFound, "/admin/login")
			}

			c.Set("principal", user)
			return next(c)
		}
	}
}

// principal returns the authenticated user set by the middleware.
func principal(c echo.Context) *domain.User {
	user, _ := c.Get("principal").(*domain.User)
	return user
}
