// Package store defines the storage interface and the SQLite implementation.
package store

import (
	"context"

	"github.com/lichen2025/chatgate/internal/domain"
)

// Store defines the interface for data persistence. It is the only
// owner of persisted rows; other components never cache rows across
// requests.
type Store interface {
	// Session operations
	// CreateSession inserts the session row and its initial system
	// message in one transaction; both or neither become visible.
	CreateSession(ctx context.Context, session *domain.Session, systemPrompt string) error
	GetSession(ctx context.Context, sessionID string) (*domain.Session, error)
	// FindRecentSessionByIP returns a session created by ip strictly
	// after the `since` epoch timestamp, or nil.
	FindRecentSessionByIP(ctx context.Context, ip string, since float64) (*domain.Session, error)

	// Message operations
	CreateMessage(ctx context.Context, message *domain.Message) error
	// GetMessages returns all messages of a session ordered by
	// timestamp ascending.
	GetMessages(ctx context.Context, sessionID string) ([]domain.Message, error)
	// FinishTurn inserts the assistant reply and updates the session
	// counters (last_active, message_count+1) in one transaction.
	FinishTurn(ctx context.Context, reply *domain.Message, lastActive float64) error

	// User operations (admin surface)
	CreateUser(ctx context.Context, username, passwordHash string, isAdmin bool) (int64, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	// UpsertAdminUser creates the admin account or refreshes its
	// password hash if it already exists.
	UpsertAdminUser(ctx context.Context, username, passwordHash string) error

	// Blog operations (admin surface)
	CreateBlog(ctx context.Context, blog *domain.Blog) (int64, error)
	ListBlogs(ctx context.Context) ([]domain.Blog, error)

	// Admin listings
	ListSessionSummaries(ctx context.Context, limit int) ([]domain.SessionSummary, error)

	// Lifecycle
	Close() error
}
