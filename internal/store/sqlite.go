package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/lichen2025/chatgate/internal/domain"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite store.
func NewSQLiteStore(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// For in-memory SQLite, multiple connections create separate databases.
	// Keep a single connection to avoid schema/data disappearing across goroutines.
	if dsn == ":memory:" || strings.Contains(dsn, "mode=memory") {
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// migrate runs database migrations.
func (s *SQLiteStore) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS sessions (
			session_id TEXT PRIMARY KEY,
			ip TEXT NOT NULL,
			created_at REAL NOT NULL,
			last_active REAL NOT NULL,
			message_count INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_ip ON sessions(ip, created_at)`,
		`CREATE TABLE IF NOT EXISTS messages (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL,
			role TEXT NOT NULL,
			content TEXT NOT NULL,
			timestamp REAL NOT NULL,
			FOREIGN KEY (session_id) REFERENCES sessions(session_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_messages_session ON messages(session_id, timestamp)`,
		`CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			username TEXT UNIQUE NOT NULL,
			password_hash TEXT NOT NULL,
			is_admin BOOLEAN NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS blogs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL,
			content TEXT NOT NULL,
			author_id INTEGER,
			created_at REAL NOT NULL,
			updated_at REAL NOT NULL
		)`,
	}

	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\n%s", err, m)
		}
	}

	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// CreateSession inserts a session row together with its initial system
// message. Both writes share one transaction so partial state is never
// observable.
func (s *SQLiteStore) CreateSession(ctx context.Context, session *domain.Session, systemPrompt string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO sessions (session_id, ip, created_at, last_active, message_count) VALUES (?, ?, ?, ?, ?)`,
		session.SessionID, session.IP, session.CreatedAt, session.LastActive, session.MessageCount); err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO messages (session_id, role, content, timestamp) VALUES (?, ?, ?, ?)`,
		session.SessionID, domain.RoleSystem, systemPrompt, session.CreatedAt); err != nil {
		return fmt.Errorf("failed to insert system message: %w", err)
	}

	return tx.Commit()
}

// GetSession retrieves a session by ID. Returns nil when not found.
func (s *SQLiteStore) GetSession(ctx context.Context, sessionID string) (*domain.Session, error) {
	var session domain.Session
	err := s.db.QueryRowContext(ctx,
		`SELECT session_id, ip, created_at, last_active, message_count FROM sessions WHERE session_id = ?`,
		sessionID).Scan(&session.SessionID, &session.IP, &session.CreatedAt, &session.LastActive, &session.MessageCount)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// FindRecentSessionByIP returns a session created by ip after the given
// epoch timestamp, or nil when none exists.
func (s *SQLiteStore) FindRecentSessionByIP(ctx context.Context, ip string, since float64) (*domain.Session, error) {
	var session domain.Session
	err := s.db.QueryRowContext(ctx,
		`SELECT session_id, ip, created_at, last_active, message_count FROM sessions WHERE ip = ? AND created_at > ? LIMIT 1`,
		ip, since).Scan(&session.SessionID, &session.IP, &session.CreatedAt, &session.LastActive, &session.MessageCount)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// CreateMessage creates a new message.
func (s *SQLiteStore) CreateMessage(ctx context.Context, message *domain.Message) error {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO messages (session_id, role, content, timestamp) VALUES (?, ?, ?, ?)`,
		message.SessionID, message.Role, message.Content, message.Timestamp)
	if err != nil {
		return err
	}
	if id, err := res.LastInsertId(); err == nil {
		message.ID = id
	}
	return nil
}

// GetMessages retrieves all messages for a session in conversation order.
func (s *SQLiteStore) GetMessages(ctx context.Context, sessionID string) ([]domain.Message, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, session_id, role, content, timestamp FROM messages WHERE session_id = ? ORDER BY timestamp ASC, id ASC`,
		sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []domain.Message
	for rows.Next() {
		var msg domain.Message
		if err := rows.Scan(&msg.ID, &msg.SessionID, &msg.Role, &msg.Content, &msg.Timestamp); err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}

// FinishTurn persists the assistant reply and bumps the session
// counters in one transaction.
func (s *SQLiteStore) FinishTurn(ctx context.Context, reply *domain.Message, lastActive float64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO messages (session_id, role, content, timestamp) VALUES (?, ?, ?, ?)`,
		reply.SessionID, reply.Role, reply.Content, reply.Timestamp)
	if err != nil {
		return fmt.Errorf("failed to insert reply: %w", err)
	}
	if id, err := res.LastInsertId(); err == nil {
		reply.ID = id
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE sessions SET last_active = ?, message_count = message_count + 1 WHERE session_id = ?`,
		lastActive, reply.SessionID); err != nil {
		return fmt.Errorf("failed to update session counters: %w", err)
	}

	return tx.Commit()
}

// CreateUser creates a new user and returns its id.
func (s *SQLiteStore) CreateUser(ctx context.Context, username, passwordHash string, isAdmin bool) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO users (username, password_hash, is_admin) VALUES (?, ?, ?)`,
		username, passwordHash, isAdmin)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// GetUserByUsername retrieves a user by username. Returns nil when not found.
func (s *SQLiteStore) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	var user domain.User
	err := s.db.QueryRowContext(ctx,
		`SELECT id, username, password_hash, is_admin FROM users WHERE username = ?`,
		username).Scan(&user.ID, &user.Username, &user.PasswordHash, &user.IsAdmin)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ListUsers lists all users.
func (s *SQLiteStore) ListUsers(ctx context.Context) ([]domain.User, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, username, password_hash, is_admin FROM users ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var user domain.User
		if err := rows.Scan(&user.ID, &user.Username, &user.PasswordHash, &user.IsAdmin); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

// UpsertAdminUser creates or refreshes the admin account.
func (s *SQLiteStore) UpsertAdminUser(ctx context.Context, username, passwordHash string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (username, password_hash, is_admin) VALUES (?, ?, 1)
		 ON CONFLICT(username) DO UPDATE SET password_hash = excluded.password_hash, is_admin = 1`,
		username, passwordHash)
	return err
}

// CreateBlog creates a new blog post and returns its id.
func (s *SQLiteStore) CreateBlog(ctx context.Context, blog *domain.Blog) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO blogs (title, content, author_id, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		blog.Title, blog.Content, blog.AuthorID, blog.CreatedAt, blog.UpdatedAt)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err == nil {
		blog.ID = id
	}
	return id, err
}

// ListBlogs lists blog posts, newest first.
func (s *SQLiteStore) ListBlogs(ctx context.Context) ([]domain.Blog, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, content, author_id, created_at, updated_at FROM blogs ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var blogs []domain.Blog
	for rows.Next() {
		var blog domain.Blog
		var authorID sql.NullInt64
		if err := rows.Scan(&blog.ID, &blog.Title, &blog.Content, &authorID, &blog.CreatedAt, &blog.UpdatedAt); err != nil {
			return nil, err
		}
		if authorID.Valid {
			blog.AuthorID = authorID.Int64
		}
		blogs = append(blogs, blog)
	}
	return blogs, rows.Err()
}

// ListSessionSummaries returns sessions joined with their message
// counts, newest first.
func (s *SQLiteStore) ListSessionSummaries(ctx context.Context, limit int) ([]domain.SessionSummary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT s.session_id, s.ip, s.created_at, COUNT(m.id) AS message_count
		 FROM sessions s LEFT JOIN messages m ON s.session_id = m.session_id
		 GROUP BY s.session_id ORDER BY s.created_at DESC LIMIT ?`,
		limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []domain.SessionSummary
	for rows.Next() {
		var sum domain.SessionSummary
		if err := rows.Scan(&sum.SessionID, &sum.IP, &sum.CreatedAt, &sum.MessageCount); err != nil {
			return nil, err
		}
		summaries = append(summaries, sum)
	}
	return summaries, rows.Err()
}
