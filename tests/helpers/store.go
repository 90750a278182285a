// Package helpers provides shared test fixtures.
package helpers

import (
	"testing"

	"github.com/lichen2025/chatgate/internal/store"
)

// NewTestSQLiteStore returns an in-memory store that is closed when the
// test finishes.
func NewTestSQLiteStore(t *testing.T) *store.SQLiteStore {
	t.Helper()
	s, err := store.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}
