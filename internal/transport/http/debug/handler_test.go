package debug

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestConsole(t *testing.T) {
	e := echo.New()
	NewHandler().RegisterRoutes(e)

	req := httptest.NewRequest(http.MethodGet, "/debug", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestHistory(t *testing.T) {
	e := echo.New()
	NewHandler().RegisterRoutes(e)

	req := httptest.NewRequest(http.MethodGet, "/debug/history", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		History []map[string]interface{} `json:"history"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.History) != 2 {
		t.Fatalf("expected 2 sample records, got %d", len(resp.History))
	}
}
