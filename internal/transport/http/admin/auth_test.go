package admin

import (
	"testing"
	"time"
)

func TestCookieAuthRoundTrip(t *testing.T) {
	auth, err := NewCookieAuth(time.Hour)
	if err != nil {
		t.Fatalf("NewCookieAuth failed: %v", err)
	}

	now := time.Now()
	token := auth.Issue("admin", now)

	username, ok := auth.Verify(token, now)
	if !ok || username != "admin" {
		t.Fatalf("expected valid token for admin, got %q %v", username, ok)
	}
}

func TestCookieAuthRejectsTampering(t *testing.T) {
	auth, err := NewCookieAuth(time.Hour)
	if err != nil {
		t.Fatalf("NewCookieAuth failed: %v", err)
	}

	now := time.Now()
	token := auth.Issue("admin", now)

	if _, ok := auth.Verify(token+"x", now); ok {
		t.Fatalf("tampered signature accepted")
	}
	if _, ok := auth.Verify("garbage", now); ok {
		t.Fatalf("garbage token accepted")
	}

	// A token signed by one process must not verify under another secret.
	other, err := NewCookieAuth(time.Hour)
	if err != nil {
		t.Fatalf("NewCookieAuth failed: %v", err)
	}
	if _, ok := other.Verify(token, now); ok {
		t.Fatalf("cross-secret token accepted")
	}
}

func TestCookieAuthExpiry(t *testing.T) {
	auth, err := NewCookieAuth(time.Minute)
	if err != nil {
		t.Fatalf("NewCookieAuth failed: %v", err)
	}

	now := time.Now()
	token := auth.Issue("admin", now)

	if _, ok := auth.Verify(token, now.Add(2*time.Minute)); ok {
		t.Fatalf("expired token accepted")
	}
}
