package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestClientCompleteAccumulatesStream(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Fatalf("unexpected method: %s", r.Method)
		}
		var req chatCompletionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request failed: %v", err)
		}
		if !req.Stream {
			t.Fatalf("expected stream=true")
		}
		if len(req.Messages) != 2 || req.Messages[0].Role != "system" {
			t.Fatalf("unexpected messages: %+v", req.Messages)
		}

		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, "data: {\"id\":\"c1\",\"object\":\"chat.completion.chunk\",\"created\":1,\"model\":\"gpt\",\"choices\":[{\"index\":0,\"delta\":{\"role\":\"assistant\",\"content\":\"Hello\"}}]}\n\n")
		fmt.Fprint(w, "data: {\"id\":\"c1\",\"object\":\"chat.completion.chunk\",\"created\":1,\"model\":\"gpt\",\"choices\":[{\"index\":0,\"delta\":{\"content\":\", world\"},\"finish_reason\":\"stop\"}]}\n\n")
		fmt.Fprint(w, "data: [DONE]\n\n")
	}))
	defer server.Close()

	client := NewClient(server.URL, "", time.Second)
	reply, err := client.Complete(context.Background(), "gpt", []ChatMessage{
		{Role: "system", Content: "be nice"},
		{Role: "user", Content: "hello"},
	})
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if reply != "Hello, world" {
		t.Fatalf("unexpected reply: %q", reply)
	}
}

func TestClientCompleteSkipsMalformedChunks(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, "data: not-json\n\n")
		fmt.Fprint(w, ": comment line\n\n")
		fmt.Fprint(w, "data: {\"choices\":[{\"delta\":{\"content\":\"ok\"}}]}\n\n")
		fmt.Fprint(w, "data: [DONE]\n\n")
	}))
	defer server.Close()

	client := NewClient(server.URL, "", time.Second)
	reply, err := client.Complete(context.Background(), "gpt", []ChatMessage{{Role: "user", Content: "hi"}})
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if reply != "ok" {
		t.Fatalf("unexpected reply: %q", reply)
	}
}

func TestClientCompleteAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"error":{"message":"invalid api key","type":"invalid_request_error"}}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, "bad-key", time.Second)
	_, err := client.Complete(context.Background(), "gpt", []ChatMessage{{Role: "user", Content: "hi"}})
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "invalid api key") {
		t.Fatalf("expected upstream message passed through, got %v", err)
	}
}

func TestClientCompleteSendsAuthHeader(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, "data: [DONE]\n\n")
	}))
	defer server.Close()

	client := NewClient(server.URL, "sk-test", time.Second)
	if _, err := client.Complete(context.Background(), "gpt", []ChatMessage{{Role: "user", Content: "hi"}}); err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if gotAuth != "Bearer sk-test" {
		t.Fatalf("unexpected auth header: %q", gotAuth)
	}
}

func TestMockClientEchoesLastUserMessage(t *testing.T) {
	client := NewMockClient()
	reply, err := client.Complete(context.Background(), "gpt", []ChatMessage{
		{Role: "system", Content: "be nice"},
		{Role: "user", Content: "ping"},
	})
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if !strings.Contains(reply, "ping") {
		t.Fatalf("unexpected reply: %q", reply)
	}
}
