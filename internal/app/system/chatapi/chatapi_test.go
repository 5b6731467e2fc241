package chatapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
)

func TestComplete(t *testing.T) {
	var gotAuth string
	var gotReq completionRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("path = %q", r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		resp := completionResponse{}
		resp.Choices = []struct {
			Message message `json:"message"`
		}{{Message: message{Role: "assistant", Content: "Our next event is Saturday."}}}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	c := New(srv.URL, "test-key", "gpt-4o-mini", zap.NewNop())
	reply, err := c.Complete(context.Background(), "When is the next event?")
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if reply != "Our next event is Saturday." {
		t.Errorf("reply = %q", reply)
	}
	if gotAuth != "Bearer test-key" {
		t.Errorf("auth header = %q", gotAuth)
	}
	if len(gotReq.Messages) != 2 || gotReq.Messages[0].Role != "system" {
		t.Errorf("messages = %+v", gotReq.Messages)
	}
	if gotReq.Messages[0].Content != SystemPrompt {
		t.Error("system prompt not sent")
	}
}

func TestComplete_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"rate limited"}}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "k", "m", zap.NewNop())
	if _, err := c.Complete(context.Background(), "hi"); err == nil {
		t.Error("expected error for non-200 response")
	}
}

func TestComplete_NoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "k", "m", zap.NewNop())
	if _, err := c.Complete(context.Background(), "hi"); err == nil {
		t.Error("expected error for empty choices")
	}
}
