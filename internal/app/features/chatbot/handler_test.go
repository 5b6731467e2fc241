package chatbot

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ellarises/ellahub/internal/app/system/chatapi"
	"go.uber.org/zap"
)

func TestHandleMessage(t *testing.T) {
	var gotUserMessage string
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		if len(req.Messages) == 2 {
			gotUserMessage = req.Messages[1].Content
		}
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"Saturday at 10 AM."}}]}`))
	}))
	defer api.Close()

	h := NewHandler(chatapi.New(api.URL, "k", "m", zap.NewNop()), zap.NewNop())

	// Script tags are stripped before the message leaves the server.
	body := strings.NewReader(`{"message":"<script>alert(1)</script>When is the next event?"}`)
	req := httptest.NewRequest(http.MethodPost, "/chatbot", body)
	rec := httptest.NewRecorder()
	h.HandleMessage(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["success"] != true || resp["reply"] != "Saturday at 10 AM." {
		t.Errorf("response = %v", resp)
	}
	if resp["conversationId"] == "" {
		t.Error("conversationId missing")
	}
	if strings.Contains(gotUserMessage, "<script>") {
		t.Errorf("script tag reached the API: %q", gotUserMessage)
	}
}

func TestHandleMessage_EmptyAfterSanitize(t *testing.T) {
	h := NewHandler(chatapi.New("http://unused", "k", "m", zap.NewNop()), zap.NewNop())

	body := strings.NewReader(`{"message":"<script>only()</script>"}`)
	req := httptest.NewRequest(http.MethodPost, "/chatbot", body)
	rec := httptest.NewRecorder()
	h.HandleMessage(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestHandleMessage_APIDown(t *testing.T) {
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	api.Close() // closed on purpose

	h := NewHandler(chatapi.New(api.URL, "k", "m", zap.NewNop()), zap.NewNop())

	body := strings.NewReader(`{"message":"hello"}`)
	req := httptest.NewRequest(http.MethodPost, "/chatbot", body)
	rec := httptest.NewRecorder()
	h.HandleMessage(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rec.Code)
	}
}
