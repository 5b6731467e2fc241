// Package chatbot serves the site assistant: a chat page and a JSON endpoint
// that relays each message to the completion API. Conversations get a UUID so
// client logs and server logs can be matched up.
package chatbot

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/ellarises/ellahub/internal/app/system/chatapi"
	"github.com/ellarises/ellahub/internal/app/system/formutil"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"
)

const maxMessageLen = 2000

type Handler struct {
	Log       *zap.Logger
	Chat      *chatapi.Client
	sanitizer *bluemonday.Policy
}

func NewHandler(chat *chatapi.Client, logger *zap.Logger) *Handler {
	return &Handler{
		Log:       logger,
		Chat:      chat,
		sanitizer: bluemonday.StrictPolicy(),
	}
}

type pageData struct {
	formutil.Base
	ConversationID string
}

// ServeChat renders the chat page with a fresh conversation ID.
func (h *Handler) ServeChat(w http.ResponseWriter, r *http.Request) {
	var data pageData
	formutil.SetBase(&data.Base, r, "Chat with us", "/")
	data.ConversationID = uuid.NewString()
	templates.Render(w, r, "chat", data)
}

type chatRequest struct {
	ConversationID string `json:"conversationId"`
	Message        string `json:"message"`
}

// HandleMessage relays one sanitized user message to the completion API.
func (h *Handler) HandleMessage(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	msg := strings.TrimSpace(h.sanitizer.Sanitize(req.Message))
	if msg == "" {
		h.writeError(w, http.StatusBadRequest, "message is required")
		return
	}
	if len(msg) > maxMessageLen {
		msg = msg[:maxMessageLen]
	}

	convID := req.ConversationID
	if _, err := uuid.Parse(convID); err != nil {
		convID = uuid.NewString()
	}

	ctx, cancel := context.WithTimeout(r.Context(), chatapi.Timeout)
	defer cancel()

	reply, err := h.Chat.Complete(ctx, msg)
	if err != nil {
		h.Log.Error("chat completion failed", zap.Error(err),
			zap.String("conversation_id", convID))
		h.writeError(w, http.StatusBadGateway, "the assistant is unavailable right now")
		return
	}

	h.Log.Info("chat reply sent", zap.String("conversation_id", convID))
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success":        true,
		"conversationId": convID,
		"reply":          reply,
	})
}

func (h *Handler) writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "error": msg})
}
