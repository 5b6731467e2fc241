package chatbot

import "github.com/go-chi/chi/v5"

// Routes registers the chat page and its message endpoint on the site root
// router. Both are public: the assistant answers visitors who have not
// signed up yet.
func Routes(r chi.Router, h *Handler) {
	r.Get("/chat", h.ServeChat)
	r.Post("/chatbot", h.HandleMessage)
}
