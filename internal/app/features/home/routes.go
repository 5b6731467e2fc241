package home

import "github.com/go-chi/chi/v5"

// Routes registers the landing page on the site root router.
func Routes(r chi.Router, h *Handler) {
	r.Get("/", h.ServeHome)
}
