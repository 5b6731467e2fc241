package signup

import "github.com/go-chi/chi/v5"

// Routes registers the signup endpoints on the site root router.
func Routes(r chi.Router, h *Handler) {
	r.Get("/signup", h.ServeForm)
	r.Post("/signup", h.HandleSignup)
}
