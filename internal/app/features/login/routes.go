package login

import "github.com/go-chi/chi/v5"

// Routes registers the sign-in and sign-out endpoints on the site root
// router.
func Routes(r chi.Router, h *Handler) {
	r.Get("/login", h.ServeForm)
	r.Post("/login", h.HandleLogin)
	r.Get("/logout", h.HandleLogout)
}
