package profile

import (
	"github.com/ellarises/ellahub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes registers the profile pages and the language preference endpoint
// on the site root router.
func Routes(r chi.Router, h *Handler) {
	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)
		pr.Get("/profile", h.ServeProfile)
		pr.Get("/profile/{id}", h.ServeProfile)
		pr.Post("/set-language", h.HandleSetLanguage)
	})
}
