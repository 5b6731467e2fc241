package events

import (
	"github.com/ellarises/ellahub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the events maintenance screen.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireRole("admin"))
		pr.Get("/", h.ServeList)
	})
	return r
}
