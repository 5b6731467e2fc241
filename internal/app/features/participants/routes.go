package participants

import (
	"github.com/ellarises/ellahub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the participants maintenance screen.
// Typically: r.Mount("/users", participants.Routes(handler))
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireRole("admin"))
		pr.Get("/", h.ServeList)
	})
	return r
}
