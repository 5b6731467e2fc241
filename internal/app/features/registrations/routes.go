package registrations

import (
	"github.com/ellarises/ellahub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the registrations maintenance screen.
// Typically: r.Mount("/event_registrations", registrations.Routes(handler))
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireRole("admin"))
		pr.Get("/", h.ServeList)
	})
	return r
}

// ActionRoutes registers the participant-facing actions on the site root
// router: register for and cancel out of an event, plus the admin check-in
// endpoint.
func ActionRoutes(r chi.Router, h *Handler) {
	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)
		pr.Post("/register-event/{eventID}", h.HandleRegister)
		pr.Post("/cancel-registration/{eventID}", h.HandleCancel)
	})
	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireRole("admin"))
		pr.Post("/check-in/{id}", h.HandleCheckIn)
	})
}
