package calendar

import "github.com/go-chi/chi/v5"

// Routes mounts the public calendar page.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeCalendar)
	return r
}
