package records

import (
	"github.com/ellarises/ellahub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes registers the generic record-maintenance endpoints on the site
// root router.
func Routes(r chi.Router, h *Handler) {
	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireRole("admin"))
		pr.Get("/add/{table}", h.ServeAdd)
		pr.Get("/add/{table}/{id}", h.ServeAdd)
		pr.Post("/add/{table}", h.HandleAdd)
		pr.Get("/edit/{table}/{id}", h.ServeEdit)
		pr.Post("/edit/{table}/{id}", h.HandleEdit)
		pr.Post("/delete/{table}/{id}", h.HandleDelete)
	})

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)
		pr.Get("/profile-edit/{table}/{id}", h.ServeProfileEdit)
		pr.Post("/profile-edit/{table}/{id}", h.HandleProfileEdit)
		pr.Post("/profile-delete/{table}/{id}", h.HandleProfileDelete)
	})
}
