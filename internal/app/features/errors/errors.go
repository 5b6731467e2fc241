// Package errors renders the shared error pages (unauthorized, forbidden,
// not found, server error). Other features call the Render* helpers instead
// of writing bare status codes so visitors always get a styled page.
package errors

import (
	"net/http"

	"github.com/ellarises/ellahub/internal/app/system/formutil"
	"github.com/go-chi/chi/v5"
)

type pageData struct {
	formutil.Base
}

// Routes registers the directly addressable error pages, used as redirect
// targets by the auth gates.
func Routes(r chi.Router) {
	r.Get("/forbidden", func(w http.ResponseWriter, r *http.Request) {
		RenderForbidden(w, r, "", "")
	})
	r.Get("/unauthorized", func(w http.ResponseWriter, r *http.Request) {
		RenderUnauthorized(w, r, "")
	})
}
