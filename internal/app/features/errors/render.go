package errors

import (
	"net/http"

	"github.com/ellarises/ellahub/internal/app/system/formutil"
	"github.com/dalemusser/waffle/pantry/templates"
)

// RenderUnauthorized shows a friendly "sign in required" page.
// If backURL is empty, it defaults to /login.
func RenderUnauthorized(w http.ResponseWriter, r *http.Request, backURL string) {
	if backURL == "" {
		backURL = "/login"
	}
	var data pageData
	formutil.SetBase(&data.Base, r, "Sign in required", backURL)
	data.Message = "Please sign in to continue."
	data.BackURL = backURL

	w.WriteHeader(http.StatusUnauthorized)
	templates.Render(w, r, "error_forbidden", data)
}

// RenderForbidden shows a friendly access error page with a message.
func RenderForbidden(w http.ResponseWriter, r *http.Request, msg, backURL string) {
	var data pageData
	formutil.SetBase(&data.Base, r, "Access denied", "/")
	if msg == "" {
		msg = "You do not have access to that page."
	}
	data.Message = msg
	if backURL != "" {
		data.BackURL = backURL
	}

	w.WriteHeader(http.StatusForbidden)
	templates.Render(w, r, "error_forbidden", data)
}

// RenderNotFound shows the 404 page.
func RenderNotFound(w http.ResponseWriter, r *http.Request) {
	var data pageData
	formutil.SetBase(&data.Base, r, "Page not found", "/")
	data.Message = "The page you asked for does not exist."

	w.WriteHeader(http.StatusNotFound)
	templates.Render(w, r, "error_notfound", data)
}

// RenderServerError shows the 500 page. The underlying error is logged by the
// caller, not shown to the visitor.
func RenderServerError(w http.ResponseWriter, r *http.Request) {
	var data pageData
	formutil.SetBase(&data.Base, r, "Something went wrong", "/")
	data.Message = "Something went wrong on our end. Please try again."

	w.WriteHeader(http.StatusInternalServerError)
	templates.Render(w, r, "error_server", data)
}
