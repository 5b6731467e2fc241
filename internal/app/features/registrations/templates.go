package registrations

import (
	"embed"

	"github.com/dalemusser/waffle/pantry/templates"
)

//go:embed templates/*.gohtml
var FS embed.FS

func init() {
	templates.Register(templates.Set{
		Name:     "registrations",
		FS:       FS,
		Patterns: []string{"templates/*.gohtml"},
	})
}
