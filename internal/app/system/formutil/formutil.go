// Package formutil provides the shared view-model base for page renders.
//
// Every page needs the same handful of fields: title, the signed-in user's
// name and role, a safe back URL, and the one-time flash message (with its
// bootstrap-style type: success or danger). Feature view models embed Base
// and handlers call SetBase once.
package formutil

import (
	"net/http"
	"strconv"

	"github.com/dalemusser/waffle/pantry/httpnav"
	"github.com/ellarises/ellahub/internal/app/system/auth"
)

// Base contains the common fields for page view models.
type Base struct {
	Title       string
	IsLoggedIn  bool
	Role        string
	UserName    string
	UserID      int64
	Language    string
	BackURL     string
	CurrentPath string
	Message     string
	MessageType string
}

// SetBase populates the common fields from the request context.
func SetBase(b *Base, r *http.Request, title, backDefault string) {
	role, uname, uid, signedIn := auth.UserCtx(r)
	b.Title = title
	b.IsLoggedIn = signedIn
	b.Role = role
	b.UserName = uname
	b.UserID = uid
	if u, ok := auth.CurrentUser(r); ok {
		b.Language = u.Language
	}
	b.BackURL = httpnav.ResolveBackURL(r, backDefault)
	b.CurrentPath = httpnav.CurrentPath(r)
	b.MessageType = "success"
}

// SetFlash records the flash message to show on this render.
func (b *Base) SetFlash(msg, typ string) {
	b.Message = msg
	if typ != "" {
		b.MessageType = typ
	}
}

// SetError sets a danger-styled message.
func (b *Base) SetError(msg string) {
	b.Message = msg
	b.MessageType = "danger"
}

// Option is one entry of a filter multi-select.
type Option struct {
	Value    string
	Label    string
	Selected bool
}

// MonthOptions builds the month filter entries (values "1".."12").
func MonthOptions(selected []string) []Option {
	months := []string{"January", "February", "March", "April", "May", "June",
		"July", "August", "September", "October", "November", "December"}
	chosen := make(map[string]bool, len(selected))
	for _, s := range selected {
		chosen[s] = true
	}
	out := make([]Option, 0, 12)
	for i, name := range months {
		v := strconv.Itoa(i + 1)
		out = append(out, Option{Value: v, Label: name, Selected: chosen[v]})
	}
	return out
}

// IntOptions builds entries from numeric values such as years.
func IntOptions(all []int, selected []string) []Option {
	vals := make([]string, len(all))
	for i, n := range all {
		vals[i] = strconv.Itoa(n)
	}
	return Options(vals, selected)
}

// Options builds the multi-select entries for a filter dropdown, marking the
// values the current request has selected.
func Options(all, selected []string) []Option {
	chosen := make(map[string]bool, len(selected))
	for _, s := range selected {
		chosen[s] = true
	}
	out := make([]Option, 0, len(all))
	for _, v := range all {
		out = append(out, Option{Value: v, Label: v, Selected: chosen[v]})
	}
	return out
}
