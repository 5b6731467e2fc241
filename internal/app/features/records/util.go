package records

import (
	"net/http"
	"strings"

	"github.com/ellarises/ellahub/internal/app/system/registry"
)

// returnOr picks the sanitized return target from the form or query, falling
// back to the given list path.
func returnOr(r *http.Request, fallback string) string {
	ret := strings.TrimSpace(r.FormValue("return"))
	if ret == "" {
		ret = strings.TrimSpace(r.URL.Query().Get("return"))
	}
	if ret == "" || !strings.HasPrefix(ret, "/") || strings.HasPrefix(ret, "//") {
		return fallback
	}
	return ret
}

func listPath(table string) string {
	if e, ok := registry.Lookup(table); ok {
		return e.ListPath
	}
	return "/"
}
