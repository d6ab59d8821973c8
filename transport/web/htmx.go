package web

import (
	"net/http"
	"strings"

	"github.com/a-h/templ"
)

// RequestHeaderKey is set by HTMX on requests it issues.
const RequestHeaderKey = "HX-Request"

func IsHTMXRequest(r *http.Request) bool {
	if r == nil {
		return false
	}
	return strings.EqualFold(r.Header.Get(RequestHeaderKey), "true")
}

// Render serves fragment to HTMX requests and full to everything else.
func Render(w http.ResponseWriter, r *http.Request, status int, fragment, full templ.Component) {
	target := full
	if IsHTMXRequest(r) {
		target = fragment
	}

	templ.Handler(target, templ.WithStatus(status)).ServeHTTP(w, r)
}
