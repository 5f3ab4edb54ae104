package middleware

import (
	"net/http"
	"strings"
)

const methodOverrideParam = "_method"

var overridable = map[string]bool{
	http.MethodDelete: true,
	http.MethodPut:    true,
	http.MethodPatch:  true,
}

// MethodOverride lets HTML forms, which can only POST, reach DELETE/PUT/PATCH routes
// through a "_method" query parameter or form field. It has to wrap the router
// because gin picks the route before any gin middleware runs.
func MethodOverride(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			method := r.URL.Query().Get(methodOverrideParam)
			if method == "" && strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
				method = r.PostFormValue(methodOverrideParam)
			}
			if method = strings.ToUpper(method); overridable[method] {
				r.Method = method
			}
		}
		next.ServeHTTP(w, r)
	})
}
