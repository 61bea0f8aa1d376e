package middleware

import (
	"net/http"
)

// LimitForm caps request bodies of unsafe methods at maxBytes and parses the
// form up front, so later readers such as CSRF see the bounded form.
// Oversized or malformed bodies are answered with 400.
func LimitForm(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isSafeMethod(r.Method) {
				next.ServeHTTP(w, r)
				return
			}
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			err := r.ParseMultipartForm(maxBytes)
			if err == http.ErrNotMultipart {
				err = r.ParseForm()
			}
			if err != nil {
				WriteError(w, r, http.StatusBadRequest, "invalid form")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
