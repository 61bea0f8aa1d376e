package middleware

import "net/http"

// HTMX marks requests issued by htmx. Lightbox steps and the news browser
// answer those with a fragment instead of the full page, so responses vary
// on the request header.
func HTMX(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Vary", "HX-Request")
		is := r.Header.Get("HX-Request") == "true" && r.Header.Get("HX-History-Restore-Request") != "true"
		next.ServeHTTP(w, r.WithContext(WithHTMX(r.Context(), is)))
	})
}
