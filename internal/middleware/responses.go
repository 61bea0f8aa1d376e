package middleware

import (
	"net/http"

	"github.com/goccy/go-json"
)

type errorResponse struct {
	Error string `json:"error"`
}

// WriteError answers with JSON for htmx requests and plain text otherwise.
func WriteError(w http.ResponseWriter, r *http.Request, code int, msg string) {
	if IsHTMX(r.Context()) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(code)
		_ = json.NewEncoder(w).Encode(errorResponse{Error: msg})
		return
	}
	http.Error(w, msg, code)
}
