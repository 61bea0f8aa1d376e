package middleware

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"net/http"
	"time"
)

const (
	csrfCookieName = "csrf_token"
	csrfHeaderName = "X-CSRF-Token"
	// CSRFFieldName is the hidden form field carrying the token.
	CSRFFieldName = "csrf_token"
)

// CSRF issues a double-submit cookie tied to the session token and
// verifies unsafe requests carry the token in a header or form field.
func CSRF(secure bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s := GetSession(r)
			token := s.CSRFToken
			if token == "" {
				token = newCSRFToken()
				s.CSRFToken = token
				s.MarkDirty()
			}

			if c, err := r.Cookie(csrfCookieName); err != nil || c.Value != token {
				http.SetCookie(w, &http.Cookie{
					Name:     csrfCookieName,
					Value:    token,
					Path:     "/",
					Secure:   secure,
					SameSite: http.SameSiteLaxMode,
					Expires:  time.Now().Add(24 * time.Hour),
				})
			}

			if !isSafeMethod(r.Method) {
				sent := r.Header.Get(csrfHeaderName)
				if sent == "" {
					sent = r.PostFormValue(CSRFFieldName)
				}
				if !tokensEqual(sent, token) {
					WriteError(w, r, http.StatusForbidden, "invalid CSRF token")
					return
				}
				if c, err := r.Cookie(csrfCookieName); err != nil || !tokensEqual(c.Value, token) {
					WriteError(w, r, http.StatusForbidden, "invalid CSRF token")
					return
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

// CSRFToken returns the token to embed in forms.
func CSRFToken(r *http.Request) string { return GetSession(r).CSRFToken }

func tokensEqual(a, b string) bool {
	return a != "" && subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

func newCSRFToken() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func isSafeMethod(m string) bool {
	switch m {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace:
		return true
	default:
		return false
	}
}
