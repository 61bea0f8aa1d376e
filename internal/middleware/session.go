package middleware

import (
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

const (
	sessionCookieName = "MK_SITE_SESSION"
	sessionLifetime   = 30 * 24 * time.Hour
)

// SessionData is the signed, cookie-held visitor session. It carries no
// personal data; the ID scopes duplicate contact submissions and the token
// backs CSRF checks.
type SessionData struct {
	ID        string    `json:"id"`
	CSRFToken string    `json:"csrf,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	// internal dirty flag; not serialized
	dirty bool
}

// Sessions signs and verifies session cookies.
type Sessions struct {
	key    []byte
	secure bool
}

// NewSessions returns a session codec. An empty key generates a
// process-ephemeral one, which is only acceptable outside production.
func NewSessions(signingKey string, secure bool, logger *zap.Logger) *Sessions {
	key := []byte(signingKey)
	if len(key) == 0 {
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			key = []byte("insecure-dev-key-please-set-SITE_SESSION_SIGNING_KEY")
		}
		if logger != nil {
			logger.Warn("session: using ephemeral signing key; set SITE_SESSION_SIGNING_KEY for production")
		}
	}
	return &Sessions{key: key, secure: secure}
}

// Secure reports whether cookies are marked Secure.
func (s *Sessions) Secure() bool { return s.secure }

// Middleware loads or initializes a session and stores it in the request
// context. The cookie is written just before the response header.
func (s *Sessions) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sd, fromCookie := s.read(r)
		if sd.ID == "" {
			sd.ID = randID()
			sd.CreatedAt = time.Now().UTC()
			sd.UpdatedAt = sd.CreatedAt
			sd.CSRFToken = newCSRFToken()
			sd.dirty = true
		}
		ctx := context.WithValue(r.Context(), ctxKeySession, sd)
		rw := NewResponseRecorder(w)
		rw.SetBeforeWrite(func(w http.ResponseWriter) {
			if sd.dirty || !fromCookie {
				s.write(w, sd)
			}
		})
		next.ServeHTTP(rw, r.WithContext(ctx))
		// nothing written yet (e.g. an empty 200)
		if !rw.Wrote() && (sd.dirty || !fromCookie) {
			s.write(w, sd)
		}
	})
}

// GetSession returns session data from context
func GetSession(r *http.Request) *SessionData {
	if sd, ok := r.Context().Value(ctxKeySession).(*SessionData); ok {
		return sd
	}
	return &SessionData{}
}

// MarkDirty flags the session for writing at end of request
func (sd *SessionData) MarkDirty() { sd.dirty = true; sd.UpdatedAt = time.Now().UTC() }

func (s *Sessions) read(r *http.Request) (*SessionData, bool) {
	c, err := r.Cookie(sessionCookieName)
	if err != nil || c.Value == "" {
		return &SessionData{}, false
	}
	payloadB64, sigB64, ok := strings.Cut(c.Value, ".")
	if !ok {
		return &SessionData{}, false
	}
	payload, err := base64.RawURLEncoding.DecodeString(payloadB64)
	if err != nil {
		return &SessionData{}, false
	}
	sig, err := base64.RawURLEncoding.DecodeString(sigB64)
	if err != nil {
		return &SessionData{}, false
	}
	if !hmac.Equal(sig, s.sign(payload)) {
		return &SessionData{}, false
	}
	var sd SessionData
	if err := json.Unmarshal(payload, &sd); err != nil {
		return &SessionData{}, false
	}
	return &sd, true
}

func (s *Sessions) write(w http.ResponseWriter, sd *SessionData) {
	b, err := json.Marshal(sd)
	if err != nil {
		return
	}
	val := base64.RawURLEncoding.EncodeToString(b) + "." + base64.RawURLEncoding.EncodeToString(s.sign(b))
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    val,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(sessionLifetime),
	})
}

func (s *Sessions) sign(payload []byte) []byte {
	mac := hmac.New(sha256.New, s.key)
	mac.Write(payload)
	return mac.Sum(nil)
}

func randID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return ""
	}
	return base64.RawURLEncoding.EncodeToString(b)
}
