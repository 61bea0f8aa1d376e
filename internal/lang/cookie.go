package lang

import (
	"errors"
	"net/http"
	"time"
)

// ErrUnavailable is returned by persistence backends that are switched off.
var ErrUnavailable = errors.New("lang: persistence unavailable")

var errPersistencePanic = errors.New("lang: persistence panicked")

const cookieMaxAge = 365 * 24 * time.Hour

// CookiePersistence stores the preference in a first-party cookie.
type CookiePersistence struct {
	W      http.ResponseWriter
	R      *http.Request
	Secure bool
}

// Get reads the cookie named key from the request.
func (c CookiePersistence) Get(key string) (string, error) {
	if c.R == nil {
		return "", ErrUnavailable
	}
	ck, err := c.R.Cookie(key)
	if err != nil {
		return "", err
	}
	return ck.Value, nil
}

// Set writes the cookie on the response.
func (c CookiePersistence) Set(key, value string) error {
	if c.W == nil {
		return ErrUnavailable
	}
	http.SetCookie(c.W, &http.Cookie{
		Name:     key,
		Value:    value,
		Path:     "/",
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(cookieMaxAge),
		MaxAge:   int(cookieMaxAge / time.Second),
	})
	return nil
}

// Disabled is a Persistence that always fails, used when the language
// cookie is turned off by configuration.
type Disabled struct{}

func (Disabled) Get(string) (string, error) { return "", ErrUnavailable }
func (Disabled) Set(string, string) error   { return ErrUnavailable }
