package middleware

import (
	"net/http"

	"github.com/masahiro-koseki/masahiro-site/internal/i18n"
	"github.com/masahiro-koseki/masahiro-site/internal/lang"
)

// LocaleOptions controls how the display language is chosen.
type LocaleOptions struct {
	// Negotiate starts from Accept-Language instead of the default language.
	Negotiate bool
	// Persist stores the choice in the mk_lang cookie.
	Persist bool
	Secure  bool
}

// Locale restores the visitor's language on every request and applies an
// explicit ?hl= switch.
func Locale(bundle *i18n.Bundle, opts LocaleOptions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var p lang.Persistence = lang.Disabled{}
			if opts.Persist {
				p = lang.CookiePersistence{W: w, R: r, Secure: opts.Secure}
			}
			store := lang.NewStore(p)
			if opts.Negotiate {
				store.WithStart(bundle.Resolve(r.Header.Get("Accept-Language")))
				w.Header().Add("Vary", "Accept-Language")
			}
			store.Restore()
			if q := r.URL.Query().Get("hl"); q != "" {
				if l, ok := lang.Parse(q); ok {
					store.Set(l)
				}
			}
			w.Header().Add("Vary", "Cookie")
			w.Header().Set("Content-Language", store.Current().String())
			next.ServeHTTP(w, r.WithContext(WithLang(r.Context(), store.Current())))
		})
	}
}

// Lang returns the display language of r.
func Lang(r *http.Request) lang.Lang { return LangFrom(r.Context()) }
