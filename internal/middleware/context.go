package middleware

import (
	"context"

	"github.com/masahiro-koseki/masahiro-site/internal/lang"
)

// context keys are unexported to avoid collisions
type ctxKey string

const (
	ctxKeyIsHTMX  ctxKey = "is_htmx"
	ctxKeySession ctxKey = "session"
	ctxKeyLang    ctxKey = "lang"
)

// WithHTMX marks request as HTMX
func WithHTMX(ctx context.Context, is bool) context.Context {
	return context.WithValue(ctx, ctxKeyIsHTMX, is)
}

// IsHTMX returns whether this is an htmx request
func IsHTMX(ctx context.Context) bool {
	v, _ := ctx.Value(ctxKeyIsHTMX).(bool)
	return v
}

// WithLang stores the resolved display language.
func WithLang(ctx context.Context, l lang.Lang) context.Context {
	return context.WithValue(ctx, ctxKeyLang, l)
}

// LangFrom returns the display language, or the default.
func LangFrom(ctx context.Context) lang.Lang {
	if l, ok := ctx.Value(ctxKeyLang).(lang.Lang); ok && l != "" {
		return l
	}
	return lang.Default
}
