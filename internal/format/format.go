// Package format renders dates and counters for templates.
package format

import (
	"fmt"
	"time"

	"github.com/masahiro-koseki/masahiro-site/internal/lang"
)

const isoDate = "2006-01-02"

// FmtDate formats t in a locale-friendly short form.
func FmtDate(t time.Time, l lang.Lang) string {
	if t.IsZero() {
		return ""
	}
	switch l {
	case lang.JA:
		return t.Format("2006.01.02")
	default:
		return t.Format("Jan 2, 2006")
	}
}

// FmtISODate reformats a YYYY-MM-DD key for display. Unparseable keys are
// returned unchanged.
func FmtISODate(key string, l lang.Lang) string {
	t, err := time.Parse(isoDate, key)
	if err != nil {
		return key
	}
	return FmtDate(t, l)
}

// FmtPosition renders a 1-based "i / n" counter for a 0-based index.
func FmtPosition(i, n int) string {
	if n <= 0 {
		return ""
	}
	return fmt.Sprintf("%d / %d", i+1, n)
}
