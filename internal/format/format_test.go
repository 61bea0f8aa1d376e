package format

import (
	"testing"
	"time"

	"github.com/masahiro-koseki/masahiro-site/internal/lang"
)

func TestFmtDate(t *testing.T) {
	d := time.Date(2025, 11, 5, 0, 0, 0, 0, time.UTC)
	cases := []struct {
		lang lang.Lang
		want string
	}{
		{lang.JA, "2025.11.05"},
		{lang.EN, "Nov 5, 2025"},
	}
	for _, tc := range cases {
		if got := FmtDate(d, tc.lang); got != tc.want {
			t.Errorf("FmtDate(%s) = %q, want %q", tc.lang, got, tc.want)
		}
	}
	if got := FmtDate(time.Time{}, lang.EN); got != "" {
		t.Errorf("zero time should format empty, got %q", got)
	}
}

func TestFmtISODate(t *testing.T) {
	if got := FmtISODate("2025-06-06", lang.EN); got != "Jun 6, 2025" {
		t.Errorf("got %q", got)
	}
	if got := FmtISODate("soon", lang.EN); got != "soon" {
		t.Errorf("got %q", got)
	}
}

func TestFmtPosition(t *testing.T) {
	if got := FmtPosition(0, 4); got != "1 / 4" {
		t.Errorf("got %q", got)
	}
	if got := FmtPosition(0, 0); got != "" {
		t.Errorf("got %q", got)
	}
}
