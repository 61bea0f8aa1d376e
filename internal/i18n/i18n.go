// Package i18n loads flat JSON message catalogs and negotiates languages.
package i18n

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/goccy/go-json"

	"github.com/masahiro-koseki/masahiro-site/internal/lang"
)

// Bundle holds one catalog per supported language.
type Bundle struct {
	dict      map[lang.Lang]map[string]string
	fallback  lang.Lang
	supported mapset.Set[lang.Lang]
}

// Load reads <dir>/<lang>.json for every supported language. Only the
// fallback catalog is mandatory.
func Load(dir string, fallback lang.Lang, supported []lang.Lang) (*Bundle, error) {
	if len(supported) == 0 {
		supported = lang.Supported()
	}
	b := &Bundle{
		dict:      map[lang.Lang]map[string]string{},
		fallback:  fallback,
		supported: mapset.NewThreadUnsafeSet(supported...),
	}
	for _, l := range supported {
		raw, err := os.ReadFile(filepath.Join(dir, string(l)+".json"))
		if err != nil {
			if l == fallback {
				return nil, fmt.Errorf("i18n: load locale %s: %w", l, err)
			}
			continue
		}
		var m map[string]string
		if err := json.Unmarshal(raw, &m); err != nil {
			return nil, fmt.Errorf("i18n: unmarshal %s: %w", l, err)
		}
		b.dict[l] = m
	}
	if _, ok := b.dict[fallback]; !ok {
		return nil, fmt.Errorf("i18n: fallback locale %s not loaded", fallback)
	}
	return b, nil
}

// Supported lists the configured languages in sorted order.
func (b *Bundle) Supported() []lang.Lang {
	out := b.supported.ToSlice()
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Fallback returns the configured fallback language.
func (b *Bundle) Fallback() lang.Lang { return b.fallback }

// T returns the translation for key in l, falling back to the default
// catalog and finally to the key itself.
func (b *Bundle) T(l lang.Lang, key string) string {
	if m, ok := b.dict[l]; ok {
		if v, ok := m[key]; ok {
			return v
		}
	}
	if m, ok := b.dict[b.fallback]; ok {
		if v, ok := m[key]; ok {
			return v
		}
	}
	return key
}

// Missing reports keys present in the fallback catalog but absent from l.
func (b *Bundle) Missing(l lang.Lang) []string {
	base := mapset.NewThreadUnsafeSet[string]()
	for k := range b.dict[b.fallback] {
		base.Add(k)
	}
	have := mapset.NewThreadUnsafeSet[string]()
	for k := range b.dict[l] {
		have.Add(k)
	}
	out := base.Difference(have).ToSlice()
	sort.Strings(out)
	return out
}

// Resolve chooses the best language from an Accept-Language header.
func (b *Bundle) Resolve(acceptLang string) lang.Lang {
	type langPref struct {
		base string
		q    float64
		pos  int
	}
	prefs := make([]langPref, 0, 8)
	for i, raw := range strings.Split(acceptLang, ",") {
		p := strings.TrimSpace(raw)
		if p == "" {
			continue
		}
		q := 1.0
		if sc := strings.IndexByte(p, ';'); sc != -1 {
			params := strings.TrimSpace(p[sc+1:])
			p = strings.TrimSpace(p[:sc])
			if strings.HasPrefix(params, "q=") {
				if v, err := parseQValue(strings.TrimPrefix(params, "q=")); err == nil {
					q = v
				}
			}
		}
		base := p
		if dash := strings.IndexByte(p, '-'); dash != -1 {
			base = p[:dash]
		}
		prefs = append(prefs, langPref{base: strings.ToLower(base), q: q, pos: i})
	}
	sort.SliceStable(prefs, func(i, j int) bool {
		if prefs[i].q == prefs[j].q {
			return prefs[i].pos < prefs[j].pos
		}
		return prefs[i].q > prefs[j].q
	})
	for _, lp := range prefs {
		if lp.q <= 0 {
			continue
		}
		if l := lang.Lang(lp.base); b.supported.Contains(l) {
			return l
		}
	}
	return b.fallback
}

// parseQValue parses an RFC 7231 qvalue, clamped to [0, 1].
func parseQValue(s string) (float64, error) {
	s = strings.TrimSpace(s)
	switch s {
	case "1", "1.0", "1.00":
		return 1.0, nil
	case "0", "0.0", "0.00":
		return 0.0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if v < 0 {
		v = 0
	} else if v > 1 {
		v = 1
	}
	return v, nil
}
