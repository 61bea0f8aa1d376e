// Package lang holds the visitor's display language and its persistence.
package lang

import (
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
)

// Lang is a supported display language code.
type Lang string

const (
	JA Lang = "ja"
	EN Lang = "en"

	// Default is used whenever nothing valid has been persisted.
	Default = JA

	// StorageKey is the fixed key the preference is persisted under.
	StorageKey = "mk_lang"
)

var supported = mapset.NewSet(JA, EN)

// Supported returns the supported languages in display order.
func Supported() []Lang { return []Lang{JA, EN} }

// Parse normalizes s and reports whether it names a supported language.
func Parse(s string) (Lang, bool) {
	l := Lang(strings.ToLower(strings.TrimSpace(s)))
	if !supported.Contains(l) {
		return "", false
	}
	return l, true
}

// Other returns the language the header toggle switches to.
func (l Lang) Other() Lang {
	if l == EN {
		return JA
	}
	return EN
}

func (l Lang) String() string { return string(l) }

// Persistence is a key-value store that may be unavailable. Both methods
// may fail; the Store never surfaces those failures.
type Persistence interface {
	Get(key string) (string, error)
	Set(key, value string) error
}

// Store is the in-memory language preference backed by a Persistence.
type Store struct {
	current Lang
	p       Persistence
}

// NewStore returns a store starting at Default.
func NewStore(p Persistence) *Store {
	return &Store{current: Default, p: p}
}

// WithStart overrides the starting language used before Restore.
// Invalid values are ignored.
func (s *Store) WithStart(l Lang) *Store {
	if supported.Contains(l) {
		s.current = l
	}
	return s
}

// Current returns the active language.
func (s *Store) Current() Lang {
	if s == nil || s.current == "" {
		return Default
	}
	return s.current
}

// Restore reads the persisted value. Absent, invalid or unreadable values
// leave the current language untouched.
func (s *Store) Restore() {
	if s == nil || s.p == nil {
		return
	}
	raw, err := safeGet(s.p)
	if err != nil {
		return
	}
	if l, ok := Parse(raw); ok {
		s.current = l
	}
}

// Set switches the language and attempts to persist it. A persistence
// failure is swallowed and does not roll back the in-memory change.
// Unsupported values are ignored.
func (s *Store) Set(l Lang) {
	if s == nil || !supported.Contains(l) {
		return
	}
	s.current = l
	if s.p != nil {
		_ = safeSet(s.p, string(l))
	}
}

// Toggle flips between ja and en.
func (s *Store) Toggle() Lang {
	s.Set(s.Current().Other())
	return s.Current()
}

// safeGet converts a panicking backend into an error.
func safeGet(p Persistence) (v string, err error) {
	defer func() {
		if r := recover(); r != nil {
			v, err = "", errPersistencePanic
		}
	}()
	return p.Get(StorageKey)
}

func safeSet(p Persistence, v string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errPersistencePanic
		}
	}()
	return p.Set(StorageKey, v)
}
