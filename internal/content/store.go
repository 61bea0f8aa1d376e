// Package content loads the site manifest, the news feed and Markdown pages
// from disk and caches the rendered result.
package content

import (
	"errors"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/masahiro-koseki/masahiro-site/internal/lang"
	"github.com/masahiro-koseki/masahiro-site/internal/news"
)

// ErrNotFound is returned when a page does not exist in any language.
var ErrNotFound = errors.New("content: not found")

const (
	siteFile = "site.yaml"
	newsFile = "news.yaml"

	defaultCacheTTL = 5 * time.Minute
)

// Store serves content loaded from a directory. It is safe for concurrent
// use; Reload swaps the loaded values atomically.
type Store struct {
	dir      string
	ttl      time.Duration
	renderer *Renderer
	now      func() time.Time

	mu    sync.RWMutex
	site  Site
	news  []news.Item
	cache map[string]cacheEntry
}

type cacheEntry struct {
	html    template.HTML
	page    Page
	expires time.Time
}

// Open loads and validates the content in dir.
func Open(dir string, ttl time.Duration) (*Store, error) {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	s := &Store{
		dir:      dir,
		ttl:      ttl,
		renderer: NewRenderer(),
		now:      time.Now,
		cache:    map[string]cacheEntry{},
	}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Dir returns the directory the store reads from.
func (s *Store) Dir() string { return s.dir }

// Reload rereads site.yaml and news.yaml and drops the render cache. On
// error the previously loaded content stays in place.
func (s *Store) Reload() error {
	var site Site
	if err := readYAML(filepath.Join(s.dir, siteFile), &site); err != nil {
		return err
	}
	if err := site.Validate(); err != nil {
		return err
	}
	var items []news.Item
	if err := readYAML(filepath.Join(s.dir, newsFile), &items); err != nil {
		return err
	}
	if err := news.Validate(items); err != nil {
		return fmt.Errorf("content: %s: %w", newsFile, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.site = site
	s.news = news.Sorted(items)
	s.cache = map[string]cacheEntry{}
	return nil
}

// Site returns the loaded manifest.
func (s *Store) Site() Site {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.site
}

// News returns the feed, newest first.
func (s *Store) News() []news.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]news.Item, len(s.news))
	copy(out, s.news)
	return out
}

// NewsBody renders the localized body of it.
func (s *Store) NewsBody(it news.Item, l lang.Lang) (template.HTML, error) {
	key := strings.Join([]string{"news", string(l), it.Date}, "|")
	if e, ok := s.cached(key); ok {
		return e.html, nil
	}
	html, err := s.renderer.Render(it.Body(l))
	if err != nil {
		return "", err
	}
	s.store(key, cacheEntry{html: html})
	return html, nil
}

// Page returns the Markdown page slug in l, falling back to the default
// language.
func (s *Store) Page(slug string, l lang.Lang) (Page, error) {
	slug = sanitizeSlug(slug)
	if slug == "" {
		return Page{}, ErrNotFound
	}
	key := strings.Join([]string{"page", string(l), slug}, "|")
	if e, ok := s.cached(key); ok {
		return e.page, nil
	}
	page, err := readPage(s.dir, slug, l, s.renderer)
	if err != nil {
		return Page{}, err
	}
	s.store(key, cacheEntry{page: page})
	return page, nil
}

// Invalidate drops every rendered entry.
func (s *Store) Invalidate() {
	s.mu.Lock()
	s.cache = map[string]cacheEntry{}
	s.mu.Unlock()
}

func (s *Store) cached(key string) (cacheEntry, bool) {
	s.mu.RLock()
	e, ok := s.cache[key]
	s.mu.RUnlock()
	if !ok || s.now().After(e.expires) {
		return cacheEntry{}, false
	}
	return e, true
}

func (s *Store) store(key string, e cacheEntry) {
	e.expires = s.now().Add(s.ttl)
	s.mu.Lock()
	s.cache[key] = e
	s.mu.Unlock()
}

func readYAML(path string, v any) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("content: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("content: parse %s: %w", path, err)
	}
	return nil
}
