package httpserver

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/masahiro-koseki/masahiro-site/internal/i18n"
	"github.com/masahiro-koseki/masahiro-site/internal/lang"
	"github.com/masahiro-koseki/masahiro-site/internal/observability"
)

// views parses one template set per page: the shared layouts and partials
// plus templates/pages/<name>.tmpl. In dev mode sets are reparsed on every
// render.
type views struct {
	dir    string
	dev    bool
	bundle *i18n.Bundle

	mu    sync.RWMutex
	cache map[string]*template.Template
}

func newViews(dir string, dev bool, bundle *i18n.Bundle) (*views, error) {
	v := &views{dir: dir, dev: dev, bundle: bundle, cache: map[string]*template.Template{}}
	if dev {
		return v, nil
	}
	pages, err := filepath.Glob(filepath.Join(dir, "pages", "*.tmpl"))
	if err != nil {
		return nil, err
	}
	if len(pages) == 0 {
		return nil, fmt.Errorf("httpserver: no page templates under %s", dir)
	}
	for _, p := range pages {
		name := strings.TrimSuffix(filepath.Base(p), ".tmpl")
		t, err := v.parse(name)
		if err != nil {
			return nil, err
		}
		v.cache[name] = t
	}
	return v, nil
}

func (v *views) funcs() template.FuncMap {
	return template.FuncMap{
		"t":   func(l lang.Lang, key string) string { return v.bundle.T(l, key) },
		"now": time.Now,
	}
}

func (v *views) parse(page string) (*template.Template, error) {
	var files []string
	for _, dir := range []string{"layouts", "partials"} {
		matches, err := filepath.Glob(filepath.Join(v.dir, dir, "*.tmpl"))
		if err != nil {
			return nil, err
		}
		files = append(files, matches...)
	}
	pageFile := filepath.Join(v.dir, "pages", page+".tmpl")
	if _, err := os.Stat(pageFile); err != nil {
		return nil, fmt.Errorf("httpserver: page template %q: %w", page, err)
	}
	files = append(files, pageFile)
	t, err := template.New(page).Funcs(v.funcs()).ParseFiles(files...)
	if err != nil {
		return nil, fmt.Errorf("httpserver: parse %s: %w", page, err)
	}
	return t, nil
}

func (v *views) lookup(page string) (*template.Template, error) {
	if v.dev {
		return v.parse(page)
	}
	v.mu.RLock()
	t, ok := v.cache[page]
	v.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("httpserver: unknown page %q", page)
	}
	return t, nil
}

// render executes the base layout of page, or the named fragment when
// fragment is non-empty. Output is buffered so a template error never
// leaves a half-written page.
func (v *views) render(w http.ResponseWriter, r *http.Request, status int, page, fragment string, data any) {
	t, err := v.lookup(page)
	if err == nil {
		name := "base"
		if fragment != "" {
			name = fragment
		}
		var buf bytes.Buffer
		if err = t.ExecuteTemplate(&buf, name, data); err == nil {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.WriteHeader(status)
			_, _ = buf.WriteTo(w)
			return
		}
	}
	observability.FromContext(r.Context()).Error("render failed",
		zap.String("page", page),
		zap.String("fragment", fragment),
		zap.Error(err),
	)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}
