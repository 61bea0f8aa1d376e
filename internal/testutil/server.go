// Package testutil starts the site HTTP stack against the shipped templates,
// locales and content for integration tests.
package testutil

import (
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"github.com/masahiro-koseki/masahiro-site/internal/contact"
	"github.com/masahiro-koseki/masahiro-site/internal/content"
	"github.com/masahiro-koseki/masahiro-site/internal/gallery"
	"github.com/masahiro-koseki/masahiro-site/internal/httpserver"
	"github.com/masahiro-koseki/masahiro-site/internal/i18n"
	"github.com/masahiro-koseki/masahiro-site/internal/lang"
	custommw "github.com/masahiro-koseki/masahiro-site/internal/middleware"
)

// ServerOption customises the HTTP server configuration for tests.
type ServerOption func(*httpserver.Config)

// WithContactSender routes contact submissions to sender.
func WithContactSender(sender contact.Sender) ServerOption {
	return func(cfg *httpserver.Config) {
		cfg.Contact = contact.NewService(sender)
	}
}

// WithLocale overrides the language selection options.
func WithLocale(opts custommw.LocaleOptions) ServerOption {
	return func(cfg *httpserver.Config) {
		cfg.Locale = opts
	}
}

// WithScrollLock shares lock with the lightbox viewers.
func WithScrollLock(lock *gallery.ScrollLock) ServerOption {
	return func(cfg *httpserver.Config) {
		cfg.ScrollLock = lock
	}
}

// WithBaseURL sets the absolute origin used for canonical links.
func WithBaseURL(u string) ServerOption {
	return func(cfg *httpserver.Config) {
		cfg.BaseURL = u
	}
}

// Root returns the module root directory.
func Root() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "..", "..")
}

// NewServer constructs an httptest server running the site HTTP stack with sensible defaults.
func NewServer(t testing.TB, opts ...ServerOption) *httptest.Server {
	t.Helper()

	root := Root()
	bundle, err := i18n.Load(filepath.Join(root, "locales"), lang.Default, lang.Supported())
	if err != nil {
		t.Fatalf("load locales: %v", err)
	}
	store, err := content.Open(filepath.Join(root, "content"), time.Minute)
	if err != nil {
		t.Fatalf("open content: %v", err)
	}
	logger := zaptest.NewLogger(t)

	cfg := httpserver.Config{
		Address:      ":0",
		TemplatesDir: filepath.Join(root, "templates"),
		PublicDir:    filepath.Join(root, "public"),
		Bundle:       bundle,
		Content:      store,
		Contact:      contact.NewService(nil),
		Sessions:     custommw.NewSessions("test-signing-key", false, logger),
		Locale:       custommw.LocaleOptions{Persist: true},
		Logger:       logger,
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	srv, err := httpserver.New(cfg)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	ts := httptest.NewServer(srv.Handler)
	t.Cleanup(ts.Close)
	return ts
}

// NewClient returns a client with a cookie jar that does not follow
// redirects, so tests can assert on them.
func NewClient(t testing.TB) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookie jar: %v", err)
	}
	return &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
		Timeout: 10 * time.Second,
	}
}
