// Package httpserver wires the router, middleware stack and page handlers.
package httpserver

import (
	"errors"
	"net/http"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/masahiro-koseki/masahiro-site/internal/contact"
	"github.com/masahiro-koseki/masahiro-site/internal/content"
	"github.com/masahiro-koseki/masahiro-site/internal/gallery"
	"github.com/masahiro-koseki/masahiro-site/internal/handlers"
	"github.com/masahiro-koseki/masahiro-site/internal/i18n"
	custommw "github.com/masahiro-koseki/masahiro-site/internal/middleware"
	"github.com/masahiro-koseki/masahiro-site/internal/observability"
)

// Config holds runtime options for the site HTTP server.
type Config struct {
	Address           string
	TemplatesDir      string
	PublicDir         string
	BaseURL           string
	Dev               bool
	ReadTimeout       time.Duration
	ReadHeaderTimeout time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration

	Bundle   *i18n.Bundle
	Content  *content.Store
	Contact  *contact.Service
	Sessions *custommw.Sessions
	Locale   custommw.LocaleOptions

	Analytics handlers.Analytics
	Logger    *zap.Logger
	// ScrollLock counts viewers open across all in-flight requests. Pages
	// read their own viewer's state; the counter is a process diagnostic.
	// A nil lock gets a private one.
	ScrollLock *gallery.ScrollLock
}

// server holds the dependencies of the page handlers.
type server struct {
	cfg      Config
	views    *views
	content  *content.Store
	contact  *contact.Service
	bundle   *i18n.Bundle
	lock     *gallery.ScrollLock
	sessions *custommw.Sessions
}

// New constructs the HTTP server with middleware stack and routes.
func New(cfg Config) (*http.Server, error) {
	if cfg.Bundle == nil || cfg.Content == nil {
		return nil, errors.New("httpserver: bundle and content are required")
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Contact == nil {
		cfg.Contact = contact.NewService(nil)
	}
	if cfg.Sessions == nil {
		cfg.Sessions = custommw.NewSessions("", false, cfg.Logger)
	}
	if cfg.ScrollLock == nil {
		cfg.ScrollLock = &gallery.ScrollLock{}
	}
	v, err := newViews(cfg.TemplatesDir, cfg.Dev, cfg.Bundle)
	if err != nil {
		return nil, err
	}
	s := &server{
		cfg:      cfg,
		views:    v,
		content:  cfg.Content,
		contact:  cfg.Contact,
		bundle:   cfg.Bundle,
		lock:     cfg.ScrollLock,
		sessions: cfg.Sessions,
	}

	return &http.Server{
		Addr:              cfg.Address,
		Handler:           s.routes(),
		ReadTimeout:       durationOr(cfg.ReadTimeout, 15*time.Second),
		ReadHeaderTimeout: durationOr(cfg.ReadHeaderTimeout, 10*time.Second),
		WriteTimeout:      durationOr(cfg.WriteTimeout, 15*time.Second),
		IdleTimeout:       durationOr(cfg.IdleTimeout, 60*time.Second),
		ErrorLog:          zap.NewStdLog(cfg.Logger),
	}, nil
}

func (s *server) routes() http.Handler {
	router := chi.NewRouter()
	router.Use(chimw.RequestID)
	// If deployed behind a trusted reverse proxy, RealIP uses X-Forwarded-For
	// to determine the client IP.
	router.Use(chimw.RealIP)
	router.Use(observability.RequestLogger(s.cfg.Logger))
	router.Use(observability.Trace)
	router.Use(observability.Recoverer)
	router.Use(chimw.Compress(5))
	router.Use(chimw.Timeout(30 * time.Second))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.Handle("/assets/*", custommw.AssetsWithCache(filepath.Join(s.cfg.PublicDir, "assets"), "/assets", 7*24*time.Hour))
	router.Handle("/images/*", custommw.AssetsWithCache(filepath.Join(s.cfg.PublicDir, "images"), "/images", 30*24*time.Hour))

	router.Group(func(r chi.Router) {
		r.Use(s.sessions.Middleware)
		r.Use(custommw.LimitForm(maxFormBody))
		r.Use(custommw.CSRF(s.sessions.Secure()))
		r.Use(custommw.Locale(s.bundle, s.cfg.Locale))
		r.Use(custommw.HTMX)

		r.Get("/", s.handleHome)
		r.Get("/portfolio/{category}", s.handlePortfolio)
		r.Get("/preview", s.handlePreview)
		r.Get("/preview/{index}", s.handlePreviewSpread)
		r.Get("/news/{date}", s.handleNewsDetail)
		r.Post("/contact", s.handleContact)
		r.Get("/thanks", s.handleThanks)
		r.NotFound(s.handleNotFound)
	})
	return router
}

func durationOr(d, fallback time.Duration) time.Duration {
	if d > 0 {
		return d
	}
	return fallback
}
