package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/masahiro-koseki/masahiro-site/internal/config"
	"github.com/masahiro-koseki/masahiro-site/internal/contact"
	"github.com/masahiro-koseki/masahiro-site/internal/content"
	"github.com/masahiro-koseki/masahiro-site/internal/handlers"
	"github.com/masahiro-koseki/masahiro-site/internal/httpserver"
	"github.com/masahiro-koseki/masahiro-site/internal/i18n"
	"github.com/masahiro-koseki/masahiro-site/internal/lang"
	custommw "github.com/masahiro-koseki/masahiro-site/internal/middleware"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server (default)",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	bundle, err := i18n.Load(cfg.Paths.Locales, lang.Default, lang.Supported())
	if err != nil {
		return err
	}
	store, err := content.Open(cfg.Paths.Content, cfg.Site.ContentCacheTTL)
	if err != nil {
		return err
	}
	if cfg.Contact.Endpoint == "" {
		logger.Warn("contact endpoint not configured; submissions are only logged")
	}

	srv, err := httpserver.New(serverConfig(cfg, bundle, store, logger))
	if err != nil {
		return err
	}

	var watcher *content.Watcher
	if cfg.Dev() {
		watcher, err = content.NewWatcher(logger, func() {
			if err := store.Reload(); err != nil {
				logger.Error("content reload failed; keeping previous content", zap.Error(err))
				return
			}
			logger.Info("content reloaded")
		}, cfg.Paths.Content)
		if err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("site listening",
			zap.String("addr", cfg.Server.Addr),
			zap.String("env", cfg.Env),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	if watcher != nil {
		g.Go(func() error { return watcher.Run(ctx) })
	}
	return g.Wait()
}

func serverConfig(cfg config.Config, bundle *i18n.Bundle, store *content.Store, logger *zap.Logger) httpserver.Config {
	return httpserver.Config{
		Address:           cfg.Server.Addr,
		TemplatesDir:      cfg.Paths.Templates,
		PublicDir:         cfg.Paths.Public,
		BaseURL:           cfg.BaseURL,
		Dev:               cfg.Dev(),
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		Bundle:            bundle,
		Content:           store,
		Contact:           contact.NewServiceForEndpoint(cfg.Contact.Endpoint, cfg.Contact.Timeout),
		Sessions:          custommw.NewSessions(cfg.Session.SigningKey, cfg.Session.Secure, logger),
		Locale: custommw.LocaleOptions{
			Negotiate: cfg.Site.NegotiateLanguage,
			Persist:   cfg.Site.LanguageCookie,
			Secure:    cfg.Session.Secure,
		},
		Analytics: handlers.Analytics{GA4MeasurementID: cfg.Site.GA4MeasurementID},
		Logger:    logger,
	}
}
