package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/masahiro-koseki/masahiro-site/internal/content"
	"github.com/masahiro-koseki/masahiro-site/internal/i18n"
	"github.com/masahiro-koseki/masahiro-site/internal/lang"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate content and locale catalogs without serving",
	Args:  cobra.NoArgs,
	RunE:  runCheck,
}

func runCheck(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	var problems []error
	bundle, err := i18n.Load(cfg.Paths.Locales, lang.Default, lang.Supported())
	if err != nil {
		problems = append(problems, err)
	} else {
		for _, l := range bundle.Supported() {
			if missing := bundle.Missing(l); len(missing) > 0 {
				problems = append(problems, fmt.Errorf("locale %s is missing %d keys: %v", l, len(missing), missing))
			}
		}
	}
	// Open validates the site manifest and the news log.
	if _, err := content.Open(cfg.Paths.Content, cfg.Site.ContentCacheTTL); err != nil {
		problems = append(problems, err)
	}
	if err := errors.Join(problems...); err != nil {
		return err
	}
	logger.Info("content ok", zap.String("content", cfg.Paths.Content), zap.String("locales", cfg.Paths.Locales))
	fmt.Fprintln(cmd.OutOrStdout(), "ok")
	return nil
}
