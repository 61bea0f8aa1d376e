// Command site serves the portfolio and checks its content.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/masahiro-koseki/masahiro-site/internal/config"
	"github.com/masahiro-koseki/masahiro-site/internal/observability"
)

var envFile string

var rootCmd = &cobra.Command{
	Use:           "site",
	Short:         "Bilingual landscape photography portfolio",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file read before the process environment")
	rootCmd.AddCommand(serveCmd, checkCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "site:", err)
		os.Exit(1)
	}
}

// setup loads the configuration and builds the logger shared by every
// command.
func setup() (config.Config, *zap.Logger, error) {
	cfg, err := config.Load(config.WithEnvFile(envFile))
	if err != nil {
		return config.Config{}, nil, err
	}
	logger, err := observability.NewLogger(cfg.Log.Level, cfg.Dev())
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("build logger: %w", err)
	}
	return cfg, logger, nil
}
