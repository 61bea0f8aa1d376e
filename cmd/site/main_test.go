package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func useRepoPaths(t *testing.T) {
	t.Helper()
	t.Setenv("SITE_ENV", "test")
	t.Setenv("SITE_CONTENT_DIR", "../../content")
	t.Setenv("SITE_LOCALES_DIR", "../../locales")
	t.Setenv("LOG_LEVEL", "error")
}

func TestCheckAcceptsShippedContent(t *testing.T) {
	useRepoPaths(t)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"check", "--env-file", ""})
	require.NoError(t, rootCmd.Execute())
	require.Equal(t, "ok\n", out.String())
}

func TestCheckReportsBrokenNews(t *testing.T) {
	useRepoPaths(t)
	dir := t.TempDir()
	site, err := os.ReadFile("../../content/site.yaml")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "site.yaml"), site, 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "news.yaml"), []byte(`
- date: "2025-11-05"
  title_ja: a
  title_en: a
- date: "2025-11-05"
  title_ja: b
  title_en: b
`), 0o600))
	t.Setenv("SITE_CONTENT_DIR", dir)

	rootCmd.SetArgs([]string{"check", "--env-file", ""})
	require.Error(t, rootCmd.Execute())
}

func TestServerConfigMapsSettings(t *testing.T) {
	useRepoPaths(t)
	t.Setenv("SITE_NEGOTIATE_LANGUAGE", "true")
	t.Setenv("SITE_GA_MEASUREMENT_ID", "G-TEST")
	envFile = ""
	cfg, logger, err := setup()
	require.NoError(t, err)

	sc := serverConfig(cfg, nil, nil, logger)
	require.True(t, sc.Locale.Negotiate)
	require.True(t, sc.Locale.Persist)
	require.Equal(t, "G-TEST", sc.Analytics.GA4MeasurementID)
	require.NotNil(t, sc.Contact)
	require.NotNil(t, sc.Sessions)
}
