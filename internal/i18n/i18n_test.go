package i18n

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/masahiro-koseki/masahiro-site/internal/lang"
)

func TestResolveHonorsQValues(t *testing.T) {
	b, err := Load("../../locales", lang.JA, lang.Supported())
	require.NoError(t, err)
	require.Equal(t, lang.EN, b.Resolve("ja;q=0.8, en;q=0.9"))
	require.Equal(t, lang.JA, b.Resolve("fr-FR, ja-JP;q=0.5"))
	require.Equal(t, lang.JA, b.Resolve("en;q=0"))
	require.Equal(t, lang.JA, b.Resolve(""))
}

func TestShippedCatalogsAreComplete(t *testing.T) {
	b, err := Load("../../locales", lang.JA, lang.Supported())
	require.NoError(t, err)
	require.Empty(t, b.Missing(lang.EN))
	require.Equal(t, "Home", b.T(lang.EN, "nav.home"))
	require.Equal(t, "ホーム", b.T(lang.JA, "nav.home"))
}

func TestTFallsBack(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ja.json"), []byte(`{"a":"あ","b":"び"}`), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "en.json"), []byte(`{"a":"A"}`), 0o600))
	b, err := Load(dir, lang.JA, nil)
	require.NoError(t, err)
	require.Equal(t, "A", b.T(lang.EN, "a"))
	require.Equal(t, "び", b.T(lang.EN, "b"))
	require.Equal(t, "c", b.T(lang.EN, "c"))
	require.Equal(t, []string{"b"}, b.Missing(lang.EN))
}

func TestLoadRequiresFallback(t *testing.T) {
	_, err := Load(t.TempDir(), lang.JA, nil)
	require.Error(t, err)
}
