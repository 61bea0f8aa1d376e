package lang

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

type memory struct {
	values map[string]string
}

func (m *memory) Get(key string) (string, error) {
	v, ok := m.values[key]
	if !ok {
		return "", errors.New("missing")
	}
	return v, nil
}

func (m *memory) Set(key, value string) error {
	if m.values == nil {
		m.values = map[string]string{}
	}
	m.values[key] = value
	return nil
}

type panicky struct{}

func (panicky) Get(string) (string, error) { panic("storage disabled") }
func (panicky) Set(string, string) error   { panic("storage disabled") }

func TestStoreDefaultsToJapanese(t *testing.T) {
	s := NewStore(&memory{})
	s.Restore()
	require.Equal(t, JA, s.Current())
}

func TestStoreRoundTrip(t *testing.T) {
	backend := &memory{}
	NewStore(backend).Set(EN)

	reloaded := NewStore(backend)
	reloaded.Restore()
	require.Equal(t, EN, reloaded.Current())
	require.Equal(t, "en", backend.values[StorageKey])
}

func TestStoreIgnoresInvalidPersistedValue(t *testing.T) {
	s := NewStore(&memory{values: map[string]string{StorageKey: "fr"}})
	s.Restore()
	require.Equal(t, Default, s.Current())
}

func TestStoreSurvivesFailingPersistence(t *testing.T) {
	for name, p := range map[string]Persistence{
		"disabled": Disabled{},
		"panics":   panicky{},
	} {
		t.Run(name, func(t *testing.T) {
			s := NewStore(p)
			require.NotPanics(t, s.Restore)
			require.Equal(t, JA, s.Current())
			require.NotPanics(t, func() { s.Set(EN) })
			require.Equal(t, EN, s.Current())
		})
	}
}

func TestStoreToggleAndUnsupported(t *testing.T) {
	s := NewStore(nil)
	require.Equal(t, EN, s.Toggle())
	require.Equal(t, JA, s.Toggle())
	s.Set(Lang("de"))
	require.Equal(t, JA, s.Current())
}

func TestParse(t *testing.T) {
	l, ok := Parse(" EN ")
	require.True(t, ok)
	require.Equal(t, EN, l)
	_, ok = Parse("")
	require.False(t, ok)
}

func TestCookiePersistenceRoundTrip(t *testing.T) {
	rec := httptest.NewRecorder()
	NewStore(CookiePersistence{W: rec, R: httptest.NewRequest(http.MethodGet, "/", nil)}).Set(EN)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, StorageKey, cookies[0].Name)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	s := NewStore(CookiePersistence{R: req})
	s.Restore()
	require.Equal(t, EN, s.Current())
}
