package observability

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestRequestLoggerLogsCompletion(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	h := RequestLogger(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		FromContext(r.Context()).Info("inside")
		w.WriteHeader(http.StatusTeapot)
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/news/2025-11-05", nil))

	require.Equal(t, 2, logs.Len())
	entry := logs.All()[1]
	require.Equal(t, "request completed", entry.Message)
	require.Equal(t, zapcore.WarnLevel, entry.Level)
	require.EqualValues(t, http.StatusTeapot, entry.ContextMap()["status"])
	require.Equal(t, "/news/2025-11-05", logs.All()[0].ContextMap()["path"])
}

func TestRecovererAnswers500(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	h := RequestLogger(zap.New(core))(Recoverer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Equal(t, "panic recovered", logs.All()[0].Message)
}

func TestFromContextDefaultsToNoop(t *testing.T) {
	require.NotNil(t, FromContext(nil)) //nolint:staticcheck
}

func TestNewLoggerFallsBackOnBadLevel(t *testing.T) {
	l, err := NewLogger("loud", false)
	require.NoError(t, err)
	require.True(t, l.Core().Enabled(zapcore.InfoLevel))
	require.False(t, l.Core().Enabled(zapcore.DebugLevel))
}
