package contact

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		goleak.IgnoreTopFunction("net/http.(*persistConn).readLoop"),
		goleak.IgnoreTopFunction("net/http.(*persistConn).writeLoop"),
		goleak.IgnoreTopFunction("internal/poll.runtime_pollWait"),
	)
}

type countingSender struct {
	calls atomic.Int32
	err   error
}

func (c *countingSender) Send(context.Context, Draft) error {
	c.calls.Add(1)
	return c.err
}

func validDraft() Draft {
	return Draft{Name: "Koseki", Email: "hello@example.com", Message: "撮影のご依頼"}
}

func TestValidateRequiredFields(t *testing.T) {
	cases := map[string]struct {
		draft Draft
		field Field
	}{
		"empty name":    {Draft{Email: "a@b.co", Message: "hi"}, FieldName},
		"empty email":   {Draft{Name: "a", Message: "hi"}, FieldEmail},
		"empty message": {Draft{Name: "a", Email: "a@b.co", Message: "   "}, FieldMessage},
		"bad email":     {Draft{Name: "a", Email: "abc", Message: "hi"}, FieldEmail},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			p := tc.draft.Validate()
			require.True(t, p.Has(tc.field), "problems: %v", p)
		})
	}
	require.Empty(t, validDraft().Validate())
}

func TestNormalizeFoldsFullWidthAndIDNA(t *testing.T) {
	d := Draft{Name: " 小関 ", Email: "ｈｅｌｌｏ＠例え.テスト", Message: "x"}.Normalize()
	require.Equal(t, "小関", d.Name)
	require.Equal(t, "hello@xn--r8jz45g.xn--zckzah", d.Email)
	require.Empty(t, d.Validate())
}

func TestFormValidationMakesNoCall(t *testing.T) {
	s := &countingSender{}
	for _, d := range []Draft{
		{Email: "a@b.co", Message: "x"},
		{Name: "a", Email: "a@b.co"},
		{Name: "a", Email: "abc", Message: "x"},
	} {
		f := NewForm(d)
		require.Equal(t, StatusIdle, f.Submit(context.Background(), s))
		require.Equal(t, NoticeInvalid, f.Notice)
		require.NotEmpty(t, f.Problems)
	}
	require.Zero(t, s.calls.Load())
}

func TestFormSuccessClearsDraft(t *testing.T) {
	s := &countingSender{}
	f := NewForm(validDraft())
	require.Equal(t, StatusSuccess, f.Submit(context.Background(), s))
	require.True(t, f.Draft.IsZero())
	require.Equal(t, NoticeSuccess, f.Notice)
	require.EqualValues(t, 1, s.calls.Load())
}

func TestFormFailureKeepsDraft(t *testing.T) {
	s := &countingSender{err: ErrRejected}
	f := NewForm(validDraft())
	require.Equal(t, StatusError, f.Submit(context.Background(), s))
	require.Equal(t, validDraft(), f.Draft)
	require.Equal(t, NoticeFailure, f.Notice)
	require.ErrorIs(t, f.Err, ErrRejected)
	require.EqualValues(t, 1, s.calls.Load(), "no automatic retry")
}

func TestFormIgnoresSubmitWhileSending(t *testing.T) {
	s := &countingSender{}
	f := NewForm(validDraft())
	f.Status = StatusSending
	f.Submit(context.Background(), s)
	require.Zero(t, s.calls.Load())
}

func TestClientPostsMultipart(t *testing.T) {
	var got map[string]string
	var accept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		accept = r.Header.Get("Accept")
		require.NoError(t, r.ParseMultipartForm(1<<20))
		got = map[string]string{}
		for k, v := range r.MultipartForm.Value {
			got[k] = v[0]
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	d := validDraft()
	d.Subject = "Licensing"
	require.NoError(t, NewClient(srv.URL).Send(context.Background(), d))
	require.Equal(t, "application/json", accept)
	require.Equal(t, map[string]string{
		"name":    d.Name,
		"email":   d.Email,
		"subject": d.Subject,
		"message": d.Message,
	}, got)
}

func TestClientNon2xxIsRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"spam"}`, http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	f := NewForm(validDraft())
	f.Submit(context.Background(), NewClient(srv.URL))
	require.Equal(t, StatusError, f.Status)
	require.ErrorIs(t, f.Err, ErrRejected)
	require.Equal(t, validDraft(), f.Draft)
}

func TestClientTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	err := NewClient(url).Send(context.Background(), validDraft())
	require.Error(t, err)
	require.False(t, errors.Is(err, ErrRejected))
}

func TestServiceCollapsesConcurrentDuplicates(t *testing.T) {
	release := make(chan struct{})
	var calls atomic.Int32
	svc := NewService(SenderFunc(func(ctx context.Context, d Draft) error {
		calls.Add(1)
		<-release
		return nil
	}))

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = svc.Sender("session-1").Send(context.Background(), validDraft())
		}()
	}
	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()
	require.EqualValues(t, 1, calls.Load())
}

func TestServiceDuplicateSurvivesFirstCallerCancel(t *testing.T) {
	release := make(chan struct{})
	var calls atomic.Int32
	svc := NewService(SenderFunc(func(ctx context.Context, d Draft) error {
		calls.Add(1)
		select {
		case <-release:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}))

	ctx, cancel := context.WithCancel(context.Background())
	first := make(chan error, 1)
	go func() { first <- svc.Sender("session-1").Send(ctx, validDraft()) }()
	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, 5*time.Millisecond)

	second := make(chan error, 1)
	go func() { second <- svc.Sender("session-1").Send(context.Background(), validDraft()) }()
	time.Sleep(20 * time.Millisecond)

	cancel()
	require.ErrorIs(t, <-first, context.Canceled)
	close(release)
	require.NoError(t, <-second)
	require.EqualValues(t, 1, calls.Load())
}

func TestServiceWithoutEndpointLogsAndSucceeds(t *testing.T) {
	svc := NewServiceForEndpoint("", 0)
	f := NewForm(validDraft())
	require.Equal(t, StatusSuccess, f.Submit(context.Background(), svc.Sender("s")))
}
