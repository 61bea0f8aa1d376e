package contact

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/oklog/ulid/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/masahiro-koseki/masahiro-site/internal/observability"
)

var tracer = otel.Tracer("github.com/masahiro-koseki/masahiro-site/internal/contact")

// Service relays drafts through a Sender. Identical drafts submitted
// concurrently under the same session key share a single outbound call.
type Service struct {
	sender  Sender
	timeout time.Duration
	group   singleflight.Group
}

// NewService wraps sender. A nil sender logs submissions and reports
// success, which keeps local development usable without an endpoint.
func NewService(sender Sender) *Service {
	if sender == nil {
		sender = SenderFunc(logOnly)
	}
	return &Service{sender: sender, timeout: defaultTimeout}
}

// NewServiceForEndpoint builds a service posting to endpoint, or a logging
// service when endpoint is empty.
func NewServiceForEndpoint(endpoint string, timeout time.Duration) *Service {
	if endpoint == "" {
		return NewService(nil)
	}
	c := NewClient(endpoint)
	svc := NewService(c)
	if timeout > 0 {
		c.http.Timeout = timeout
		svc.timeout = timeout
	}
	return svc
}

// Sender returns a Sender bound to sessionKey for use with Form.Submit.
func (s *Service) Sender(sessionKey string) Sender {
	return SenderFunc(func(ctx context.Context, d Draft) error {
		return s.send(ctx, sessionKey, d)
	})
}

func (s *Service) send(ctx context.Context, sessionKey string, d Draft) error {
	key := sessionKey + ":" + draftDigest(d)
	// The shared call outlives any single caller; each caller still stops
	// waiting when its own request goes away.
	ch := s.group.DoChan(key, func() (any, error) {
		dctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
		defer cancel()
		return nil, s.deliver(dctx, d)
	})
	select {
	case res := <-ch:
		if res.Shared {
			observability.FromContext(ctx).Info("contact submission collapsed with in-flight duplicate")
		}
		return res.Err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Service) deliver(ctx context.Context, d Draft) error {
	id := ulid.Make().String()
	ctx, span := tracer.Start(ctx, "contact.submit")
	defer span.End()
	span.SetAttributes(
		attribute.String("contact.submission_id", id),
		attribute.Bool("contact.has_subject", d.Subject != ""),
	)

	logger := observability.FromContext(ctx).With(zap.String("submission_id", id))
	start := time.Now()
	err := s.sender.Send(ctx, d)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "submission failed")
		logger.Warn("contact submission failed", zap.Error(err), zap.Duration("latency", time.Since(start)))
		return err
	}
	span.SetStatus(codes.Ok, "")
	logger.Info("contact submission delivered", zap.Duration("latency", time.Since(start)))
	return nil
}

func logOnly(ctx context.Context, d Draft) error {
	observability.FromContext(ctx).Info("contact endpoint not configured; submission logged only",
		zap.Int("message_bytes", len(d.Message)),
	)
	return nil
}

func draftDigest(d Draft) string {
	h := sha256.New()
	for _, v := range []string{d.Name, d.Email, d.Subject, d.Message} {
		h.Write([]byte(v))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}
