package contact

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

// Default HTTP timeout for the form endpoint.
const defaultTimeout = 8 * time.Second

// ErrRejected is returned when the endpoint answers with a non-2xx status.
var ErrRejected = errors.New("contact: submission rejected")

// Sender delivers a validated draft.
type Sender interface {
	Send(ctx context.Context, d Draft) error
}

// SenderFunc adapts a function to Sender.
type SenderFunc func(ctx context.Context, d Draft) error

func (f SenderFunc) Send(ctx context.Context, d Draft) error { return f(ctx, d) }

// Client posts drafts as multipart form bodies to a form-processing service.
type Client struct {
	endpoint string
	http     *http.Client
}

// NewClient constructs a client for endpoint.
func NewClient(endpoint string) *Client {
	return &Client{
		endpoint: strings.TrimSpace(endpoint),
		http:     &http.Client{Timeout: defaultTimeout},
	}
}

// WithHTTPClient overrides the HTTP client (primarily for tests).
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	if hc != nil {
		c.http = hc
	}
	return c
}

// Endpoint returns the configured URL.
func (c *Client) Endpoint() string { return c.endpoint }

// Send posts the draft once. Any 2xx response is success; every other
// status and any transport error is a failure. There is no retry.
func (c *Client) Send(ctx context.Context, d Draft) error {
	if c == nil || c.endpoint == "" {
		return errors.New("contact: endpoint not configured")
	}
	body, contentType, err := encodeMultipart(d)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("contact: post: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: status %d: %s", ErrRejected, resp.StatusCode, drainError(resp.Body))
	}
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
	return nil
}

func encodeMultipart(d Draft) (io.Reader, string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fields := []struct{ name, value string }{
		{"name", d.Name},
		{"email", d.Email},
		{"subject", d.Subject},
		{"message", d.Message},
	}
	for _, f := range fields {
		if err := mw.WriteField(f.name, f.value); err != nil {
			return nil, "", err
		}
	}
	if err := mw.Close(); err != nil {
		return nil, "", err
	}
	return &buf, mw.FormDataContentType(), nil
}

func drainError(r io.Reader) string {
	if r == nil {
		return ""
	}
	b, _ := io.ReadAll(io.LimitReader(r, 256))
	return strings.TrimSpace(string(b))
}
