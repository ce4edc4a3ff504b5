package carrier

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"coach-booking-engine/internal/infra"
	"coach-booking-engine/internal/pkg/clock"
	"coach-booking-engine/internal/pkg/config"

	"github.com/google/uuid"
)

const (
	BackoffFixed  = "fixed"
	BackoffLinear = "linear"

	requestIDHeader = "X-Request-ID"
	maxBodyBytes    = 4 << 20
)

// RawResponse is a successful carrier reply before normalization.
type RawResponse struct {
	StatusCode int
	Body       []byte
	Header     http.Header
	Attempts   int
	RequestID  string
}

// RetryableError is implemented by business errors found in a reply body.
type RetryableError interface {
	error
	Retryable() bool
}

// Inspector looks into a 2xx body for an embedded business error. It returns
// nil when the body carries none.
type Inspector func(body []byte) RetryableError

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithInspector(fn Inspector) Option {
	return func(c *Client) { c.inspect = fn }
}

// CallOption overrides client settings for one call.
type CallOption func(*callSettings)

type callSettings struct {
	timeout    time.Duration
	maxRetries int
}

func WithTimeout(d time.Duration) CallOption {
	return func(s *callSettings) { s.timeout = d }
}

func WithMaxRetries(n int) CallOption {
	return func(s *callSettings) { s.maxRetries = n }
}

// Client issues calls to the carrier API under the configured rate limits
// and retries transient failures.
type Client struct {
	cfg     config.CarrierConfig
	http    *http.Client
	limiter *Limiter
	logger  *slog.Logger
	inspect Inspector
}

func NewClient(cfg config.CarrierConfig, clk clock.Clock, logger *slog.Logger, opts ...Option) *Client {
	c := &Client{
		cfg:     cfg,
		http:    &http.Client{},
		limiter: NewLimiter(clk, cfg.BurstLimit, cfg.MinuteLimit, cfg.HourLimit),
		logger:  logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Call sends payload to the endpoint. Every failure is an *infra.ClientError.
func (c *Client) Call(ctx context.Context, ep Endpoint, payload Payload, opts ...CallOption) (*RawResponse, error) {
	settings := callSettings{timeout: c.cfg.Timeout, maxRetries: c.cfg.MaxRetries}
	for _, opt := range opts {
		opt(&settings)
	}

	if ok, window := c.limiter.Allow(); !ok {
		return nil, infra.WrapClientErr(c.logger, infra.KindRateLimit, ep.Name, "rate limit exhausted for "+window+" window", nil)
	}

	body := c.withCredentials(payload)
	requestID := uuid.NewString()

	var lastErr *infra.ClientError
	for attempt := 1; attempt <= settings.maxRetries+1; attempt++ {
		resp, err := c.attempt(ctx, ep, body, requestID, settings.timeout)
		if err == nil {
			resp.Attempts = attempt
			return resp, nil
		}
		err.Attempts = attempt
		lastErr = err

		if !err.Retryable || attempt > settings.maxRetries || ctx.Err() != nil {
			break
		}

		wait := c.backoff(attempt)
		c.logger.Warn("retrying carrier call",
			slog.String("endpoint", ep.Name),
			slog.Int("attempt", attempt),
			slog.Duration("wait_time", wait),
			slog.String("request_id", requestID))

		select {
		case <-ctx.Done():
			lastErr = infra.WrapClientErr(c.logger, infra.KindNetwork, ep.Name, "call cancelled while waiting to retry", ctx.Err())
			lastErr.Attempts = attempt
			return nil, lastErr
		case <-time.After(wait):
		}
	}
	return nil, lastErr
}

func (c *Client) attempt(ctx context.Context, ep Endpoint, payload Payload, requestID string, timeout time.Duration) (*RawResponse, *infra.ClientError) {
	reader, contentType, err := encode(ep.Encoding, payload)
	if err != nil {
		clientErr := infra.WrapClientErr(c.logger, infra.KindNetwork, ep.Name, "encode request", err)
		clientErr.Retryable = false
		return nil, clientErr
	}

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, ep.method(), c.cfg.Endpoint(ep.Path), reader)
	if err != nil {
		clientErr := infra.WrapClientErr(c.logger, infra.KindNetwork, ep.Name, "build request", err)
		clientErr.Retryable = false
		return nil, clientErr
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/xml, application/json")
	req.Header.Set("User-Agent", c.cfg.UserAgent)
	req.Header.Set(requestIDHeader, requestID)

	resp, err := c.http.Do(req)
	if err != nil {
		msg := "transport failure"
		if errors.Is(err, context.DeadlineExceeded) {
			msg = "attempt timed out"
		}
		return nil, infra.WrapClientErr(c.logger, infra.KindNetwork, ep.Name, msg, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, infra.WrapClientErr(c.logger, infra.KindNetwork, ep.Name, "read response body", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		clientErr := infra.WrapClientErr(c.logger, infra.KindHTTPStatus, ep.Name, fmt.Sprintf("unexpected status %d", resp.StatusCode), nil)
		clientErr.StatusCode = resp.StatusCode
		clientErr.Retryable = resp.StatusCode >= 500
		return nil, clientErr
	}

	if c.inspect != nil {
		if wireErr := c.inspect(raw); wireErr != nil {
			clientErr := infra.WrapClientErr(c.logger, infra.KindWire, ep.Name, "carrier rejected request", wireErr)
			clientErr.StatusCode = resp.StatusCode
			clientErr.Retryable = wireErr.Retryable()
			return nil, clientErr
		}
	}

	return &RawResponse{StatusCode: resp.StatusCode, Body: raw, Header: resp.Header, RequestID: requestID}, nil
}

func (c *Client) withCredentials(p Payload) Payload {
	out := p.clone()
	setDefault(out, "login", c.cfg.Login)
	setDefault(out, "password", c.cfg.Password)
	setDefault(out, "lang", c.cfg.Lang)
	return out
}

func setDefault(p Payload, key, value string) {
	if _, ok := p[key]; ok || value == "" {
		return
	}
	p[key] = value
}

func (c *Client) backoff(attempt int) time.Duration {
	if c.cfg.BackoffStrategy == BackoffLinear {
		return c.cfg.Backoff * time.Duration(attempt)
	}
	return c.cfg.Backoff
}
