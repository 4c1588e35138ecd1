package google

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sells-group/places-cli/internal/resilience"
)

// RawResponse is an HTTP status and the unparsed body.
type RawResponse struct {
	StatusCode int
	Body       []byte
}

// Transport performs GET requests against fully built URLs.
type Transport interface {
	Get(ctx context.Context, url string) (*RawResponse, error)
}

// TransportFunc adapts a function to Transport.
type TransportFunc func(ctx context.Context, url string) (*RawResponse, error)

// Get calls f.
func (f TransportFunc) Get(ctx context.Context, url string) (*RawResponse, error) {
	return f(ctx, url)
}

// HTTPTransport is the default Transport over net/http.
type HTTPTransport struct {
	http     *http.Client
	limiter  *rate.Limiter
	breakers *resilience.HostBreakers
}

// TransportOption configures an HTTPTransport.
type TransportOption func(*HTTPTransport)

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) TransportOption {
	return func(t *HTTPTransport) {
		t.http = hc
	}
}

// WithRateLimit caps outgoing requests per second. rps <= 0 leaves the
// transport unlimited.
func WithRateLimit(rps float64) TransportOption {
	return func(t *HTTPTransport) {
		if rps > 0 {
			t.limiter = rate.NewLimiter(rate.Limit(rps), 1)
		}
	}
}

// WithLimiter sets the rate limiter directly.
func WithLimiter(l *rate.Limiter) TransportOption {
	return func(t *HTTPTransport) {
		t.limiter = l
	}
}

// WithCircuitBreaker guards each upstream host with its own breaker. 5xx,
// 408 and 429 responses and network failures count as breaker failures.
func WithCircuitBreaker(cfg resilience.CircuitBreakerConfig) TransportOption {
	return func(t *HTTPTransport) {
		t.breakers = resilience.NewHostBreakers(cfg)
	}
}

// NewHTTPTransport creates a transport with a 10 second timeout.
func NewHTTPTransport(opts ...TransportOption) *HTTPTransport {
	t := &HTTPTransport{
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
	for _, o := range opts {
		o(t)
	}
	return t
}

// Breakers returns the per-host breakers, or nil when none are configured.
func (t *HTTPTransport) Breakers() *resilience.HostBreakers {
	return t.breakers
}

// Get issues the request. Non-2xx responses are returned as RawResponse
// values, not errors, so the decoder can report them.
func (t *HTTPTransport) Get(ctx context.Context, rawURL string) (*RawResponse, error) {
	if t.limiter != nil {
		if err := t.limiter.Wait(ctx); err != nil {
			return nil, eris.Wrap(err, "google: rate limit")
		}
	}

	if t.breakers == nil {
		return t.do(ctx, rawURL)
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, eris.Wrap(err, "google: parse url")
	}
	raw, err := resilience.ExecuteVal(ctx, t.breakers.For(u.Host), func(ctx context.Context) (*RawResponse, error) {
		raw, err := t.do(ctx, rawURL)
		if err == nil && resilience.IsTransientHTTPStatus(raw.StatusCode) {
			return raw, resilience.NewTransientError(eris.Errorf("google: status %d", raw.StatusCode), raw.StatusCode)
		}
		return raw, err
	})

	var te *resilience.TransientError
	if raw != nil && errors.As(err, &te) && te.StatusCode != 0 {
		return raw, nil
	}
	if err != nil {
		return nil, eris.Wrapf(err, "google: get %s", u.Host)
	}
	return raw, nil
}

func (t *HTTPTransport) do(ctx context.Context, rawURL string) (*RawResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "google: create request")
	}

	resp, err := t.http.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "google: send request")
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "google: read response")
	}

	zap.L().Debug("google: response",
		zap.String("path", req.URL.Path),
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(body)),
	)
	return &RawResponse{StatusCode: resp.StatusCode, Body: body}, nil
}
