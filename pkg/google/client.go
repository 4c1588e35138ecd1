// Package google is a client for the Places and Geocoding web services. It
// decodes both typed and loose response schemas into one model, follows page
// tokens with a bounded retry, and enriches result batches concurrently.
package google

import (
	"time"

	"github.com/google/uuid"

	"github.com/sells-group/places-cli/internal/resilience"
)

// Client performs Places and Geocoding operations. It is safe for
// concurrent use.
type Client struct {
	apiKey      string
	placesBase  string
	geocodeBase string
	language    string
	transport   Transport
	pageRetry   resilience.RetryConfig
	fanOutLimit int
	reverseRes  int
}

// Option configures the client.
type Option func(*Client)

// WithTransport overrides the default HTTPTransport.
func WithTransport(t Transport) Option {
	return func(c *Client) {
		c.transport = t
	}
}

// WithPlacesBaseURL overrides the Places service root.
func WithPlacesBaseURL(u string) Option {
	return func(c *Client) {
		c.placesBase = withSlash(u)
	}
}

// WithGeocodeBaseURL overrides the Geocoding service root.
func WithGeocodeBaseURL(u string) Option {
	return func(c *Client) {
		c.geocodeBase = withSlash(u)
	}
}

// WithLanguage sets the default result language for calls that do not set one.
func WithLanguage(lang string) Option {
	return func(c *Client) {
		c.language = lang
	}
}

// WithPageRetry sets how page-token requests are retried while the token is
// not yet servable. Non-positive values keep 5 attempts and 300ms.
func WithPageRetry(maxAttempts int, delay time.Duration) Option {
	return func(c *Client) {
		def := resilience.PageRetryConfig(0, 0)
		if maxAttempts <= 0 {
			maxAttempts = def.MaxAttempts
		}
		if delay <= 0 {
			delay = def.Delay
		}
		c.pageRetry = resilience.FixedRetryConfig(maxAttempts, delay)
	}
}

// WithFanOutLimit bounds concurrent enrichment calls. 0 means one goroutine
// per item.
func WithFanOutLimit(n int) Option {
	return func(c *Client) {
		c.fanOutLimit = n
	}
}

// WithReverseResolution snaps reverse-geocode coordinates to the center of
// their H3 cell at res before the lookup. 0 disables snapping.
func WithReverseResolution(res int) Option {
	return func(c *Client) {
		c.reverseRes = res
	}
}

// NewClient creates a client with the default service roots and transport.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:      apiKey,
		placesBase:  DefaultPlacesBaseURL,
		geocodeBase: DefaultGeocodeBaseURL,
		pageRetry:   resilience.PageRetryConfig(0, 0),
	}
	for _, o := range opts {
		o(c)
	}
	if c.transport == nil {
		c.transport = NewHTTPTransport()
	}
	return c
}

// NewSessionToken returns a token grouping autocomplete and details calls
// into one billing session.
func NewSessionToken() string {
	return uuid.NewString()
}

func (c *Client) lang(l string) string {
	if l != "" {
		return l
	}
	return c.language
}
