package main

import (
	"context"
	"net/http"

	"github.com/sells-group/places-cli/internal/cache"
	"github.com/sells-group/places-cli/internal/config"
	"github.com/sells-group/places-cli/internal/resilience"
	"github.com/sells-group/places-cli/pkg/google"
)

// clientEnv is a configured client and the resources behind it.
type clientEnv struct {
	Client   *google.Client
	Breakers *resilience.HostBreakers
	Cache    *cache.Store
}

// Close releases the response cache, if any.
func (e *clientEnv) Close() {
	if e.Cache != nil {
		e.Cache.Close() //nolint:errcheck
	}
}

// initClient validates c for mode and builds the transport chain:
// rate limit and circuit breaker over HTTP, with the SQLite cache in front
// when enabled.
func initClient(ctx context.Context, c *config.Config, mode string) (*clientEnv, error) {
	if err := c.Validate(mode); err != nil {
		return nil, err
	}

	httpTransport := google.NewHTTPTransport(
		google.WithHTTPClient(&http.Client{Timeout: c.Google.Timeout()}),
		google.WithRateLimit(c.Google.RateLimitRPS),
		google.WithCircuitBreaker(resilience.CircuitConfig(c.Circuit.FailureThreshold, c.Circuit.ResetTimeoutSecs)),
	)

	var transport google.Transport = httpTransport
	env := &clientEnv{Breakers: httpTransport.Breakers()}
	if c.Cache.Enabled {
		st, err := cache.Open(ctx, c.Cache.Path)
		if err != nil {
			return nil, err
		}
		env.Cache = st
		transport = cache.NewTransport(transport, st, c.Cache.TTL())
	}

	env.Client = google.NewClient(c.Google.APIKey,
		google.WithTransport(transport),
		google.WithPlacesBaseURL(c.Google.PlacesBaseURL),
		google.WithGeocodeBaseURL(c.Google.GeocodeBaseURL),
		google.WithLanguage(c.Google.Language),
		google.WithPageRetry(c.Google.PageRetry.MaxAttempts, c.Google.PageRetry.Delay()),
		google.WithFanOutLimit(c.Google.FanOutConcurrency),
		google.WithReverseResolution(c.Google.ReverseH3Resolution),
	)
	return env, nil
}
