package google

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/sells-group/places-cli/internal/resilience"
	"github.com/sells-group/places-cli/pkg/geodesy"
)

func TestHTTPTransport_Get(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "v", r.URL.Query().Get("k"))
		_, _ = w.Write([]byte(`{"status":"OK"}`))
	}))
	defer srv.Close()

	tr := NewHTTPTransport(WithHTTPClient(srv.Client()), WithLimiter(rate.NewLimiter(rate.Inf, 1)))
	raw, err := tr.Get(context.Background(), srv.URL+"/x?k=v")
	require.NoError(t, err)
	assert.Equal(t, 200, raw.StatusCode)
	assert.Equal(t, `{"status":"OK"}`, string(raw.Body))
}

func TestHTTPTransport_ErrorStatusIsAResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte("denied"))
	}))
	defer srv.Close()

	raw, err := NewHTTPTransport().Get(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, raw.StatusCode)

	_, err = DecodePlaces(raw)
	var te *TransportError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, "denied", string(te.Body))
}

func TestHTTPTransport_CircuitBreaker(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	tr := NewHTTPTransport(WithCircuitBreaker(resilience.CircuitBreakerConfig{
		FailureThreshold: 2,
		ResetTimeout:     time.Hour,
	}))

	for i := 0; i < 2; i++ {
		raw, err := tr.Get(context.Background(), srv.URL)
		require.NoError(t, err)
		assert.Equal(t, http.StatusServiceUnavailable, raw.StatusCode)
	}

	_, err := tr.Get(context.Background(), srv.URL)
	assert.ErrorIs(t, err, resilience.ErrCircuitOpen)
	assert.Equal(t, int32(2), hits.Load())
	assert.Len(t, tr.Breakers().States(), 1)
}

func TestHTTPTransport_RateLimitHonorsContext(t *testing.T) {
	tr := NewHTTPTransport(WithLimiter(rate.NewLimiter(rate.Every(time.Hour), 1)))
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	_, err := tr.Get(context.Background(), srv.URL)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = tr.Get(ctx, srv.URL)
	assert.Error(t, err)
}

func TestClient_EndToEnd(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/maps/api/place/nearbysearch/json", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		_, _ = w.Write([]byte(typedPlacesBody))
	})
	mux.HandleFunc("/maps/api/geocode/json", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(geocodeBody))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := NewClient("test-key",
		WithPlacesBaseURL(srv.URL+"/maps/api/place"),
		WithGeocodeBaseURL(srv.URL+"/maps/api/geocode/"),
		WithTransport(NewHTTPTransport(WithRateLimit(100))),
	)

	resp, err := c.SearchNearbyAddresses(context.Background(), NearbyQuery{
		Location: geodesy.Coordinate{Lat: -27.47, Lng: 153.0},
		Radius:   200,
	})
	require.NoError(t, err)
	require.Len(t, resp.Results, 2)
	for _, p := range resp.Results {
		require.Len(t, p.Addresses, 1)
		assert.Equal(t, "Milton", p.Addresses[0].SuburbShortName())
	}
}

func TestTransportFunc(t *testing.T) {
	var got string
	tr := TransportFunc(func(_ context.Context, u string) (*RawResponse, error) {
		got = u
		return okBody("{}"), nil
	})
	_, err := tr.Get(context.Background(), "https://example.test/")
	require.NoError(t, err)
	assert.Equal(t, "https://example.test/", got)
}
