package cache

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/sells-group/places-cli/pkg/google"
)

// DefaultTTL is how long responses are kept when no TTL is configured.
const DefaultTTL = 24 * time.Hour

// Transport serves repeated GETs from a Store and forwards misses.
type Transport struct {
	next  google.Transport
	store *Store
	ttl   time.Duration
}

// NewTransport wraps next with store. ttl <= 0 uses DefaultTTL.
func NewTransport(next google.Transport, store *Store, ttl time.Duration) *Transport {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Transport{next: next, store: store, ttl: ttl}
}

// Get returns a cached response when one is fresh. Cache failures are
// logged and the request goes upstream.
func (t *Transport) Get(ctx context.Context, rawURL string) (*google.RawResponse, error) {
	key := Key(rawURL)

	cached, err := t.store.Get(ctx, key)
	if err != nil {
		zap.L().Warn("cache: lookup failed", zap.Error(err))
	}
	if cached != nil {
		zap.L().Debug("cache: hit", zap.String("key", key))
		return cached, nil
	}

	raw, err := t.next.Get(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	if cacheable(raw) {
		if err := t.store.Put(ctx, key, rawURL, raw, t.ttl); err != nil {
			zap.L().Warn("cache: store failed", zap.Error(err))
		}
	}
	return raw, nil
}

// cacheable keeps only successful envelopes without a continuation token.
// A page token that is not yet servable answers INVALID_REQUEST and must be
// asked again, and an issued token expires long before the cache TTL.
func cacheable(raw *google.RawResponse) bool {
	if raw == nil || raw.StatusCode < 200 || raw.StatusCode > 299 {
		return false
	}
	var env struct {
		Status        string `json:"status"`
		NextPageToken string `json:"next_page_token"`
	}
	if err := json.Unmarshal(raw.Body, &env); err != nil {
		return false
	}
	if env.NextPageToken != "" {
		return false
	}
	return env.Status == google.StatusOK || env.Status == google.StatusZeroResults
}
