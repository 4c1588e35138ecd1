// Package cache keeps web service responses in SQLite so repeated lookups
// do not hit the upstream again.
package cache

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"net/url"
	"time"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/sells-group/places-cli/pkg/google"
)

// Store is a SQLite-backed response cache.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens (or creates) the cache database at dsn in WAL mode and applies
// the schema.
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "cache: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			db.Close() //nolint:errcheck
			return nil, eris.Wrapf(err, "cache: exec %s", pragma)
		}
	}
	s := &Store{db: db, now: time.Now}
	if err := s.migrate(ctx); err != nil {
		db.Close() //nolint:errcheck
		return nil, err
	}
	return s, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS response_cache (
	key         TEXT PRIMARY KEY,
	url         TEXT NOT NULL,
	body        BLOB NOT NULL,
	status_code INTEGER NOT NULL,
	cached_at   INTEGER NOT NULL,
	expires_at  INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_response_cache_expires_at ON response_cache(expires_at);
`

func (s *Store) migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, schema)
	return eris.Wrap(err, "cache: migrate")
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Key identifies a request URL. The API key parameter is left out so
// rotating keys does not invalidate the cache and keys are never stored.
func Key(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err == nil {
		q := u.Query()
		q.Del("key")
		u.RawQuery = q.Encode()
		rawURL = u.String()
	}
	sum := sha256.Sum256([]byte(rawURL))
	return hex.EncodeToString(sum[:])
}

// redact drops the API key from a URL before it is stored.
func redact(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	q := u.Query()
	q.Del("key")
	u.RawQuery = q.Encode()
	return u.String()
}

// Get returns the unexpired response stored under key, or nil.
func (s *Store) Get(ctx context.Context, key string) (*google.RawResponse, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT body, status_code FROM response_cache WHERE key = ? AND expires_at > ?`,
		key, s.now().UnixNano(),
	)

	var raw google.RawResponse
	err := row.Scan(&raw.Body, &raw.StatusCode)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrap(err, "cache: get")
	}
	return &raw, nil
}

// Put stores raw under key for ttl, replacing any previous entry.
func (s *Store) Put(ctx context.Context, key, rawURL string, raw *google.RawResponse, ttl time.Duration) error {
	now := s.now()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO response_cache (key, url, body, status_code, cached_at, expires_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET
		   url = excluded.url,
		   body = excluded.body,
		   status_code = excluded.status_code,
		   cached_at = excluded.cached_at,
		   expires_at = excluded.expires_at`,
		key, redact(rawURL), raw.Body, raw.StatusCode, now.UnixNano(), now.Add(ttl).UnixNano(),
	)
	return eris.Wrap(err, "cache: put")
}

// Purge deletes expired entries and reports how many were removed.
func (s *Store) Purge(ctx context.Context) (int, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM response_cache WHERE expires_at <= ?`,
		s.now().UnixNano(),
	)
	if err != nil {
		return 0, eris.Wrap(err, "cache: purge")
	}
	n, err := res.RowsAffected()
	return int(n), eris.Wrap(err, "cache: rows affected")
}
