package google

import (
	"errors"
	"fmt"

	"github.com/rotisserie/eris"
)

// Envelope status values returned by the web service.
const (
	StatusOK             = "OK"
	StatusZeroResults    = "ZERO_RESULTS"
	StatusInvalidRequest = "INVALID_REQUEST"
)

var (
	// ErrTokenFamily is returned when a page token is handed to the
	// continuation call of a different search family.
	ErrTokenFamily = eris.New("google: page token belongs to another search family")
	// ErrEmptyToken is returned when a continuation call gets no token.
	ErrEmptyToken = eris.New("google: empty page token")
	// ErrRankByDistanceRadius rejects rankby=distance combined with a radius.
	ErrRankByDistanceRadius = eris.New("google: rankby=distance cannot be combined with a radius")
	// ErrRankByDistanceFilter rejects rankby=distance without a keyword, name or type.
	ErrRankByDistanceFilter = eris.New("google: rankby=distance requires a keyword, name or type")
)

const maxErrorBody = 512

func clip(body []byte) string {
	if len(body) > maxErrorBody {
		return string(body[:maxErrorBody]) + "..."
	}
	return string(body)
}

// TransportError is a non-2xx HTTP response. The body is never parsed.
type TransportError struct {
	StatusCode int
	Body       []byte
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("google: unexpected status %d: %s", e.StatusCode, clip(e.Body))
}

// DecodeError is a 2xx body that matches neither wire schema or decodes to a
// null envelope.
type DecodeError struct {
	StatusCode int
	Body       []byte
	Err        error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("google: decode response (status %d): %v: %s", e.StatusCode, e.Err, clip(e.Body))
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// RequestError is a well-formed envelope whose status rejects the request.
type RequestError struct {
	Status  string
	Message string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("google: %s: %s", e.Status, e.Message)
}

// IsInvalidRequest reports whether err carries an INVALID_REQUEST envelope.
func IsInvalidRequest(err error) bool {
	var re *RequestError
	return errors.As(err, &re) && re.Status == StatusInvalidRequest
}

// EnrichmentError is the first failed per-item lookup of a fan-out batch.
type EnrichmentError struct {
	Index int
	Key   string
	Err   error
}

func (e *EnrichmentError) Error() string {
	return fmt.Sprintf("google: enrich item %d (%s): %v", e.Index, e.Key, e.Err)
}

func (e *EnrichmentError) Unwrap() error {
	return e.Err
}
