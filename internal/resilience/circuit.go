// Package resilience provides retry and circuit breaker helpers for calls to
// upstream web services.
package resilience

import (
	"context"
	"sync"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// CircuitState is the state of a circuit breaker.
type CircuitState int

const (
	// CircuitClosed lets every call through.
	CircuitClosed CircuitState = iota
	// CircuitOpen rejects calls until ResetTimeout has passed.
	CircuitOpen
	// CircuitHalfOpen lets trial calls through to test recovery.
	CircuitHalfOpen
)

func (s CircuitState) String() string {
	switch s {
	case CircuitClosed:
		return "closed"
	case CircuitOpen:
		return "open"
	case CircuitHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// ErrCircuitOpen is returned for calls rejected by an open breaker.
var ErrCircuitOpen = eris.New("circuit breaker is open")

// CircuitBreakerConfig controls when a breaker opens and recovers.
type CircuitBreakerConfig struct {
	// FailureThreshold is the number of consecutive tripping failures that
	// open the circuit. Default: 5.
	FailureThreshold int

	// ResetTimeout is how long the circuit stays open. Default: 30s.
	ResetTimeout time.Duration

	// HalfOpenMaxProbes is the number of successful trial calls needed to close
	// the circuit again, and the most trial calls allowed in flight at once while
	// half-open. Default: 1.
	HalfOpenMaxProbes int

	// ShouldTrip decides whether an error counts as a failure. If nil,
	// IsTransient is used, so request-level rejections never open the circuit.
	ShouldTrip func(err error) bool

	// OnStateChange runs on every transition, under the breaker's lock.
	OnStateChange func(from, to CircuitState)
}

// DefaultCircuitBreakerConfig returns a five-failure, thirty-second breaker.
func DefaultCircuitBreakerConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		FailureThreshold:  5,
		ResetTimeout:      30 * time.Second,
		HalfOpenMaxProbes: 1,
	}
}

// CircuitBreaker guards a single upstream.
type CircuitBreaker struct {
	cfg CircuitBreakerConfig

	mu        sync.Mutex
	state     CircuitState
	failures  int
	successes int
	inFlight  int
	openedAt  time.Time
	nowFunc   func() time.Time
}

// NewCircuitBreaker creates a closed breaker.
func NewCircuitBreaker(cfg CircuitBreakerConfig) *CircuitBreaker {
	def := DefaultCircuitBreakerConfig()
	if cfg.FailureThreshold <= 0 {
		cfg.FailureThreshold = def.FailureThreshold
	}
	if cfg.ResetTimeout <= 0 {
		cfg.ResetTimeout = def.ResetTimeout
	}
	if cfg.HalfOpenMaxProbes <= 0 {
		cfg.HalfOpenMaxProbes = def.HalfOpenMaxProbes
	}
	if cfg.ShouldTrip == nil {
		cfg.ShouldTrip = IsTransient
	}
	return &CircuitBreaker{cfg: cfg, nowFunc: time.Now}
}

// ExecuteVal runs fn unless the circuit is open. While half-open, calls
// beyond HalfOpenMaxProbes in flight are rejected like an open circuit.
func ExecuteVal[T any](ctx context.Context, cb *CircuitBreaker, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	ok, trial := cb.allow()
	if !ok {
		return zero, ErrCircuitOpen
	}
	val, err := fn(ctx)
	cb.record(err, trial)
	return val, err
}

// State returns the current state. An open circuit whose timeout has passed
// reports half-open.
func (cb *CircuitBreaker) State() CircuitState {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	if cb.state == CircuitOpen && cb.cooledDown() {
		return CircuitHalfOpen
	}
	return cb.state
}

func (cb *CircuitBreaker) cooledDown() bool {
	return cb.nowFunc().Sub(cb.openedAt) >= cb.cfg.ResetTimeout
}

// allow reports whether a call may run and whether it runs as a half-open
// trial.
func (cb *CircuitBreaker) allow() (ok, trial bool) {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	switch cb.state {
	case CircuitClosed:
		return true, false
	case CircuitOpen:
		if !cb.cooledDown() {
			return false, false
		}
		cb.successes, cb.inFlight = 0, 0
		cb.transition(CircuitHalfOpen)
	}
	if cb.inFlight >= cb.cfg.HalfOpenMaxProbes {
		return false, false
	}
	cb.inFlight++
	return true, true
}

func (cb *CircuitBreaker) record(err error, trial bool) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if trial && cb.inFlight > 0 {
		cb.inFlight--
	}

	if err == nil || !cb.cfg.ShouldTrip(err) {
		cb.failures = 0
		if cb.state == CircuitHalfOpen {
			cb.successes++
			if cb.successes >= cb.cfg.HalfOpenMaxProbes {
				cb.transition(CircuitClosed)
			}
		}
		return
	}

	cb.failures++
	if cb.state == CircuitHalfOpen || cb.failures >= cb.cfg.FailureThreshold {
		cb.openedAt = cb.nowFunc()
		if cb.state != CircuitOpen {
			cb.transition(CircuitOpen)
		}
	}
}

func (cb *CircuitBreaker) transition(to CircuitState) {
	from := cb.state
	cb.state = to
	if cb.cfg.OnStateChange != nil {
		cb.cfg.OnStateChange(from, to)
	}
}

// HostBreakers keeps one breaker per upstream host.
type HostBreakers struct {
	cfg CircuitBreakerConfig

	mu       sync.Mutex
	breakers map[string]*CircuitBreaker
}

// NewHostBreakers creates an empty registry. Every breaker it creates logs
// its transitions through the global zap logger.
func NewHostBreakers(cfg CircuitBreakerConfig) *HostBreakers {
	return &HostBreakers{cfg: cfg, breakers: make(map[string]*CircuitBreaker)}
}

// For returns the breaker for host, creating it on first use.
func (hb *HostBreakers) For(host string) *CircuitBreaker {
	hb.mu.Lock()
	defer hb.mu.Unlock()
	if cb, ok := hb.breakers[host]; ok {
		return cb
	}

	cfg := hb.cfg
	user := cfg.OnStateChange
	cfg.OnStateChange = func(from, to CircuitState) {
		zap.L().Warn("circuit state change",
			zap.String("host", host),
			zap.Stringer("from", from),
			zap.Stringer("to", to),
		)
		if user != nil {
			user(from, to)
		}
	}
	cb := NewCircuitBreaker(cfg)
	hb.breakers[host] = cb
	return cb
}

// States returns a snapshot of every host's state.
func (hb *HostBreakers) States() map[string]CircuitState {
	hb.mu.Lock()
	hosts := make(map[string]*CircuitBreaker, len(hb.breakers))
	for h, cb := range hb.breakers {
		hosts[h] = cb
	}
	hb.mu.Unlock()

	states := make(map[string]CircuitState, len(hosts))
	for h, cb := range hosts {
		states[h] = cb.State()
	}
	return states
}
