package resilience

import "time"

// PageRetryConfig builds the fixed-delay policy used for page-token fetches.
// Non-positive values fall back to 5 attempts and 300ms.
func PageRetryConfig(maxAttempts, delayMs int) RetryConfig {
	if maxAttempts <= 0 {
		maxAttempts = 5
	}
	if delayMs <= 0 {
		delayMs = 300
	}
	return FixedRetryConfig(maxAttempts, time.Duration(delayMs)*time.Millisecond)
}

// CircuitConfig converts config values to a CircuitBreakerConfig. Non-positive
// values keep the defaults.
func CircuitConfig(failureThreshold, resetTimeoutSecs int) CircuitBreakerConfig {
	cfg := DefaultCircuitBreakerConfig()
	if failureThreshold > 0 {
		cfg.FailureThreshold = failureThreshold
	}
	if resetTimeoutSecs > 0 {
		cfg.ResetTimeout = time.Duration(resetTimeoutSecs) * time.Second
	}
	return cfg
}
