package api

import (
	"errors"
	"sync"
	"time"
)

// Breaker guards the backend connection with the classic three-state circuit
// breaker (Closed → Open → Half-Open). When the backend is down, requests
// fast-fail instead of hanging for the full HTTP timeout on every user action.
// This is not a retry mechanism: no request is ever re-issued.

// BreakerState is the current state of the breaker.
type BreakerState int

const (
	BreakerClosed   BreakerState = iota // normal — requests flow
	BreakerOpen                         // tripped — fast-fail all requests
	BreakerHalfOpen                     // probing — one request allowed
)

func (s BreakerState) String() string {
	switch s {
	case BreakerClosed:
		return "closed"
	case BreakerOpen:
		return "open"
	case BreakerHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// ErrBackendNoDisponible is returned while the breaker is open.
var ErrBackendNoDisponible = errors.New("servidor no disponible")

// BreakerConfig holds the tunable thresholds.
type BreakerConfig struct {
	FailureThreshold int           // consecutive failures to trip open
	SuccessThreshold int           // consecutive successes in half-open to close
	OpenTimeout      time.Duration // how long to stay open before probing
}

// NewBreaker creates a breaker in closed state. Non-positive config values
// fall back to defaults (5 failures, 2 successes, 30s open).
func NewBreaker(cfg BreakerConfig) *Breaker {
	if cfg.FailureThreshold <= 0 {
		cfg.FailureThreshold = 5
	}
	if cfg.SuccessThreshold <= 0 {
		cfg.SuccessThreshold = 2
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = 30 * time.Second
	}
	return &Breaker{cfg: cfg, state: BreakerClosed}
}

type Breaker struct {
	mu          sync.Mutex
	cfg         BreakerConfig
	state       BreakerState
	failures    int
	successes   int
	lastFailure time.Time
}

// State returns the current state, applying the open → half-open transition
// when the open timeout has elapsed.
func (b *Breaker) State() BreakerState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.stateLocked()
}

func (b *Breaker) stateLocked() BreakerState {
	if b.state == BreakerOpen && time.Since(b.lastFailure) >= b.cfg.OpenTimeout {
		b.state = BreakerHalfOpen
		b.successes = 0
	}
	return b.state
}

// Execute runs fn unless the breaker is open, and records the outcome.
func (b *Breaker) Execute(fn func() error) error {
	b.mu.Lock()
	if b.stateLocked() == BreakerOpen {
		b.mu.Unlock()
		return ErrBackendNoDisponible
	}
	b.mu.Unlock()

	err := fn()

	b.mu.Lock()
	defer b.mu.Unlock()
	if err != nil {
		b.failures++
		b.successes = 0
		b.lastFailure = time.Now()
		if b.state == BreakerHalfOpen || b.failures >= b.cfg.FailureThreshold {
			b.state = BreakerOpen
		}
		return err
	}

	b.failures = 0
	if b.state == BreakerHalfOpen {
		b.successes++
		if b.successes >= b.cfg.SuccessThreshold {
			b.state = BreakerClosed
		}
	}
	return nil
}
