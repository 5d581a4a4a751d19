package resilience

import (
	"context"
	"sync"
	"time"

	"github.com/jonwraymond/llmops/fault"
)

// State represents the circuit breaker state.
type State int

const (
	// StateClosed means the circuit is operating normally.
	StateClosed State = iota
	// StateOpen means the circuit is blocking all requests.
	StateOpen
	// StateHalfOpen means the circuit is testing if the dependency recovered.
	StateHalfOpen
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// BreakerConfig configures the circuit breaker.
type BreakerConfig struct {
	// FailureThreshold is the number of classified failures before opening.
	// Default: 5
	FailureThreshold int

	// RecoveryTimeout is how long the circuit stays open before a trial.
	// Default: 30 seconds
	RecoveryTimeout time.Duration

	// CloseThreshold is the number of consecutive half-open successes
	// required to close the circuit.
	// Default: 3
	CloseThreshold int

	// ExpectedKinds are the failure classifications the breaker counts.
	// Failures outside this set pass through without affecting state.
	// Default: fault.Transient()
	ExpectedKinds []fault.Kind

	// OnStateChange is called when the circuit state changes.
	OnStateChange func(from, to State)
}

// CircuitBreaker guards a dependency with a Closed/Open/HalfOpen state
// machine. All state transitions happen under one mutex.
type CircuitBreaker struct {
	config BreakerConfig
	now    func() time.Time

	mu           sync.Mutex
	state        State
	failureCount int
	successCount int
	lastFailure  time.Time
}

// NewCircuitBreaker creates a new circuit breaker in the closed state.
func NewCircuitBreaker(config BreakerConfig) *CircuitBreaker {
	// Apply defaults
	if config.FailureThreshold <= 0 {
		config.FailureThreshold = 5
	}
	if config.RecoveryTimeout <= 0 {
		config.RecoveryTimeout = 30 * time.Second
	}
	if config.CloseThreshold <= 0 {
		config.CloseThreshold = 3
	}
	if config.ExpectedKinds == nil {
		config.ExpectedKinds = fault.Transient()
	}

	return &CircuitBreaker{
		config: config,
		now:    time.Now,
		state:  StateClosed,
	}
}

// Execute runs the operation through the circuit breaker.
//
// While open and within the recovery window the call fails immediately with
// ErrCircuitOpen without invoking op. Once the window elapses the breaker
// moves to half-open and lets calls through; CloseThreshold consecutive
// successes close it. The failure count is deliberately not reset on
// entering half-open, so a single half-open failure re-opens the circuit.
func (cb *CircuitBreaker) Execute(ctx context.Context, op Operation) error {
	if err := cb.beforeRequest(); err != nil {
		return err
	}

	err := op(ctx)
	cb.afterRequest(err)
	return err
}

// State returns the current circuit state.
func (cb *CircuitBreaker) State() State {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.currentStateLocked()
}

// BreakerStatus is a read-only snapshot of the breaker's counters.
type BreakerStatus struct {
	State        State
	FailureCount int
	SuccessCount int
	LastFailure  time.Time
}

// Status returns a snapshot of the current state and counters.
func (cb *CircuitBreaker) Status() BreakerStatus {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	return BreakerStatus{
		State:        cb.currentStateLocked(),
		FailureCount: cb.failureCount,
		SuccessCount: cb.successCount,
		LastFailure:  cb.lastFailure,
	}
}

// Reset forces the circuit closed with all counters zeroed.
func (cb *CircuitBreaker) Reset() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	oldState := cb.state
	cb.state = StateClosed
	cb.failureCount = 0
	cb.successCount = 0
	cb.lastFailure = time.Time{}

	if oldState != StateClosed && cb.config.OnStateChange != nil {
		cb.config.OnStateChange(oldState, StateClosed)
	}
}

func (cb *CircuitBreaker) beforeRequest() error {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if cb.currentStateLocked() == StateOpen {
		return ErrCircuitOpen
	}
	return nil
}

func (cb *CircuitBreaker) afterRequest(err error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	oldState := cb.state

	if err == nil {
		cb.failureCount = 0
		if cb.state == StateHalfOpen {
			cb.successCount++
			if cb.successCount >= cb.config.CloseThreshold {
				cb.state = StateClosed
				cb.successCount = 0
			}
		}
	} else if fault.KindIn(err, cb.config.ExpectedKinds...) {
		cb.failureCount++
		cb.lastFailure = cb.now()
		if cb.failureCount >= cb.config.FailureThreshold {
			cb.state = StateOpen
		}
	}

	if oldState != cb.state && cb.config.OnStateChange != nil {
		cb.config.OnStateChange(oldState, cb.state)
	}
}

// currentStateLocked flips an open circuit to half-open once the recovery
// window has elapsed. Callers must hold cb.mu.
func (cb *CircuitBreaker) currentStateLocked() State {
	if cb.state == StateOpen && cb.now().Sub(cb.lastFailure) >= cb.config.RecoveryTimeout {
		cb.state = StateHalfOpen
		cb.successCount = 0
		if cb.config.OnStateChange != nil {
			cb.config.OnStateChange(StateOpen, StateHalfOpen)
		}
	}
	return cb.state
}
