package health

import (
	"context"
	"fmt"
	"runtime"
)

// RuntimeCheckerConfig configures the runtime self-check.
type RuntimeCheckerConfig struct {
	// GoroutineWarning degrades the result when exceeded. Leaked
	// goroutines from abandoned calls show up here first.
	// Default: 5000
	GoroutineWarning int

	// GoroutineCritical fails the result when exceeded.
	// Default: 20000
	GoroutineCritical int

	// HeapWarningBytes degrades the result when heap allocation exceeds
	// it. Zero disables the heap check.
	HeapWarningBytes uint64
}

// RuntimeChecker reports on the process itself: goroutine count and heap
// allocation. Timed-out provider calls keep running in the background, so
// a climbing goroutine count is the early signal of a stuck backend.
type RuntimeChecker struct {
	config RuntimeCheckerConfig
}

// NewRuntimeChecker creates a runtime self-check.
func NewRuntimeChecker(config ...RuntimeCheckerConfig) *RuntimeChecker {
	cfg := RuntimeCheckerConfig{}
	if len(config) > 0 {
		cfg = config[0]
	}
	if cfg.GoroutineWarning <= 0 {
		cfg.GoroutineWarning = 5000
	}
	if cfg.GoroutineCritical <= cfg.GoroutineWarning {
		cfg.GoroutineCritical = 4 * cfg.GoroutineWarning
	}
	return &RuntimeChecker{config: cfg}
}

// Name returns "runtime".
func (c *RuntimeChecker) Name() string {
	return "runtime"
}

// Check samples runtime statistics and grades them against the thresholds.
func (c *RuntimeChecker) Check(_ context.Context) Result {
	var stats runtime.MemStats
	runtime.ReadMemStats(&stats)
	goroutines := runtime.NumGoroutine()

	details := map[string]any{
		"goroutines":     goroutines,
		"heap_alloc":     stats.HeapAlloc,
		"heap_objects":   stats.HeapObjects,
		"gc_cycles":      stats.NumGC,
		"gc_pause_total": stats.PauseTotalNs,
	}

	switch {
	case goroutines >= c.config.GoroutineCritical:
		return Unhealthy(
			fmt.Sprintf("goroutine count critical: %d", goroutines),
			ErrCheckFailed,
		).WithDetails(details)
	case goroutines >= c.config.GoroutineWarning:
		return Degraded(
			fmt.Sprintf("goroutine count high: %d", goroutines),
		).WithDetails(details)
	case c.config.HeapWarningBytes > 0 && stats.HeapAlloc >= c.config.HeapWarningBytes:
		return Degraded(
			fmt.Sprintf("heap allocation high: %d bytes", stats.HeapAlloc),
		).WithDetails(details)
	default:
		return Healthy(
			fmt.Sprintf("%d goroutines", goroutines),
		).WithDetails(details)
	}
}

var _ Checker = (*RuntimeChecker)(nil)
