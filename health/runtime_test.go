package health

import (
	"context"
	"testing"
)

func TestRuntimeChecker(t *testing.T) {
	c := NewRuntimeChecker()

	if c.Name() != "runtime" {
		t.Errorf("Name() = %q, want %q", c.Name(), "runtime")
	}

	result := c.Check(context.Background())
	if result.Status != StatusHealthy {
		t.Errorf("Status = %v, want %v (message %q)", result.Status, StatusHealthy, result.Message)
	}
	if _, ok := result.Details["goroutines"]; !ok {
		t.Error("Details missing goroutines")
	}
	if _, ok := result.Details["heap_alloc"]; !ok {
		t.Error("Details missing heap_alloc")
	}
}

func TestRuntimeChecker_Thresholds(t *testing.T) {
	t.Run("goroutine warning", func(t *testing.T) {
		c := NewRuntimeChecker(RuntimeCheckerConfig{GoroutineWarning: 1, GoroutineCritical: 1 << 30})
		if result := c.Check(context.Background()); result.Status != StatusDegraded {
			t.Errorf("Status = %v, want %v", result.Status, StatusDegraded)
		}
	})

	t.Run("goroutine critical", func(t *testing.T) {
		c := NewRuntimeChecker(RuntimeCheckerConfig{GoroutineWarning: 1, GoroutineCritical: 2})
		result := c.Check(context.Background())
		if result.Status != StatusUnhealthy {
			t.Errorf("Status = %v, want %v", result.Status, StatusUnhealthy)
		}
		if result.Error != ErrCheckFailed {
			t.Errorf("Error = %v, want ErrCheckFailed", result.Error)
		}
	})

	t.Run("heap warning", func(t *testing.T) {
		c := NewRuntimeChecker(RuntimeCheckerConfig{HeapWarningBytes: 1})
		if result := c.Check(context.Background()); result.Status != StatusDegraded {
			t.Errorf("Status = %v, want %v", result.Status, StatusDegraded)
		}
	})
}

func TestRuntimeChecker_Defaults(t *testing.T) {
	c := NewRuntimeChecker(RuntimeCheckerConfig{GoroutineWarning: 100})
	if c.config.GoroutineCritical != 400 {
		t.Errorf("GoroutineCritical = %d, want 400", c.config.GoroutineCritical)
	}
}
