package cache

import (
	"testing"
	"time"
)

func temp(v float64) *float64 { return &v }

func TestPolicy_ShouldCache(t *testing.T) {
	if !DefaultPolicy().ShouldCache() {
		t.Error("DefaultPolicy().ShouldCache() = false, want true")
	}
	if NoCachePolicy().ShouldCache() {
		t.Error("NoCachePolicy().ShouldCache() = true, want false")
	}
}

func TestPolicy_CacheableCompletion(t *testing.T) {
	tests := []struct {
		name        string
		policy      Policy
		model       string
		temperature *float64
		want        bool
	}{
		{"pinned zero temperature", DefaultPolicy(), "gpt-4o", temp(0), true},
		{"unset temperature", DefaultPolicy(), "gpt-4o", nil, false},
		{"nonzero temperature", DefaultPolicy(), "gpt-4o", temp(0.7), false},
		{"empty model", DefaultPolicy(), "", temp(0), false},
		{"caching disabled", NoCachePolicy(), "gpt-4o", temp(0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.policy.CacheableCompletion(tt.model, tt.temperature)
			if got != tt.want {
				t.Errorf("CacheableCompletion(%q, %v) = %v, want %v",
					tt.model, tt.temperature, got, tt.want)
			}
		})
	}
}

func TestPolicy_EffectiveTTL(t *testing.T) {
	policy := Policy{DefaultTTL: 5 * time.Minute, MaxTTL: time.Hour}

	tests := []struct {
		name     string
		override time.Duration
		want     time.Duration
	}{
		{"zero override uses default", 0, 5 * time.Minute},
		{"negative override uses default", -time.Minute, 5 * time.Minute},
		{"override within max", 10 * time.Minute, 10 * time.Minute},
		{"override clamped to max", 2 * time.Hour, time.Hour},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := policy.EffectiveTTL(tt.override); got != tt.want {
				t.Errorf("EffectiveTTL(%v) = %v, want %v", tt.override, got, tt.want)
			}
		})
	}
}

func TestPolicy_EffectiveTTL_NoMax(t *testing.T) {
	policy := Policy{DefaultTTL: time.Minute}
	if got := policy.EffectiveTTL(24 * time.Hour); got != 24*time.Hour {
		t.Errorf("EffectiveTTL(24h) = %v, want 24h when MaxTTL unset", got)
	}
}
