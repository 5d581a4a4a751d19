package fault

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindUnknown, "unknown"},
		{KindInvalidRequest, "invalid_request"},
		{KindUnsupportedModel, "unsupported_model"},
		{KindConfigMissing, "config_missing"},
		{KindConfigDeprecated, "config_deprecated"},
		{KindAuthentication, "authentication"},
		{KindAuthorization, "authorization"},
		{KindRateLimited, "rate_limited"},
		{KindTimeout, "timeout"},
		{KindNetwork, "network"},
		{KindExternalAPI, "external_api"},
		{KindUnavailable, "unavailable"},
		{Kind(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "plain",
			err:  New(KindTimeout, "operation timed out"),
			want: "operation timed out",
		},
		{
			name: "with provider",
			err:  New(KindRateLimited, "too many requests").WithProvider("openai"),
			want: "provider openai: too many requests",
		},
		{
			name: "with cause",
			err:  Wrap(KindNetwork, errors.New("connection refused"), "request failed"),
			want: "request failed: connection refused",
		},
		{
			name: "formatted",
			err:  Newf(KindUnsupportedModel, "model %q not available", "gpt-9"),
			want: `model "gpt-9" not available`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestKindOf(t *testing.T) {
	base := New(KindRateLimited, "throttled")

	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"direct", base, KindRateLimited},
		{"wrapped once", fmt.Errorf("call failed: %w", base), KindRateLimited},
		{"wrapped twice", fmt.Errorf("outer: %w", fmt.Errorf("inner: %w", base)), KindRateLimited},
		{"fault wrapping fault", Wrap(KindExternalAPI, base, "upstream"), KindExternalAPI},
		{"plain error", errors.New("nope"), KindUnknown},
		{"nil", nil, KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Errorf("KindOf() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("boom")
	err := Wrap(KindNetwork, cause, "request failed")

	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
	if errors.Unwrap(err) != cause {
		t.Errorf("Unwrap() = %v, want %v", errors.Unwrap(err), cause)
	}
}

func TestKindIn(t *testing.T) {
	transient := Transient()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"timeout is transient", New(KindTimeout, "slow"), true},
		{"network is transient", New(KindNetwork, "down"), true},
		{"rate limited is transient", New(KindRateLimited, "429"), true},
		{"external api is transient", New(KindExternalAPI, "500"), true},
		{"authentication is not", New(KindAuthentication, "401"), false},
		{"config missing is not", New(KindConfigMissing, "no key"), false},
		{"invalid request is not", New(KindInvalidRequest, "empty"), false},
		{"unclassified is not", errors.New("mystery"), false},
		{"nil is not", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindIn(tt.err, transient...); got != tt.want {
				t.Errorf("KindIn() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestKindInNeverMatchesUnknown(t *testing.T) {
	// Even an explicit KindUnknown in the set must not match an
	// unclassified error.
	if KindIn(errors.New("plain"), KindUnknown, KindTimeout) {
		t.Error("KindIn matched an unclassified error")
	}
}

func TestTransientExcludesFatalKinds(t *testing.T) {
	fatal := []Kind{
		KindInvalidRequest,
		KindUnsupportedModel,
		KindConfigMissing,
		KindConfigDeprecated,
		KindAuthentication,
		KindAuthorization,
	}

	for _, k := range fatal {
		for _, tk := range Transient() {
			if k == tk {
				t.Errorf("Transient() contains fatal kind %v", k)
			}
		}
	}
}
