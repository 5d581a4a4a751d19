package fault

import (
	"errors"
	"fmt"
)

// Kind classifies a failure. Adapters and resilience primitives attach a Kind
// to every error they produce so policy code can match on the category instead
// of inspecting messages or concrete types.
type Kind int

const (
	// KindUnknown is the classification of errors that carry no Kind.
	// It never matches any policy set.
	KindUnknown Kind = iota

	// KindInvalidRequest means the request shape is invalid.
	KindInvalidRequest

	// KindUnsupportedModel means the requested model is not served by the
	// provider.
	KindUnsupportedModel

	// KindConfigMissing means required configuration is absent.
	KindConfigMissing

	// KindConfigDeprecated means deprecated configuration was detected.
	KindConfigDeprecated

	// KindAuthentication means the backend rejected the credential.
	KindAuthentication

	// KindAuthorization means the credential lacks access to the resource.
	KindAuthorization

	// KindRateLimited means the backend throttled the call.
	KindRateLimited

	// KindTimeout means the operation exceeded its deadline.
	KindTimeout

	// KindNetwork means the call failed before reaching the backend.
	KindNetwork

	// KindExternalAPI means the backend reported a server-side failure.
	KindExternalAPI

	// KindUnavailable means a guard refused the call without attempting it.
	KindUnavailable
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindInvalidRequest:
		return "invalid_request"
	case KindUnsupportedModel:
		return "unsupported_model"
	case KindConfigMissing:
		return "config_missing"
	case KindConfigDeprecated:
		return "config_deprecated"
	case KindAuthentication:
		return "authentication"
	case KindAuthorization:
		return "authorization"
	case KindRateLimited:
		return "rate_limited"
	case KindTimeout:
		return "timeout"
	case KindNetwork:
		return "network"
	case KindExternalAPI:
		return "external_api"
	case KindUnavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

// Error is a classified failure.
type Error struct {
	// Kind is the failure category.
	Kind Kind

	// Provider names the adapter that produced the failure, when known.
	Provider string

	// Message is the human-readable description.
	Message string

	// Err is the wrapped cause, if any.
	Err error
}

// Error returns the formatted message.
func (e *Error) Error() string {
	msg := e.Message
	if e.Provider != "" {
		msg = "provider " + e.Provider + ": " + msg
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the wrapped cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// WithProvider records the adapter name on the error and returns it.
func (e *Error) WithProvider(name string) *Error {
	e.Provider = name
	return e
}

// New creates a classified error.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Newf creates a classified error with a formatted message.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates a classified error wrapping a cause.
func Wrap(kind Kind, err error, message string) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf returns the Kind recorded on err, unwrapping as needed.
// Errors that carry no Kind report KindUnknown.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return KindUnknown
}

// Is reports whether err is classified as kind.
func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// KindIn reports whether err's classification is one of kinds.
// Unclassified errors never match.
func KindIn(err error, kinds ...Kind) bool {
	k := KindOf(err)
	if k == KindUnknown {
		return false
	}
	for _, candidate := range kinds {
		if k == candidate {
			return true
		}
	}
	return false
}

// Transient returns the kinds that normally clear on their own and are safe
// to retry: network faults, timeouts, throttling, and generic backend
// failures. Authentication, authorization, and configuration failures are
// deliberately excluded.
func Transient() []Kind {
	return []Kind{KindNetwork, KindTimeout, KindRateLimited, KindExternalAPI}
}
