package credential

import "github.com/jonwraymond/llmops/fault"

// ErrTokenExpired indicates a bearer token whose expiry has passed.
var ErrTokenExpired = fault.New(fault.KindAuthentication, "credential: token expired")
