package cache

import (
	"context"
	"errors"
	"strings"
	"time"
)

// MaxKeyLength bounds cache keys. DefaultKeyer output stays far below it;
// the limit guards callers that supply their own keys.
const MaxKeyLength = 512

var (
	ErrInvalidKey = errors.New("cache: key is invalid")
	ErrKeyTooLong = errors.New("cache: key exceeds max length")
)

// Cache stores serialized chat completions keyed by request digest.
// Implementations must be safe for concurrent use. Get never returns an
// error: a miss, an expired entry, and an unknown key all read as
// (nil, false).
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)

	// Set stores value for ttl. A non-positive ttl defers to the
	// implementation's policy default.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete is idempotent; removing an absent key is not an error.
	Delete(ctx context.Context, key string) error
}

// ValidateKey rejects keys that are empty, blank, longer than MaxKeyLength,
// or contain line breaks.
func ValidateKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return ErrInvalidKey
	}
	if len(key) > MaxKeyLength {
		return ErrKeyTooLong
	}
	if strings.ContainsAny(key, "\n\r") {
		return ErrInvalidKey
	}
	return nil
}
