package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Keyer derives cache keys for chat completion requests. Implementations
// must be deterministic: two requests with equal content yield the same key
// no matter how their maps were populated.
type Keyer interface {
	Key(model string, input any) (string, error)
}

// DefaultKeyer hashes the request payload with SHA-256 and scopes the key
// by model so identical prompts never collide across models.
type DefaultKeyer struct{}

// NewDefaultKeyer creates a new default keyer.
func NewDefaultKeyer() *DefaultKeyer {
	return &DefaultKeyer{}
}

// Key returns cache:<model>:<digest>, where digest is the first 8 bytes of
// SHA-256 over the payload's JSON form, hex encoded. encoding/json writes
// map keys in sorted order, so the serialization is already canonical and
// needs no separate normalization pass.
func (k *DefaultKeyer) Key(model string, input any) (string, error) {
	payload, err := json.Marshal(input)
	if err != nil {
		return "", fmt.Errorf("cache: encode request for keying: %w", err)
	}
	sum := sha256.Sum256(payload)
	return fmt.Sprintf("cache:%s:%s", model, hex.EncodeToString(sum[:8])), nil
}

var _ Keyer = (*DefaultKeyer)(nil)
