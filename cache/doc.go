// Package cache provides deterministic caching for chat completions.
//
// Only reproducible generations are worth caching: requests that pin the
// temperature to zero against a named model. The Policy decides
// cacheability and TTLs, the Keyer hashes canonical request payloads into
// stable keys, and Memory is a TTL byte store safe for concurrent use.
// The provider package wires these together as a decorator.
package cache
