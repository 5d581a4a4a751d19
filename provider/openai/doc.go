// Package openai adapts the OpenAI chat completion API to the provider
// contract. It maps HTTP status codes onto fault kinds, streams responses
// over server-sent events, and deduplicates configuration probes with
// singleflight.
package openai
