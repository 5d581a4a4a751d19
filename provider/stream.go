package provider

import (
	"iter"
	"sync"
)

// Chunk is one increment of a streaming chat completion.
type Chunk struct {
	// Content is the text delta carried by this chunk, possibly empty.
	Content string

	// FinishReason is set on the chunk that terminates generation.
	FinishReason string

	// Usage is set when the backend reports token accounting, typically
	// on the final chunk.
	Usage *Usage
}

// Stream is a lazy, finite, one-shot sequence of completion chunks. The
// sequence ends when the backend signals completion; consuming a stream a
// second time yields exactly one ErrStreamConsumed.
type Stream struct {
	mu       sync.Mutex
	consumed bool
	seq      iter.Seq2[Chunk, error]
}

// NewStream wraps a chunk sequence.
func NewStream(seq iter.Seq2[Chunk, error]) *Stream {
	return &Stream{seq: seq}
}

// Chunks returns the chunk sequence and marks the stream consumed.
func (s *Stream) Chunks() iter.Seq2[Chunk, error] {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.consumed {
		return func(yield func(Chunk, error) bool) {
			yield(Chunk{}, ErrStreamConsumed)
		}
	}
	s.consumed = true
	return s.seq
}

// Collect drains the stream into a single response, concatenating chunk
// content and keeping the last reported finish reason and usage.
func (s *Stream) Collect() (*ChatResponse, error) {
	resp := &ChatResponse{}
	for chunk, err := range s.Chunks() {
		if err != nil {
			return nil, err
		}
		resp.Content += chunk.Content
		if chunk.FinishReason != "" {
			resp.FinishReason = chunk.FinishReason
		}
		if chunk.Usage != nil {
			resp.Usage = *chunk.Usage
		}
	}
	return resp, nil
}

// SingleChunkStream adapts a completed response into a stream that yields
// one chunk. Adapters without native streaming use this as a fallback.
func SingleChunkStream(resp *ChatResponse) *Stream {
	usage := resp.Usage
	return NewStream(func(yield func(Chunk, error) bool) {
		yield(Chunk{
			Content:      resp.Content,
			FinishReason: resp.FinishReason,
			Usage:        &usage,
		}, nil)
	})
}
