package provider

import "time"

// Role identifies the author of a chat message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// Message is one turn of a chat conversation.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`

	// Name optionally identifies the participant, for backends that
	// distinguish multiple users or tools.
	Name string `json:"name,omitempty"`
}

// ChatRequest describes a chat completion call. Optional sampling parameters
// are pointers so "unset" is distinguishable from an explicit zero.
type ChatRequest struct {
	// ID correlates the request across logs and telemetry. Validation
	// assigns a ULID when empty.
	ID string `json:"id,omitempty"`

	Model    string    `json:"model"`
	Messages []Message `json:"messages"`

	// SystemPrompt is prepended as a system message when set.
	SystemPrompt string `json:"system_prompt,omitempty"`

	Temperature *float64 `json:"temperature,omitempty"`
	TopP        *float64 `json:"top_p,omitempty"`
	MaxTokens   *int     `json:"max_tokens,omitempty"`
	Stop        []string `json:"stop,omitempty"`

	// User is an opaque end-user identifier forwarded for abuse tracking.
	User string `json:"user,omitempty"`
}

// Usage reports token consumption.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Add accumulates another usage report into u.
func (u *Usage) Add(other Usage) {
	u.PromptTokens += other.PromptTokens
	u.CompletionTokens += other.CompletionTokens
	u.TotalTokens += other.TotalTokens
}

// ChatResponse is a completed chat completion.
type ChatResponse struct {
	ID           string    `json:"id"`
	Model        string    `json:"model"`
	Created      time.Time `json:"created"`
	Content      string    `json:"content"`
	FinishReason string    `json:"finish_reason,omitempty"`
	Usage        Usage     `json:"usage"`
}

// ModelCapabilities describes what a single model supports.
type ModelCapabilities struct {
	MaxTokens         int  `json:"max_tokens"`
	SupportsStreaming bool `json:"supports_streaming"`
	SupportsReasoning bool `json:"supports_reasoning"`
}

// ModelInfo is the metadata adapters publish for each model they serve.
type ModelInfo struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	ContextLength     int    `json:"context_length"`
	MaxOutputTokens   int    `json:"max_output_tokens"`
	SupportsStreaming bool   `json:"supports_streaming"`
	SupportsReasoning bool   `json:"supports_reasoning"`
}

// Capabilities derives the capability view of the model metadata.
func (m ModelInfo) Capabilities() ModelCapabilities {
	return ModelCapabilities{
		MaxTokens:         m.MaxOutputTokens,
		SupportsStreaming: m.SupportsStreaming,
		SupportsReasoning: m.SupportsReasoning,
	}
}

// Float64 returns a pointer to v, for optional request fields.
func Float64(v float64) *float64 { return &v }

// Int returns a pointer to v, for optional request fields.
func Int(v int) *int { return &v }
