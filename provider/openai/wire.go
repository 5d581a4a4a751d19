package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jonwraymond/llmops/fault"
	"github.com/jonwraymond/llmops/provider"
)

// chatRequest is the chat completions request body.
type chatRequest struct {
	Model         string         `json:"model"`
	Messages      []wireMessage  `json:"messages"`
	Temperature   *float64       `json:"temperature,omitempty"`
	TopP          *float64       `json:"top_p,omitempty"`
	MaxTokens     *int           `json:"max_completion_tokens,omitempty"`
	Stop          []string       `json:"stop,omitempty"`
	User          string         `json:"user,omitempty"`
	Stream        bool           `json:"stream,omitempty"`
	StreamOptions *streamOptions `json:"stream_options,omitempty"`
}

type streamOptions struct {
	IncludeUsage bool `json:"include_usage"`
}

type wireMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
	Name    string `json:"name,omitempty"`
}

// chatResponse is the non-streaming chat completions response body.
type chatResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Created int64  `json:"created"`
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage wireUsage `json:"usage"`
}

// streamChunk is one SSE event payload of a streaming completion.
type streamChunk struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage *wireUsage `json:"usage"`
}

type wireUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

func (u wireUsage) usage() provider.Usage {
	return provider.Usage{
		PromptTokens:     u.PromptTokens,
		CompletionTokens: u.CompletionTokens,
		TotalTokens:      u.TotalTokens,
	}
}

// errorBody is the error envelope the API returns on non-2xx responses.
type errorBody struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    string `json:"code"`
	} `json:"error"`
}

// buildChatRequest maps a validated request onto the wire shape, folding
// SystemPrompt in as a leading system message.
func buildChatRequest(req *provider.ChatRequest, stream bool) chatRequest {
	messages := make([]wireMessage, 0, len(req.Messages)+1)
	if req.SystemPrompt != "" {
		messages = append(messages, wireMessage{
			Role:    string(provider.RoleSystem),
			Content: req.SystemPrompt,
		})
	}
	for _, m := range req.Messages {
		messages = append(messages, wireMessage{
			Role:    string(m.Role),
			Content: m.Content,
			Name:    m.Name,
		})
	}

	body := chatRequest{
		Model:       req.Model,
		Messages:    messages,
		Temperature: req.Temperature,
		TopP:        req.TopP,
		MaxTokens:   req.MaxTokens,
		Stop:        req.Stop,
		User:        req.User,
		Stream:      stream,
	}
	if stream {
		body.StreamOptions = &streamOptions{IncludeUsage: true}
	}
	return body
}

func toChatResponse(wire chatResponse) *provider.ChatResponse {
	resp := &provider.ChatResponse{
		ID:      wire.ID,
		Model:   wire.Model,
		Created: time.Unix(wire.Created, 0).UTC(),
		Usage:   wire.Usage.usage(),
	}
	if len(wire.Choices) > 0 {
		resp.Content = wire.Choices[0].Message.Content
		resp.FinishReason = wire.Choices[0].FinishReason
	}
	return resp
}

// classifyStatus maps a non-2xx response to a classified fault. The body is
// consumed for the backend's error message.
func classifyStatus(providerName string, resp *http.Response) error {
	const maxErrorBody = 64 << 10
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	message := http.StatusText(resp.StatusCode)
	var body errorBody
	if err := json.Unmarshal(raw, &body); err == nil && body.Error.Message != "" {
		message = body.Error.Message
	}

	var kind fault.Kind
	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		kind = fault.KindAuthentication
	case resp.StatusCode == http.StatusForbidden:
		kind = fault.KindAuthorization
	case resp.StatusCode == http.StatusNotFound:
		kind = fault.KindUnsupportedModel
	case resp.StatusCode == http.StatusTooManyRequests:
		kind = fault.KindRateLimited
	case resp.StatusCode >= 500:
		kind = fault.KindExternalAPI
	default:
		kind = fault.KindInvalidRequest
	}

	return fault.Newf(kind, "%s (status %d)", message, resp.StatusCode).
		WithProvider(providerName)
}

// classifyTransport maps a round-trip failure to a classified fault.
func classifyTransport(providerName string, err error) error {
	kind := fault.KindNetwork
	if errors.Is(err, context.DeadlineExceeded) {
		kind = fault.KindTimeout
	}
	return fault.Wrap(kind, err, fmt.Sprintf("request to %s failed", providerName)).
		WithProvider(providerName)
}
