package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jonwraymond/llmops/fault"
	"github.com/jonwraymond/llmops/provider"
)

func newTestProvider(t *testing.T, handler http.Handler) (*Provider, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	p, err := New(&provider.Config{
		Provider: ProviderName,
		OpenAI: &provider.OpenAIConfig{
			APIKey:  "sk-test",
			BaseURL: srv.URL,
		},
	}, WithHTTPClient(srv.Client()))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return p, srv
}

func chatHandler(t *testing.T, content string, usage wireUsage) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("path = %q, want /chat/completions", r.URL.Path)
		}
		resp := map[string]any{
			"id":      "chatcmpl-1",
			"model":   "gpt-4o",
			"created": 1700000000,
			"choices": []map[string]any{
				{
					"message":       map[string]any{"role": "assistant", "content": content},
					"finish_reason": "stop",
				},
			},
			"usage": usage,
		}
		json.NewEncoder(w).Encode(resp)
	})
}

func testRequest() *provider.ChatRequest {
	return &provider.ChatRequest{
		Model: "gpt-4o",
		Messages: []provider.Message{
			{Role: provider.RoleUser, Content: "hello"},
		},
	}
}

func TestNew_RequiresConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  *provider.Config
	}{
		{"nil config", nil},
		{"missing openai section", &provider.Config{Provider: ProviderName}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.cfg)
			if fault.KindOf(err) != fault.KindConfigMissing {
				t.Errorf("KindOf(err) = %v, want %v", fault.KindOf(err), fault.KindConfigMissing)
			}
			if err == nil || !strings.Contains(err.Error(), "OpenAI configuration is required") {
				t.Errorf("error = %v, want configuration-required message", err)
			}
		})
	}
}

func TestCreateChatCompletion(t *testing.T) {
	var gotAuth string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		chatHandler(t, "hi there", wireUsage{PromptTokens: 5, CompletionTokens: 3, TotalTokens: 8}).ServeHTTP(w, r)
	})
	p, _ := newTestProvider(t, handler)

	resp, err := p.CreateChatCompletion(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("CreateChatCompletion() error = %v", err)
	}

	if gotAuth != "Bearer sk-test" {
		t.Errorf("Authorization = %q, want %q", gotAuth, "Bearer sk-test")
	}
	if resp.Content != "hi there" {
		t.Errorf("Content = %q, want %q", resp.Content, "hi there")
	}
	if resp.FinishReason != "stop" {
		t.Errorf("FinishReason = %q, want %q", resp.FinishReason, "stop")
	}
	if resp.Usage.TotalTokens != 8 {
		t.Errorf("Usage.TotalTokens = %d, want 8", resp.Usage.TotalTokens)
	}
}

func TestCreateChatCompletion_DefaultsModel(t *testing.T) {
	var gotModel string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body chatRequest
		json.NewDecoder(r.Body).Decode(&body)
		gotModel = body.Model
		chatHandler(t, "ok", wireUsage{}).ServeHTTP(w, r)
	})
	p, _ := newTestProvider(t, handler)

	req := testRequest()
	req.Model = ""
	if _, err := p.CreateChatCompletion(context.Background(), req); err != nil {
		t.Fatalf("CreateChatCompletion() error = %v", err)
	}
	if gotModel != "gpt-4o" {
		t.Errorf("wire model = %q, want default %q", gotModel, "gpt-4o")
	}
}

func TestCreateChatCompletion_SystemPromptPrepended(t *testing.T) {
	var gotMessages []wireMessage
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body chatRequest
		json.NewDecoder(r.Body).Decode(&body)
		gotMessages = body.Messages
		chatHandler(t, "ok", wireUsage{}).ServeHTTP(w, r)
	})
	p, _ := newTestProvider(t, handler)

	req := testRequest()
	req.SystemPrompt = "be terse"
	if _, err := p.CreateChatCompletion(context.Background(), req); err != nil {
		t.Fatalf("CreateChatCompletion() error = %v", err)
	}

	if len(gotMessages) != 2 {
		t.Fatalf("len(messages) = %d, want 2", len(gotMessages))
	}
	if gotMessages[0].Role != "system" || gotMessages[0].Content != "be terse" {
		t.Errorf("messages[0] = %+v, want leading system message", gotMessages[0])
	}
}

func TestCreateChatCompletion_StatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   fault.Kind
	}{
		{"unauthorized", http.StatusUnauthorized, fault.KindAuthentication},
		{"forbidden", http.StatusForbidden, fault.KindAuthorization},
		{"not found", http.StatusNotFound, fault.KindUnsupportedModel},
		{"rate limited", http.StatusTooManyRequests, fault.KindRateLimited},
		{"server error", http.StatusInternalServerError, fault.KindExternalAPI},
		{"bad gateway", http.StatusBadGateway, fault.KindExternalAPI},
		{"bad request", http.StatusBadRequest, fault.KindInvalidRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, _ := newTestProvider(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				json.NewEncoder(w).Encode(map[string]any{
					"error": map[string]any{"message": "backend says no"},
				})
			}))

			_, err := p.CreateChatCompletion(context.Background(), testRequest())
			if fault.KindOf(err) != tt.want {
				t.Errorf("KindOf(err) = %v, want %v", fault.KindOf(err), tt.want)
			}
			if !strings.Contains(err.Error(), "backend says no") {
				t.Errorf("error = %v, want backend message preserved", err)
			}
		})
	}
}

func TestCreateChatCompletion_UnsupportedModelIsLocal(t *testing.T) {
	called := false
	p, _ := newTestProvider(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	req := testRequest()
	req.Model = "gpt-imaginary"
	_, err := p.CreateChatCompletion(context.Background(), req)
	if fault.KindOf(err) != fault.KindUnsupportedModel {
		t.Errorf("KindOf(err) = %v, want %v", fault.KindOf(err), fault.KindUnsupportedModel)
	}
	if called {
		t.Error("backend was called for an unsupported model")
	}
}

func TestCreateChatCompletion_UsageAccumulates(t *testing.T) {
	p, _ := newTestProvider(t, chatHandler(t, "ok", wireUsage{PromptTokens: 10, CompletionTokens: 5, TotalTokens: 15}))

	for range 3 {
		if _, err := p.CreateChatCompletion(context.Background(), testRequest()); err != nil {
			t.Fatalf("CreateChatCompletion() error = %v", err)
		}
	}

	if got := p.UsageInfo(); got.TotalTokens != 45 {
		t.Errorf("UsageInfo().TotalTokens = %d, want 45", got.TotalTokens)
	}
}

func TestCreateChatCompletion_OrganizationHeader(t *testing.T) {
	var gotOrg string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotOrg = r.Header.Get("OpenAI-Organization")
		chatHandler(t, "ok", wireUsage{}).ServeHTTP(w, r)
	}))
	defer srv.Close()

	p, err := New(&provider.Config{
		OpenAI: &provider.OpenAIConfig{
			APIKey:       "sk-test",
			BaseURL:      srv.URL,
			Organization: "org-42",
		},
	}, WithHTTPClient(srv.Client()))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if _, err := p.CreateChatCompletion(context.Background(), testRequest()); err != nil {
		t.Fatalf("CreateChatCompletion() error = %v", err)
	}
	if gotOrg != "org-42" {
		t.Errorf("OpenAI-Organization = %q, want %q", gotOrg, "org-42")
	}
}

func TestValidateConfiguration(t *testing.T) {
	t.Run("missing api key", func(t *testing.T) {
		p, err := New(&provider.Config{OpenAI: &provider.OpenAIConfig{}})
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}
		err = p.ValidateConfiguration(context.Background())
		if fault.KindOf(err) != fault.KindConfigMissing {
			t.Errorf("KindOf(err) = %v, want %v", fault.KindOf(err), fault.KindConfigMissing)
		}
	})

	t.Run("probe succeeds", func(t *testing.T) {
		p, _ := newTestProvider(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/models" {
				t.Errorf("path = %q, want /models", r.URL.Path)
			}
			w.Write([]byte(`{"data":[]}`))
		}))
		if err := p.ValidateConfiguration(context.Background()); err != nil {
			t.Errorf("ValidateConfiguration() error = %v, want nil", err)
		}
	})

	t.Run("probe rejected", func(t *testing.T) {
		p, _ := newTestProvider(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		err := p.ValidateConfiguration(context.Background())
		if fault.KindOf(err) != fault.KindAuthentication {
			t.Errorf("KindOf(err) = %v, want %v", fault.KindOf(err), fault.KindAuthentication)
		}
	})
}

func TestModelCapabilities(t *testing.T) {
	p, _ := newTestProvider(t, http.NotFoundHandler())

	caps, err := p.ModelCapabilities("o3-mini")
	if err != nil {
		t.Fatalf("ModelCapabilities() error = %v", err)
	}
	if !caps.SupportsReasoning {
		t.Error("SupportsReasoning = false for o3-mini, want true")
	}

	_, err = p.ModelCapabilities("nope")
	if fault.KindOf(err) != fault.KindUnsupportedModel {
		t.Errorf("KindOf(err) = %v, want %v", fault.KindOf(err), fault.KindUnsupportedModel)
	}
}

func TestSupportedModels(t *testing.T) {
	p, _ := newTestProvider(t, http.NotFoundHandler())

	models := p.SupportedModels()
	if len(models) == 0 {
		t.Fatal("SupportedModels() is empty")
	}
	for _, id := range models {
		if !p.IsModelSupported(id) {
			t.Errorf("IsModelSupported(%q) = false for a published model", id)
		}
	}
}
