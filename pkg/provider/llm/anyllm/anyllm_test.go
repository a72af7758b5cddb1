package anyllm

import (
	"testing"

	anyllmlib "github.com/mozilla-ai/any-llm-go"

	"github.com/Y3454R/vsp-mvp/pkg/provider/llm"
)

func TestNew_EmptyProviderName(t *testing.T) {
	_, err := New("", "gpt-4o")
	if err == nil {
		t.Fatal("expected error for empty providerName")
	}
}

func TestNew_EmptyModel(t *testing.T) {
	_, err := New("openai", "")
	if err == nil {
		t.Fatal("expected error for empty model")
	}
}

func TestNew_UnsupportedProvider(t *testing.T) {
	_, err := New("fakecloud", "some-model", anyllmlib.WithAPIKey("dummy"))
	if err == nil {
		t.Fatal("expected error for unsupported provider")
	}
}

func TestNew_WithAPIKey(t *testing.T) {
	p, err := New("anthropic", "claude-3-5-sonnet-latest", anyllmlib.WithAPIKey("sk-ant-test"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.model != "claude-3-5-sonnet-latest" {
		t.Errorf("expected model claude-3-5-sonnet-latest, got %q", p.model)
	}
}

// Ollama talks to a local daemon and needs no API key.
func TestNew_Ollama_NoAPIKey(t *testing.T) {
	p, err := New("ollama", "llama3", anyllmlib.WithBaseURL("http://localhost:11434"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p == nil {
		t.Fatal("expected non-nil provider")
	}
}

func TestBuildParams(t *testing.T) {
	p := &Provider{model: "gpt-4o"}
	params := p.buildParams(llm.CompletionRequest{
		SystemPrompt: "You are a patient.",
		Messages: []llm.Message{
			{Role: "user", Content: "How do you feel?"},
			{Role: "assistant", Content: "Tired."},
		},
		Temperature: 0.7,
		MaxTokens:   256,
	})

	if params.Model != "gpt-4o" {
		t.Errorf("model = %q", params.Model)
	}
	if len(params.Messages) != 3 {
		t.Fatalf("got %d messages, want 3 (system + 2)", len(params.Messages))
	}
	if params.Messages[0].Role != anyllmlib.RoleSystem {
		t.Errorf("first message role = %q, want system", params.Messages[0].Role)
	}
	if params.Temperature == nil || *params.Temperature != 0.7 {
		t.Errorf("temperature = %v, want 0.7", params.Temperature)
	}
	if params.MaxTokens == nil || *params.MaxTokens != 256 {
		t.Errorf("max_tokens = %v, want 256", params.MaxTokens)
	}
}

func TestBuildParams_ZeroValuesOmitted(t *testing.T) {
	p := &Provider{model: "gpt-4o"}
	params := p.buildParams(llm.CompletionRequest{
		Messages: []llm.Message{{Role: "user", Content: "hi"}},
	})

	if len(params.Messages) != 1 {
		t.Fatalf("got %d messages, want 1 (no system prompt)", len(params.Messages))
	}
	if params.Temperature != nil {
		t.Errorf("temperature = %v, want nil for provider default", params.Temperature)
	}
	if params.MaxTokens != nil {
		t.Errorf("max_tokens = %v, want nil for provider default", params.MaxTokens)
	}
}
