// Package llm defines the Provider interface for Large Language Model backends.
//
// A provider wraps a remote or local model API (e.g., OpenAI GPT-4, Anthropic
// Claude, or a local Ollama instance) and exposes a uniform text-in/text-out
// completion call so the conversation and evaluation engines never couple to a
// specific SDK. Connection pooling, rate limiting, and retries are the
// provider's concern; callers issue exactly one completion per conversational
// turn or evaluation request.
//
// Implementations must be safe for concurrent use.
package llm

import "context"

// Usage holds token accounting information returned by the LLM backend.
// Counts are in the model's native token unit and may differ between providers
// for the same textual content.
type Usage struct {
	// PromptTokens is the number of tokens consumed by the input messages and
	// system prompt.
	PromptTokens int

	// CompletionTokens is the number of tokens generated in the response.
	CompletionTokens int

	// TotalTokens is PromptTokens + CompletionTokens. Some providers return it
	// directly rather than computing it from the parts.
	TotalTokens int
}

// CompletionRequest carries everything the model needs to produce a response.
// A zero-value request is invalid; at minimum Messages must be non-empty.
type CompletionRequest struct {
	// SystemPrompt is a high-priority instruction injected before the
	// conversation history. Providers without a dedicated system slot must
	// prepend it as a "system"-role message.
	SystemPrompt string

	// Messages is the ordered conversation history. The last message is
	// typically from the "user" role and drives the response.
	Messages []Message

	// Temperature controls output randomness in [0.0, 2.0]. A value of 0
	// means "use the provider default".
	Temperature float64

	// MaxTokens caps the number of completion tokens the model may generate.
	// Zero means use the provider default.
	MaxTokens int
}

// CompletionResponse is the result of a single completion call.
type CompletionResponse struct {
	// Content is the full text of the model's reply.
	Content string

	// Usage reports token counts when the backend supplies them.
	Usage Usage
}

// Provider is the uniform interface over LLM backends.
//
// Complete performs one blocking round-trip to the model and returns the
// reply verbatim. It must respect context cancellation.
type Provider interface {
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)
}
