package llm

import (
	"context"
)

// Provider is the interface all chat-completion backends implement
type Provider interface {
	// Name returns the provider name
	Name() string

	// Complete sends a completion request and returns the full response
	Complete(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error)

	// Ping checks if the provider is reachable
	Ping(ctx context.Context) error
}

// CompletionRequest represents a request to the LLM. Zero MaxTokens and
// Temperature leave the backend defaults in place.
type CompletionRequest struct {
	Model       string
	Messages    []Message
	MaxTokens   int
	Temperature float64
}

// Message represents a chat message
type Message struct {
	Role    string
	Content string
}

const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// CompletionResponse represents the full response
type CompletionResponse struct {
	Content      string
	Model        string
	FinishReason string
	Usage        Usage
}

// Usage tracks token usage
type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// NewRequest creates a two-turn completion request: one system
// instruction followed by one user message.
func NewRequest(model string, systemPrompt, userPrompt string) *CompletionRequest {
	return &CompletionRequest{
		Model: model,
		Messages: []Message{
			{Role: RoleSystem, Content: systemPrompt},
			{Role: RoleUser, Content: userPrompt},
		},
	}
}
