// internal/llm/interface.go
package llm

import (
	"context"
	"errors"
)

// ErrUnknownProvider is returned when a provider name has no registered factory.
var ErrUnknownProvider = errors.New("unknown AI provider")

// CompletionRequest is the normalized request every provider accepts.
type CompletionRequest struct {
	Prompt      string  `json:"prompt"`
	MaxTokens   int     `json:"max_tokens,omitempty"`
	Temperature float32 `json:"temperature,omitempty"`
	TopP        float32 `json:"top_p,omitempty"`
	TopK        int     `json:"top_k,omitempty"`
	Model       string  `json:"model,omitempty"`
}

// CompletionResponse is the normalized response every provider returns.
type CompletionResponse struct {
	Text         string `json:"text"`
	FinishReason string `json:"finish_reason,omitempty"`
	TokensUsed   int    `json:"tokens_used,omitempty"`
	PromptTokens int    `json:"prompt_tokens,omitempty"`
	OutputTokens int    `json:"output_tokens,omitempty"`
	ModelName    string `json:"model_name,omitempty"`
	ProviderName string `json:"provider_name,omitempty"`
}

// ErrEmptyCompletion is returned when the provider answers successfully
// but carries no candidates.
var ErrEmptyCompletion = errors.New("provider returned no candidates")

// Provider is the interface every text-generation backend implements.
type Provider interface {
	// Initialize configures the provider from a flat key/value config.
	Initialize(config map[string]string) error

	// GetName returns the human-readable provider name.
	GetName() string

	// GetSupportedModels returns the models the provider can serve.
	GetSupportedModels() []string

	// CompleteText generates a single full completion.
	CompleteText(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)
}

// ProviderFactory builds an unconfigured provider instance.
type ProviderFactory func() Provider

var providers = make(map[string]ProviderFactory)

// Register registers a provider factory under a name. Called from
// provider package init functions.
func Register(name string, factory ProviderFactory) {
	providers[name] = factory
}

// GetProvider builds and initializes the named provider.
func GetProvider(name string, config map[string]string) (Provider, error) {
	factory, exists := providers[name]
	if !exists {
		return nil, ErrUnknownProvider
	}

	provider := factory()
	err := provider.Initialize(config)
	return provider, err
}

// ListProviders returns all registered provider names.
func ListProviders() []string {
	names := make([]string, 0, len(providers))
	for name := range providers {
		names = append(names, name)
	}
	return names
}
