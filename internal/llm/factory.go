package llm

import (
	"fmt"

	"github.com/sant0-9/todoai/internal/config"
)

// NewProvider creates a provider from config
func NewProvider(cfg *config.Config) (Provider, error) {
	baseURL := cfg.ResolvedBaseURL()

	switch cfg.Provider {
	case "", "ollama":
		return NewOllamaProvider(baseURL, cfg.Model), nil

	case "custom":
		if baseURL == "" {
			return nil, fmt.Errorf("custom provider requires base_url")
		}
		return NewCompatProvider(cfg.Provider, baseURL, cfg.APIKey, cfg.Model), nil

	default:
		info := config.GetProvider(cfg.Provider)
		if info == nil {
			return nil, fmt.Errorf("unknown provider: %s", cfg.Provider)
		}
		if info.NeedsAPIKey && cfg.APIKey == "" {
			return nil, fmt.Errorf("%s requires an API key", cfg.Provider)
		}
		return NewCompatProvider(info.ID, baseURL, cfg.APIKey, cfg.Model), nil
	}
}
