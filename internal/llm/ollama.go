package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

// DefaultOllamaBaseURL is Ollama's OpenAI-compatible API root.
const DefaultOllamaBaseURL = "http://localhost:11434/v1"

// OllamaProvider completes through Ollama's OpenAI-compatible endpoint and
// pings its native API.
type OllamaProvider struct {
	*CompatProvider
	host string
}

func NewOllamaProvider(baseURL, model string) *OllamaProvider {
	if baseURL == "" {
		baseURL = DefaultOllamaBaseURL
	}
	compat := NewCompatProvider("ollama", baseURL, "", model)
	return &OllamaProvider{
		CompatProvider: compat,
		host:           strings.TrimSuffix(compat.baseURL, "/v1"),
	}
}

func (o *OllamaProvider) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, o.host+"/api/tags", nil)
	if err != nil {
		return err
	}

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("cannot connect to Ollama at %s: %w", o.host, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ollama returned status %d", resp.StatusCode)
	}

	return nil
}
