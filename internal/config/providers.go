package config

type ProviderInfo struct {
	ID           string
	Name         string
	Description  string
	BaseURL      string
	NeedsAPIKey  bool
	SignupURL    string
	Models       []string
	DefaultModel string
}

// Providers lists the backends with a known OpenAI-compatible endpoint.
var Providers = []ProviderInfo{
	{
		ID:           "ollama",
		Name:         "Ollama",
		Description:  "Local, free, private",
		BaseURL:      "http://localhost:11434/v1",
		NeedsAPIKey:  false,
		Models:       []string{"llama3.2", "llama3.1:8b", "qwen2.5:3b", "mistral:7b"},
		DefaultModel: DefaultModel,
	},
	{
		ID:           "groq",
		Name:         "Groq",
		Description:  "Very fast, cheap",
		BaseURL:      "https://api.groq.com/openai/v1",
		NeedsAPIKey:  true,
		SignupURL:    "https://console.groq.com/keys",
		Models:       []string{"llama-3.1-8b-instant", "llama-3.3-70b-versatile"},
		DefaultModel: "llama-3.1-8b-instant",
	},
	{
		ID:           "openai",
		Name:         "OpenAI",
		Description:  "Hosted GPT models",
		BaseURL:      "https://api.openai.com/v1",
		NeedsAPIKey:  true,
		SignupURL:    "https://platform.openai.com/api-keys",
		Models:       []string{"gpt-4o-mini", "gpt-4o"},
		DefaultModel: "gpt-4o-mini",
	},
	{
		ID:           "openrouter",
		Name:         "OpenRouter",
		Description:  "Access all models",
		BaseURL:      "https://openrouter.ai/api/v1",
		NeedsAPIKey:  true,
		SignupURL:    "https://openrouter.ai/keys",
		Models:       []string{"meta-llama/llama-3.1-8b-instruct", "openai/gpt-4o-mini"},
		DefaultModel: "meta-llama/llama-3.1-8b-instruct",
	},
	{
		ID:          "custom",
		Name:        "Custom",
		Description: "Any OpenAI-compatible endpoint (set base_url)",
	},
}

func GetProvider(id string) *ProviderInfo {
	for _, p := range Providers {
		if p.ID == id {
			return &p
		}
	}
	return nil
}
