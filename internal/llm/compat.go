package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

// CompatProvider talks to any OpenAI-compatible chat completions API.
type CompatProvider struct {
	name       string
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

func NewCompatProvider(name, baseURL, apiKey, model string) *CompatProvider {
	if name == "" {
		name = "openai-compatible"
	}
	return &CompatProvider{
		name:    name,
		apiKey:  apiKey,
		model:   model,
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 5 * time.Minute,
		},
	}
}

func (c *CompatProvider) Name() string {
	return c.name
}

// BaseURL returns the API root requests are sent to.
func (c *CompatProvider) BaseURL() string {
	return c.baseURL
}

func (c *CompatProvider) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/models", nil)
	if err != nil {
		return err
	}
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("cannot connect to %s at %s: %w", c.name, c.baseURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return fmt.Errorf("invalid API key")
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s returned status %d", c.name, resp.StatusCode)
	}

	return nil
}

type compatRequest struct {
	Model       string          `json:"model"`
	Messages    []compatMessage `json:"messages"`
	Stream      bool            `json:"stream"`
	MaxTokens   int             `json:"max_tokens,omitempty"`
	Temperature float64         `json:"temperature,omitempty"`
}

type compatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

func (c *CompatProvider) Complete(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error) {
	model := req.Model
	if model == "" {
		model = c.model
	}

	apiReq := compatRequest{
		Model:       model,
		Messages:    toCompatMessages(req.Messages),
		Stream:      false,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	}

	body, err := json.Marshal(apiReq)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/chat/completions",
		bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	c.authorize(httpReq)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%s request failed: %w", c.name, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s response: %w", c.name, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{
			Provider:   c.name,
			StatusCode: resp.StatusCode,
			Body:       string(respBody),
		}
	}

	if !gjson.ValidBytes(respBody) {
		return nil, fmt.Errorf("failed to decode %s response", c.name)
	}

	parsed := gjson.ParseBytes(respBody)
	respModel := parsed.Get("model").String()
	if respModel == "" {
		respModel = model
	}

	return &CompletionResponse{
		Content:      parsed.Get("choices.0.message.content").String(),
		Model:        respModel,
		FinishReason: parsed.Get("choices.0.finish_reason").String(),
		Usage: Usage{
			PromptTokens:     int(parsed.Get("usage.prompt_tokens").Int()),
			CompletionTokens: int(parsed.Get("usage.completion_tokens").Int()),
			TotalTokens:      int(parsed.Get("usage.total_tokens").Int()),
		},
	}, nil
}

func (c *CompatProvider) authorize(req *http.Request) {
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
}

func toCompatMessages(msgs []Message) []compatMessage {
	result := make([]compatMessage, len(msgs))
	for i, m := range msgs {
		result[i] = compatMessage{
			Role:    m.Role,
			Content: m.Content,
		}
	}
	return result
}
