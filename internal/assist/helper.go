// Package assist turns a task description into a numbered step plan by
// asking a chat-completion backend and normalizing its reply.
package assist

import (
	"context"
	"errors"
	"strings"

	"github.com/sant0-9/todoai/internal/llm"
	"github.com/sant0-9/todoai/internal/logger"
	"github.com/sant0-9/todoai/internal/prompts"
	"github.com/sant0-9/todoai/internal/steps"
)

// Plan is the normalized answer for one task. Steps is empty when the
// backend produced nothing usable and Text holds a fallback message.
type Plan struct {
	Text  string
	Steps steps.List
}

// Helper holds no mutable state and is safe for concurrent use.
type Helper struct {
	provider llm.Provider
	model    string
}

func NewHelper(provider llm.Provider, model string) *Helper {
	return &Helper{
		provider: provider,
		model:    model,
	}
}

// Help returns the normalized step text for task.
func (h *Helper) Help(ctx context.Context, task string) (string, error) {
	plan, err := h.Plan(ctx, task)
	if err != nil {
		return "", err
	}
	return plan.Text, nil
}

// Plan sends task to the backend once and normalizes the completion.
// Blank tasks fail with *ValidationError before any network activity;
// backend failures come back as *BackendError.
func (h *Helper) Plan(ctx context.Context, task string) (*Plan, error) {
	if strings.TrimSpace(task) == "" {
		return nil, &ValidationError{Field: "task", Message: MessageTaskRequired}
	}

	log := logger.FromContext(ctx).With("provider", h.provider.Name(), "model", h.model)

	req := llm.NewRequest(h.model, prompts.StepsSystem(), task)
	resp, err := h.provider.Complete(ctx, req)
	if err != nil {
		bErr := &BackendError{Err: err}
		var apiErr *llm.APIError
		if errors.As(err, &apiErr) {
			bErr.StatusCode = apiErr.StatusCode
			bErr.Body = apiErr.Body
		}
		log.Error("AI help request failed", "status", bErr.StatusCode, "body", bErr.Body, "error", err)
		return nil, bErr
	}

	list := steps.Parse(resp.Content)
	log.Debug("AI help completed", "steps", len(list), "finish_reason", resp.FinishReason)

	return &Plan{
		Text:  steps.Normalize(resp.Content),
		Steps: list,
	}, nil
}
