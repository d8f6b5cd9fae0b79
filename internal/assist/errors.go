package assist

import (
	"errors"
	"fmt"
)

const (
	MessageTaskRequired = "task is required"
	MessageFailed       = "AI request failed"
)

// ValidationError reports bad input caught before any backend call.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// BackendError reports a failed backend call. StatusCode is zero for
// transport failures. Body is the raw backend reply, for logs only.
type BackendError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *BackendError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("backend returned status %d: %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("backend request failed: %v", e.Err)
}

func (e *BackendError) Unwrap() error {
	return e.Err
}

// UserMessage maps an error from Help to text safe to show a user.
func UserMessage(err error) string {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return MessageTaskRequired
	}
	return MessageFailed
}

func IsValidation(err error) bool {
	var vErr *ValidationError
	return errors.As(err, &vErr)
}
