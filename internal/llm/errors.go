package llm

import "fmt"

// APIError is returned when a backend answers with a non-success status.
// Body holds the raw response body for diagnostics.
type APIError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s error (status %d): %s", e.Provider, e.StatusCode, e.Body)
}
