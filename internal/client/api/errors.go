package api

import "fmt"

// Error is a broker-reported failure. Message carries the human-readable text
// from the response body; Code, when present, is the structured error code
// the broker attaches to public-link failures.
type Error struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("HTTP %d", e.StatusCode)
}
