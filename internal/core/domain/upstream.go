package domain

import "fmt"

// UpstreamError is a non-2xx response from the backend carrying the
// server-supplied message, when one was present in the body.
type UpstreamError struct {
	Status  int
	Message string
}

func (e *UpstreamError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("upstream %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("upstream %d", e.Status)
}
