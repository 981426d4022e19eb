package procsdk

import "fmt"

// APIError is returned when the service answers with an error envelope.
type APIError struct {
	StatusCode  int
	Code        string
	Description string
}

func (e *APIError) Error() string {
	if e.Description != "" {
		return fmt.Sprintf("%s: %s (HTTP %d)", e.Code, e.Description, e.StatusCode)
	}
	return fmt.Sprintf("%s (HTTP %d)", e.Code, e.StatusCode)
}
