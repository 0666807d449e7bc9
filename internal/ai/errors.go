// README: Client failure taxonomy.
package ai

import (
	"errors"
	"fmt"
)

// ErrConfigurationMissing means the client has no endpoint or credential to call.
var ErrConfigurationMissing = errors.New("llm configuration missing")

// HTTPError is a non-2xx answer from the model endpoint.
type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("llm endpoint returned status %d", e.Status)
	}
	return fmt.Sprintf("llm endpoint returned status %d: %s", e.Status, e.Message)
}

// NetworkError covers transport failures, deadlines and undecodable bodies.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("llm request failed: %v", e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }
