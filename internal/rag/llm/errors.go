package llm

import (
	"errors"
	"fmt"
)

var ErrMissingAPIKey = errors.New("Gemini API Key is not set. Please set it in the preferences")

// ConfigError means the user has to fix configuration. Never retried.
type ConfigError struct {
	Err error
}

func (e *ConfigError) Error() string {
	return "configuration error: " + e.Err.Error()
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// RemoteError carries a non-2xx response exactly as received.
type RemoteError struct {
	StatusCode int
	Body       string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("Gemini API Error (%d): %s", e.StatusCode, e.Body)
}

// EmptyResponseError is a 2xx response without a first candidate text part.
type EmptyResponseError struct{}

func (e *EmptyResponseError) Error() string {
	return "No content returned from Gemini."
}

func IsConfigError(err error) bool {
	var target *ConfigError
	return errors.As(err, &target)
}

func IsRemoteError(err error) bool {
	var target *RemoteError
	return errors.As(err, &target)
}

func IsEmptyResponse(err error) bool {
	var target *EmptyResponseError
	return errors.As(err, &target)
}
