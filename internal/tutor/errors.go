package tutor

import (
	"errors"
	"fmt"

	"github.com/stinglish/stinglish/internal/llm"
)

// ConfigError means the tutor cannot be reached because it is not
// configured. Guidance is shown to the learner as is.
type ConfigError struct {
	Guidance string
	Err      error
}

func (e *ConfigError) Error() string {
	return "tutor not configured: " + e.Err.Error()
}

func (e *ConfigError) Unwrap() error { return e.Err }

// ServiceError wraps a failed call to the text-generation service.
type ServiceError struct {
	Op  string
	Err error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("tutor %s: %v", e.Op, e.Err)
}

func (e *ServiceError) Unwrap() error { return e.Err }

// classify turns a provider construction failure into a ConfigError when
// a credential is missing and a ServiceError otherwise.
func classify(op string, err error) error {
	var missing *llm.ErrMissingCredential
	if errors.As(err, &missing) {
		return &ConfigError{Guidance: guidance(missing), Err: err}
	}
	return &ServiceError{Op: op, Err: err}
}

func guidance(missing *llm.ErrMissingCredential) string {
	return fmt.Sprintf(
		"The AI tutor is unavailable: no API key is configured for %s. "+
			"Set the %s environment variable (or add the key to stinglish.yaml) and restart Stinglish.",
		missing.Provider, missing.EnvVar)
}
