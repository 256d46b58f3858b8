package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a settings validation error
type ValidationError struct {
	Path    string
	Message string
}

// Error returns the error message
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// ValidationErrors collects every invalid setting.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return "invalid settings: " + strings.Join(msgs, "; ")
}

// Validate checks the settings. It returns nil or ValidationErrors.
func (s *Settings) Validate() error {
	var errors ValidationErrors

	if s.Workspace == "" {
		errors = append(errors, ValidationError{Path: KeyWorkspace, Message: "workspace is required"})
	}
	if s.Attacker == "" {
		errors = append(errors, ValidationError{Path: KeyAttacker, Message: "attacker binary is required"})
	}
	if s.Output == "" {
		errors = append(errors, ValidationError{Path: KeyOutput, Message: "output path is required"})
	}
	if s.SanityTimeout <= 0 {
		errors = append(errors, ValidationError{
			Path:    KeySanityTimeout,
			Message: fmt.Sprintf("must be positive, got %s", s.SanityTimeout),
		})
	}

	if len(errors) > 0 {
		return errors
	}
	return nil
}
