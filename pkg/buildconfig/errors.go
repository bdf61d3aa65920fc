package buildconfig

import (
	"fmt"
)

// ErrorClass classifies configuration failures for callers that branch on
// failure kind rather than message text.
type ErrorClass string

const (
	// ErrorClassInvalidConfiguration indicates an override that cannot be
	// normalized (malformed version string, non-positive prefix length).
	// Raised eagerly at merge time, never at path-access time.
	ErrorClassInvalidConfiguration ErrorClass = "invalid-configuration"

	// ErrorClassEnvironmentUnresolved indicates that the build root could
	// not be determined from any fallback branch.
	ErrorClassEnvironmentUnresolved ErrorClass = "environment-unresolved"
)

// ConfigError is a classified configuration-resolution error.
type ConfigError struct {
	// Class is the error classification.
	Class ErrorClass

	// Setting is the setting name involved, if applicable.
	Setting string

	// Message is the human-readable error message.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Setting != "" {
		if e.Err != nil {
			return fmt.Sprintf("[%s] %s (setting=%s): %v", e.Class, e.Message, e.Setting, e.Err)
		}
		return fmt.Sprintf("[%s] %s (setting=%s)", e.Class, e.Message, e.Setting)
	}
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Class, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Class, e.Message)
}

// Unwrap returns the underlying error for error chain inspection.
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Is implements error equality for errors.Is: two ConfigErrors match when
// their classes match.
func (e *ConfigError) Is(target error) bool {
	t, ok := target.(*ConfigError)
	if !ok {
		return false
	}
	return e.Class == t.Class
}

// NewInvalidConfigurationError creates an invalid-configuration error for
// the named setting.
func NewInvalidConfigurationError(setting, message string, err error) *ConfigError {
	return &ConfigError{
		Class:   ErrorClassInvalidConfiguration,
		Setting: setting,
		Message: message,
		Err:     err,
	}
}

// NewEnvironmentUnresolvedError creates an environment-unresolved error.
func NewEnvironmentUnresolvedError(message string, err error) *ConfigError {
	return &ConfigError{
		Class:   ErrorClassEnvironmentUnresolved,
		Message: message,
		Err:     err,
	}
}
