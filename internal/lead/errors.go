package lead

import (
	"errors"
	"sort"
	"strings"
)

var (
	// ErrInvalid is the cause of a ValidationError raised by field rules.
	ErrInvalid = errors.New("lead: invalid submission")
	// ErrBotDetected is the cause when the honeypot field was filled in.
	ErrBotDetected = errors.New("lead: bot detected")
	// ErrRateLimited is the cause when a client exceeded its daily submission allowance.
	ErrRateLimited = errors.New("lead: too many submissions")
)

const (
	msgBotDetected = "We could not verify your submission. Please try again."
	msgRateLimited = "We have already received several requests from you today. Please call us instead."
)

// ValidationError carries per-field messages keyed by form field name plus form-level
// messages. Unwrap exposes the cause so callers can use errors.Is.
type ValidationError struct {
	Fields   map[string]string
	NonField []string
	cause    error
}

func newValidationError(cause error) *ValidationError {
	return &ValidationError{Fields: map[string]string{}, cause: cause}
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields)+len(e.NonField))
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	parts = append(parts, e.NonField...)
	if len(parts) == 0 {
		return e.cause.Error()
	}
	return e.cause.Error() + ": " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return e.cause }

// Field returns the message for name, or "".
func (e *ValidationError) Field(name string) string {
	if e == nil {
		return ""
	}
	return e.Fields[name]
}
