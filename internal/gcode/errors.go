package gcode

import "fmt"

// ValidationError reports the first parameter rule that failed. It is fully
// recoverable: the caller can fix the inputs and retry. No geometry is
// computed once validation fails.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Reason
}

func failf(format string, args ...any) *ValidationError {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}
