package types

import "fmt"

// ConversionError represents a failure converting a wire-form decimal string
// into an exact decimal value.
type ConversionError struct {
	Field string
	Value string
	Cause error
}

func (e *ConversionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("conversion error: %s: invalid decimal %q: %v", e.Field, e.Value, e.Cause)
	}
	return fmt.Sprintf("conversion error: %s: invalid decimal %q", e.Field, e.Value)
}

func (e *ConversionError) Unwrap() error {
	return e.Cause
}
