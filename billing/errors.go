package billing

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidLine covers quantity <= 0, negative rate, discount outside
	// [0,100] and GST rate outside [0,100].
	ErrInvalidLine = errors.New("invalid invoice line")

	// ErrInvalidRate is returned when the fallback GST rate itself is out of range.
	ErrInvalidRate = errors.New("gst rate must be between 0 and 100")
)

// ValidationError wraps a sentinel error with details naming the offending
// line, so callers can match with errors.Is while users see a readable message.
type ValidationError struct {
	Err     error
	Details string
}

func (e *ValidationError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
