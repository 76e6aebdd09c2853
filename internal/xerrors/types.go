// Package xerrors classifies failures from the catalog API and the
// durable store so retry policies can distinguish transient trouble
// from permanent rejection.
package xerrors

import "fmt"

// Category determines how an error should be handled by retry logic.
type Category int

const (
	// Recoverable errors should be retried with exponential backoff.
	// Examples: 500s, network timeouts, a locked store file.
	Recoverable Category = iota

	// Irrecoverable errors fail immediately without retry.
	// Examples: 401 (bad API key), 404, malformed request.
	Irrecoverable
)

func (c Category) String() string {
	switch c {
	case Recoverable:
		return "Recoverable"
	case Irrecoverable:
		return "Irrecoverable"
	default:
		return fmt.Sprintf("Unknown(%d)", int(c))
	}
}

// ClassifiedError wraps an error with categorization metadata.
type ClassifiedError struct {
	Category   Category
	StatusCode int    // HTTP status code (0 for non-HTTP errors)
	Underlying error  // the original error
}

func (e *ClassifiedError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("[%s] HTTP %d: %v", e.Category, e.StatusCode, e.Underlying)
	}
	return fmt.Sprintf("[%s] %v", e.Category, e.Underlying)
}

// Unwrap returns the underlying error for error chain compatibility.
func (e *ClassifiedError) Unwrap() error {
	return e.Underlying
}

// IsIrrecoverable reports whether err should not be retried.
func IsIrrecoverable(err error) bool {
	if classified, ok := err.(*ClassifiedError); ok {
		return classified.Category == Irrecoverable
	}
	return false
}
