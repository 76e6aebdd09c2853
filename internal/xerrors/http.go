package xerrors

import "fmt"

// NewHTTPError classifies an HTTP status from the catalog API:
// 4xx is irrecoverable except 408 and 429, 5xx and anything
// unexpected is recoverable.
func NewHTTPError(statusCode int, operation string) *ClassifiedError {
	return &ClassifiedError{
		Category:   httpCategory(statusCode),
		StatusCode: statusCode,
		Underlying: fmt.Errorf("%s: status %d", operation, statusCode),
	}
}

// NewNetworkError classifies a transport-level failure, which is always
// treated as transient.
func NewNetworkError(operation string, err error) *ClassifiedError {
	return &ClassifiedError{
		Category:   Recoverable,
		Underlying: fmt.Errorf("%s: %w", operation, err),
	}
}

func httpCategory(statusCode int) Category {
	switch {
	case statusCode >= 400 && statusCode < 500:
		switch statusCode {
		case 408, 429:
			return Recoverable
		default:
			return Irrecoverable
		}
	default:
		return Recoverable
	}
}
