package types

import (
	"fmt"
	"net/http"
)

// ------------------------------
// Shared Interfaces
// ------------------------------

// HTTPClient interface for dependency injection
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// ------------------------------
// Shared Errors
// ------------------------------

// ErrMissingAPIKey is returned before any request is attempted when the
// catalog credential is absent. Configuration error, not retryable.
var ErrMissingAPIKey = fmt.Errorf("catalog API key is not configured")

// ValidateAPIKey rejects an empty catalog credential.
func ValidateAPIKey(key string) error {
	if key == "" {
		return ErrMissingAPIKey
	}
	return nil
}

// ValidatePage rejects non-positive page numbers.
func ValidatePage(page int) error {
	if page < 1 {
		return fmt.Errorf("page must be >= 1, got %d", page)
	}
	return nil
}
