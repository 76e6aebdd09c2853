// Package format renders movie fields for text surfaces, with defined
// fallbacks for absent data.
package format

import (
	"strings"
	"time"
)

const (
	dateLayout     = "02/01/2006"
	dateTimeLayout = "02/01/2006 15:04"
)

// Date renders a catalog date string (YYYY-MM-DD) for display.
func Date(value string) string {
	if value == "" {
		return "Date unavailable"
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return "Date unavailable"
	}
	return t.Format(dateLayout)
}

// DateTime renders a schedule instant in the local time zone.
func DateTime(t *time.Time) string {
	if t == nil {
		return "Time not set"
	}
	return t.Local().Format(dateTimeLayout)
}

// Overview trims the synopsis, substituting a fallback when empty.
func Overview(overview string) string {
	trimmed := strings.TrimSpace(overview)
	if trimmed == "" {
		return "No synopsis available."
	}
	return trimmed
}
