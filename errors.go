package moviekeep

import (
	"github.com/moviekeep/moviekeep/internal/calendar"
	"github.com/moviekeep/moviekeep/internal/types"
	"github.com/moviekeep/moviekeep/internal/writequeue"
)

// Re-export shared errors so callers compare against a single symbol.
var (
	// ErrMissingAPIKey is returned by catalog operations when no API
	// credential is configured. Fix the configuration; no request was sent.
	ErrMissingAPIKey = types.ErrMissingAPIKey

	// ErrNoWritableCalendar means neither the default calendar nor any
	// scanned calendar allows modifications; the reminder stays local-only.
	ErrNoWritableCalendar = calendar.ErrNoWritableCalendar

	// ErrCalendarUnavailable means this platform has no calendar
	// integration at all.
	ErrCalendarUnavailable = calendar.ErrUnavailable

	// ErrClosed is returned when mutating through a client that has
	// already been closed.
	ErrClosed = writequeue.ErrQueueClosed
)
