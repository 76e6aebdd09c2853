// Package calendar is the external reminder-event capability. It is an
// independent failure domain: every operation is best-effort from the
// tracker's point of view, and an entire platform may lack calendar
// integration, which the typed Unavailable gateway expresses instead of
// runtime platform branching.
package calendar

import (
	"context"
	"errors"
	"time"
)

// ErrUnavailable is returned by every operation of a gateway whose
// platform has no calendar integration.
var ErrUnavailable = errors.New("calendar integration is not available on this platform")

// ErrNoWritableCalendar is returned by PickWritable when neither the
// default calendar nor any scanned calendar allows modifications.
var ErrNoWritableCalendar = errors.New("no writable calendar found")

// ErrEventNotFound is returned by update/delete when the event id does
// not resolve to a stored event.
var ErrEventNotFound = errors.New("calendar event not found")

// Info describes one device calendar.
type Info struct {
	ID       string
	Title    string
	Writable bool
}

// Event carries the fields of a reminder event.
type Event struct {
	Title    string
	Start    time.Time
	End      time.Time
	TimeZone string
	Notes    string
}

// DeleteOptions mirrors the device API; recurring events are out of
// scope so FutureEvents is always false in practice.
type DeleteOptions struct {
	FutureEvents bool
}

// Gateway is the calendar capability consumed by the tracker.
type Gateway interface {
	// Available reports whether calendar integration exists at all.
	// When false, every other method returns ErrUnavailable.
	Available() bool
	Calendars(ctx context.Context) ([]Info, error)
	CreateEvent(ctx context.Context, calendarID string, ev Event) (string, error)
	UpdateEvent(ctx context.Context, eventID string, ev Event) error
	DeleteEvent(ctx context.Context, eventID string, opts DeleteOptions) error
}

// PickWritable selects the calendar target for a create/update: the
// default calendar if it allows modifications, otherwise any writable
// calendar from a scan. The choice is made fresh on every call, never
// cached.
func PickWritable(ctx context.Context, gw Gateway, defaultID string) (string, error) {
	infos, err := gw.Calendars(ctx)
	if err != nil {
		return "", err
	}
	for _, info := range infos {
		if info.ID == defaultID && info.Writable {
			return info.ID, nil
		}
	}
	for _, info := range infos {
		if info.Writable {
			return info.ID, nil
		}
	}
	return "", ErrNoWritableCalendar
}
