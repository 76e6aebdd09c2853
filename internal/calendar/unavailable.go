package calendar

import "context"

// Unavailable is the gateway for platforms without calendar
// integration. Schedules still work; reminders stay local-only.
type Unavailable struct{}

func (Unavailable) Available() bool { return false }

func (Unavailable) Calendars(ctx context.Context) ([]Info, error) {
	return nil, ErrUnavailable
}

func (Unavailable) CreateEvent(ctx context.Context, calendarID string, ev Event) (string, error) {
	return "", ErrUnavailable
}

func (Unavailable) UpdateEvent(ctx context.Context, eventID string, ev Event) error {
	return ErrUnavailable
}

func (Unavailable) DeleteEvent(ctx context.Context, eventID string, opts DeleteOptions) error {
	return ErrUnavailable
}
