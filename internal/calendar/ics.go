package calendar

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	ical "github.com/arran4/golang-ical"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// DefaultCalendarID is the calendar created on first use when the
// directory holds none.
const DefaultCalendarID = "personal"

// tzProperty carries the event's resolved time zone; start/end times
// themselves are serialized in UTC.
const tzProperty = ical.ComponentProperty("X-MOVIEKEEP-TIMEZONE")

// ICSGateway stores reminder events in iCalendar files, one file per
// calendar, under a single directory. A file without owner write
// permission is reported as a non-writable calendar.
type ICSGateway struct {
	dir string
	log zerolog.Logger
}

// NewICSGateway ensures dir exists and seeds the default calendar when
// the directory holds no calendars yet.
func NewICSGateway(dir string, log zerolog.Logger) (*ICSGateway, error) {
	if dir == "" {
		return nil, fmt.Errorf("calendar directory must not be empty")
	}
	if err := os.MkdirAll(dir, 0o770); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", dir, err)
	}
	gw := &ICSGateway{dir: dir, log: log.With().Str("component", "calendar").Logger()}
	infos, err := gw.Calendars(context.Background())
	if err != nil {
		return nil, err
	}
	if len(infos) == 0 {
		if err := gw.writeCalendar(DefaultCalendarID, ical.NewCalendar()); err != nil {
			return nil, err
		}
	}
	return gw, nil
}

func (gw *ICSGateway) Available() bool { return true }

// Calendars lists every .ics file in the directory.
func (gw *ICSGateway) Calendars(ctx context.Context) ([]Info, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(gw.dir)
	if err != nil {
		return nil, fmt.Errorf("read calendar dir: %w", err)
	}
	infos := make([]Info, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".ics") {
			continue
		}
		id := strings.TrimSuffix(entry.Name(), ".ics")
		fi, err := entry.Info()
		if err != nil {
			continue
		}
		infos = append(infos, Info{
			ID:       id,
			Title:    id,
			Writable: fi.Mode().Perm()&0o200 != 0,
		})
	}
	return infos, nil
}

// CreateEvent appends the event to the named calendar and returns its
// generated id.
func (gw *ICSGateway) CreateEvent(ctx context.Context, calendarID string, ev Event) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	cal, err := gw.readCalendar(calendarID)
	if err != nil {
		return "", err
	}
	eventID := uuid.NewString()
	applyEvent(cal.AddEvent(eventID), ev)
	if err := gw.writeCalendar(calendarID, cal); err != nil {
		return "", err
	}
	gw.log.Debug().Str("calendar", calendarID).Str("event_id", eventID).Str("title", ev.Title).Msg("event created")
	return eventID, nil
}

// UpdateEvent rewrites the fields of an existing event in place,
// wherever it is stored.
func (gw *ICSGateway) UpdateEvent(ctx context.Context, eventID string, ev Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	calendarID, cal, vev, err := gw.findEvent(ctx, eventID)
	if err != nil {
		return err
	}
	applyEvent(vev, ev)
	if err := gw.writeCalendar(calendarID, cal); err != nil {
		return err
	}
	gw.log.Debug().Str("calendar", calendarID).Str("event_id", eventID).Msg("event updated")
	return nil
}

// DeleteEvent removes the event from whichever calendar holds it.
func (gw *ICSGateway) DeleteEvent(ctx context.Context, eventID string, opts DeleteOptions) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	calendarID, cal, _, err := gw.findEvent(ctx, eventID)
	if err != nil {
		return err
	}
	kept := cal.Components[:0]
	for _, comp := range cal.Components {
		if vev, ok := comp.(*ical.VEvent); ok && eventUID(vev) == eventID {
			continue
		}
		kept = append(kept, comp)
	}
	cal.Components = kept
	if err := gw.writeCalendar(calendarID, cal); err != nil {
		return err
	}
	gw.log.Debug().Str("calendar", calendarID).Str("event_id", eventID).Msg("event deleted")
	return nil
}

// ------------------------- internals -------------------------

func (gw *ICSGateway) path(calendarID string) string {
	return filepath.Join(gw.dir, calendarID+".ics")
}

func (gw *ICSGateway) readCalendar(calendarID string) (*ical.Calendar, error) {
	f, err := os.Open(gw.path(calendarID))
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("calendar %q does not exist", calendarID)
	}
	if err != nil {
		return nil, fmt.Errorf("open calendar %q: %w", calendarID, err)
	}
	defer func() { _ = f.Close() }()

	cal, err := ical.ParseCalendar(f)
	if err != nil {
		return nil, fmt.Errorf("parse calendar %q: %w", calendarID, err)
	}
	return cal, nil
}

func (gw *ICSGateway) writeCalendar(calendarID string, cal *ical.Calendar) error {
	tmp := gw.path(calendarID) + ".tmp"
	if err := os.WriteFile(tmp, []byte(cal.Serialize()), 0o640); err != nil {
		return fmt.Errorf("write calendar %q: %w", calendarID, err)
	}
	if err := os.Rename(tmp, gw.path(calendarID)); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace calendar %q: %w", calendarID, err)
	}
	return nil
}

func (gw *ICSGateway) findEvent(ctx context.Context, eventID string) (string, *ical.Calendar, *ical.VEvent, error) {
	infos, err := gw.Calendars(ctx)
	if err != nil {
		return "", nil, nil, err
	}
	for _, info := range infos {
		cal, err := gw.readCalendar(info.ID)
		if err != nil {
			gw.log.Warn().Err(err).Str("calendar", info.ID).Msg("skipping unreadable calendar")
			continue
		}
		for _, vev := range cal.Events() {
			if eventUID(vev) == eventID {
				return info.ID, cal, vev, nil
			}
		}
	}
	return "", nil, nil, ErrEventNotFound
}

func eventUID(vev *ical.VEvent) string {
	prop := vev.GetProperty(ical.ComponentPropertyUniqueId)
	if prop == nil {
		return ""
	}
	return prop.Value
}

func applyEvent(vev *ical.VEvent, ev Event) {
	vev.SetSummary(ev.Title)
	vev.SetStartAt(ev.Start.UTC())
	vev.SetEndAt(ev.End.UTC())
	if ev.Notes != "" {
		vev.SetDescription(ev.Notes)
	}
	if ev.TimeZone != "" {
		vev.SetProperty(tzProperty, ev.TimeZone)
	}
}
