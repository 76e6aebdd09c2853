package moviekeep

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/moviekeep/moviekeep/internal/calendar"
	"github.com/moviekeep/moviekeep/internal/store"
	"github.com/moviekeep/moviekeep/internal/types"
	"github.com/moviekeep/moviekeep/internal/writequeue"
)

// DefaultEventDuration is how long a scheduled viewing blocks out in
// the calendar.
const DefaultEventDuration = 2 * time.Hour

// Tracker is the record reconciliation core: the authoritative
// in-memory map of per-movie user records. Every mutation commits to
// the map atomically under a single lock, then triggers an asynchronous
// coalesced rewrite of the durable copy. Calendar side effects are
// best-effort and never block or roll back a local state transition.
//
// Invariants held by every mutation path:
//   - watched implies no wantToWatch, no schedule and no calendar event
//   - a calendar event id only exists while a schedule exists
//   - a record is kept iff it still carries tracked state
type Tracker struct {
	mu      sync.Mutex
	records types.RecordMap
	loading bool

	store           store.Store
	writer          writer
	cal             calendar.Gateway
	defaultCalendar string
	notify          Notifier
	log             zerolog.Logger

	loadOnce sync.Once
}

// ScheduleOptions tunes Schedule. The zero value mirrors the default
// behavior: the schedule is mirrored into the device calendar.
type ScheduleOptions struct {
	// SkipCalendar keeps the reminder local-only even when a calendar
	// is available.
	SkipCalendar bool
}

// Counts summarizes the tracked records for dashboard surfaces.
type Counts struct {
	Watched     int
	WantToWatch int
	Scheduled   int
}

func newTracker(st store.Store, w writer, cal calendar.Gateway, defaultCalendar string, notify Notifier, log zerolog.Logger) *Tracker {
	return &Tracker{
		records:         types.RecordMap{},
		loading:         true,
		store:           st,
		writer:          w,
		cal:             cal,
		defaultCalendar: defaultCalendar,
		notify:          notify,
		log:             log.With().Str("component", "tracker").Logger(),
	}
}

// Load reads the persisted record map once. A read failure leaves the
// map empty rather than blocking the app; the session continues with
// in-memory state as the source of truth. Subsequent calls are no-ops.
func (t *Tracker) Load(ctx context.Context) {
	t.loadOnce.Do(func() {
		defer func() {
			t.mu.Lock()
			t.loading = false
			t.mu.Unlock()
		}()

		blob, err := t.store.Get(ctx)
		if errors.Is(err, store.ErrNotFound) {
			return
		}
		if err != nil {
			t.log.Warn().Err(err).Msg("could not load saved records")
			return
		}
		var loaded types.RecordMap
		if err := json.Unmarshal(blob, &loaded); err != nil {
			t.log.Warn().Err(err).Msg("saved records are unreadable")
			return
		}
		t.mu.Lock()
		t.records = loaded
		t.mu.Unlock()
	})
}

// Loading reports whether the initial store read is still pending.
func (t *Tracker) Loading() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.loading
}

// ToggleWatched flips the watched flag for movie, creating the record
// if absent. Marking watched clears want-to-watch and any schedule; an
// associated calendar event is deleted best-effort.
func (t *Tracker) ToggleWatched(ctx context.Context, movie Movie) {
	mutationsTotal.WithLabelValues("toggle_watched").Inc()

	var staleEventID string
	t.mutate(ctx, movie, func(rec *types.MovieRecord) {
		rec.Watched = !rec.Watched
		if rec.Watched {
			staleEventID = rec.CalendarEventID
			rec.WantToWatch = false
			rec.ScheduledAt = nil
			rec.CalendarEventID = ""
		}
	})

	if staleEventID != "" {
		t.deleteEventBestEffort(ctx, staleEventID, "could not remove the calendar event for a watched movie")
	}
}

// ToggleWantToWatch flips the want-to-watch flag for movie. No other
// field is touched; toggling twice restores the record exactly.
func (t *Tracker) ToggleWantToWatch(ctx context.Context, movie Movie) {
	mutationsTotal.WithLabelValues("toggle_want").Inc()

	t.mutate(ctx, movie, func(rec *types.MovieRecord) {
		rec.WantToWatch = !rec.WantToWatch
	})
}

// Schedule sets the viewing time for movie and, unless opts skip it,
// mirrors the schedule into the calendar ("Watch {title}", two hours,
// overview as notes). The local schedule is set regardless of the
// calendar outcome; when Schedule returns, the calendar side effect has
// settled one way or the other.
func (t *Tracker) Schedule(ctx context.Context, movie Movie, at time.Time, opts ScheduleOptions) {
	mutationsTotal.WithLabelValues("schedule").Inc()

	eventID := t.currentEventID(movie.ID)
	if !opts.SkipCalendar {
		eventID = t.upsertEvent(ctx, movie, at, eventID)
	}

	t.mutate(ctx, movie, func(rec *types.MovieRecord) {
		scheduled := at
		rec.ScheduledAt = &scheduled
		if eventID != "" {
			rec.CalendarEventID = eventID
		}
	})
}

// RemoveSchedule clears the schedule (and calendar event, best-effort)
// for movieID. No-op when no record exists. If nothing else is tracked
// the record disappears from the map entirely.
func (t *Tracker) RemoveSchedule(ctx context.Context, movieID int) {
	t.mu.Lock()
	rec, ok := t.records[movieID]
	t.mu.Unlock()
	if !ok {
		return
	}
	mutationsTotal.WithLabelValues("remove_schedule").Inc()

	if rec.CalendarEventID != "" {
		t.deleteEventBestEffort(ctx, rec.CalendarEventID, "could not remove the calendar event")
	}

	t.mutate(ctx, rec.Movie, func(rec *types.MovieRecord) {
		rec.ScheduledAt = nil
		rec.CalendarEventID = ""
	})
}

// Record returns the tracked record for id, if any.
func (t *Tracker) Record(id int) (MovieRecord, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	rec, ok := t.records[id]
	return rec, ok
}

// Records returns a snapshot copy of the whole record map.
func (t *Tracker) Records() RecordMap {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make(types.RecordMap, len(t.records))
	for id, rec := range t.records {
		out[id] = rec
	}
	return out
}

// Lists splits the records into the three dashboard lists. The
// scheduled list is sorted by viewing time, soonest first.
func (t *Tracker) Lists() (watched, want, scheduled []MovieRecord) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, rec := range t.records {
		if rec.Watched {
			watched = append(watched, rec)
		}
		if rec.WantToWatch {
			want = append(want, rec)
		}
		if rec.ScheduledAt != nil {
			scheduled = append(scheduled, rec)
		}
	}
	sort.Slice(scheduled, func(i, j int) bool {
		return scheduled[i].ScheduledAt.Before(*scheduled[j].ScheduledAt)
	})
	return watched, want, scheduled
}

// CountRecords returns the dashboard counters.
func (t *Tracker) CountRecords() Counts {
	watched, want, scheduled := t.Lists()
	return Counts{Watched: len(watched), WantToWatch: len(want), Scheduled: len(scheduled)}
}

// ------------------------- internals -------------------------

// mutate applies fn to the record derived from movie inside a single
// critical section, enforces retention, and schedules the persistence
// rewrite from the committed map. No suspension happens under the lock,
// so overlapping mutations can never interleave inconsistently.
func (t *Tracker) mutate(ctx context.Context, movie Movie, fn func(rec *types.MovieRecord)) {
	t.mu.Lock()
	var existing *types.MovieRecord
	if cur, ok := t.records[movie.ID]; ok {
		existing = &cur
	}
	rec := types.DeriveRecord(movie, existing)
	fn(&rec)
	if rec.Retained() {
		t.records[movie.ID] = rec
	} else {
		delete(t.records, movie.ID)
	}
	blob, err := json.Marshal(t.records)
	t.mu.Unlock()

	if err != nil {
		t.log.Error().Err(err).Msg("could not serialize records")
		return
	}
	t.persist(ctx, blob)
}

// persist hands the serialized map to the coalescing writer. Writes
// already submitted run to completion even if the caller context is
// cancelled; a superseded pending write is simply replaced.
func (t *Tracker) persist(ctx context.Context, blob []byte) {
	job := writequeue.JobFunc(func(ctx context.Context) error {
		return t.store.Set(ctx, blob)
	})
	if err := t.writer.SubmitLatest(context.WithoutCancel(ctx), job); err != nil {
		t.log.Warn().Err(err).Msg("could not enqueue record persistence")
	}
}

func (t *Tracker) currentEventID(movieID int) string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.records[movieID].CalendarEventID
}

// upsertEvent creates or updates the reminder event for movie. It
// returns the event id the record should carry: a fresh id on create,
// the existing id on update or on any failure (including platforms
// without calendar integration). The user is notified on every path
// that leaves the reminder local-only.
func (t *Tracker) upsertEvent(ctx context.Context, movie Movie, at time.Time, existingID string) string {
	if !t.cal.Available() {
		t.notify.Notify("Schedule saved",
			"Calendar integration is not available on this platform; the reminder is saved in the app only.")
		return existingID
	}

	calendarID, err := calendar.PickWritable(ctx, t.cal, t.defaultCalendar)
	if err != nil {
		calendarFailuresTotal.Inc()
		t.log.Warn().Err(err).Msg("no writable calendar")
		t.notify.Notify("Calendar unavailable",
			"No writable calendar was found; the reminder is saved in the app only.")
		return existingID
	}

	ev := calendar.Event{
		Title:    "Watch " + movie.Title,
		Start:    at,
		End:      at.Add(DefaultEventDuration),
		TimeZone: localTimeZone(),
		Notes:    movie.Overview,
	}

	if existingID != "" {
		if err := t.cal.UpdateEvent(ctx, existingID, ev); err != nil {
			calendarFailuresTotal.Inc()
			t.log.Warn().Err(err).Str("event_id", existingID).Msg("could not update calendar event")
			t.notify.Notify("Calendar error",
				"The schedule was saved, but the calendar event could not be updated.")
		}
		return existingID
	}

	eventID, err := t.cal.CreateEvent(ctx, calendarID, ev)
	if err != nil {
		calendarFailuresTotal.Inc()
		t.log.Warn().Err(err).Str("calendar", calendarID).Msg("could not create calendar event")
		t.notify.Notify("Calendar error",
			"The schedule was saved, but could not be added to your calendar. Try again later.")
		return existingID
	}
	t.notify.Notify("Reminder created", "The movie was added to your calendar.")
	return eventID
}

func (t *Tracker) deleteEventBestEffort(ctx context.Context, eventID, failureMsg string) {
	if !t.cal.Available() {
		return
	}
	err := t.cal.DeleteEvent(ctx, eventID, calendar.DeleteOptions{FutureEvents: false})
	if err != nil && !errors.Is(err, calendar.ErrEventNotFound) {
		calendarFailuresTotal.Inc()
		t.log.Warn().Err(err).Str("event_id", eventID).Msg(failureMsg)
	}
}

// localTimeZone resolves the zone attached to calendar events, falling
// back to UTC when the platform zone is undetermined.
func localTimeZone() string {
	if name := time.Local.String(); name != "" && name != "Local" {
		return name
	}
	if name, _ := time.Now().Zone(); name != "" {
		return name
	}
	return "UTC"
}
