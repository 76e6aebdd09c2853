package types

import "time"

// ------------------------------
// Core Domain Entities
// ------------------------------

// Movie is a catalog entry as returned by the metadata API. It is
// read-only from the tracker's point of view; user state lives in
// MovieRecord.
type Movie struct {
	ID           int     `json:"id"`
	Title        string  `json:"title"`
	Overview     string  `json:"overview,omitempty"`
	PosterPath   string  `json:"posterPath,omitempty"`
	BackdropPath string  `json:"backdropPath,omitempty"`
	ReleaseDate  string  `json:"releaseDate,omitempty"`
	VoteAverage  float64 `json:"voteAverage,omitempty"`
}

// MovieRecord is the persisted per-movie user state. Display fields are
// denormalized from Movie so a record can render without the original
// catalog entry in memory.
type MovieRecord struct {
	Movie

	Watched         bool       `json:"watched"`
	WantToWatch     bool       `json:"wantToWatch"`
	ScheduledAt     *time.Time `json:"scheduledAt,omitempty"`
	CalendarEventID string     `json:"calendarEventId,omitempty"`
}

// RecordMap is the full persisted state: movie id -> record. It is
// serialized as a single JSON object keyed by the decimal id.
type RecordMap map[int]MovieRecord

// Retained reports whether the record still carries tracked state.
// Records that revert to the all-false/unset shape are deleted from the
// map rather than kept as empty entries.
func (r MovieRecord) Retained() bool {
	return r.Watched || r.WantToWatch || r.ScheduledAt != nil
}

// DeriveRecord builds the record for movie, preserving user flags from
// existing (if any). Fresh catalog fields win over a stale snapshot;
// absent fields fall back to whatever the existing record carried.
func DeriveRecord(movie Movie, existing *MovieRecord) MovieRecord {
	rec := MovieRecord{Movie: movie}
	if existing == nil {
		return rec
	}
	if rec.Overview == "" {
		rec.Overview = existing.Overview
	}
	if rec.PosterPath == "" {
		rec.PosterPath = existing.PosterPath
	}
	if rec.BackdropPath == "" {
		rec.BackdropPath = existing.BackdropPath
	}
	if rec.ReleaseDate == "" {
		rec.ReleaseDate = existing.ReleaseDate
	}
	if rec.VoteAverage == 0 {
		rec.VoteAverage = existing.VoteAverage
	}
	rec.Watched = existing.Watched
	rec.WantToWatch = existing.WantToWatch
	rec.ScheduledAt = existing.ScheduledAt
	rec.CalendarEventID = existing.CalendarEventID
	return rec
}
