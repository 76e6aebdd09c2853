package moviekeep

import (
	"context"
	"fmt"
	"sync"

	"github.com/moviekeep/moviekeep/internal/calendar"
	"github.com/moviekeep/moviekeep/internal/writequeue"
)

// syncWriter executes persistence jobs inline so tests observe the
// durable copy immediately after each mutation.
type syncWriter struct {
	mu   sync.Mutex
	errs []error
}

func (w *syncWriter) SubmitLatest(ctx context.Context, job writequeue.Job) error {
	if err := job.Run(ctx); err != nil {
		w.mu.Lock()
		w.errs = append(w.errs, err)
		w.mu.Unlock()
	}
	return nil
}

func (w *syncWriter) Flush(context.Context) error { return nil }

func (w *syncWriter) Stop() {}

// fakeCal records calendar operations and fails on demand.
type fakeCal struct {
	mu          sync.Mutex
	unavailable bool
	infos       []calendar.Info
	createErr   error
	updateErr   error
	deleteErr   error

	created []calendar.Event
	updated []string
	deleted []string
	nextID  int
}

func writableCal() *fakeCal {
	return &fakeCal{infos: []calendar.Info{{ID: "personal", Title: "personal", Writable: true}}}
}

func (f *fakeCal) Available() bool { return !f.unavailable }

func (f *fakeCal) Calendars(context.Context) ([]calendar.Info, error) {
	return f.infos, nil
}

func (f *fakeCal) CreateEvent(_ context.Context, _ string, ev calendar.Event) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return "", f.createErr
	}
	f.nextID++
	f.created = append(f.created, ev)
	return fmt.Sprintf("event-%d", f.nextID), nil
}

func (f *fakeCal) UpdateEvent(_ context.Context, eventID string, _ calendar.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updated = append(f.updated, eventID)
	return f.updateErr
}

func (f *fakeCal) DeleteEvent(_ context.Context, eventID string, _ calendar.DeleteOptions) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, eventID)
	return f.deleteErr
}

func (f *fakeCal) deletedEvents() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.deleted...)
}

// noticeRecorder captures transient user notices.
type noticeRecorder struct {
	mu      sync.Mutex
	notices []string
}

func (n *noticeRecorder) Notify(title, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notices = append(n.notices, title)
}

func (n *noticeRecorder) titles() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.notices...)
}
