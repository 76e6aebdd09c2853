package moviekeep

import (
	"context"

	"github.com/moviekeep/moviekeep/internal/writequeue"
)

// writer abstracts the internal coalescing persistence queue so tests
// can substitute a synchronous implementation.
type writer interface {
	SubmitLatest(context.Context, writequeue.Job) error
	Flush(context.Context) error
	Stop()
}

// Note: every client includes a writer by default; mutations require it.
