package writequeue

import "context"

// Job is a unit of durable-store work executed by a Queue.
// Run must be safe to invoke again if the same Job instance is reused.
type Job interface {
	Run(ctx context.Context) error
}

// JobFunc adapts a plain closure to a Job.
type JobFunc func(ctx context.Context) error

// Run implements Job for JobFunc.
func (f JobFunc) Run(ctx context.Context) error { return f(ctx) }
