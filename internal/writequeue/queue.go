// Package writequeue serializes durable-store writes through a single
// worker holding at most one in-flight write plus one pending slot
// carrying the newest state.
//
// Mutations rewrite the whole record map, so only the most recent state
// matters: a pending write that has not started yet is replaced, never
// queued behind. This guarantees the durable copy can never regress
// past a later in-memory state, while bounding memory under bursts of
// rapid mutations.
package writequeue

import (
	"context"
	"log"
	"sync"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"github.com/moviekeep/moviekeep/internal/xerrors"
)

type queuedJob struct {
	ctx context.Context
	job Job
}

// Queue executes Jobs one at a time on a background worker. Pending
// work is coalesced: a SubmitLatest while a job is waiting replaces it.
type Queue struct {
	cfg Config

	mu      sync.Mutex
	cond    *sync.Cond // broadcast on every latest/running transition
	latest  *queuedJob // newest pending write, nil when none
	running bool       // a write is currently executing
	closed  bool

	done chan struct{} // closed in Stop()
	wg   sync.WaitGroup
}

// New constructs the queue and starts its worker.
func New(cfg Config) *Queue {
	// Apply zero-value defaults.
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 8
	}
	if cfg.BaseBackoff <= 0 {
		cfg.BaseBackoff = 100 * time.Millisecond
	}
	if cfg.MaxInterval <= 0 {
		cfg.MaxInterval = 20 * time.Second
	}

	q := &Queue{
		cfg:  cfg,
		done: make(chan struct{}),
	}
	q.cond = sync.NewCond(&q.mu)
	q.wg.Add(1)
	go q.runWorker()
	return q
}

// SubmitLatest installs job as the newest pending write, displacing any
// write that has not started yet. Returns ErrQueueClosed after Stop.
func (q *Queue) SubmitLatest(ctx context.Context, job Job) error {
	if job == nil {
		return nil
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return ErrQueueClosed
	}
	if q.latest != nil {
		coalescedTotal.Inc()
	}
	q.latest = &queuedJob{ctx: ctx, job: job}
	submissionsTotal.Inc()
	q.cond.Broadcast()
	return nil
}

// Flush blocks until the pending slot is empty and no write is in
// flight, i.e. the durable copy reflects every state submitted before
// the call.
func (q *Queue) Flush(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	settled := make(chan struct{})
	go func() {
		q.mu.Lock()
		for q.latest != nil || q.running {
			q.cond.Wait()
		}
		q.mu.Unlock()
		close(settled)
	}()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-settled:
		return nil
	}
}

// Stop drains the pending write, waits for the worker to terminate, and
// returns. Idempotent and safe for concurrent use.
func (q *Queue) Stop() {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	close(q.done)
	q.cond.Broadcast()
	q.mu.Unlock()

	q.wg.Wait()
}

// Close lets Queue satisfy io.Closer.
func (q *Queue) Close() error {
	q.Stop()
	return nil
}

// ------------------------- internals -------------------------

func (q *Queue) runWorker() {
	defer q.wg.Done()

	q.mu.Lock()
	for {
		for q.latest == nil && !q.closed {
			q.cond.Wait()
		}
		if q.latest == nil {
			// Closed with nothing pending: done.
			q.mu.Unlock()
			return
		}
		qj := *q.latest
		q.latest = nil
		q.running = true
		q.mu.Unlock()

		q.execute(qj)

		q.mu.Lock()
		q.running = false
		q.cond.Broadcast()
	}
}

// execute runs one write with exponential-backoff retries. Retrying
// stops early when the queue is draining or the job context is gone;
// irrecoverable errors are never retried.
func (q *Queue) execute(qj queuedJob) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("writequeue: write panic: %v", r)
		}
	}()

	if err := qj.ctx.Err(); err != nil {
		q.safeHandleError(err)
		return
	}

	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = q.cfg.BaseBackoff
	exp.Multiplier = 2
	exp.MaxInterval = q.cfg.MaxInterval
	exp.Reset()

	attempts := 0
	for {
		start := time.Now()
		err := qj.job.Run(qj.ctx)
		runDuration.Observe(time.Since(start).Seconds())

		if err == nil {
			return
		}
		if xerrors.IsIrrecoverable(err) || attempts >= q.cfg.MaxAttempts-1 {
			failuresTotal.Inc()
			q.safeHandleError(err)
			return
		}

		attempts++
		select {
		case <-time.After(exp.NextBackOff()):
		case <-q.done:
			// Draining: one last immediate attempt, then give up.
			if err := qj.job.Run(qj.ctx); err != nil {
				failuresTotal.Inc()
				q.safeHandleError(err)
			}
			return
		case <-qj.ctx.Done():
			q.safeHandleError(qj.ctx.Err())
			return
		}
	}
}

func (q *Queue) safeHandleError(err error) {
	if err == nil || q.cfg.ErrorHandler == nil {
		return
	}
	func() {
		// Guard against panics in the user-supplied handler.
		defer func() {
			if r := recover(); r != nil {
				log.Printf("writequeue: error handler panic: %v", r)
			}
		}()
		q.cfg.ErrorHandler(err)
	}()
}
