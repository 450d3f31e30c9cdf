// Package jobs runs background work one job per kind at a time. Each kind
// holds at most one running and one pending job.
package jobs

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Fauli/screenshot-organizer/internal/contextutil"
)

// Kind names a lane of work. Jobs of the same kind never overlap.
type Kind string

const (
	KindScan    Kind = "scan"
	KindProcess Kind = "process"
)

// Policy decides what happens when a job of the same kind is already queued.
type Policy int

const (
	// Replace swaps out a pending job of the same kind.
	Replace Policy = iota
	// Keep drops the new job when a job of the same kind is running or pending.
	Keep
)

func (p Policy) String() string {
	if p == Keep {
		return "keep"
	}
	return "replace"
}

const (
	// MaxRetries is the number of extra attempts a retryable failure gets.
	MaxRetries = 3
	// DefaultBackoff is the delay before the first retry. The nth retry waits n times as long.
	DefaultBackoff = 10 * time.Second
)

// Job is one unit of background work.
type Job struct {
	Name string
	Kind Kind
	Run  func(ctx context.Context) error
}

type retryableError struct {
	err error
}

func (e *retryableError) Error() string { return e.err.Error() }
func (e *retryableError) Unwrap() error { return e.err }

// Retryable marks err as worth another attempt.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &retryableError{err: err}
}

// IsRetryable reports whether err was marked with Retryable.
func IsRetryable(err error) bool {
	var r *retryableError
	return errors.As(err, &r)
}

// Chain runs b after a succeeds. The pair runs as a single job of a's kind.
func Chain(a, b Job) Job {
	return Job{
		Name: a.Name + "+" + b.Name,
		Kind: a.Kind,
		Run: func(ctx context.Context) error {
			if err := a.Run(ctx); err != nil {
				return err
			}
			return b.Run(ctx)
		},
	}
}

type lane struct {
	running bool
	pending *Job
}

// Queue executes jobs on background goroutines.
type Queue struct {
	ctx     context.Context
	backoff time.Duration

	mu     sync.Mutex
	lanes  map[Kind]*lane
	closed bool
	done   chan struct{}
	wg     sync.WaitGroup
}

// Option configures a Queue.
type Option func(*Queue)

// WithBackoff sets the base retry delay.
func WithBackoff(d time.Duration) Option {
	return func(q *Queue) {
		q.backoff = d
	}
}

// New creates a Queue. Jobs run with ctx, so cancelling it stops running jobs
// at their next cancellation check.
func New(ctx context.Context, opts ...Option) *Queue {
	q := &Queue{
		ctx:     ctx,
		backoff: DefaultBackoff,
		lanes:   make(map[Kind]*lane),
		done:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

func (q *Queue) lane(k Kind) *lane {
	l, ok := q.lanes[k]
	if !ok {
		l = &lane{}
		q.lanes[k] = l
	}
	return l
}

// Enqueue submits job under policy and reports whether it was accepted.
// A running job is never interrupted.
func (q *Queue) Enqueue(job Job, policy Policy) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.enqueueLocked(job, policy)
}

func (q *Queue) enqueueLocked(job Job, policy Policy) bool {
	logger := contextutil.LoggerFromContext(q.ctx).With("job", job.Name, "kind", job.Kind, "policy", policy.String())
	if q.closed {
		logger.DebugContext(q.ctx, "queue closed, dropping job")
		return false
	}

	l := q.lane(job.Kind)
	if !l.running {
		l.running = true
		q.wg.Add(1)
		go q.work(job)
		return true
	}

	if policy == Keep {
		logger.DebugContext(q.ctx, "job of this kind already queued, keeping existing")
		return false
	}
	if l.pending != nil {
		logger.DebugContext(q.ctx, "replacing pending job", "replaced", l.pending.Name)
	}
	l.pending = &job
	return true
}

// Continue queues job as the follow-up of the running job of its kind. It
// does nothing when another job of that kind is already pending.
func (q *Queue) Continue(job Job) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if l := q.lane(job.Kind); l.running && l.pending != nil {
		return false
	}
	return q.enqueueLocked(job, Replace)
}

// Schedule enqueues job with Keep every interval until ctx is done or the
// queue closes.
func (q *Queue) Schedule(ctx context.Context, every time.Duration, job Job) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.wg.Add(1)
	go func() {
		defer q.wg.Done()
		ticker := time.NewTicker(every)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-q.ctx.Done():
				return
			case <-q.done:
				return
			case <-ticker.C:
				q.Enqueue(job, Keep)
			}
		}
	}()
}

// Busy reports whether a job of kind is running or pending.
func (q *Queue) Busy(k Kind) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	l, ok := q.lanes[k]
	return ok && (l.running || l.pending != nil)
}

// CancelAll drops every pending job and returns how many were dropped.
// Running jobs finish normally.
func (q *Queue) CancelAll() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	n := 0
	for _, l := range q.lanes {
		if l.pending != nil {
			l.pending = nil
			n++
		}
	}
	return n
}

// Close stops accepting jobs and schedules, drops pending jobs and waits for
// running jobs to return.
func (q *Queue) Close() {
	q.mu.Lock()
	if !q.closed {
		q.closed = true
		close(q.done)
	}
	for _, l := range q.lanes {
		l.pending = nil
	}
	q.mu.Unlock()
	q.wg.Wait()
}

func (q *Queue) work(job Job) {
	defer q.wg.Done()
	for {
		q.execute(job)

		q.mu.Lock()
		l := q.lanes[job.Kind]
		if l.pending == nil || q.closed {
			l.running = false
			l.pending = nil
			q.mu.Unlock()
			return
		}
		job = *l.pending
		l.pending = nil
		q.mu.Unlock()
	}
}

func (q *Queue) execute(job Job) {
	logger := contextutil.LoggerFromContext(q.ctx).With("job", job.Name, "kind", job.Kind)
	ctx := contextutil.WithLogger(q.ctx, logger)

	for attempt := 0; ; attempt++ {
		start := time.Now()
		err := runSafely(ctx, job)
		if err == nil {
			logger.InfoContext(ctx, "job completed", "attempt", attempt+1, "duration", time.Since(start))
			return
		}
		if !IsRetryable(err) || attempt >= MaxRetries {
			logger.ErrorContext(ctx, "job failed", "attempt", attempt+1, "error", err)
			return
		}

		wait := q.backoff * time.Duration(attempt+1)
		logger.WarnContext(ctx, "job failed, retrying", "attempt", attempt+1, "retry_in", wait, "error", err)
		select {
		case <-ctx.Done():
			return
		case <-time.After(wait):
		}
	}
}

func runSafely(ctx context.Context, job Job) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("job panicked: %v", r)
		}
	}()
	return job.Run(ctx)
}
