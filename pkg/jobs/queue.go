package jobs

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Job is one queued unit of work carrying a typed payload.
type Job[T any] struct {
	ID       string
	Type     string
	Payload  T
	Attempt  int
	Enqueued time.Time
}

// Handler processes a job. A returned error schedules a retry.
type Handler[T any] func(context.Context, Job[T]) error

// QueueConfig configures worker pool behaviour.
type QueueConfig struct {
	Workers    int
	BufferSize int
	MaxRetries int
	RetryDelay time.Duration
	Logger     *zap.Logger
}

func (c QueueConfig) withDefaults() QueueConfig {
	if c.Workers <= 0 {
		c.Workers = 1
	}
	if c.BufferSize <= 0 {
		c.BufferSize = c.Workers * 4
	}
	if c.MaxRetries < 0 {
		c.MaxRetries = 0
	}
	if c.RetryDelay <= 0 {
		c.RetryDelay = time.Second
	}
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
	return c
}

// Queue dispatches jobs to a pool of goroutines and tracks every accepted job
// until it succeeds or runs out of retries. With one worker jobs never overlap.
type Queue[T any] struct {
	name    string
	handler Handler[T]
	cfg     QueueConfig
	log     *zap.SugaredLogger
	jobs    chan Job[T]

	mu       sync.Mutex
	ctx      context.Context
	cancel   context.CancelFunc
	workers  sync.WaitGroup
	running  bool
	inFlight int
	drained  chan struct{}
}

// NewQueue builds a stopped queue. Call Start before enqueuing.
func NewQueue[T any](name string, handler Handler[T], cfg QueueConfig) *Queue[T] {
	cfg = cfg.withDefaults()
	drained := make(chan struct{})
	close(drained)
	return &Queue[T]{
		name:    name,
		handler: handler,
		cfg:     cfg,
		log:     cfg.Logger.Sugar().With("queue", name),
		jobs:    make(chan Job[T], cfg.BufferSize),
		drained: drained,
	}
}

// Start launches the workers. Later calls are ignored.
func (q *Queue[T]) Start(ctx context.Context) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.running {
		return
	}
	q.ctx, q.cancel = context.WithCancel(ctx)
	q.running = true
	for i := 0; i < q.cfg.Workers; i++ {
		q.workers.Add(1)
		go q.work()
	}
	q.log.Debugw("queue started", "workers", q.cfg.Workers)
}

// Stop cancels the workers and waits for them to return. Jobs still buffered are dropped.
func (q *Queue[T]) Stop() {
	q.mu.Lock()
	if !q.running {
		q.mu.Unlock()
		return
	}
	q.cancel()
	q.mu.Unlock()
	q.workers.Wait()
	q.log.Debugw("queue stopped")
}

// Enqueue accepts a job, assigning an ID and timestamp when missing.
func (q *Queue[T]) Enqueue(job Job[T]) error {
	q.mu.Lock()
	running, ctx := q.running, q.ctx
	q.mu.Unlock()
	if !running {
		return fmt.Errorf("queue %s not started", q.name)
	}

	if job.ID == "" {
		job.ID = uuid.NewString()
	}
	if job.Enqueued.IsZero() {
		job.Enqueued = time.Now().UTC()
	}

	q.adjust(1)
	select {
	case q.jobs <- job:
		return nil
	case <-ctx.Done():
		q.adjust(-1)
		return fmt.Errorf("queue %s stopped: %w", q.name, ctx.Err())
	}
}

// Drain blocks until no accepted job is left, or ctx ends.
func (q *Queue[T]) Drain(ctx context.Context) error {
	for {
		q.mu.Lock()
		if q.inFlight == 0 {
			q.mu.Unlock()
			return nil
		}
		drained := q.drained
		q.mu.Unlock()

		select {
		case <-drained:
		case <-ctx.Done():
			return fmt.Errorf("drain queue %s: %w", q.name, ctx.Err())
		}
	}
}

// adjust moves the in-flight count and releases Drain callers at zero.
func (q *Queue[T]) adjust(delta int) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.inFlight == 0 && delta > 0 {
		q.drained = make(chan struct{})
	}
	q.inFlight += delta
	if q.inFlight > 0 {
		return
	}
	q.inFlight = 0
	select {
	case <-q.drained:
	default:
		close(q.drained)
	}
}

func (q *Queue[T]) work() {
	defer q.workers.Done()
	for {
		select {
		case <-q.ctx.Done():
			return
		case job := <-q.jobs:
			err := q.handler(q.ctx, job)
			if err == nil {
				q.adjust(-1)
				continue
			}
			q.retry(job, err)
		}
	}
}

func (q *Queue[T]) retry(job Job[T], cause error) {
	job.Attempt++
	if job.Attempt > q.cfg.MaxRetries {
		q.log.Errorw("job dropped after retries", "job_id", job.ID, "type", job.Type, "attempts", job.Attempt, "error", cause)
		q.adjust(-1)
		return
	}
	q.log.Warnw("job failed, retrying", "job_id", job.ID, "type", job.Type, "attempt", job.Attempt, "error", cause)

	go func() {
		timer := time.NewTimer(q.cfg.RetryDelay)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-q.ctx.Done():
			q.adjust(-1)
			return
		}
		select {
		case q.jobs <- job:
		case <-q.ctx.Done():
			q.adjust(-1)
		}
	}()
}
