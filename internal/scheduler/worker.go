package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/tempo-importer/tempo-importer/internal/logger"
)

// ErrNoHandler is returned when a leased task names a TaskName with no
// registered Handler.
var ErrNoHandler = errors.New("scheduler: no handler registered for task")

// DefaultPollInterval is how long an idle worker waits before checking for a
// newly-eligible task again.
const DefaultPollInterval = time.Second

// Handler processes one leased task inside its transaction. Per spec.md
// §4.8, handlers must be idempotent: at-least-once delivery means the same
// task may run again after a crash or a failed prior attempt.
type Handler func(ctx context.Context, tx pgx.Tx, task Task) error

// Pool is the subset of *pgxpool.Pool the worker pool needs: one
// transaction per lease attempt.
type Pool interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Service runs a pool of N concurrent workers draining the queue, shaped
// like the teacher's ServiceImpl: a sync.WaitGroup over N goroutines,
// generalized from "N concurrent downloads over a fixed slice" to "N
// concurrent workers polling an unbounded durable queue".
type Service struct {
	pool         Pool
	handlers     map[TaskName]Handler
	workers      int
	pollInterval time.Duration
}

// NewService builds a Service with workers concurrent pollers (clamped to
// at least 1) against pool.
func NewService(pool Pool, workers int) *Service {
	if workers < 1 {
		workers = 1
	}

	return &Service{
		pool:         pool,
		handlers:     make(map[TaskName]Handler),
		workers:      workers,
		pollInterval: DefaultPollInterval,
	}
}

// Register associates a Handler with the tasks named name. Must be called
// before Run for every TaskName the pipeline enqueues.
func (s *Service) Register(name TaskName, handler Handler) {
	s.handlers[name] = handler
}

// Run blocks, draining the queue with s.workers concurrent goroutines,
// until ctx is canceled. In-flight tasks are allowed to finish before Run
// returns.
func (s *Service) Run(ctx context.Context) {
	var waitGroup sync.WaitGroup

	waitGroup.Add(s.workers)

	for i := 0; i < s.workers; i++ {
		go func() {
			defer waitGroup.Done()

			s.runWorker(ctx)
		}()
	}

	waitGroup.Wait()
}

func (s *Service) runWorker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		ran, err := s.runOnce(ctx)
		if err != nil {
			logger.ErrorKV(ctx, "scheduler: lease attempt failed", "error", err)
		}

		if ran {
			continue
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(s.pollInterval):
		}
	}
}

// runOnce leases and runs at most one task. It reports whether a task was
// leased at all (including one whose handler failed), so the caller knows
// whether to poll again immediately or back off.
func (s *Service) runOnce(ctx context.Context) (bool, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return false, err
	}

	task, err := Lease(ctx, tx)

	switch {
	case errors.Is(err, ErrNoEligibleTask):
		_ = tx.Rollback(ctx)
		return false, nil
	case err != nil:
		_ = tx.Rollback(ctx)
		return false, err
	}

	handler, ok := s.handlers[task.Name]
	if !ok {
		_ = tx.Rollback(ctx)
		return true, fmt.Errorf("%w: %s", ErrNoHandler, task.Name)
	}

	if err := handler(ctx, tx, task); err != nil {
		_ = tx.Rollback(ctx)
		logger.ErrorKV(ctx, "scheduler: task handler failed",
			"task_id", task.ID, "task_name", task.Name, "error", err)

		return true, nil
	}

	if err := Complete(ctx, tx, task.ID); err != nil {
		_ = tx.Rollback(ctx)
		return true, err
	}

	return true, tx.Commit(ctx)
}
