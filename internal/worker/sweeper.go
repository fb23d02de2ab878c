// Package worker runs the periodic task status sweep.
package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/ntokozodev/user-tasks-api/internal/domain"
	"github.com/ntokozodev/user-tasks-api/internal/platform/metrics"
)

// sweepInterval is the fixed cadence of the status sweep. The sweep is
// wall-clock driven and deliberately has no configuration surface.
const sweepInterval = time.Minute

// filterWorkers bounds the goroutines evaluating task eligibility. Each
// task's eligibility is independent of every other's, so the filter can fan
// out freely.
const filterWorkers = 4

// TaskStore defines the persistence operations the sweeper needs.
// It is a worker-owned subset of store.TaskStore.
type TaskStore interface {
	FindByStatus(ctx context.Context, status domain.TaskStatus) ([]*domain.Task, error)
	CompleteAll(ctx context.Context, ids []int64) (int64, error)
}

// StatusSweeper periodically transitions overdue pending tasks to done.
// It runs on its own timer, fully decoupled from request handling, and may
// run concurrently with in-flight requests against the same rows; the
// store's conditional completion write keeps that safe.
type StatusSweeper struct {
	store      TaskStore
	logger     *slog.Logger
	now        func() time.Time // Injectable for testing
	ctx        context.Context
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup
}

// NewStatusSweeper creates a new StatusSweeper.
// If logger is nil, a default logger will be used.
func NewStatusSweeper(store TaskStore, logger *slog.Logger) *StatusSweeper {
	if store == nil {
		panic("store cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &StatusSweeper{
		store:      store,
		logger:     logger.With(slog.String("component", "status_sweeper")),
		now:        time.Now,
		ctx:        ctx,
		cancelFunc: cancel,
	}
}

// Start launches the sweep loop. The first sweep happens one interval after
// startup, then once per minute until Stop is called.
func (s *StatusSweeper) Start() {
	s.wg.Add(1)
	go s.loop()

	s.logger.Info("status sweeper started",
		slog.Duration("interval", sweepInterval))
}

// Stop shuts the sweep loop down and waits for an in-flight run to finish.
func (s *StatusSweeper) Stop() {
	s.cancelFunc()
	s.wg.Wait()

	s.logger.Info("status sweeper stopped")
}

// loop drives the ticker until the sweeper context is cancelled.
func (s *StatusSweeper) loop() {
	defer s.wg.Done()

	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.RunOnce(s.ctx); err != nil {
				// A failed run is not escalated; the affected tasks are
				// simply re-evaluated on the next tick.
				s.logger.Error("status sweep failed",
					slog.String("error", err.Error()))
			}
		}
	}
}

// RunOnce executes a single sweep: fetch pending tasks, concurrently filter
// the overdue ones, and complete them with one conditional batch write.
// Returns the number of tasks transitioned to done.
// An empty pending set is a no-op.
func (s *StatusSweeper) RunOnce(ctx context.Context) (int64, error) {
	metrics.SweepRunsTotal.Inc()

	pending, err := s.store.FindByStatus(ctx, domain.TaskStatusPending)
	if err != nil {
		return 0, err
	}

	s.logger.Info("status sweep started",
		slog.Int("pending_count", len(pending)))

	if len(pending) == 0 {
		return 0, nil
	}

	dueIDs := s.filterDue(pending)
	if len(dueIDs) == 0 {
		s.logger.Info("status sweep finished",
			slog.Int("completed_count", 0))
		return 0, nil
	}

	completed, err := s.store.CompleteAll(ctx, dueIDs)
	if err != nil {
		return 0, err
	}

	metrics.SweepCompletedTotal.Add(float64(completed))

	s.logger.Info("status sweep finished",
		slog.Int("due_count", len(dueIDs)),
		slog.Int64("completed_count", completed))
	return completed, nil
}

// filterDue fans the eligibility check out across a bounded set of workers
// and collects the IDs of tasks whose schedule is strictly before now.
func (s *StatusSweeper) filterDue(pending []*domain.Task) []int64 {
	now := s.now()

	workers := filterWorkers
	if len(pending) < workers {
		workers = len(pending)
	}

	jobs := make(chan *domain.Task)
	var mu sync.Mutex
	var dueIDs []int64

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for task := range jobs {
				if task.IsDue(now) {
					mu.Lock()
					dueIDs = append(dueIDs, task.ID)
					mu.Unlock()
				}
			}
		}()
	}

	for _, task := range pending {
		jobs <- task
	}
	close(jobs)
	wg.Wait()

	return dueIDs
}
