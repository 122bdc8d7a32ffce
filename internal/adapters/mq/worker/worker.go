// Package worker defines worker contracts for asynchronous snapshot
// refresh.
package worker

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/theleaguehq/leaguecap/internal/adapters/repository"
	"github.com/theleaguehq/leaguecap/internal/domain/model"
	"github.com/theleaguehq/leaguecap/pkg/logger"
	"github.com/theleaguehq/leaguecap/pkg/metrics"
)

// Default worker configuration constants.
const (
	defaultWorkerMultiplier = 2 // multiplier for runtime.NumCPU()
	workerShutdownTimeout   = 5 * time.Second
	poolShutdownTimeout     = 30 * time.Second
)

// Job abstracts what workers read off the queue.
type Job = model.RefreshJob

// Fetcher downloads one export kind for a league.
type Fetcher interface {
	Fetch(ctx context.Context, leagueID, kind string) ([]byte, error)
}

// Storer persists fetched snapshots.
type Storer interface {
	Put(ctx context.Context, snap repository.Snapshot) error
}

// Releaser frees a refresh job's in-flight key once the job finishes.
type Releaser interface {
	Unrecord(ctx context.Context, key string)
}

// Queue defines how workers receive jobs.
type Queue interface {
	Dequeue(ctx context.Context) <-chan Job
}

// Worker processes refresh jobs: fetch the kind, store the snapshot.
type Worker interface {
	// Run starts the worker loop until ctx is canceled.
	Run(ctx context.Context)

	// Shutdown gracefully stops the worker.
	// It will process any remaining jobs before stopping.
	Shutdown(ctx context.Context) error
}

// InMemoryWorker implements Worker for processing refresh jobs.
type InMemoryWorker struct {
	queue    Queue
	fetcher  Fetcher
	storer   Storer
	releaser Releaser
	name     string

	// Shutdown control. poolShutdown is set by the owning Pool so one
	// close reaches every worker; it stays nil for standalone workers.
	shutdown     chan struct{}
	poolShutdown <-chan struct{}
	done         chan struct{}

	logger logger.Logger
}

// NewInMemoryWorker creates a new worker with configuration options.
func NewInMemoryWorker(queue Queue, fetcher Fetcher, storer Storer, releaser Releaser, opts ...Option) *InMemoryWorker {
	w := &InMemoryWorker{
		queue:    queue,
		fetcher:  fetcher,
		storer:   storer,
		releaser: releaser,
		name:     "worker",
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
		logger:   logger.Get().Named("worker"),
	}

	for _, opt := range opts {
		opt(w)
	}

	if w.name != "worker" {
		w.logger = w.logger.Named(w.name)
	}

	return w
}

// Run starts the worker loop.
func (w *InMemoryWorker) Run(ctx context.Context) {
	defer close(w.done)

	jobChan := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case <-w.poolShutdown:
			return
		case job, ok := <-jobChan:
			if !ok {
				return
			}
			if err := w.processJob(ctx, job); err != nil {
				w.logger.Error(ctx, "error processing refresh job", logger.Error(err))
			}
		}
	}
}

// Shutdown gracefully stops the worker.
func (w *InMemoryWorker) Shutdown(ctx context.Context) error {
	close(w.shutdown)

	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

// processJob fetches the job's kind and stores the snapshot. The
// in-flight key is released whether or not the fetch succeeds, so a
// failed refresh can be retried immediately.
func (w *InMemoryWorker) processJob(ctx context.Context, job Job) error {
	start := time.Now()
	defer func() {
		metrics.RecordWorkerProcessingLatency(float64(time.Since(start).Milliseconds()))
		if w.releaser != nil {
			w.releaser.Unrecord(ctx, job.Key())
		}
	}()

	data, err := w.fetcher.Fetch(ctx, job.LeagueID, job.Kind)
	if err != nil {
		metrics.RecordWorkerError()
		metrics.RecordErrorByComponent("worker", "fetch_error")
		w.logger.Error(ctx, "fetch failed for refresh job",
			logger.String("jobID", job.JobID),
			logger.String("kind", job.Kind),
			logger.Error(err),
		)
		return fmt.Errorf("fetch %s for league %s: %w", job.Kind, job.LeagueID, err)
	}

	snap := repository.Snapshot{
		ID:        uuid.New(),
		LeagueID:  job.LeagueID,
		Kind:      job.Kind,
		FetchedAt: time.Now(),
		Data:      data,
	}
	if err := w.storer.Put(ctx, snap); err != nil {
		metrics.RecordWorkerError()
		metrics.RecordErrorByComponent("worker", "store_error")
		w.logger.Error(ctx, "snapshot store failed for refresh job",
			logger.String("jobID", job.JobID),
			logger.Error(err),
		)
		return fmt.Errorf("store snapshot: %w", err)
	}

	return nil
}

// Pool manages multiple workers.
type Pool struct {
	workers  []*InMemoryWorker
	queue    Queue
	fetcher  Fetcher
	storer   Storer
	releaser Releaser

	// Shutdown control
	shutdown chan struct{}

	logger logger.Logger
}

// NewPool creates a new worker pool. workerCount < 1 defaults to a
// CPU-scaled count.
func NewPool(workerCount int, queue Queue, fetcher Fetcher, storer Storer, releaser Releaser) *Pool {
	if workerCount < 1 {
		workerCount = runtime.NumCPU() * defaultWorkerMultiplier
	}

	pool := &Pool{
		workers:  make([]*InMemoryWorker, workerCount),
		queue:    queue,
		fetcher:  fetcher,
		storer:   storer,
		releaser: releaser,
		shutdown: make(chan struct{}),
		logger:   logger.Get().Named("worker-pool"),
	}

	for i := 0; i < workerCount; i++ {
		w := NewInMemoryWorker(
			queue,
			fetcher,
			storer,
			releaser,
			WithName("worker-"+strconv.Itoa(i)),
		)
		w.poolShutdown = pool.shutdown
		pool.workers[i] = w
	}

	metrics.UpdateWorkerCount(workerCount)

	return pool
}

// Start starts all workers in the pool.
func (p *Pool) Start(ctx context.Context) {
	for _, worker := range p.workers {
		go worker.Run(ctx)
	}
}

// Stop gracefully stops all workers.
func (p *Pool) Stop() {
	close(p.shutdown)

	for _, worker := range p.workers {
		select {
		case <-worker.done:
		case <-time.After(workerShutdownTimeout):
			p.logger.Warn(context.Background(), "worker stop timed out")
		}
	}
}

// Shutdown gracefully shuts down the entire worker pool, waiting for
// in-flight jobs up to the pool timeout.
func (p *Pool) Shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, poolShutdownTimeout)
	defer cancel()

	for _, worker := range p.workers {
		if err := worker.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("worker shutdown: %w", err)
		}
	}
	metrics.UpdateWorkerCount(0)
	return nil
}
