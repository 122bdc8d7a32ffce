package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/theleaguehq/leaguecap/internal/adapters/repository"
	"github.com/theleaguehq/leaguecap/internal/domain/model"
)

type stubQueue struct {
	jobs chan Job
}

func (q *stubQueue) Dequeue(_ context.Context) <-chan Job {
	return q.jobs
}

type stubFetcher struct {
	data []byte
	err  error
}

func (f *stubFetcher) Fetch(_ context.Context, _, _ string) ([]byte, error) {
	return f.data, f.err
}

type stubStorer struct {
	mu    sync.Mutex
	snaps []repository.Snapshot
	err   error
}

func (s *stubStorer) Put(_ context.Context, snap repository.Snapshot) error {
	if s.err != nil {
		return s.err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snaps = append(s.snaps, snap)
	return nil
}

func (s *stubStorer) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.snaps)
}

type stubReleaser struct {
	mu       sync.Mutex
	released []string
}

func (r *stubReleaser) Unrecord(_ context.Context, key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.released = append(r.released, key)
}

func (r *stubReleaser) keys() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.released...)
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestWorker_ProcessJob(t *testing.T) {
	queue := &stubQueue{jobs: make(chan Job, 1)}
	fetcher := &stubFetcher{data: []byte(`{"rosters":{}}`)}
	storer := &stubStorer{}
	releaser := &stubReleaser{}

	w := NewInMemoryWorker(queue, fetcher, storer, releaser, WithName("test"))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	job := model.RefreshJob{JobID: "j1", LeagueID: "12345", Kind: "rosters"}
	queue.jobs <- job

	waitFor(t, func() bool { return storer.count() == 1 })

	storer.mu.Lock()
	snap := storer.snaps[0]
	storer.mu.Unlock()
	if snap.LeagueID != "12345" || snap.Kind != "rosters" {
		t.Errorf("unexpected snapshot identity: %s/%s", snap.LeagueID, snap.Kind)
	}
	if string(snap.Data) != `{"rosters":{}}` {
		t.Errorf("unexpected snapshot data: %s", snap.Data)
	}
	if snap.FetchedAt.IsZero() {
		t.Error("expected a fetch timestamp")
	}

	// The in-flight key is released on success
	waitFor(t, func() bool { return len(releaser.keys()) == 1 })
	if keys := releaser.keys(); keys[0] != job.Key() {
		t.Errorf("expected release of %s, got %s", job.Key(), keys[0])
	}
}

func TestWorker_FetchFailureReleasesKey(t *testing.T) {
	queue := &stubQueue{jobs: make(chan Job, 1)}
	fetcher := &stubFetcher{err: errors.New("upstream down")}
	storer := &stubStorer{}
	releaser := &stubReleaser{}

	w := NewInMemoryWorker(queue, fetcher, storer, releaser)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	job := model.RefreshJob{JobID: "j1", LeagueID: "12345", Kind: "salaries"}
	queue.jobs <- job

	// The key must be released even though the fetch failed
	waitFor(t, func() bool { return len(releaser.keys()) == 1 })
	if storer.count() != 0 {
		t.Errorf("expected no stored snapshots, got %d", storer.count())
	}
}

func TestWorker_Shutdown(t *testing.T) {
	queue := &stubQueue{jobs: make(chan Job)}
	w := NewInMemoryWorker(queue, &stubFetcher{}, &stubStorer{}, &stubReleaser{})

	ctx := context.Background()
	go w.Run(ctx)

	shutdownCtx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	if err := w.Shutdown(shutdownCtx); err != nil {
		t.Errorf("unexpected shutdown error: %v", err)
	}
}

func TestPool_ProcessesAcrossWorkers(t *testing.T) {
	queue := &stubQueue{jobs: make(chan Job, 16)}
	fetcher := &stubFetcher{data: []byte(`{}`)}
	storer := &stubStorer{}
	releaser := &stubReleaser{}

	pool := NewPool(4, queue, fetcher, storer, releaser)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	pool.Start(ctx)

	for i := 0; i < 16; i++ {
		queue.jobs <- model.RefreshJob{JobID: "j", LeagueID: "12345", Kind: "rosters"}
	}

	waitFor(t, func() bool { return storer.count() == 16 })

	close(queue.jobs)
	if err := pool.Shutdown(ctx); err != nil {
		t.Errorf("unexpected pool shutdown error: %v", err)
	}
}

func TestPool_StopWithLiveContext(t *testing.T) {
	queue := &stubQueue{jobs: make(chan Job)}
	fetcher := &stubFetcher{data: []byte(`{}`)}
	storer := &stubStorer{}
	releaser := &stubReleaser{}

	pool := NewPool(2, queue, fetcher, storer, releaser)
	pool.Start(context.Background())

	stopped := make(chan struct{})
	go func() {
		pool.Stop()
		close(stopped)
	}()

	// The context never cancels and the queue stays open; Stop alone
	// must bring the workers down.
	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("pool did not stop until the per-worker timeouts elapsed")
	}
}
