package queue

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/theleaguehq/leaguecap/internal/domain/model"
)

func TestInMemoryQueue_BasicOperations(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(2))
	ctx := context.Background()

	// Test empty queue
	if l := q.Len(ctx); l != 0 {
		t.Errorf("expected length 0, got %d", l)
	}

	// Test enqueue
	job1 := model.RefreshJob{JobID: "job1", LeagueID: "12345", Kind: "rosters"}
	if !q.Enqueue(ctx, job1) {
		t.Error("expected enqueue to succeed")
	}

	if l := q.Len(ctx); l != 1 {
		t.Errorf("expected length 1, got %d", l)
	}

	// Test dequeue
	jobChan := q.Dequeue(ctx)
	job := <-jobChan
	if job.JobID != "job1" {
		t.Errorf("expected job1, got %v", job.JobID)
	}

	if l := q.Len(ctx); l != 0 {
		t.Errorf("expected length 0, got %d", l)
	}
}

func TestInMemoryQueue_Capacity(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(2))
	ctx := context.Background()

	job1 := model.RefreshJob{JobID: "job1", LeagueID: "12345", Kind: "rosters"}
	job2 := model.RefreshJob{JobID: "job2", LeagueID: "12345", Kind: "salaries"}
	job3 := model.RefreshJob{JobID: "job3", LeagueID: "12345", Kind: "transactions"}

	if !q.Enqueue(ctx, job1) {
		t.Error("expected enqueue to succeed")
	}
	if !q.Enqueue(ctx, job2) {
		t.Error("expected enqueue to succeed")
	}

	// Try to enqueue when full
	if q.Enqueue(ctx, job3) {
		t.Error("expected enqueue to fail when full")
	}

	if l := q.Len(ctx); l != 2 {
		t.Errorf("expected length 2, got %d", l)
	}
}

func TestInMemoryQueue_Close(t *testing.T) {
	q := NewInMemoryQueue()
	ctx := context.Background()

	job := model.RefreshJob{JobID: "job1", LeagueID: "12345", Kind: "rosters"}
	if !q.Enqueue(ctx, job) {
		t.Error("expected enqueue to succeed")
	}

	if q.IsClosed() {
		t.Error("expected queue to be open")
	}
	if err := q.Close(); err != nil {
		t.Errorf("unexpected close error: %v", err)
	}
	if !q.IsClosed() {
		t.Error("expected queue to be closed")
	}

	// Enqueue after close must fail
	if q.Enqueue(ctx, job) {
		t.Error("expected enqueue to fail after close")
	}

	// Close is idempotent
	if err := q.Close(); err != nil {
		t.Errorf("unexpected error on double close: %v", err)
	}

	// Buffered jobs drain, then the dequeue channel closes
	jobChan := q.Dequeue(ctx)
	got, ok := <-jobChan
	if !ok || got.JobID != "job1" {
		t.Errorf("expected buffered job1, got %v (ok=%v)", got.JobID, ok)
	}
	select {
	case _, ok := <-jobChan:
		if ok {
			t.Error("expected dequeue channel to close")
		}
	case <-time.After(time.Second):
		t.Error("timed out waiting for dequeue channel to close")
	}
}

func TestInMemoryQueue_ConcurrentAccess(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(1000), WithBufferSize(1000))
	ctx := context.Background()
	numGoroutines := 10
	numJobs := 50

	var wg sync.WaitGroup
	for i := 0; i < numGoroutines; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < numJobs; j++ {
				job := model.RefreshJob{
					JobID:    fmt.Sprintf("job-%d-%d", id, j),
					LeagueID: "12345",
					Kind:     "rosters",
				}
				if !q.Enqueue(ctx, job) {
					t.Errorf("expected enqueue to succeed for %s", job.JobID)
				}
			}
		}(i)
	}
	wg.Wait()

	if l := q.Len(ctx); l != numGoroutines*numJobs {
		t.Errorf("expected length %d, got %d", numGoroutines*numJobs, l)
	}

	// Drain everything back out
	if err := q.Close(); err != nil {
		t.Errorf("unexpected close error: %v", err)
	}
	received := 0
	for range q.Dequeue(ctx) {
		received++
	}
	if received != numGoroutines*numJobs {
		t.Errorf("expected %d jobs, got %d", numGoroutines*numJobs, received)
	}
}
