// Package dedupe tracks in-flight refresh jobs so a league/kind pair is
// fetched at most once at a time.
package dedupe

import (
	"context"
	"sync"
	"sync/atomic"
)

// Tracker records refresh-job keys to collapse duplicate requests.
type Tracker interface {
	// SeenAndRecord atomically checks whether key is in flight and
	// records it if not. Returns true when the key was already recorded.
	SeenAndRecord(ctx context.Context, key string) bool

	// Unrecord releases a key so the job can run again. Called when a
	// job finishes, or when it was recorded but could not be enqueued.
	Unrecord(ctx context.Context, key string)

	Size() int64
}

// inMemoryTracker keeps keys in a map. In bounded mode an insertion-order
// list backs oldest-first eviction; keys for jobs that complete normally
// are removed by Unrecord long before eviction matters, so eviction only
// guards against leaked keys.
type inMemoryTracker struct {
	mu      sync.Mutex
	seen    map[string]struct{}
	order   []string
	maxSize int
	size    atomic.Int64
}

// NewInMemoryTracker builds a tracker. The default bound of 4096 keys is
// far above any realistic in-flight count.
func NewInMemoryTracker(opts ...Option) Tracker {
	t := &inMemoryTracker{maxSize: 4096}
	for _, opt := range opts {
		opt(t)
	}
	t.seen = make(map[string]struct{})
	return t
}

func (t *inMemoryTracker) SeenAndRecord(_ context.Context, key string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.seen[key]; ok {
		return true
	}
	if t.maxSize > 0 && len(t.seen) >= t.maxSize {
		t.evictOldest()
	}
	t.seen[key] = struct{}{}
	if t.maxSize > 0 {
		t.order = append(t.order, key)
	}
	t.size.Add(1)
	return false
}

func (t *inMemoryTracker) Unrecord(_ context.Context, key string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.seen[key]; !ok {
		return
	}
	delete(t.seen, key)
	t.size.Add(-1)
	for i, k := range t.order {
		if k == key {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
}

// evictOldest drops the oldest still-recorded key. Must hold t.mu.
func (t *inMemoryTracker) evictOldest() {
	if len(t.order) == 0 {
		return
	}
	oldest := t.order[0]
	t.order = t.order[1:]
	delete(t.seen, oldest)
	t.size.Add(-1)
}

func (t *inMemoryTracker) Size() int64 {
	return t.size.Load()
}
