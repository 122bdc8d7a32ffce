package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/theleaguehq/leaguecap/pkg/metrics"
)

// MemStore is the in-memory Store implementation: a mutex-guarded map
// keyed by (league, kind). Snapshot volume is tiny (leagues x kinds), so
// there is no eviction.
type MemStore struct {
	mu   sync.RWMutex
	byID map[storeKey]Snapshot

	metricsUpdateInterval time.Duration
	stopMetrics           chan struct{}
	stopOnce              sync.Once
}

type storeKey struct {
	leagueID string
	kind     string
}

// NewMemStore builds an empty store and starts its background metrics
// updater.
func NewMemStore(opts ...Option) *MemStore {
	s := &MemStore{
		byID:                  make(map[storeKey]Snapshot),
		metricsUpdateInterval: 30 * time.Second,
		stopMetrics:           make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	go s.metricsLoop()
	return s
}

// Put records a snapshot, replacing any previous one for the same
// (league, kind) pair. A zero ID is assigned; a zero FetchedAt is
// stamped with the current time.
func (s *MemStore) Put(_ context.Context, snap Snapshot) error {
	if snap.LeagueID == "" || snap.Kind == "" {
		return ErrInvalidSnapshot
	}
	if snap.ID == uuid.Nil {
		snap.ID = uuid.New()
	}
	if snap.FetchedAt.IsZero() {
		snap.FetchedAt = time.Now()
	}

	start := time.Now()
	s.mu.Lock()
	s.byID[storeKey{leagueID: snap.LeagueID, kind: snap.Kind}] = snap
	count := len(s.byID)
	s.mu.Unlock()

	metrics.RecordStoreUpdateLatency(float64(time.Since(start).Microseconds()) / 1000.0)
	metrics.UpdateStoreSnapshots(count)
	return nil
}

// Get returns the current snapshot for a (league, kind) pair.
func (s *MemStore) Get(_ context.Context, leagueID, kind string) (Snapshot, error) {
	start := time.Now()
	s.mu.RLock()
	snap, ok := s.byID[storeKey{leagueID: leagueID, kind: kind}]
	s.mu.RUnlock()
	metrics.RecordStoreQueryLatency(float64(time.Since(start).Microseconds()) / 1000.0)

	if !ok {
		return Snapshot{}, ErrNotFound
	}
	return snap, nil
}

// Kinds lists the kinds stored for a league, sorted.
func (s *MemStore) Kinds(_ context.Context, leagueID string) []string {
	s.mu.RLock()
	kinds := make([]string, 0, len(s.byID))
	for key := range s.byID {
		if key.leagueID == leagueID {
			kinds = append(kinds, key.kind)
		}
	}
	s.mu.RUnlock()
	sort.Strings(kinds)
	return kinds
}

// Count returns the number of stored snapshots.
func (s *MemStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}

// Close stops the background metrics updater.
func (s *MemStore) Close() {
	s.stopOnce.Do(func() { close(s.stopMetrics) })
}

func (s *MemStore) metricsLoop() {
	ticker := time.NewTicker(s.metricsUpdateInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			metrics.UpdateStoreSnapshots(s.Count(context.Background()))
		case <-s.stopMetrics:
			return
		}
	}
}
