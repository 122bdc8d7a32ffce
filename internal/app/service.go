// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/theleaguehq/leaguecap/internal/adapters/fetch"
	jobqueue "github.com/theleaguehq/leaguecap/internal/adapters/mq/queue"
	workerpool "github.com/theleaguehq/leaguecap/internal/adapters/mq/worker"
	"github.com/theleaguehq/leaguecap/internal/adapters/repository"
	"github.com/theleaguehq/leaguecap/internal/domain/assets"
	"github.com/theleaguehq/leaguecap/internal/domain/contracts"
	"github.com/theleaguehq/leaguecap/internal/domain/dedupe"
	"github.com/theleaguehq/leaguecap/internal/domain/draftorder"
	"github.com/theleaguehq/leaguecap/internal/domain/model"
	"github.com/theleaguehq/leaguecap/internal/domain/roster"
	"github.com/theleaguehq/leaguecap/internal/domain/standings"
	"github.com/theleaguehq/leaguecap/internal/domain/toiletbowl"
	"github.com/theleaguehq/leaguecap/internal/domain/types"
	"github.com/theleaguehq/leaguecap/pkg/logger"
	"github.com/theleaguehq/leaguecap/pkg/metrics"
)

// Service implements the API dependencies for the league cap system.
// All derived values (draft order, assets, rosters, quotes) are computed
// on demand from the latest stored snapshots; nothing derived is cached.
type Service struct {
	mu sync.RWMutex

	// Core components
	store    repository.Store
	deduper  dedupe.Tracker
	jobQueue jobqueue.Queue
	fetcher  *fetch.Client
	pool     *workerpool.Pool

	// Configuration
	baseURL         string
	leagueIDs       []string
	seasonYear      int
	franchiseCount  int
	location        *time.Location
	workerCount     int
	queueSize       int
	dedupeSize      int
	fetchTimeout    time.Duration
	fetchDelay      time.Duration
	refreshInterval time.Duration
	rules           contracts.Rules

	// State
	started bool
	stopCh  chan struct{}

	logger logger.Logger
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		baseURL:         "https://api.myfantasyleague.com/2026",
		seasonYear:      2026,
		franchiseCount:  16,
		location:        time.UTC,
		workerCount:     4,
		queueSize:       1024,
		dedupeSize:      4096,
		fetchTimeout:    20 * time.Second,
		fetchDelay:      250 * time.Millisecond,
		refreshInterval: 0, // disabled unless configured
		stopCh:          make(chan struct{}),
	}

	for _, opt := range opts {
		opt(s)
	}

	s.rules = contracts.DefaultRules(s.leagueIDs)
	return s
}

// Start initializes and starts the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting league cap service...")

	if s.store == nil {
		s.store = repository.NewMemStore()
	}
	s.deduper = dedupe.NewInMemoryTracker(
		dedupe.WithMaxSize(s.dedupeSize),
	)
	s.jobQueue = jobqueue.NewInMemoryQueue(
		jobqueue.WithCapacity(s.queueSize),
		jobqueue.WithBufferSize(s.queueSize),
	)
	if s.fetcher == nil {
		s.fetcher = fetch.NewClient(s.baseURL,
			fetch.WithTimeout(s.fetchTimeout),
			fetch.WithDelay(s.fetchDelay),
		)
	}

	s.pool = workerpool.NewPool(s.workerCount, s.jobQueue, s.fetcher, s.store, s.deduper)
	s.pool.Start(ctx)

	if s.refreshInterval > 0 {
		go s.refreshLoop(ctx)
	}

	s.started = true
	s.logger.Info(ctx, "league cap service started",
		logger.Int("workers", s.workerCount),
		logger.Int("queueSize", s.queueSize),
		logger.Int("leagues", len(s.leagueIDs)),
	)
	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "stopping league cap service...")

	if s.pool != nil {
		s.pool.Stop()
	}
	if s.store != nil {
		if closer, ok := s.store.(interface{ Close() }); ok {
			closer.Close()
		}
	}
	if q, ok := s.jobQueue.(*jobqueue.InMemoryQueue); ok {
		_ = q.Close()
	}

	select {
	case <-s.stopCh:
	default:
		close(s.stopCh)
	}

	s.started = false
	s.logger.Info(context.Background(), "league cap service stopped")
}

// refreshLoop periodically refreshes every configured league's snapshots.
func (s *Service) refreshLoop(ctx context.Context) {
	ticker := time.NewTicker(s.refreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stopCh:
			return
		case <-ticker.C:
			for _, leagueID := range s.leagueIDs {
				s.Refresh(ctx, leagueID, nil)
			}
		}
	}
}

// Refresh enqueues refresh jobs for a league. An empty kinds list means
// every known kind. Jobs whose (league, kind) is already in flight are
// skipped. Returns the number of jobs queued and the number skipped.
func (s *Service) Refresh(ctx context.Context, leagueID string, kinds []string) (queued, skipped int) {
	if len(kinds) == 0 {
		kinds = fetch.Kinds
	}

	for _, kind := range kinds {
		job := model.RefreshJob{
			JobID:    uuid.NewString(),
			LeagueID: leagueID,
			Kind:     kind,
		}
		if s.deduper.SeenAndRecord(ctx, job.Key()) {
			metrics.RecordRefreshDuplicate()
			skipped++
			continue
		}
		if !s.jobQueue.Enqueue(ctx, job) {
			// Release the key so the job can be retried once the queue
			// drains.
			s.deduper.Unrecord(ctx, job.Key())
			skipped++
			continue
		}
		queued++
	}

	s.logger.Debug(ctx, "refresh requested",
		logger.String("leagueID", leagueID),
		logger.Int("queued", queued),
		logger.Int("skipped", skipped),
	)
	return queued, skipped
}

// PutSnapshot stores a snapshot directly, bypassing the fetch pipeline.
// Used by the audit/ops load endpoint.
func (s *Service) PutSnapshot(ctx context.Context, snap repository.Snapshot) error {
	return s.store.Put(ctx, snap)
}

// DraftOrder computes the predicted draft order for a league from its
// latest standings, bracket, draft-result and franchise snapshots.
// Standings are required; the bracket, draft-result and franchise
// snapshots enrich the result when present.
func (s *Service) DraftOrder(ctx context.Context, leagueID string) ([]types.DraftPrediction, error) {
	rows, err := s.loadStandings(ctx, leagueID)
	if err != nil {
		return nil, err
	}

	in := draftorder.Input{
		Standings:  standings.FromRows(rows),
		Franchises: s.loadFranchises(ctx, leagueID),
	}

	if items, err := s.loadBracketItems(ctx, leagueID); err == nil {
		in.ToiletBowl = toiletbowl.ExtractWinners(items)
		in.LeagueWinnerID = leagueChampion(items)
	}

	if drows, err := s.loadDraftResults(ctx, leagueID); err == nil {
		if ownership, err := assets.ExtractOwnership(drows); err == nil {
			in.Ownership = ownership
		}
	}

	predictions, err := draftorder.Calculate(in)
	if err != nil {
		return nil, err
	}
	metrics.RecordDraftOrderComputation()
	return predictions, nil
}

// ToiletBowl returns the consolation-ladder results for a league.
func (s *Service) ToiletBowl(ctx context.Context, leagueID string) ([]types.ToiletBowlResult, error) {
	items, err := s.loadBracketItems(ctx, leagueID)
	if err != nil {
		return nil, err
	}
	return toiletbowl.ExtractWinners(items), nil
}

// Assets rebuilds current pick ownership from the transaction log and
// reports any disagreement with the draft-comment derivation.
func (s *Service) Assets(ctx context.Context, leagueID string) ([]types.AssetsFranchise, []assets.Mismatch, error) {
	txs, err := s.loadTransactions(ctx, leagueID)
	if err != nil {
		return nil, nil, err
	}

	franchises := s.loadFranchises(ctx, leagueID)
	ids := make([]string, 0, len(franchises))
	for id := range franchises {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	byOwner, err := assets.ExtractFromTransactions(txs, ids, s.seasonYear)
	if err != nil {
		return nil, nil, err
	}
	metrics.RecordAssetExtraction()

	// Cross-check against draft comments when those are available.
	var mismatches []assets.Mismatch
	if drows, err := s.loadDraftResults(ctx, leagueID); err == nil {
		if fromComments, err := assets.ExtractOwnership(drows); err == nil {
			names := make(map[string]string, len(franchises))
			for id, meta := range franchises {
				names[id] = meta.Name
			}
			mismatches = assets.CrossCheck(fromComments, byOwner, names)
		}
	}

	return byOwner, mismatches, nil
}

// Roster returns the annotated display rows for one franchise.
func (s *Service) Roster(ctx context.Context, leagueID, franchiseID string) ([]roster.DisplayRow, error) {
	salaries, err := s.loadSalaries(ctx, leagueID)
	if err != nil {
		return nil, err
	}

	var active, practice, injured []roster.Player
	for _, row := range salaries {
		if row.FranchiseID != franchiseID {
			continue
		}
		p := roster.Player{
			ID:            row.PlayerID,
			Name:          row.Name,
			Position:      roster.ParsePosition(row.Position),
			Salary:        model.ParseFloat(row.Salary),
			ContractYears: model.ParseInt(row.ContractYears),
			Birthdate:     row.Birthdate,
		}
		switch row.Status {
		case "TAXI_SQUAD":
			practice = append(practice, p)
		case "INJURED_RESERVE":
			injured = append(injured, p)
		default:
			active = append(active, p)
		}
	}

	return roster.BuildDisplayRows(active, practice, injured), nil
}

// ValidateContract checks a proposed contract action against the league
// rules and the current action window.
func (s *Service) ValidateContract(_ context.Context, req contracts.Request) contracts.ValidationResult {
	result := s.rules.Validate(req, time.Now().In(s.location))
	metrics.RecordContractValidation(result.Valid)
	return result
}

// ExtensionQuote prices an extension for a player, deriving the current
// salary, contract length and top-5 positional average from the salary
// snapshot.
func (s *Service) ExtensionQuote(ctx context.Context, leagueID, playerID string) (contracts.ExtensionQuote, error) {
	salaries, err := s.loadSalaries(ctx, leagueID)
	if err != nil {
		return contracts.ExtensionQuote{}, err
	}

	var player *model.SalaryRow
	for i := range salaries {
		if salaries[i].PlayerID == playerID {
			player = &salaries[i]
			break
		}
	}
	if player == nil {
		return contracts.ExtensionQuote{}, fmt.Errorf("%w: player %s", ErrPlayerNotFound, playerID)
	}

	top5 := topFiveAverage(salaries, player.Position)
	quote := contracts.ExtensionSalary(
		model.ParseFloat(player.Salary),
		top5,
		model.ParseInt(player.ContractYears),
	)
	metrics.RecordExtensionQuote()
	return quote, nil
}

// topFiveAverage is the league-wide average salary of the five highest
// paid players at a position. Fewer than five players averages what
// exists; none yields zero.
func topFiveAverage(salaries []model.SalaryRow, position string) float64 {
	var at []float64
	for _, row := range salaries {
		if row.Position == position {
			at = append(at, model.ParseFloat(row.Salary))
		}
	}
	if len(at) == 0 {
		return 0
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(at)))
	if len(at) > 5 {
		at = at[:5]
	}
	var sum float64
	for _, s := range at {
		sum += s
	}
	return sum / float64(len(at))
}

// leagueChampion returns the franchise that won the championship bracket
// (bracket ID 1), if present in the bracket payload.
func leagueChampion(items []model.BracketItem) string {
	for _, item := range items {
		if model.ParseInt(item.BracketID) == 1 {
			return toiletbowl.NormalizeFranchiseID(item.FranchiseID)
		}
	}
	return ""
}

// DefaultLeague returns the league used for unqualified API requests:
// the first configured league ID.
func (s *Service) DefaultLeague() string {
	if len(s.leagueIDs) == 0 {
		return ""
	}
	return s.leagueIDs[0]
}

// SeenAndRecord atomically checks if a refresh key was seen and records
// it if not.
func (s *Service) SeenAndRecord(ctx context.Context, key string) bool {
	return s.deduper.SeenAndRecord(ctx, key)
}

// Unrecord releases a refresh key, allowing the job to run again.
func (s *Service) Unrecord(ctx context.Context, key string) {
	s.deduper.Unrecord(ctx, key)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() types.ServiceStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := types.ServiceStats{
		Started:       s.started,
		Leagues:       len(s.leagueIDs),
		SeasonYear:    s.seasonYear,
		Workers:       s.workerCount,
		QueueCapacity: s.queueSize,
	}

	if s.started {
		stats.QueueLength = s.jobQueue.Len(ctx)
		stats.Snapshots = s.store.Count(ctx)
		stats.InFlight = s.deduper.Size()

		metrics.UpdateQueueSize(stats.QueueLength)
		metrics.UpdateStoreSnapshots(stats.Snapshots)
		metrics.UpdateWorkerCount(s.workerCount)
	}

	return stats
}
