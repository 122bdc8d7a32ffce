package service

import (
	"time"

	"github.com/theleaguehq/leaguecap/internal/adapters/fetch"
	"github.com/theleaguehq/leaguecap/internal/adapters/repository"
	"github.com/theleaguehq/leaguecap/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithStore injects a snapshot store. Defaults to an in-memory store.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithFetcher injects a fetch client. Defaults to a client built from
// the configured base URL.
func WithFetcher(fetcher *fetch.Client) Option {
	return func(s *Service) {
		if fetcher != nil {
			s.fetcher = fetcher
		}
	}
}

// WithBaseURL sets the league platform export base URL.
func WithBaseURL(baseURL string) Option {
	return func(s *Service) {
		if baseURL != "" {
			s.baseURL = baseURL
		}
	}
}

// WithLeagueIDs sets the leagues this instance serves. The list doubles
// as the contract-action allow-list.
func WithLeagueIDs(ids []string) Option {
	return func(s *Service) {
		s.leagueIDs = ids
	}
}

// WithSeasonYear sets the season whose picks are computed.
func WithSeasonYear(year int) Option {
	return func(s *Service) {
		if year > 0 {
			s.seasonYear = year
		}
	}
}

// WithFranchiseCount sets the league size.
func WithFranchiseCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.franchiseCount = count
		}
	}
}

// WithLocation sets the league-local time zone for contract windows.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.location = loc
		}
	}
}

// WithWorkerCount sets the number of refresh workers.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the maximum size of the refresh job queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithDedupeSize sets the size of the in-flight refresh tracker.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.dedupeSize = size
		}
	}
}

// WithFetchTimeout bounds each upstream export request.
func WithFetchTimeout(timeout time.Duration) Option {
	return func(s *Service) {
		if timeout > 0 {
			s.fetchTimeout = timeout
		}
	}
}

// WithFetchDelay sets the polite delay between upstream requests.
func WithFetchDelay(delay time.Duration) Option {
	return func(s *Service) {
		if delay >= 0 {
			s.fetchDelay = delay
		}
	}
}

// WithRefreshInterval enables the periodic refresh ticker. Zero leaves
// it disabled.
func WithRefreshInterval(interval time.Duration) Option {
	return func(s *Service) {
		if interval > 0 {
			s.refreshInterval = interval
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}
