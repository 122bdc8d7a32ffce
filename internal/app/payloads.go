package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/theleaguehq/leaguecap/internal/adapters/fetch"
	"github.com/theleaguehq/leaguecap/internal/adapters/repository"
	"github.com/theleaguehq/leaguecap/internal/domain/model"
)

// Snapshot payload envelopes. The platform wraps every export in an
// object named after the kind.
type standingsPayload struct {
	LeagueStandings struct {
		Franchise []model.StandingsRow `json:"franchise"`
	} `json:"leagueStandings"`
}

type bracketsPayload struct {
	PlayoffBrackets struct {
		Bracket []model.BracketItem `json:"bracket"`
	} `json:"playoffBrackets"`
}

type transactionsPayload struct {
	Transactions struct {
		Transaction []model.Transaction `json:"transaction"`
	} `json:"transactions"`
}

type draftResultsPayload struct {
	DraftResults struct {
		DraftPick []model.DraftResultRow `json:"draftPick"`
	} `json:"draftResults"`
}

type salariesPayload struct {
	Salaries struct {
		Player []model.SalaryRow `json:"player"`
	} `json:"salaries"`
}

type leaguePayload struct {
	League struct {
		Franchise []model.FranchiseMeta `json:"franchise"`
	} `json:"league"`
}

// loadRaw fetches the latest snapshot payload of one kind.
func (s *Service) loadRaw(ctx context.Context, leagueID, kind string) ([]byte, error) {
	snap, err := s.store.Get(ctx, leagueID, kind)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s for league %s", ErrSnapshotUnavailable, kind, leagueID)
		}
		return nil, err
	}
	return snap.Data, nil
}

func (s *Service) loadStandings(ctx context.Context, leagueID string) ([]model.StandingsRow, error) {
	raw, err := s.loadRaw(ctx, leagueID, fetch.KindStandings)
	if err != nil {
		return nil, err
	}
	var payload standingsPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("decode standings snapshot: %w", err)
	}
	return payload.LeagueStandings.Franchise, nil
}

func (s *Service) loadBracketItems(ctx context.Context, leagueID string) ([]model.BracketItem, error) {
	raw, err := s.loadRaw(ctx, leagueID, fetch.KindBrackets)
	if err != nil {
		return nil, err
	}
	var payload bracketsPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("decode brackets snapshot: %w", err)
	}
	return payload.PlayoffBrackets.Bracket, nil
}

func (s *Service) loadTransactions(ctx context.Context, leagueID string) ([]model.Transaction, error) {
	raw, err := s.loadRaw(ctx, leagueID, fetch.KindTransactions)
	if err != nil {
		return nil, err
	}
	var payload transactionsPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("decode transactions snapshot: %w", err)
	}
	return payload.Transactions.Transaction, nil
}

func (s *Service) loadDraftResults(ctx context.Context, leagueID string) ([]model.DraftResultRow, error) {
	raw, err := s.loadRaw(ctx, leagueID, fetch.KindDraftResults)
	if err != nil {
		return nil, err
	}
	var payload draftResultsPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("decode draft results snapshot: %w", err)
	}
	return payload.DraftResults.DraftPick, nil
}

func (s *Service) loadSalaries(ctx context.Context, leagueID string) ([]model.SalaryRow, error) {
	raw, err := s.loadRaw(ctx, leagueID, fetch.KindSalaries)
	if err != nil {
		return nil, err
	}
	var payload salariesPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("decode salaries snapshot: %w", err)
	}
	return payload.Salaries.Player, nil
}

// loadFranchises returns franchise display metadata keyed by ID. A
// missing or malformed league snapshot degrades to an empty map; callers
// render IDs without names.
func (s *Service) loadFranchises(ctx context.Context, leagueID string) map[string]model.FranchiseMeta {
	raw, err := s.loadRaw(ctx, leagueID, fetch.KindLeague)
	if err != nil {
		return map[string]model.FranchiseMeta{}
	}
	var payload leaguePayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return map[string]model.FranchiseMeta{}
	}
	metas := make(map[string]model.FranchiseMeta, len(payload.League.Franchise))
	for _, meta := range payload.League.Franchise {
		metas[meta.ID] = meta
	}
	return metas
}
