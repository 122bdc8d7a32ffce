package seasonaudit

import (
	"context"
	"fmt"
	"sort"

	"github.com/theleaguehq/leaguecap/internal/domain/assets"
	"github.com/theleaguehq/leaguecap/internal/domain/types"
	"github.com/theleaguehq/leaguecap/pkg/logger"
)

// draftOrderResponse mirrors GET /draft-order.
type draftOrderResponse struct {
	LeagueID    string                  `json:"league_id"`
	Predictions []types.DraftPrediction `json:"predictions"`
}

// assetsResponse mirrors GET /assets.
type assetsResponse struct {
	LeagueID   string                  `json:"league_id"`
	Franchises []types.AssetsFranchise `json:"franchises"`
	Mismatches []assets.Mismatch       `json:"mismatches"`
}

// verifyDeterminism fetches the draft order twice and requires identical
// overall-pick assignments.
func verifyDeterminism(first, second []types.DraftPrediction) error {
	if len(first) != len(second) {
		return fmt.Errorf("prediction count changed between runs: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].OverallPickNumber != second[i].OverallPickNumber ||
			first[i].FranchiseID != second[i].FranchiseID {
			return fmt.Errorf("prediction %d changed between runs: %s@%d vs %s@%d",
				i,
				first[i].FranchiseID, first[i].OverallPickNumber,
				second[i].FranchiseID, second[i].OverallPickNumber)
		}
	}
	return nil
}

// verifyUniqueness requires every overall pick number to be unique.
func verifyUniqueness(predictions []types.DraftPrediction) error {
	seen := make(map[int]string, len(predictions))
	for _, p := range predictions {
		if prev, ok := seen[p.OverallPickNumber]; ok {
			return fmt.Errorf("overall pick %d assigned to both %s and %s",
				p.OverallPickNumber, prev, p.FranchiseID)
		}
		seen[p.OverallPickNumber] = p.FranchiseID
	}
	return nil
}

// verifySpecialSlots requires round-2 slots 17 and 18 and round-1 slot
// 17 to be toilet-bowl picks, and no regular pick to occupy them.
func verifySpecialSlots(predictions []types.DraftPrediction) error {
	for _, p := range predictions {
		special := (p.Round == 1 && p.PickInRound == 17) ||
			(p.Round == 2 && (p.PickInRound == 17 || p.PickInRound == 18))
		if special && !p.IsToiletBowl {
			return fmt.Errorf("slot %d.%d held by regular pick for %s", p.Round, p.PickInRound, p.FranchiseID)
		}
		if !special && p.IsToiletBowl {
			return fmt.Errorf("toilet-bowl pick for %s at unexpected slot %d.%d", p.FranchiseID, p.Round, p.PickInRound)
		}
	}
	return nil
}

// verifyOwnership replays the generated transactions locally and
// requires the server's asset ownership to match, and its comment
// cross-check to report no mismatches.
func verifyOwnership(ctx context.Context, cfg *Config, season *Season, got assetsResponse) error {
	if len(got.Mismatches) != 0 {
		return fmt.Errorf("server reported %d ownership mismatches", len(got.Mismatches))
	}

	ids := make([]string, 0, len(season.Franchises))
	for _, meta := range season.Franchises {
		ids = append(ids, meta.ID)
	}
	want, err := assets.ExtractFromTransactions(season.Transactions, ids, cfg.SeasonYear)
	if err != nil {
		return fmt.Errorf("local replay failed: %w", err)
	}

	if err := compareAssets(want, got.Franchises); err != nil {
		return err
	}

	logger.Get().Info(ctx, "ownership cross-check passed",
		logger.Int("franchises", len(want)),
	)
	return nil
}

// compareAssets requires two per-franchise asset lists to be identical.
func compareAssets(want, got []types.AssetsFranchise) error {
	if len(want) != len(got) {
		return fmt.Errorf("franchise count differs: local %d, server %d", len(want), len(got))
	}

	sort.Slice(got, func(i, j int) bool { return got[i].FranchiseID < got[j].FranchiseID })
	for i := range want {
		w, g := want[i], got[i]
		if w.FranchiseID != g.FranchiseID {
			return fmt.Errorf("franchise order differs at %d: local %s, server %s", i, w.FranchiseID, g.FranchiseID)
		}
		if len(w.Picks) != len(g.Picks) {
			return fmt.Errorf("pick count differs for %s: local %d, server %d", w.FranchiseID, len(w.Picks), len(g.Picks))
		}
		for j := range w.Picks {
			if w.Picks[j] != g.Picks[j] {
				return fmt.Errorf("pick %d differs for %s: local %+v, server %+v",
					j, w.FranchiseID, w.Picks[j], g.Picks[j])
			}
		}
	}
	return nil
}
