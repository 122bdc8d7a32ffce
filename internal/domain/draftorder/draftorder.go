// Package draftorder computes the predicted draft order from current
// standings: reverse-record regular picks across three rounds plus the
// three bonus picks awarded through the toilet bowl.
package draftorder

import (
	"github.com/theleaguehq/leaguecap/internal/domain/model"
	"github.com/theleaguehq/leaguecap/internal/domain/standings"
	"github.com/theleaguehq/leaguecap/internal/domain/toiletbowl"
	"github.com/theleaguehq/leaguecap/internal/domain/types"
)

// Draft shape constants.
const (
	rounds = 3

	// The two consolation bonus picks occupy round-2 slots 17 and 18;
	// the toilet-bowl winner's bonus pick is round-1 slot 17.
	specialPickWinner = 17
	specialPickCons   = 17
	specialPickCons2  = 18
)

// Input carries everything a draft order computation needs. Standings is
// required; the rest degrade gracefully when absent.
type Input struct {
	Standings []standings.Franchise

	// Franchises maps franchise ID to display metadata.
	Franchises map[string]model.FranchiseMeta

	// LeagueWinnerID flags the champion's prediction when known. It does
	// not reposition the pick.
	LeagueWinnerID string

	// ToiletBowl holds the consolation-ladder results, possibly partial.
	ToiletBowl []types.ToiletBowlResult

	// Ownership annotates predictions for picks known to have been
	// traded, keyed by pick ID ("round.pick").
	Ownership map[string]types.PickOwnership
}

// specialSlot pins one toilet-bowl bonus pick to a fixed draft position.
type specialSlot struct {
	level       types.ToiletBowlLevel
	round       int
	pickInRound int
}

// The bonus slots never move: winner drafts at 1.17, the two consolation
// rungs at 2.17 and 2.18.
var specialSlots = []specialSlot{
	{level: types.LevelWinner, round: 1, pickInRound: specialPickWinner},
	{level: types.LevelConsolation, round: 2, pickInRound: specialPickCons},
	{level: types.LevelConsolation2, round: 2, pickInRound: specialPickCons2},
}

// Calculate produces the full ordered list of predicted draft picks:
// N picks per round for three rounds, plus up to three toilet-bowl bonus
// picks when consolation results exist. Missing standings yield
// ErrMissingStandings rather than a partial result.
//
// Overall pick numbers are unique. Without toilet-bowl data a regular
// pick numbers as (round-1)*N + pickInRound. With toilet-bowl data the
// bonus slots are spliced into the sequence at their draft positions
// (after round 1, after round 2's regular picks), shifting later rounds
// so the numbering stays gap-stable: a bonus slot with no recorded
// winner leaves a hole instead of renumbering everything after it.
func Calculate(in Input) ([]types.DraftPrediction, error) {
	if len(in.Standings) == 0 {
		return nil, ErrMissingStandings
	}

	order := standings.SortByReverseRecord(in.Standings)
	n := len(order)
	hasToiletBowl := len(in.ToiletBowl) > 0

	predictions := make([]types.DraftPrediction, 0, rounds*n+len(specialSlots))

	for round := 1; round <= rounds; round++ {
		pickInRound := 0
		for _, fr := range order {
			pickInRound++
			// Round-2 slots 17 and 18 belong to the consolation picks;
			// the regular counter skips over them.
			for round == 2 && (pickInRound == specialPickCons || pickInRound == specialPickCons2) {
				pickInRound++
			}

			p := types.DraftPrediction{
				OverallPickNumber: overallFor(round, pickInRound, n, hasToiletBowl),
				Round:             round,
				PickInRound:       pickInRound,
				FranchiseID:       fr.ID,
				Record:            recordOf(fr),
			}
			if meta, ok := in.Franchises[fr.ID]; ok {
				p.TeamName = meta.Name
				p.IconURL = meta.IconURL
			}
			if round == 1 && in.LeagueWinnerID != "" && fr.ID == in.LeagueWinnerID {
				p.IsLeagueWinner = true
			}
			annotateTrade(&p, in.Ownership)
			predictions = append(predictions, p)
		}

		// Splice in this round's bonus picks, if their winners are known.
		for _, slot := range specialSlots {
			if slot.round != round {
				continue
			}
			franchiseID, ok := toiletbowl.WinnerByLevel(in.ToiletBowl, slot.level)
			if !ok {
				continue
			}
			p := types.DraftPrediction{
				OverallPickNumber: specialOverallFor(slot, n),
				Round:             slot.round,
				PickInRound:       slot.pickInRound,
				FranchiseID:       franchiseID,
				IsToiletBowl:      true,
				ToiletBowlLevel:   string(slot.level),
			}
			if meta, ok := in.Franchises[franchiseID]; ok {
				p.TeamName = meta.Name
				p.IconURL = meta.IconURL
			}
			if fr, ok := franchiseByID(order, franchiseID); ok {
				p.Record = recordOf(fr)
			}
			annotateTrade(&p, in.Ownership)
			predictions = append(predictions, p)
		}
	}

	return predictions, nil
}

// overallFor numbers a regular pick. Without toilet-bowl picks this is
// the plain (round-1)*N + pickInRound formula. With them, rounds after a
// bonus slot shift down by the number of bonus slots already passed
// (one after round 1, three after round 2).
func overallFor(round, pickInRound, franchiseCount int, hasToiletBowl bool) int {
	base := (round - 1) * franchiseCount
	if hasToiletBowl {
		switch round {
		case 2:
			base++ // 1.17
		case 3:
			base += 3 // 1.17, 2.17, 2.18
		}
	}
	// Round 2's counter skipped slots 17 and 18; collapse the gap so the
	// regular sequence stays dense.
	if round == 2 && pickInRound > specialPickCons2 {
		pickInRound -= 2
	}
	return base + pickInRound
}

// specialOverallFor numbers a bonus pick: directly after the regular
// picks of its round (and, for 2.18, after 2.17).
func specialOverallFor(slot specialSlot, franchiseCount int) int {
	switch slot.level {
	case types.LevelWinner:
		return franchiseCount + 1
	case types.LevelConsolation:
		return 2*franchiseCount + 2
	default:
		return 2*franchiseCount + 3
	}
}

func recordOf(fr standings.Franchise) types.Record {
	return types.Record{
		Wins:          fr.Wins,
		Losses:        fr.Losses,
		Ties:          fr.Ties,
		WinPct:        fr.WinPct(),
		PointsFor:     fr.PointsFor,
		PointsAgainst: fr.PointsAgainst,
	}
}

func franchiseByID(franchises []standings.Franchise, id string) (standings.Franchise, bool) {
	for _, fr := range franchises {
		if fr.ID == id {
			return fr, true
		}
	}
	return standings.Franchise{}, false
}

// annotateTrade attaches trade history when the ownership map knows the
// pick changed hands.
func annotateTrade(p *types.DraftPrediction, ownership map[string]types.PickOwnership) {
	if ownership == nil {
		return
	}
	own, ok := ownership[types.PickID(p.Round, p.PickInRound)]
	if !ok || !own.IsTraded {
		return
	}
	p.IsTraded = true
	p.Trade = &types.TradeHistory{
		OriginalTeam: own.OriginalTeam,
		Chain:        []string{own.OriginalTeam},
	}
}
