// Package standings turns raw standings rows into franchise record
// snapshots and defines the reverse-record ordering used for draft
// position: the worst record drafts first.
package standings

import (
	"sort"

	"github.com/theleaguehq/leaguecap/internal/domain/model"
)

// Franchise is one league member's parsed seasonal record.
type Franchise struct {
	ID            string
	Wins          int
	Losses        int
	Ties          int
	DivWins       int
	DivLosses     int
	DivTies       int
	AllPlayPct    float64
	PointsFor     float64
	PointsAgainst float64
	PowerRating   float64
	VictoryPoints float64
}

// WinPct returns the franchise's win percentage with a tie counted as
// half a win. A franchise with no games played has a 0 percentage.
func (f Franchise) WinPct() float64 {
	games := f.Wins + f.Losses + f.Ties
	if games == 0 {
		return 0
	}
	return (float64(f.Wins) + 0.5*float64(f.Ties)) / float64(games)
}

// FromRows parses raw standings rows into franchise snapshots.
// Unparseable numeric fields coerce to 0 per the platform contract.
func FromRows(rows []model.StandingsRow) []Franchise {
	out := make([]Franchise, 0, len(rows))
	for _, r := range rows {
		out = append(out, Franchise{
			ID:            r.FranchiseID,
			Wins:          model.ParseInt(r.H2HWins),
			Losses:        model.ParseInt(r.H2HLosses),
			Ties:          model.ParseInt(r.H2HTies),
			DivWins:       model.ParseInt(r.DivWins),
			DivLosses:     model.ParseInt(r.DivLosses),
			DivTies:       model.ParseInt(r.DivTies),
			AllPlayPct:    model.ParseFloat(r.AllPlayPct),
			PointsFor:     model.ParseFloat(r.PointsFor),
			PointsAgainst: model.ParseFloat(r.PointsAgainst),
			PowerRating:   model.ParseFloat(r.PowerRating),
			VictoryPoints: model.ParseFloat(r.VictoryPoints),
		})
	}
	return out
}

// Less reports whether a drafts ahead of b: ascending win percentage with
// five cascading tiebreakers, each ascending so the worse value sorts
// first. Returns false when every field ties, leaving relative order to
// the caller's stable sort.
func Less(a, b Franchise) bool {
	if a.WinPct() != b.WinPct() {
		return a.WinPct() < b.WinPct()
	}
	if a.AllPlayPct != b.AllPlayPct {
		return a.AllPlayPct < b.AllPlayPct
	}
	if a.PointsFor != b.PointsFor {
		return a.PointsFor < b.PointsFor
	}
	if a.PowerRating != b.PowerRating {
		return a.PowerRating < b.PowerRating
	}
	if a.VictoryPoints != b.VictoryPoints {
		return a.VictoryPoints < b.VictoryPoints
	}
	if a.PointsAgainst != b.PointsAgainst {
		return a.PointsAgainst < b.PointsAgainst
	}
	return false
}

// SortByReverseRecord returns a new slice ordered worst record first.
// The sort is stable so that franchises tied on all six fields keep
// their input order, which keeps repeated computations deterministic.
func SortByReverseRecord(franchises []Franchise) []Franchise {
	sorted := make([]Franchise, len(franchises))
	copy(sorted, franchises)
	sort.SliceStable(sorted, func(i, j int) bool {
		return Less(sorted[i], sorted[j])
	})
	return sorted
}
