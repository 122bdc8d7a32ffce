// Package roster prepares display-ready roster tables: position/salary
// sorting across the three roster tiers plus the divider and stripe
// annotations the table renderer needs.
package roster

import (
	"sort"
)

// Position is a closed player-position type. Free strings from the feed
// are parsed once at the edge; everything downstream works with this.
type Position string

// Recognized positions, in canonical display order.
const (
	QB  Position = "QB"
	RB  Position = "RB"
	WR  Position = "WR"
	TE  Position = "TE"
	PK  Position = "PK"
	DEF Position = "DEF"

	// PositionUnknown covers feed values outside the recognized set.
	// It always sorts last.
	PositionUnknown Position = "UNK"
)

// positionOrder fixes the canonical sort order.
var positionOrder = map[Position]int{
	QB:  0,
	RB:  1,
	WR:  2,
	TE:  3,
	PK:  4,
	DEF: 5,
}

// ParsePosition maps a raw feed position string to the closed type.
func ParsePosition(raw string) Position {
	p := Position(raw)
	if _, ok := positionOrder[p]; ok {
		return p
	}
	return PositionUnknown
}

// rankOf returns a position's sort rank, unknowns last.
func rankOf(p Position) int {
	if r, ok := positionOrder[p]; ok {
		return r
	}
	return len(positionOrder)
}

// Tier is a roster display tier.
type Tier string

// Roster tiers, in display order.
const (
	TierActive   Tier = "active"
	TierPractice Tier = "practice"
	TierInjured  Tier = "injured"
)

// Player is one roster row prior to annotation.
type Player struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Position      Position `json:"position"`
	Salary        float64  `json:"salary"`
	ContractYears int      `json:"contract_years"`
	Birthdate     string   `json:"birthdate,omitempty"`
}

// DisplayRow is a player annotated for rendering. The annotation fields
// are purely presentational: they are recomputed on every build and
// never persisted.
type DisplayRow struct {
	Player
	Tier Tier `json:"tier"`

	// PositionDivider marks the first row of a position run;
	// PositionDividerEnd marks the last row before the position changes.
	PositionDivider    bool `json:"position_divider"`
	PositionDividerEnd bool `json:"position_divider_end"`

	// TierDivider marks the first row after the active tier ends.
	TierDivider bool `json:"tier_divider"`

	// ActiveStripe alternates by position run within the active tier.
	// Practice and injured rows never stripe.
	ActiveStripe bool `json:"active_stripe"`
}

// BuildDisplayRows sorts each tier by canonical position order then
// salary descending, concatenates active, practice, injured, and
// annotates dividers and stripes. Building from a previous build's rows
// (ignoring their annotations) reproduces identical annotations.
func BuildDisplayRows(active, practice, injured []Player) []DisplayRow {
	rows := make([]DisplayRow, 0, len(active)+len(practice)+len(injured))
	rows = appendTier(rows, active, TierActive)
	rows = appendTier(rows, practice, TierPractice)
	rows = appendTier(rows, injured, TierInjured)

	annotatePositionRuns(rows)
	annotateTierDivider(rows)
	annotateActiveStripes(rows)
	return rows
}

// appendTier sorts one tier's players and appends them as rows.
func appendTier(rows []DisplayRow, players []Player, tier Tier) []DisplayRow {
	sorted := make([]Player, len(players))
	copy(sorted, players)
	sort.SliceStable(sorted, func(i, j int) bool {
		ri, rj := rankOf(sorted[i].Position), rankOf(sorted[j].Position)
		if ri != rj {
			return ri < rj
		}
		return sorted[i].Salary > sorted[j].Salary
	})
	for _, p := range sorted {
		rows = append(rows, DisplayRow{Player: p, Tier: tier})
	}
	return rows
}

// annotatePositionRuns marks the first and last row of every position
// run. Runs break at position changes and at tier boundaries.
func annotatePositionRuns(rows []DisplayRow) {
	for i := range rows {
		if i == 0 || rows[i].Position != rows[i-1].Position || rows[i].Tier != rows[i-1].Tier {
			rows[i].PositionDivider = true
			if i > 0 {
				rows[i-1].PositionDividerEnd = true
			}
		}
	}
	if len(rows) > 0 {
		rows[len(rows)-1].PositionDividerEnd = true
	}
}

// annotateTierDivider marks the first row where the tier leaves active.
func annotateTierDivider(rows []DisplayRow) {
	for i := range rows {
		if rows[i].Tier != TierActive {
			rows[i].TierDivider = true
			return
		}
	}
}

// annotateActiveStripes alternates the stripe flag by position run over
// the active rows only.
func annotateActiveStripes(rows []DisplayRow) {
	stripe := false
	started := false
	for i := range rows {
		if rows[i].Tier != TierActive {
			return
		}
		if !started {
			started = true
		} else if rows[i].Position != rows[i-1].Position {
			stripe = !stripe
		}
		rows[i].ActiveStripe = stripe
	}
}
