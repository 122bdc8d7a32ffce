// Package types contains common types used across the application
package types

import "fmt"

// PickID is the canonical identity of a draft slot, e.g. "1.05".
func PickID(round, pick int) string {
	return fmt.Sprintf("%d.%02d", round, pick)
}

// ToiletBowlLevel identifies one rung of the consolation ladder.
type ToiletBowlLevel string

// Consolation ladder levels.
const (
	LevelWinner       ToiletBowlLevel = "winner"
	LevelConsolation  ToiletBowlLevel = "consolation"
	LevelConsolation2 ToiletBowlLevel = "consolation2"
)

// ToiletBowlResult maps a consolation-ladder level to the franchise that
// won it. At most one result per level per season.
type ToiletBowlResult struct {
	Level       ToiletBowlLevel `json:"level"`
	FranchiseID string          `json:"franchise_id"`
}

// TradeHistory records the prior ownership of a traded pick: the original
// owner plus any intermediate owners known from trade annotations.
type TradeHistory struct {
	OriginalTeam string   `json:"original_team"`
	Chain        []string `json:"chain,omitempty"`
}

// DraftPrediction is a single predicted draft slot. Instances are created
// fresh on each computation and never mutated after construction; display
// ordering is by OverallPickNumber.
type DraftPrediction struct {
	OverallPickNumber int           `json:"overall_pick_number"`
	Round             int           `json:"round"`
	PickInRound       int           `json:"pick_in_round"`
	FranchiseID       string        `json:"franchise_id"`
	TeamName          string        `json:"team_name"`
	IconURL           string        `json:"icon_url,omitempty"`
	Record            Record        `json:"record"`
	Trade             *TradeHistory `json:"trade,omitempty"`
	IsTraded          bool          `json:"is_traded"`
	IsToiletBowl      bool          `json:"is_toilet_bowl"`
	ToiletBowlLevel   string        `json:"toilet_bowl_level,omitempty"`
	IsLeagueWinner    bool          `json:"is_league_winner"`
}

// Record is the standing snapshot attached to a prediction.
type Record struct {
	Wins          int     `json:"wins"`
	Losses        int     `json:"losses"`
	Ties          int     `json:"ties"`
	WinPct        float64 `json:"win_pct"`
	PointsFor     float64 `json:"points_for"`
	PointsAgainst float64 `json:"points_against"`
}

// PickOwnership describes who currently holds a pick and, if traded,
// where it came from.
type PickOwnership struct {
	PickID             string `json:"pick_id"`
	CurrentFranchiseID string `json:"current_franchise_id"`
	OriginalTeam       string `json:"original_team,omitempty"`
	IsTraded           bool   `json:"is_traded"`
}

// AssetPick is one owned draft pick.
type AssetPick struct {
	Year          int    `json:"year"`
	Round         int    `json:"round"`
	OriginalOwner string `json:"original_owner,omitempty"`
}

// AssetsFranchise groups the picks currently owned by one franchise.
type AssetsFranchise struct {
	FranchiseID string      `json:"franchise_id"`
	Picks       []AssetPick `json:"picks"`
}

// ServiceStats is a point-in-time operational view of the running
// service: configuration, queue depth, and stored snapshot count.
type ServiceStats struct {
	Started       bool  `json:"started"`
	Leagues       int   `json:"leagues"`
	SeasonYear    int   `json:"season_year"`
	Workers       int   `json:"workers"`
	QueueCapacity int   `json:"queue_capacity"`
	QueueLength   int   `json:"queue_length"`
	Snapshots     int   `json:"snapshots"`
	InFlight      int64 `json:"in_flight"`
}
