// Package model contains the raw league-platform payload shapes passed
// between layers. Fields mirror the platform's JSON export API, where
// nearly every numeric value arrives as a string.
package model

import "strconv"

// StandingsRow is one franchise's seasonal record as exported by the
// league platform. Win/loss/tie counts and percentages are numeric strings.
type StandingsRow struct {
	FranchiseID   string `json:"id"`
	H2HWins       string `json:"h2hw"`
	H2HLosses     string `json:"h2hl"`
	H2HTies       string `json:"h2ht"`
	DivWins       string `json:"divw"`
	DivLosses     string `json:"divl"`
	DivTies       string `json:"divt"`
	AllPlayPct    string `json:"all_play_pct"`
	PointsFor     string `json:"pf"`
	PointsAgainst string `json:"pa"`
	PowerRating   string `json:"pwr"`
	VictoryPoints string `json:"vp"`
}

// BracketItem is one playoff-bracket tier entry. Either BracketID or
// TierName identifies the consolation ladder level; BracketID wins when
// both are present.
type BracketItem struct {
	FranchiseID string `json:"franchise_id"`
	BracketID   string `json:"bracket_id"`
	TierName    string `json:"tier_name"`
}

// Transaction is a raw league transaction. For TRADE transactions the
// gave-up fields are comma-joined item ID lists; items prefixed FP_
// denote future draft picks (FP_<franchise>_<year>_<round>).
type Transaction struct {
	Type            string `json:"type"`
	Franchise       string `json:"franchise"`
	Franchise2      string `json:"franchise2"`
	Franchise1Items string `json:"franchise1_gave_up"`
	Franchise2Items string `json:"franchise2_gave_up"`
	Timestamp       string `json:"timestamp"`
}

// DraftResultRow is one completed draft selection. Comments is free text
// and may carry a "[Pick traded from X.]" annotation.
type DraftResultRow struct {
	Round       string `json:"round"`
	Pick        string `json:"pick"`
	FranchiseID string `json:"franchise"`
	PlayerID    string `json:"player"`
	Comments    string `json:"comments"`
}

// FranchiseMeta is the display metadata for one franchise.
type FranchiseMeta struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	OwnerID string `json:"owner_id"`
	IconURL string `json:"icon"`
}

// SalaryRow is one player's contract line from the salary export.
type SalaryRow struct {
	PlayerID      string `json:"id"`
	Name          string `json:"name"`
	Position      string `json:"position"`
	FranchiseID   string `json:"franchise"`
	Salary        string `json:"salary"`
	ContractYears string `json:"contractYear"`
	Status        string `json:"status"`
	Birthdate     string `json:"birthdate"`
}

// RefreshJob is one unit of work for the refresh pipeline: re-fetch a
// snapshot kind for a league and store the result.
type RefreshJob struct {
	JobID    string
	LeagueID string
	Kind     string
}

// Key returns the dedupe identity of the job. Two refreshes of the same
// league and kind are the same work regardless of JobID.
func (j RefreshJob) Key() string {
	return j.LeagueID + ":" + j.Kind
}

// ParseInt parses a platform numeric string, silently coercing anything
// unparseable to 0. League data is validated upstream; a blank or
// malformed field means "no value", not an error.
func ParseInt(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

// ParseFloat parses a platform decimal string with the same silent-zero
// coercion as ParseInt.
func ParseFloat(s string) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}
