// Package contracts holds the salary-cap math and the contract-action
// validation rules: extension pricing, future-salary projection, and the
// calendar windows in which each action is allowed.
package contracts

import (
	"fmt"
	"math"
	"time"
)

// salaryGrowthRate is the annual escalator applied to every contracted
// salary.
const salaryGrowthRate = 1.1

// extensionAddedYears is how many seasons an extension appends to the
// current deal.
const extensionAddedYears = 2

// ExtensionQuote prices an extension for a player under contract.
type ExtensionQuote struct {
	// PerYear is the annual raise added on top of the current salary.
	PerYear float64 `json:"per_year"`

	// NewSalary is the resulting annual salary for the extended deal.
	NewSalary float64 `json:"new_salary"`

	// TotalYears is the length of the extended deal.
	TotalYears int `json:"total_years"`

	// TotalValue is NewSalary over the full extended length.
	TotalValue float64 `json:"total_value"`
}

// ExtensionSalary prices a contract extension. The raise spreads twice
// the top-5 positional average across the extended length: with
// currentYears seasons remaining the extended deal runs
// currentYears+2 seasons, and
//
//	perYear   = top5Average * 2 / (currentYears + 2)
//	newSalary = currentSalary + perYear
//
// Results are not rounded; presentation layers format them.
func ExtensionSalary(currentSalary, top5Average float64, currentYears int) ExtensionQuote {
	totalYears := currentYears + extensionAddedYears
	perYear := top5Average * 2 / float64(totalYears)
	newSalary := currentSalary + perYear
	return ExtensionQuote{
		PerYear:    perYear,
		NewSalary:  newSalary,
		TotalYears: totalYears,
		TotalValue: newSalary * float64(totalYears),
	}
}

// ProjectedSalary compounds a base salary forward by the annual
// escalator: base * 1.1^yearsFromNow. Zero years returns the base
// unchanged; negative years discount backwards.
func ProjectedSalary(base float64, yearsFromNow int) float64 {
	return base * math.Pow(salaryGrowthRate, float64(yearsFromNow))
}

// WindowStatus says which action window a given instant falls in.
type WindowStatus string

// Action windows. Offseason runs Feb 15 00:00 through the third Sunday
// of August at 20:45, deadline instant included; in-season runs Sep 1
// through the following Feb 14 23:59:59. The gap between them (late
// August) is closed.
const (
	WindowOffseason WindowStatus = "offseason"
	WindowInSeason  WindowStatus = "in_season"
	WindowClosed    WindowStatus = "closed"
)

// WindowAt classifies an instant into an action window. The instant is
// interpreted in its own location; callers pass league-local time.
func WindowAt(now time.Time) WindowStatus {
	year := now.Year()
	loc := now.Location()

	offseasonOpen := time.Date(year, time.February, 15, 0, 0, 0, 0, loc)
	offseasonClose := thirdSundayOfAugust(year, loc)
	seasonOpen := time.Date(year, time.September, 1, 0, 0, 0, 0, loc)

	switch {
	case now.Before(offseasonOpen):
		// Jan 1 through Feb 14 belongs to the previous season's window.
		return WindowInSeason
	case !now.After(offseasonClose):
		return WindowOffseason
	case now.Before(seasonOpen):
		return WindowClosed
	default:
		return WindowInSeason
	}
}

// thirdSundayOfAugust returns the offseason close: 20:45 on the third
// Sunday of August, computed as the first Sunday plus 14 days.
func thirdSundayOfAugust(year int, loc *time.Location) time.Time {
	d := time.Date(year, time.August, 1, 20, 45, 0, 0, loc)
	for d.Weekday() != time.Sunday {
		d = d.AddDate(0, 0, 1)
	}
	return d.AddDate(0, 0, 14)
}

// FieldError is one validation failure, attributed to the offending
// field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationResult collects every rule violation found in a request. A
// request is valid only when Errors is empty; validation never stops at
// the first failure so the caller can surface all problems at once.
type ValidationResult struct {
	Valid  bool         `json:"valid"`
	Window WindowStatus `json:"window"`
	Errors []FieldError `json:"errors,omitempty"`
}

// Request is a proposed contract action.
type Request struct {
	LeagueID     string `json:"league_id"`
	FranchiseID  string `json:"franchise_id"`
	PlayerID     string `json:"player_id"`
	Action       string `json:"action"`
	CurrentYears int    `json:"current_years"`
	NewYears     int    `json:"new_years"`
}

// Recognized contract actions. The action names a client intent and is
// passed through unchecked; new action kinds cost nothing to introduce.
const (
	ActionExtend      = "extend"
	ActionRestructure = "restructure"
	ActionFranchise   = "franchise"
)

// Rules carries the league-level validation configuration.
type Rules struct {
	// AllowedLeagueIDs is the allow-list of leagues contract actions may
	// target. Empty means no league is allowed.
	AllowedLeagueIDs []string

	// MinYears and MaxYears bound the requested contract length,
	// inclusive. The current length is not bounded; an expiring deal
	// has zero years remaining.
	MinYears int
	MaxYears int
}

// DefaultRules returns the standard league constraints: contract lengths
// of one through five years.
func DefaultRules(allowedLeagueIDs []string) Rules {
	return Rules{
		AllowedLeagueIDs: allowedLeagueIDs,
		MinYears:         1,
		MaxYears:         5,
	}
}

// Validate checks a contract request against the rules and the action
// window at now. All violations are collected; the window is reported
// even when the request is otherwise invalid.
func (r Rules) Validate(req Request, now time.Time) ValidationResult {
	result := ValidationResult{Window: WindowAt(now)}

	if result.Window == WindowClosed {
		result.Errors = append(result.Errors, FieldError{
			Field:   "window",
			Message: "contract actions are closed between the offseason deadline and season start",
		})
	}

	if !r.leagueAllowed(req.LeagueID) {
		result.Errors = append(result.Errors, FieldError{
			Field:   "league_id",
			Message: fmt.Sprintf("league %q is not enabled for contract actions", req.LeagueID),
		})
	}

	if req.FranchiseID == "" {
		result.Errors = append(result.Errors, FieldError{Field: "franchise_id", Message: "franchise is required"})
	}
	if req.PlayerID == "" {
		result.Errors = append(result.Errors, FieldError{Field: "player_id", Message: "player is required"})
	}
	// Zero current years is an expiring deal and perfectly extendable;
	// only the resulting length is bounded.
	if req.CurrentYears < 0 {
		result.Errors = append(result.Errors, FieldError{
			Field:   "current_years",
			Message: "must not be negative",
		})
	}
	if req.NewYears < r.MinYears || req.NewYears > r.MaxYears {
		result.Errors = append(result.Errors, FieldError{
			Field:   "new_years",
			Message: fmt.Sprintf("must be between %d and %d", r.MinYears, r.MaxYears),
		})
	} else if req.NewYears == req.CurrentYears {
		result.Errors = append(result.Errors, FieldError{
			Field:   "new_years",
			Message: "must differ from current contract length",
		})
	}

	result.Valid = len(result.Errors) == 0
	return result
}

func (r Rules) leagueAllowed(id string) bool {
	for _, allowed := range r.AllowedLeagueIDs {
		if allowed == id {
			return true
		}
	}
	return false
}
