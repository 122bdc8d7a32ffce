// Package toiletbowl resolves playoff-bracket tier items into the three
// consolation-ladder results that earn bonus draft picks.
package toiletbowl

import (
	"strings"

	"github.com/theleaguehq/leaguecap/internal/domain/model"
	"github.com/theleaguehq/leaguecap/internal/domain/types"
)

// Bracket IDs assigned by the league platform to the consolation ladder.
const (
	bracketIDWinner       = 4
	bracketIDConsolation  = 5
	bracketIDConsolation2 = 6
)

// Known tier-name variants, matched exactly after trimming. Used only
// when an item carries no usable bracket ID.
var tierNames = map[string]types.ToiletBowlLevel{
	"Toilet Bowl":              types.LevelWinner,
	"Toilet Bowl Championship": types.LevelWinner,
	"Consolation":              types.LevelConsolation,
	"Consolation Bracket":      types.LevelConsolation,
	"Consolation 2":            types.LevelConsolation2,
	"Second Consolation":       types.LevelConsolation2,
}

// ExtractWinners maps bracket tier items to consolation-ladder results.
// A numeric bracket ID takes precedence over a tier-name match when both
// are present; unknown IDs and names are dropped silently. Absent bracket
// data yields an empty list, which is the normal "no playoffs yet" state
// rather than a failure. At most one result is kept per level.
func ExtractWinners(items []model.BracketItem) []types.ToiletBowlResult {
	results := make([]types.ToiletBowlResult, 0, 3)
	seen := make(map[types.ToiletBowlLevel]bool, 3)

	for _, item := range items {
		level, ok := levelOf(item)
		if !ok || seen[level] {
			continue
		}
		seen[level] = true
		results = append(results, types.ToiletBowlResult{
			Level:       level,
			FranchiseID: NormalizeFranchiseID(item.FranchiseID),
		})
	}
	return results
}

// levelOf resolves one bracket item to a ladder level, preferring the
// numeric bracket ID.
func levelOf(item model.BracketItem) (types.ToiletBowlLevel, bool) {
	if item.BracketID != "" {
		switch model.ParseInt(item.BracketID) {
		case bracketIDWinner:
			return types.LevelWinner, true
		case bracketIDConsolation:
			return types.LevelConsolation, true
		case bracketIDConsolation2:
			return types.LevelConsolation2, true
		}
		return "", false
	}

	level, ok := tierNames[strings.TrimSpace(item.TierName)]
	return level, ok
}

// NormalizeFranchiseID zero-pads a franchise ID to the platform's 4-digit
// form, e.g. "5" -> "0005". IDs already 4 digits or longer pass through.
func NormalizeFranchiseID(id string) string {
	id = strings.TrimSpace(id)
	if len(id) >= 4 {
		return id
	}
	return strings.Repeat("0", 4-len(id)) + id
}

// WinnerByLevel returns the franchise ID recorded for level, if any.
func WinnerByLevel(results []types.ToiletBowlResult, level types.ToiletBowlLevel) (string, bool) {
	for _, r := range results {
		if r.Level == level {
			return r.FranchiseID, true
		}
	}
	return "", false
}
