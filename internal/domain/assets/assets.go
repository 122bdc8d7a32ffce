// Package assets rebuilds current draft-pick ownership from the two data
// sources the platform exposes: free-text annotations on draft results,
// and the raw trade transaction log.
package assets

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/theleaguehq/leaguecap/internal/domain/model"
	"github.com/theleaguehq/leaguecap/internal/domain/types"
)

// tradeCommentRe matches the platform's pick-trade annotation, with or
// without the "from": "[Pick traded from Team X.]" / "[Pick traded Team X.]".
var tradeCommentRe = regexp.MustCompile(`\[Pick traded (?:from )?(.+?)\.\]`)

// futurePickPrefix marks a future draft pick inside a trade item list.
// Format: FP_<originalFranchise>_<year>_<round>.
const futurePickPrefix = "FP_"

// ExtractOwnership derives pick ownership from draft-result comments,
// keyed by pick ID ("round.pick"). This is a single-hop extraction: the
// annotation names only the immediately-prior owner, so that is all the
// history recorded. Rows whose comments carry no trade annotation are
// untraded; an annotation the regex cannot parse is a best-effort miss,
// not an error. Missing rows yield ErrMissingDraftResults.
func ExtractOwnership(rows []model.DraftResultRow) (map[string]types.PickOwnership, error) {
	if len(rows) == 0 {
		return nil, ErrMissingDraftResults
	}

	ownership := make(map[string]types.PickOwnership, len(rows))
	for _, row := range rows {
		round := model.ParseInt(row.Round)
		pick := model.ParseInt(row.Pick)
		if round == 0 || pick == 0 {
			continue
		}
		id := types.PickID(round, pick)
		own := types.PickOwnership{
			PickID:             id,
			CurrentFranchiseID: row.FranchiseID,
		}
		if m := tradeCommentRe.FindStringSubmatch(row.Comments); m != nil {
			own.OriginalTeam = strings.TrimSpace(m[1])
			own.IsTraded = true
		}
		ownership[id] = own
	}
	return ownership, nil
}

// pickKey identifies a future pick by its original owner, year and round.
// Ownership replay keeps only the latest assignment per key.
type pickKey struct {
	origFranchise string
	year          int
	round         int
}

// ExtractFromTransactions derives pick ownership by replaying TRADE
// transactions in chronological order against an initial map in which
// every franchise owns its own picks for the given year. Items prefixed
// FP_ in the gave-up lists transfer a future pick to the other side of
// the trade; everything else in those lists is a player and ignored
// here. Missing transaction data yields ErrMissingTransactions.
func ExtractFromTransactions(txs []model.Transaction, franchiseIDs []string, year int) ([]types.AssetsFranchise, error) {
	if len(txs) == 0 {
		return nil, ErrMissingTransactions
	}

	const picksPerFranchise = 3

	owner := make(map[pickKey]string, len(franchiseIDs)*picksPerFranchise)
	for _, id := range franchiseIDs {
		for round := 1; round <= picksPerFranchise; round++ {
			owner[pickKey{origFranchise: id, year: year, round: round}] = id
		}
	}

	trades := make([]model.Transaction, 0, len(txs))
	for _, tx := range txs {
		if tx.Type == "TRADE" {
			trades = append(trades, tx)
		}
	}
	sort.SliceStable(trades, func(i, j int) bool {
		return model.ParseInt(trades[i].Timestamp) < model.ParseInt(trades[j].Timestamp)
	})

	for _, tx := range trades {
		applyItems(owner, tx.Franchise1Items, tx.Franchise2)
		applyItems(owner, tx.Franchise2Items, tx.Franchise)
	}

	return groupByOwner(owner, franchiseIDs), nil
}

// applyItems transfers every future pick in a comma-joined item list to
// the receiving franchise.
func applyItems(owner map[pickKey]string, items, receiver string) {
	for _, item := range strings.Split(items, ",") {
		item = strings.TrimSpace(item)
		if !strings.HasPrefix(item, futurePickPrefix) {
			continue
		}
		key, ok := parseFuturePick(item)
		if !ok {
			continue
		}
		owner[key] = receiver
	}
}

// parseFuturePick decodes FP_<franchise>_<year>_<round>.
func parseFuturePick(item string) (pickKey, bool) {
	parts := strings.Split(strings.TrimPrefix(item, futurePickPrefix), "_")
	if len(parts) != 3 {
		return pickKey{}, false
	}
	year := model.ParseInt(parts[1])
	round := model.ParseInt(parts[2])
	if parts[0] == "" || year == 0 || round == 0 {
		return pickKey{}, false
	}
	return pickKey{origFranchise: parts[0], year: year, round: round}, true
}

// groupByOwner folds the replayed ownership map into per-franchise asset
// lists, ordered by franchise ID with picks ordered by year then round.
func groupByOwner(owner map[pickKey]string, franchiseIDs []string) []types.AssetsFranchise {
	byFranchise := make(map[string][]types.AssetPick, len(franchiseIDs))
	for key, current := range owner {
		pick := types.AssetPick{Year: key.year, Round: key.round}
		if key.origFranchise != current {
			pick.OriginalOwner = key.origFranchise
		}
		byFranchise[current] = append(byFranchise[current], pick)
	}

	ids := make([]string, 0, len(byFranchise))
	for id := range byFranchise {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]types.AssetsFranchise, 0, len(ids))
	for _, id := range ids {
		picks := byFranchise[id]
		sort.Slice(picks, func(i, j int) bool {
			if picks[i].Year != picks[j].Year {
				return picks[i].Year < picks[j].Year
			}
			return picks[i].Round < picks[j].Round
		})
		out = append(out, types.AssetsFranchise{FranchiseID: id, Picks: picks})
	}
	return out
}

// Mismatch describes one disagreement between the two ownership
// derivations.
type Mismatch struct {
	PickID       string `json:"pick_id"`
	CommentOwner string `json:"comment_owner"`
	ReplayOwner  string `json:"replay_owner"`
}

// CrossCheck compares comment-derived ownership against replay-derived
// assets for the same year. The two paths come from independent data
// sources and must agree when both are present; any divergence means one
// feed is stale or a comment failed to parse. Comparison is by current
// owner per (round, pick inferred from original owner) and is
// best-effort: picks known to only one side are skipped.
func CrossCheck(fromComments map[string]types.PickOwnership, fromReplay []types.AssetsFranchise, franchiseDisplayNames map[string]string) []Mismatch {
	// Index replayed picks by original-owner round so they can be lined
	// up with comment annotations, which name teams rather than IDs.
	replayOwner := make(map[string]string)
	for _, fr := range fromReplay {
		for _, pick := range fr.Picks {
			orig := pick.OriginalOwner
			if orig == "" {
				orig = fr.FranchiseID
			}
			replayOwner[ownerRoundKey(orig, pick.Round)] = fr.FranchiseID
		}
	}

	nameToID := make(map[string]string, len(franchiseDisplayNames))
	for id, name := range franchiseDisplayNames {
		nameToID[name] = id
	}

	var mismatches []Mismatch
	for pickID, own := range fromComments {
		if !own.IsTraded {
			continue
		}
		origID, ok := nameToID[own.OriginalTeam]
		if !ok {
			continue
		}
		round := model.ParseInt(strings.SplitN(pickID, ".", 2)[0])
		replayed, ok := replayOwner[ownerRoundKey(origID, round)]
		if !ok {
			continue
		}
		if replayed != own.CurrentFranchiseID {
			mismatches = append(mismatches, Mismatch{
				PickID:       pickID,
				CommentOwner: own.CurrentFranchiseID,
				ReplayOwner:  replayed,
			})
		}
	}
	sort.Slice(mismatches, func(i, j int) bool { return mismatches[i].PickID < mismatches[j].PickID })
	return mismatches
}

func ownerRoundKey(franchiseID string, round int) string {
	return franchiseID + "/" + strconv.Itoa(round)
}
