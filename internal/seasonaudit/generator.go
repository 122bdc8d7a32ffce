package seasonaudit

import (
	"fmt"
	"math/rand"
	"strconv"

	"github.com/theleaguehq/leaguecap/internal/domain/model"
)

// Season is one generated synthetic season: every snapshot payload the
// service needs to compute a draft order and pick ownership.
type Season struct {
	Franchises   []model.FranchiseMeta
	Standings    []model.StandingsRow
	Brackets     []model.BracketItem
	Transactions []model.Transaction
	DraftResults []model.DraftResultRow
}

// trade records one generated pick transfer for local verification.
type trade struct {
	origFranchise string
	newFranchise  string
	round         int
}

// generateSeason builds a coherent synthetic season: strict standings
// with no tiebreaker collisions, a full consolation ladder, and a set of
// pick trades whose transaction log and draft-result comments agree.
func generateSeason(cfg *Config, rng *rand.Rand) (*Season, []trade) {
	n := cfg.FranchiseCount

	season := &Season{
		Franchises: make([]model.FranchiseMeta, 0, n),
		Standings:  make([]model.StandingsRow, 0, n),
	}

	for i := 1; i <= n; i++ {
		id := franchiseID(i)
		season.Franchises = append(season.Franchises, model.FranchiseMeta{
			ID:   id,
			Name: "Team " + id,
		})
		// Strictly increasing wins by index keeps every tiebreaker field
		// distinct, so the reverse-record order is a strict total order.
		season.Standings = append(season.Standings, model.StandingsRow{
			FranchiseID:   id,
			H2HWins:       strconv.Itoa(i - 1),
			H2HLosses:     strconv.Itoa(n - i),
			H2HTies:       "0",
			AllPlayPct:    fmt.Sprintf("%.3f", float64(i)/float64(n+1)),
			PointsFor:     fmt.Sprintf("%.1f", 1000+float64(i)*25+rng.Float64()),
			PointsAgainst: fmt.Sprintf("%.1f", 1400-float64(i)*20+rng.Float64()),
			PowerRating:   fmt.Sprintf("%.1f", float64(i)*10),
			VictoryPoints: strconv.Itoa(i * 2),
		})
	}

	// Champion is the best team; the consolation ladder goes to the three
	// worst.
	season.Brackets = []model.BracketItem{
		{FranchiseID: franchiseID(n), BracketID: "1"},
		{FranchiseID: franchiseID(1), BracketID: "4", TierName: "Toilet Bowl"},
		{FranchiseID: franchiseID(2), BracketID: "5", TierName: "Consolation"},
		{FranchiseID: franchiseID(3), BracketID: "6", TierName: "Consolation 2"},
	}

	trades := generateTrades(cfg, rng, season)
	season.DraftResults = generateDraftResults(cfg, season, trades)
	return season, trades
}

// generateTrades emits TRADE transactions moving future picks between
// distinct franchises. Timestamps ascend so replay order is the emit
// order.
func generateTrades(cfg *Config, rng *rand.Rand, season *Season) []trade {
	trades := make([]trade, 0, cfg.TradeCount)
	base := int64(1_700_000_000)

	for i := 0; i < cfg.TradeCount; i++ {
		from := rng.Intn(cfg.FranchiseCount) + 1
		to := rng.Intn(cfg.FranchiseCount) + 1
		for to == from {
			to = rng.Intn(cfg.FranchiseCount) + 1
		}
		round := rng.Intn(3) + 1

		tr := trade{
			origFranchise: franchiseID(from),
			newFranchise:  franchiseID(to),
			round:         round,
		}
		trades = append(trades, tr)

		season.Transactions = append(season.Transactions, model.Transaction{
			Type:            "TRADE",
			Franchise:       tr.origFranchise,
			Franchise2:      tr.newFranchise,
			Franchise1Items: fmt.Sprintf("FP_%s_%d_%d", tr.origFranchise, cfg.SeasonYear, round),
			Franchise2Items: "",
			Timestamp:       strconv.FormatInt(base+int64(i)*3600, 10),
		})
	}
	return trades
}

// generateDraftResults emits a completed prior draft whose trade
// comments agree with the transaction log, pick slots assigned by
// reverse standings order.
func generateDraftResults(cfg *Config, season *Season, trades []trade) []model.DraftResultRow {
	n := cfg.FranchiseCount

	// Latest assignment per (origFranchise, round) wins, mirroring replay.
	owner := make(map[string]trade)
	for _, tr := range trades {
		owner[tr.origFranchise+"/"+strconv.Itoa(tr.round)] = tr
	}

	rows := make([]model.DraftResultRow, 0, 3*n)
	player := 1
	for round := 1; round <= 3; round++ {
		for slot := 1; slot <= n; slot++ {
			// Worst team drafts first: slot 1 belongs to franchise 1.
			orig := franchiseID(slot)
			row := model.DraftResultRow{
				Round:       strconv.Itoa(round),
				Pick:        strconv.Itoa(slot),
				FranchiseID: orig,
				PlayerID:    "P" + strconv.Itoa(player),
			}
			if tr, ok := owner[orig+"/"+strconv.Itoa(round)]; ok {
				row.FranchiseID = tr.newFranchise
				row.Comments = fmt.Sprintf("[Pick traded from Team %s.]", tr.origFranchise)
			}
			rows = append(rows, row)
			player++
		}
	}
	return rows
}

// franchiseID formats an index as the platform's 4-digit franchise ID.
func franchiseID(i int) string {
	return fmt.Sprintf("%04d", i)
}
