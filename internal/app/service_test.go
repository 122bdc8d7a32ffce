package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/theleaguehq/leaguecap/internal/adapters/repository"
	service "github.com/theleaguehq/leaguecap/internal/app"
	"github.com/theleaguehq/leaguecap/pkg/logger"
)

func init() {
	// Initialize logging for tests
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

const testLeague = "54321"

// loadTestSeason stores a small but complete set of snapshots: four
// franchises, full brackets, one traded pick, and a salary table.
func loadTestSeason(ctx context.Context, svc *service.Service) error {
	snapshots := map[string]string{
		"leagueStandings": `{"leagueStandings":{"franchise":[
			{"id":"0001","h2hw":"8","h2hl":"6","pf":"1500.5"},
			{"id":"0002","h2hw":"1","h2hl":"13","pf":"1100.0"},
			{"id":"0003","h2hw":"11","h2hl":"3","pf":"1700.2"},
			{"id":"0004","h2hw":"5","h2hl":"9","pf":"1300.8"}
		]}}`,
		"playoffBrackets": `{"playoffBrackets":{"bracket":[
			{"franchise_id":"0003","bracket_id":"1"},
			{"franchise_id":"0002","bracket_id":"4"},
			{"franchise_id":"0004","bracket_id":"5"},
			{"franchise_id":"0001","bracket_id":"6"}
		]}}`,
		"draftResults": `{"draftResults":{"draftPick":[
			{"round":"1","pick":"1","franchise":"0004","player":"111","comments":"[Pick traded from Team Two.]"},
			{"round":"1","pick":"2","franchise":"0002","player":"222","comments":""}
		]}}`,
		"transactions": `{"transactions":{"transaction":[
			{"type":"TRADE","franchise":"0002","franchise2":"0004","franchise1_gave_up":"FP_0002_2026_1,","franchise2_gave_up":"333,","timestamp":"1700000000"}
		]}}`,
		"salaries": `{"salaries":{"player":[
			{"id":"p1","name":"Starter QB","position":"QB","franchise":"0001","salary":"1000000","contractYear":"3","status":"","birthdate":"1999-04-12"},
			{"id":"p2","name":"Backup QB","position":"QB","franchise":"0002","salary":"2000000","contractYear":"2","status":""},
			{"id":"p3","name":"Elite QB","position":"QB","franchise":"0003","salary":"3000000","contractYear":"4","status":""},
			{"id":"p4","name":"Stash WR","position":"WR","franchise":"0001","salary":"250000","contractYear":"1","status":"TAXI_SQUAD"},
			{"id":"p5","name":"Hurt RB","position":"RB","franchise":"0001","salary":"750000","contractYear":"2","status":"INJURED_RESERVE"}
		]}}`,
		"league": `{"league":{"franchise":[
			{"id":"0001","name":"Team One"},
			{"id":"0002","name":"Team Two"},
			{"id":"0003","name":"Team Three"},
			{"id":"0004","name":"Team Four"}
		]}}`,
	}
	for kind, data := range snapshots {
		snap := repository.Snapshot{LeagueID: testLeague, Kind: kind, Data: json.RawMessage(data)}
		if err := svc.PutSnapshot(ctx, snap); err != nil {
			return err
		}
	}
	return nil
}

func TestServiceDerivedValues(t *testing.T) {
	Convey("Given a started service loaded with a season", t, func() {
		svc := service.New(
			service.WithLeagueIDs([]string{testLeague}),
			service.WithFranchiseCount(4),
			service.WithSeasonYear(2026),
			service.WithWorkerCount(1),
		)
		ctx, cancel := context.WithCancel(context.Background())
		So(svc.Start(ctx), ShouldBeNil)
		defer func() {
			cancel()
			svc.Stop()
		}()
		So(loadTestSeason(ctx, svc), ShouldBeNil)

		Convey("When computing the draft order", func() {
			predictions, err := svc.DraftOrder(ctx, testLeague)
			So(err, ShouldBeNil)

			Convey("Then the worst record picks first", func() {
				So(predictions[0].FranchiseID, ShouldEqual, "0002")
				So(predictions[0].TeamName, ShouldEqual, "Team Two")
			})

			Convey("And the bonus picks ride the consolation results", func() {
				bonus := 0
				for _, p := range predictions {
					if p.IsToiletBowl {
						bonus++
					}
				}
				So(bonus, ShouldEqual, 3)
			})

			Convey("And the champion's pick is flagged in place", func() {
				for _, p := range predictions {
					if p.IsLeagueWinner {
						So(p.FranchiseID, ShouldEqual, "0003")
						So(p.Round, ShouldEqual, 1)
					}
				}
			})

			Convey("And the annotated trade surfaces on pick 1.01", func() {
				So(predictions[0].IsTraded, ShouldBeTrue)
				So(predictions[0].Trade.OriginalTeam, ShouldEqual, "Team Two")
			})

			Convey("And recomputation is deterministic", func() {
				again, err := svc.DraftOrder(ctx, testLeague)
				So(err, ShouldBeNil)
				So(again, ShouldResemble, predictions)
			})
		})

		Convey("When reading the toilet bowl", func() {
			results, err := svc.ToiletBowl(ctx, testLeague)

			Convey("Then all three rungs resolve", func() {
				So(err, ShouldBeNil)
				So(results, ShouldHaveLength, 3)
				So(results[0].FranchiseID, ShouldEqual, "0002")
			})
		})

		Convey("When rebuilding pick assets", func() {
			byOwner, mismatches, err := svc.Assets(ctx, testLeague)
			So(err, ShouldBeNil)

			Convey("Then the traded pick moved to its buyer", func() {
				var found bool
				for _, fr := range byOwner {
					for _, pick := range fr.Picks {
						if pick.OriginalOwner == "0002" && pick.Round == 1 {
							found = true
							So(fr.FranchiseID, ShouldEqual, "0004")
						}
					}
				}
				So(found, ShouldBeTrue)
			})

			Convey("And the two derivations agree", func() {
				So(mismatches, ShouldBeEmpty)
			})
		})

		Convey("When reading a franchise roster", func() {
			rows, err := svc.Roster(ctx, testLeague, "0001")
			So(err, ShouldBeNil)

			Convey("Then statuses map to display tiers", func() {
				So(rows, ShouldHaveLength, 3)
				So(rows[0].ID, ShouldEqual, "p1")
				So(string(rows[0].Tier), ShouldEqual, "active")
				So(rows[1].ID, ShouldEqual, "p4")
				So(string(rows[1].Tier), ShouldEqual, "practice")
				So(rows[2].ID, ShouldEqual, "p5")
				So(string(rows[2].Tier), ShouldEqual, "injured")
			})
		})

		Convey("When quoting an extension", func() {
			quote, err := svc.ExtensionQuote(ctx, testLeague, "p1")
			So(err, ShouldBeNil)

			Convey("Then the top-5 positional average drives the raise", func() {
				// QB salaries 3M, 2M, 1M average to 2M; the raise spreads
				// 4M across the five-year extended deal.
				So(quote.TotalYears, ShouldEqual, 5)
				So(quote.PerYear, ShouldAlmostEqual, 800000, 0.01)
				So(quote.NewSalary, ShouldAlmostEqual, 1800000, 0.01)
				So(quote.TotalValue, ShouldAlmostEqual, 9000000, 0.1)
			})
		})

		Convey("When quoting an unknown player", func() {
			_, err := svc.ExtensionQuote(ctx, testLeague, "nobody")

			Convey("Then the player-not-found error comes back", func() {
				So(errors.Is(err, service.ErrPlayerNotFound), ShouldBeTrue)
			})
		})

		Convey("When computing for a league with no snapshots", func() {
			_, err := svc.DraftOrder(ctx, "99999")

			Convey("Then the snapshot-unavailable error comes back", func() {
				So(errors.Is(err, service.ErrSnapshotUnavailable), ShouldBeTrue)
			})
		})
	})
}

func TestServiceRefresh(t *testing.T) {
	Convey("Given a started service with slow fetches", t, func() {
		svc := service.New(
			service.WithLeagueIDs([]string{testLeague}),
			service.WithWorkerCount(1),
			service.WithFetchDelay(time.Minute),
		)
		ctx, cancel := context.WithCancel(context.Background())
		So(svc.Start(ctx), ShouldBeNil)
		defer func() {
			cancel()
			svc.Stop()
		}()

		Convey("When refreshing two kinds", func() {
			queued, skipped := svc.Refresh(ctx, testLeague, []string{"rosters", "salaries"})

			Convey("Then both jobs queue", func() {
				So(queued, ShouldEqual, 2)
				So(skipped, ShouldEqual, 0)
			})

			Convey("And an immediate repeat is fully deduplicated", func() {
				queued, skipped = svc.Refresh(ctx, testLeague, []string{"rosters", "salaries"})
				So(queued, ShouldEqual, 0)
				So(skipped, ShouldEqual, 2)
			})
		})

		Convey("When refreshing without naming kinds", func() {
			queued, skipped := svc.Refresh(ctx, testLeague, nil)

			Convey("Then every known kind queues", func() {
				So(queued+skipped, ShouldEqual, 7)
			})
		})

		Convey("When asking for stats", func() {
			stats := svc.GetStats()

			Convey("Then the running totals are exposed", func() {
				So(stats.Started, ShouldBeTrue)
				So(stats.Leagues, ShouldEqual, 1)
				So(stats.Workers, ShouldEqual, 1)
				So(stats.QueueLength, ShouldBeGreaterThanOrEqualTo, 0)
			})
		})

		Convey("Then the default league is the first configured one", func() {
			So(svc.DefaultLeague(), ShouldEqual, testLeague)
		})
	})
}
