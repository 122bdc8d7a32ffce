package standings_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/theleaguehq/leaguecap/internal/domain/model"
	"github.com/theleaguehq/leaguecap/internal/domain/standings"
)

func TestWinPct(t *testing.T) {
	Convey("Given a franchise record", t, func() {
		Convey("When the record has wins, losses and ties", func() {
			fr := standings.Franchise{Wins: 8, Losses: 5, Ties: 1}

			Convey("Then ties count as half a win", func() {
				So(fr.WinPct(), ShouldAlmostEqual, 8.5/14.0)
			})
		})

		Convey("When no games have been played", func() {
			fr := standings.Franchise{}

			Convey("Then the percentage is zero", func() {
				So(fr.WinPct(), ShouldEqual, 0)
			})
		})
	})
}

func TestSortByReverseRecord(t *testing.T) {
	Convey("Given standings with distinct records", t, func() {
		rows := []model.StandingsRow{
			{FranchiseID: "0003", H2HWins: "12", H2HLosses: "2", PointsFor: "1600.0"},
			{FranchiseID: "0001", H2HWins: "2", H2HLosses: "12", PointsFor: "1100.0"},
			{FranchiseID: "0002", H2HWins: "7", H2HLosses: "7", PointsFor: "1350.0"},
		}
		franchises := standings.FromRows(rows)

		Convey("When sorting by reverse record", func() {
			order := standings.SortByReverseRecord(franchises)

			Convey("Then the worst record sorts first", func() {
				So(order[0].ID, ShouldEqual, "0001")
				So(order[1].ID, ShouldEqual, "0002")
				So(order[2].ID, ShouldEqual, "0003")
			})

			Convey("And the input slice is left untouched", func() {
				So(franchises[0].ID, ShouldEqual, "0003")
			})
		})
	})

	Convey("Given standings tied on win percentage", t, func() {
		rows := []model.StandingsRow{
			{FranchiseID: "0001", H2HWins: "7", H2HLosses: "7", AllPlayPct: "0.600", PointsFor: "1400.0"},
			{FranchiseID: "0002", H2HWins: "7", H2HLosses: "7", AllPlayPct: "0.400", PointsFor: "1300.0"},
		}
		franchises := standings.FromRows(rows)

		Convey("When sorting by reverse record", func() {
			order := standings.SortByReverseRecord(franchises)

			Convey("Then the lower all-play percentage sorts first", func() {
				So(order[0].ID, ShouldEqual, "0002")
			})
		})
	})

	Convey("Given standings tied through to points-for", t, func() {
		rows := []model.StandingsRow{
			{FranchiseID: "0001", H2HWins: "7", H2HLosses: "7", AllPlayPct: "0.500", PointsFor: "1400.0"},
			{FranchiseID: "0002", H2HWins: "7", H2HLosses: "7", AllPlayPct: "0.500", PointsFor: "1250.0"},
		}
		franchises := standings.FromRows(rows)

		Convey("When sorting by reverse record", func() {
			order := standings.SortByReverseRecord(franchises)

			Convey("Then fewer points-for sorts first", func() {
				So(order[0].ID, ShouldEqual, "0002")
			})
		})
	})
}

func TestFromRows(t *testing.T) {
	Convey("Given rows with unparseable numeric fields", t, func() {
		rows := []model.StandingsRow{
			{FranchiseID: "0001", H2HWins: "not-a-number", PointsFor: ""},
		}

		Convey("When converting to franchises", func() {
			franchises := standings.FromRows(rows)

			Convey("Then bad values coerce to zero", func() {
				So(franchises[0].Wins, ShouldEqual, 0)
				So(franchises[0].PointsFor, ShouldEqual, 0)
			})
		})
	})
}
