package toiletbowl_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/theleaguehq/leaguecap/internal/domain/model"
	"github.com/theleaguehq/leaguecap/internal/domain/toiletbowl"
	"github.com/theleaguehq/leaguecap/internal/domain/types"
)

func TestExtractWinners(t *testing.T) {
	Convey("Given bracket items for the full consolation ladder", t, func() {
		items := []model.BracketItem{
			{FranchiseID: "1", BracketID: "4"},
			{FranchiseID: "2", BracketID: "5"},
			{FranchiseID: "3", BracketID: "6"},
		}

		Convey("When extracting winners", func() {
			results := toiletbowl.ExtractWinners(items)

			Convey("Then all three levels are resolved with normalized IDs", func() {
				So(results, ShouldHaveLength, 3)
				So(results[0].Level, ShouldEqual, types.LevelWinner)
				So(results[0].FranchiseID, ShouldEqual, "0001")
				So(results[1].Level, ShouldEqual, types.LevelConsolation)
				So(results[1].FranchiseID, ShouldEqual, "0002")
				So(results[2].Level, ShouldEqual, types.LevelConsolation2)
				So(results[2].FranchiseID, ShouldEqual, "0003")
			})
		})
	})

	Convey("Given an item with both bracket ID and tier name", t, func() {
		items := []model.BracketItem{
			// Name says consolation but the ID says winner; ID wins.
			{FranchiseID: "0007", BracketID: "4", TierName: "Consolation"},
		}

		Convey("When extracting winners", func() {
			results := toiletbowl.ExtractWinners(items)

			Convey("Then the bracket ID takes precedence", func() {
				So(results, ShouldHaveLength, 1)
				So(results[0].Level, ShouldEqual, types.LevelWinner)
			})
		})
	})

	Convey("Given duplicate items for the same level", t, func() {
		items := []model.BracketItem{
			{FranchiseID: "0004", BracketID: "5"},
			{FranchiseID: "0009", BracketID: "5"},
		}

		Convey("When extracting winners", func() {
			results := toiletbowl.ExtractWinners(items)

			Convey("Then only the first item per level is kept", func() {
				So(results, ShouldHaveLength, 1)
				So(results[0].FranchiseID, ShouldEqual, "0004")
			})
		})
	})

	Convey("Given items with only tier names", t, func() {
		items := []model.BracketItem{
			{FranchiseID: "0005", TierName: "Toilet Bowl"},
			{FranchiseID: "0006", TierName: " Consolation 2 "},
		}

		Convey("When extracting winners", func() {
			results := toiletbowl.ExtractWinners(items)

			Convey("Then known names map after trimming", func() {
				So(results, ShouldHaveLength, 2)
				So(results[0].Level, ShouldEqual, types.LevelWinner)
				So(results[1].Level, ShouldEqual, types.LevelConsolation2)
			})
		})
	})

	Convey("Given unknown bracket IDs and tier names", t, func() {
		items := []model.BracketItem{
			{FranchiseID: "0001", BracketID: "2"},
			{FranchiseID: "0002", TierName: "Championship"},
		}

		Convey("When extracting winners", func() {
			results := toiletbowl.ExtractWinners(items)

			Convey("Then they are dropped silently", func() {
				So(results, ShouldBeEmpty)
			})
		})
	})

	Convey("Given no bracket data", t, func() {
		Convey("When extracting winners", func() {
			results := toiletbowl.ExtractWinners(nil)

			Convey("Then the result is empty, not an error state", func() {
				So(results, ShouldNotBeNil)
				So(results, ShouldBeEmpty)
			})
		})
	})
}

func TestNormalizeFranchiseID(t *testing.T) {
	Convey("Given franchise IDs of various lengths", t, func() {
		Convey("Then short IDs are zero-padded to 4 digits", func() {
			So(toiletbowl.NormalizeFranchiseID("5"), ShouldEqual, "0005")
			So(toiletbowl.NormalizeFranchiseID("12"), ShouldEqual, "0012")
			So(toiletbowl.NormalizeFranchiseID(" 7 "), ShouldEqual, "0007")
		})

		Convey("And IDs at least 4 digits pass through", func() {
			So(toiletbowl.NormalizeFranchiseID("0016"), ShouldEqual, "0016")
			So(toiletbowl.NormalizeFranchiseID("12345"), ShouldEqual, "12345")
		})
	})
}
