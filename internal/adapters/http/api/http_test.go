package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/theleaguehq/leaguecap/internal/adapters/http/api"
	"github.com/theleaguehq/leaguecap/internal/adapters/repository"
	"github.com/theleaguehq/leaguecap/internal/domain/assets"
	"github.com/theleaguehq/leaguecap/internal/domain/contracts"
	"github.com/theleaguehq/leaguecap/internal/domain/roster"
	"github.com/theleaguehq/leaguecap/internal/domain/types"
)

// mockService implements api.Dependencies and api.StatsProvider with
// canned responses.
type mockService struct {
	defaultLeague string

	predictions []types.DraftPrediction
	draftErr    error

	toiletBowl    []types.ToiletBowlResult
	toiletBowlErr error

	assetsFranchises []types.AssetsFranchise
	assetsMismatches []assets.Mismatch
	assetsErr        error

	rosterRows []roster.DisplayRow
	rosterErr  error

	validation contracts.ValidationResult
	quote      contracts.ExtensionQuote
	quoteErr   error

	queued, skipped int
	snapshots       []repository.Snapshot
	putErr          error
}

func (m *mockService) DraftOrder(_ context.Context, _ string) ([]types.DraftPrediction, error) {
	return m.predictions, m.draftErr
}

func (m *mockService) ToiletBowl(_ context.Context, _ string) ([]types.ToiletBowlResult, error) {
	return m.toiletBowl, m.toiletBowlErr
}

func (m *mockService) Assets(_ context.Context, _ string) ([]types.AssetsFranchise, []assets.Mismatch, error) {
	return m.assetsFranchises, m.assetsMismatches, m.assetsErr
}

func (m *mockService) Roster(_ context.Context, _, _ string) ([]roster.DisplayRow, error) {
	return m.rosterRows, m.rosterErr
}

func (m *mockService) ValidateContract(_ context.Context, _ contracts.Request) contracts.ValidationResult {
	return m.validation
}

func (m *mockService) ExtensionQuote(_ context.Context, _, _ string) (contracts.ExtensionQuote, error) {
	return m.quote, m.quoteErr
}

func (m *mockService) Refresh(_ context.Context, _ string, _ []string) (int, int) {
	return m.queued, m.skipped
}

func (m *mockService) PutSnapshot(_ context.Context, snap repository.Snapshot) error {
	if m.putErr != nil {
		return m.putErr
	}
	m.snapshots = append(m.snapshots, snap)
	return nil
}

func (m *mockService) DefaultLeague() string {
	return m.defaultLeague
}

func (m *mockService) GetStats() types.ServiceStats {
	return types.ServiceStats{Started: true, Snapshots: len(m.snapshots)}
}

func newTestMux(svc *mockService) *http.ServeMux {
	mux := http.NewServeMux()
	api.NewServer(svc, svc).Register(context.Background(), mux)
	return mux
}

func TestDraftOrderEndpoint(t *testing.T) {
	Convey("Given a server with draft order data", t, func() {
		svc := &mockService{
			defaultLeague: "12345",
			predictions: []types.DraftPrediction{
				{OverallPickNumber: 1, Round: 1, PickInRound: 1, FranchiseID: "0001"},
			},
		}
		mux := newTestMux(svc)

		Convey("When requesting the draft order with an explicit league", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/draft-order?league=12345", nil))

			Convey("Then predictions come back as JSON", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				var body struct {
					LeagueID    string                  `json:"league_id"`
					Predictions []types.DraftPrediction `json:"predictions"`
				}
				So(json.NewDecoder(rec.Body).Decode(&body), ShouldBeNil)
				So(body.LeagueID, ShouldEqual, "12345")
				So(body.Predictions, ShouldHaveLength, 1)
			})
		})

		Convey("When omitting the league parameter", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/draft-order", nil))

			Convey("Then the default league answers", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
			})
		})

		Convey("When no league can be resolved", func() {
			svc.defaultLeague = ""
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/draft-order", nil))

			Convey("Then the request is rejected", func() {
				So(rec.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When the underlying snapshot has not been fetched", func() {
			svc.draftErr = repository.ErrNotFound
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/draft-order?league=12345", nil))

			Convey("Then the API answers 404", func() {
				So(rec.Code, ShouldEqual, http.StatusNotFound)
			})
		})

		Convey("When using the wrong method", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/draft-order?league=12345", nil))

			Convey("Then the route does not answer", func() {
				So(rec.Code, ShouldEqual, http.StatusNotFound)
			})
		})
	})
}

func TestRosterEndpoint(t *testing.T) {
	Convey("Given a server with roster data", t, func() {
		svc := &mockService{
			defaultLeague: "12345",
			rosterRows: []roster.DisplayRow{
				{Player: roster.Player{ID: "1", Position: roster.QB}, Tier: roster.TierActive},
			},
		}
		mux := newTestMux(svc)

		Convey("When requesting a franchise roster", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/roster/0001", nil))

			Convey("Then the rows come back with the franchise echoed", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				var body struct {
					FranchiseID string              `json:"franchise_id"`
					Rows        []roster.DisplayRow `json:"rows"`
				}
				So(json.NewDecoder(rec.Body).Decode(&body), ShouldBeNil)
				So(body.FranchiseID, ShouldEqual, "0001")
				So(body.Rows, ShouldHaveLength, 1)
			})
		})

		Convey("When the franchise path segment is missing", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/roster/", nil))

			Convey("Then the request is rejected", func() {
				So(rec.Code, ShouldEqual, http.StatusBadRequest)
			})
		})
	})
}

func TestContractEndpoints(t *testing.T) {
	Convey("Given a server with contract rules", t, func() {
		svc := &mockService{
			defaultLeague: "12345",
			validation: contracts.ValidationResult{
				Valid:  false,
				Window: contracts.WindowOffseason,
				Errors: []contracts.FieldError{{Field: "new_years", Message: "must differ from current contract length"}},
			},
			quote: contracts.ExtensionQuote{PerYear: 100, NewSalary: 1100, TotalYears: 4, TotalValue: 4400},
		}
		mux := newTestMux(svc)

		Convey("When validating an invalid contract request", func() {
			body := `{"franchise_id":"0001","player_id":"9876","action":"extend","current_years":2,"new_years":2}`
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/contracts/validate", strings.NewReader(body)))

			Convey("Then the verdict rides a 200 response", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				var result contracts.ValidationResult
				So(json.NewDecoder(rec.Body).Decode(&result), ShouldBeNil)
				So(result.Valid, ShouldBeFalse)
				So(result.Errors, ShouldHaveLength, 1)
			})
		})

		Convey("When the validate body is not JSON", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/contracts/validate", strings.NewReader("{")))

			Convey("Then the request is rejected", func() {
				So(rec.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When requesting an extension quote", func() {
			body := `{"player_id":"9876"}`
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/contracts/extension", strings.NewReader(body)))

			Convey("Then the quote comes back", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				var quote contracts.ExtensionQuote
				So(json.NewDecoder(rec.Body).Decode(&quote), ShouldBeNil)
				So(quote.TotalYears, ShouldEqual, 4)
			})
		})

		Convey("When the extension request omits the player", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/contracts/extension", strings.NewReader(`{}`)))

			Convey("Then the request is rejected", func() {
				So(rec.Code, ShouldEqual, http.StatusBadRequest)
			})
		})
	})
}

func TestRefreshEndpoint(t *testing.T) {
	Convey("Given a server accepting refreshes", t, func() {
		svc := &mockService{defaultLeague: "12345", queued: 5, skipped: 2}
		mux := newTestMux(svc)

		Convey("When posting a refresh", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/refresh?league=12345&kinds=rosters,salaries", nil))

			Convey("Then the work is accepted", func() {
				So(rec.Code, ShouldEqual, http.StatusAccepted)
				var body struct {
					Queued  int `json:"queued"`
					Skipped int `json:"skipped"`
				}
				So(json.NewDecoder(rec.Body).Decode(&body), ShouldBeNil)
				So(body.Queued, ShouldEqual, 5)
				So(body.Skipped, ShouldEqual, 2)
			})
		})

		Convey("When everything is already in flight", func() {
			svc.queued = 0
			svc.skipped = 7
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/refresh?league=12345", nil))

			Convey("Then the API pushes back", func() {
				So(rec.Code, ShouldEqual, http.StatusTooManyRequests)
			})
		})
	})
}

func TestSnapshotsEndpoint(t *testing.T) {
	Convey("Given a server accepting snapshot loads", t, func() {
		svc := &mockService{defaultLeague: "12345"}
		mux := newTestMux(svc)

		Convey("When posting a well-formed snapshot", func() {
			body := `{"league_id":"12345","kind":"rosters","data":{"rosters":{}}}`
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/snapshots", strings.NewReader(body)))

			Convey("Then the snapshot is stored", func() {
				So(rec.Code, ShouldEqual, http.StatusCreated)
				So(svc.snapshots, ShouldHaveLength, 1)
				So(svc.snapshots[0].Kind, ShouldEqual, "rosters")
			})
		})

		Convey("When the kind is missing", func() {
			body := `{"league_id":"12345","data":{}}`
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/snapshots", strings.NewReader(body)))

			Convey("Then the request is rejected", func() {
				So(rec.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When the league is omitted", func() {
			body := `{"kind":"rosters","data":{}}`
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/snapshots", strings.NewReader(body)))

			Convey("Then the default league is used", func() {
				So(rec.Code, ShouldEqual, http.StatusCreated)
				So(svc.snapshots[0].LeagueID, ShouldEqual, "12345")
			})
		})
	})
}

func TestStatsEndpoint(t *testing.T) {
	Convey("Given a server with a stats provider", t, func() {
		svc := &mockService{defaultLeague: "12345"}
		mux := newTestMux(svc)

		Convey("When requesting stats", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/stats", nil))

			Convey("Then the counters come back as JSON", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				var stats types.ServiceStats
				So(json.NewDecoder(rec.Body).Decode(&stats), ShouldBeNil)
				So(stats.Started, ShouldBeTrue)
				So(stats.Snapshots, ShouldEqual, 0)
			})
		})
	})
}
