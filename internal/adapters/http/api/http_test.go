package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/lumokids/playledger/internal/domain/calendar"
	"github.com/lumokids/playledger/internal/domain/game"
	"github.com/lumokids/playledger/internal/domain/insight"
	"github.com/lumokids/playledger/internal/domain/model"
)

// fakeEngine is a canned Dependencies implementation for handler tests.
type fakeEngine struct {
	recorded  []string
	upserted  []string
	duplicate bool
	failWith  error
	summary   Summary
	ledger    []byte
}

func (f *fakeEngine) RecordOutcome(_ context.Context, gameID string, correct, incorrect int, sessionID string) (Outcome, error) {
	if f.failWith != nil {
		return Outcome{}, f.failWith
	}
	if f.duplicate {
		return Outcome{Duplicate: true}, nil
	}
	f.recorded = append(f.recorded, gameID)
	return Outcome{
		Category: game.Parse(gameID),
		Date:     calendar.Day("2024-05-15"),
		Match:    model.NewMatch(1, correct, incorrect, 5),
	}, nil
}

func (f *fakeEngine) UpsertOutcome(_ context.Context, gameID string, ordinal, correct, incorrect, totalQuestions int) (Outcome, error) {
	if f.failWith != nil {
		return Outcome{}, f.failWith
	}
	f.upserted = append(f.upserted, gameID)
	return Outcome{
		Category: game.Parse(gameID),
		Date:     calendar.Day("2024-05-15"),
		Match:    model.NewMatch(ordinal, correct, incorrect, totalQuestions),
	}, nil
}

func (f *fakeEngine) Summary(_ context.Context) (Summary, error) {
	if f.failWith != nil {
		return Summary{}, f.failWith
	}
	return f.summary, nil
}

func (f *fakeEngine) ExportLedger(_ context.Context, gameID string) ([]byte, game.Category, error) {
	if f.failWith != nil {
		return nil, "", f.failWith
	}
	return f.ledger, game.Parse(gameID), nil
}

func (f *fakeEngine) GetStats() map[string]interface{} {
	return map[string]interface{}{"started": true}
}

func newTestMux(engine *fakeEngine) *http.ServeMux {
	mux := http.NewServeMux()
	NewServer(engine, engine).Register(context.Background(), mux)
	return mux
}

func TestHandlePostMatch(t *testing.T) {
	Convey("Given the matches route", t, func() {
		engine := &fakeEngine{}
		mux := newTestMux(engine)

		post := func(body string) *httptest.ResponseRecorder {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/matches", strings.NewReader(body))
			mux.ServeHTTP(rec, req)
			return rec
		}

		Convey("When a valid outcome is posted", func() {
			rec := post(`{"game":"grammarDetectiveGame","correct":4,"incorrect":1,"session_id":"s-1"}`)

			Convey("Then it is accepted with the written match", func() {
				So(rec.Code, ShouldEqual, http.StatusAccepted)
				var ack map[string]any
				So(json.Unmarshal(rec.Body.Bytes(), &ack), ShouldBeNil)
				So(ack["status"], ShouldEqual, "recorded")
				So(ack["game"], ShouldEqual, "grammarDetectiveGame")
				So(ack["date"], ShouldEqual, "2024-05-15")
				So(ack["match"], ShouldEqual, 1.0)
				So(ack["score"], ShouldEqual, 3.0)
				So(engine.recorded, ShouldHaveLength, 1)
			})
		})

		Convey("When the body is not JSON", func() {
			rec := post(`{broken`)

			Convey("Then it is rejected", func() {
				So(rec.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When the game name is missing", func() {
			rec := post(`{"correct":4,"incorrect":1}`)

			Convey("Then it is rejected", func() {
				So(rec.Code, ShouldEqual, http.StatusBadRequest)
				var resp map[string]any
				So(json.Unmarshal(rec.Body.Bytes(), &resp), ShouldBeNil)
				So(resp["code"], ShouldEqual, "bad_request")
			})
		})

		Convey("When the session was already recorded", func() {
			engine.duplicate = true
			rec := post(`{"game":"emotionGameScores","correct":5,"incorrect":0,"session_id":"s-1"}`)

			Convey("Then the retry acks as duplicate", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				var ack map[string]any
				So(json.Unmarshal(rec.Body.Bytes(), &ack), ShouldBeNil)
				So(ack["duplicate"], ShouldEqual, true)
			})
		})

		Convey("When the write fails", func() {
			engine.failWith = errors.New("disk full")
			rec := post(`{"game":"basicArithmeticGame","correct":1,"incorrect":0}`)

			Convey("Then it surfaces as a server error", func() {
				So(rec.Code, ShouldEqual, http.StatusInternalServerError)
			})
		})

		Convey("When the method is wrong", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/matches", nil))
			So(rec.Code, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestHandlePutInProgress(t *testing.T) {
	Convey("Given the in-progress route", t, func() {
		engine := &fakeEngine{}
		mux := newTestMux(engine)

		Convey("When a snapshot is upserted", func() {
			rec := httptest.NewRecorder()
			body := `{"game":"musicalGameScore","match":2,"correct":3,"incorrect":1,"total_questions":4}`
			req := httptest.NewRequest(http.MethodPut, "/matches/in-progress", strings.NewReader(body))
			mux.ServeHTTP(rec, req)

			Convey("Then it acks with the ordinal", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				var ack map[string]any
				So(json.Unmarshal(rec.Body.Bytes(), &ack), ShouldBeNil)
				So(ack["match"], ShouldEqual, 2.0)
				So(engine.upserted, ShouldResemble, []string{"musicalGameScore"})
			})
		})

		Convey("When the game name is missing", func() {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPut, "/matches/in-progress", strings.NewReader(`{"match":1}`))
			mux.ServeHTTP(rec, req)
			So(rec.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When the method is wrong", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/matches/in-progress", strings.NewReader(`{}`)))
			So(rec.Code, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestHandleGetSummary(t *testing.T) {
	Convey("Given the summary route", t, func() {
		engine := &fakeEngine{summary: Summary{
			OverallAverage: 87.5,
			CurrentStreak:  3,
			WeeklyTotals: []insight.WeekdayTotal{
				{Weekday: "Mon", Total: 1}, {Weekday: "Tue", Total: 0},
				{Weekday: "Wed", Total: 0.75}, {Weekday: "Thu", Total: 0},
				{Weekday: "Fri", Total: 0}, {Weekday: "Sat", Total: 0},
				{Weekday: "Sun", Total: 0},
			},
			PerCategory: map[string]float64{"Grammar": 100},
		}}
		mux := newTestMux(engine)

		Convey("When the summary is fetched", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/summary", nil))

			Convey("Then it serves the aggregate shape", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				var got map[string]any
				So(json.Unmarshal(rec.Body.Bytes(), &got), ShouldBeNil)
				So(got["overall_average"], ShouldEqual, 87.5)
				So(got["current_streak"], ShouldEqual, 3.0)
				week, ok := got["weekly_totals"].([]any)
				So(ok, ShouldBeTrue)
				So(week, ShouldHaveLength, 7)
			})
		})

		Convey("When the engine fails", func() {
			engine.failWith = errors.New("scan failed")
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/summary", nil))
			So(rec.Code, ShouldEqual, http.StatusInternalServerError)
		})
	})
}

func TestHandleGetLedger(t *testing.T) {
	Convey("Given the ledgers route", t, func() {
		engine := &fakeEngine{ledger: []byte(`[{"date":"2024-05-15","TotalMatches":1}]`)}
		mux := newTestMux(engine)

		Convey("When a game ledger is fetched", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ledgers/grammarDetectiveGame", nil))

			Convey("Then the wire bytes pass through untouched", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(rec.Body.String(), ShouldEqual, `[{"date":"2024-05-15","TotalMatches":1}]`)
				So(rec.Header().Get("Content-Type"), ShouldStartWith, "application/json")
			})
		})

		Convey("When the game segment is empty", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ledgers/", nil))
			So(rec.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When the path has extra segments", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ledgers/a/b", nil))
			So(rec.Code, ShouldEqual, http.StatusBadRequest)
		})
	})
}

func TestHandleStats(t *testing.T) {
	Convey("Given the stats route", t, func() {
		mux := newTestMux(&fakeEngine{})

		Convey("When stats are fetched", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/stats", nil))

			Convey("Then the provider map is served", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				var got map[string]any
				So(json.Unmarshal(rec.Body.Bytes(), &got), ShouldBeNil)
				So(got["started"], ShouldEqual, true)
			})
		})
	})
}

func TestHandleHealth(t *testing.T) {
	Convey("Given the health route", t, func() {
		mux := newTestMux(&fakeEngine{})

		Convey("When the endpoint is scraped", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

			Convey("Then it serves Prometheus metrics", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(rec.Body.String(), ShouldContainSubstring, "playledger_progress")
			})
		})
	})
}
