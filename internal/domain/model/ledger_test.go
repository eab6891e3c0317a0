package model_test

import (
	"testing"

	"github.com/lumokids/playledger/internal/domain/calendar"
	model "github.com/lumokids/playledger/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestRecord(t *testing.T) {
	Convey("Given an empty ledger", t, func() {
		var l model.Ledger
		day := calendar.Day("2025-03-14")

		Convey("When the first match of a day is recorded", func() {
			m := l.Record(day, 4, 1, 5)

			Convey("Then the day is created with that match", func() {
				So(l.Empty(), ShouldBeFalse)
				rec, ok := l.Day(day)
				So(ok, ShouldBeTrue)
				So(rec.TotalMatches, ShouldEqual, 1)
				So(m.Ordinal, ShouldEqual, 1)
				So(m.NetScore, ShouldEqual, 3)
				So(m.AverageScore, ShouldEqual, 0.75)
				So(rec.TotalAverageScore, ShouldEqual, 0.75)
			})
		})

		Convey("When two matches land on the same day", func() {
			l.Record(day, 4, 1, 5)
			l.Record(day, 3, 0, 5)

			Convey("Then ordinals run contiguously and the mean updates", func() {
				rec, _ := l.Day(day)
				So(rec.TotalMatches, ShouldEqual, 2)
				So(rec.Matches[0].Ordinal, ShouldEqual, 1)
				So(rec.Matches[1].Ordinal, ShouldEqual, 2)
				So(rec.Matches[1].AverageScore, ShouldEqual, 1.0)
				So(rec.TotalAverageScore, ShouldEqual, 0.875)
			})
		})

		Convey("When matches land on different days", func() {
			l.Record(day, 2, 0, 5)
			l.Record(day.AddDays(1), 1, 0, 5)

			Convey("Then each day keeps its own contiguous run", func() {
				So(len(l.Days), ShouldEqual, 2)
				So(l.NextOrdinal(day), ShouldEqual, 2)
				So(l.NextOrdinal(day.AddDays(1)), ShouldEqual, 2)
				So(l.NextOrdinal(day.AddDays(2)), ShouldEqual, 1)
			})
		})

		Convey("When a session ends with zero correct answers", func() {
			m := l.Record(day, 0, 5, 5)

			Convey("Then the average is exactly zero", func() {
				So(m.AverageScore, ShouldEqual, 0)
				So(m.NetScore, ShouldEqual, -5)
			})
		})
	})
}

func TestManyRecordsKeepInvariants(t *testing.T) {
	Convey("Given a day with many recorded matches", t, func() {
		var l model.Ledger
		day := calendar.Day("2025-03-14")
		const n = 25
		for i := 0; i < n; i++ {
			l.Record(day, i%6, (i+1)%4, 5)
		}

		Convey("Then totalMatches equals the call count", func() {
			rec, _ := l.Day(day)
			So(rec.TotalMatches, ShouldEqual, n)
			So(len(rec.Matches), ShouldEqual, n)
		})

		Convey("Then ordinals are exactly 1..N with no gaps", func() {
			rec, _ := l.Day(day)
			for i, m := range rec.Matches {
				So(m.Ordinal, ShouldEqual, i+1)
			}
		})
	})
}

func TestUpsert(t *testing.T) {
	Convey("Given an in-progress match being rewritten", t, func() {
		var l model.Ledger
		day := calendar.Day("2025-03-14")

		Convey("When the same ordinal is upserted repeatedly", func() {
			l.Upsert(day, 1, 1, 0, 1)
			l.Upsert(day, 1, 2, 0, 2)
			l.Upsert(day, 1, 2, 1, 3)

			Convey("Then one match exists with the latest tallies", func() {
				rec, _ := l.Day(day)
				So(rec.TotalMatches, ShouldEqual, 1)
				So(rec.Matches[0].Correct, ShouldEqual, 2)
				So(rec.Matches[0].Incorrect, ShouldEqual, 1)
				So(rec.Matches[0].TotalQuestions, ShouldEqual, 3)
			})
		})

		Convey("When ordinals arrive out of order", func() {
			l.Upsert(day, 2, 3, 0, 5)
			l.Upsert(day, 1, 1, 1, 5)

			Convey("Then matches are kept sorted by ordinal", func() {
				rec, _ := l.Day(day)
				So(rec.Matches[0].Ordinal, ShouldEqual, 1)
				So(rec.Matches[1].Ordinal, ShouldEqual, 2)
			})
		})

		Convey("When several days exist", func() {
			l.Upsert(day, 1, 1, 0, 1)
			l.Upsert(day.AddDays(1), 1, 1, 0, 1)
			l.Upsert(day.Prev(), 1, 1, 0, 1)

			Convey("Then days are kept newest-first", func() {
				So(l.Days[0].Date, ShouldEqual, day.AddDays(1))
				So(l.Days[2].Date, ShouldEqual, day.Prev())
			})
		})
	})
}

func TestTotals(t *testing.T) {
	Convey("Given a ledger spanning several days", t, func() {
		var l model.Ledger
		d1 := calendar.Day("2025-03-13")
		d2 := calendar.Day("2025-03-14")
		l.Record(d1, 4, 1, 5) // day mean 0.75
		l.Record(d2, 3, 0, 5) // day mean 1.00

		Convey("Then Total sums day means and counts days", func() {
			tot := l.Total()
			So(tot.Days, ShouldEqual, 2)
			So(tot.Total, ShouldEqual, 1.75)
		})

		Convey("Then TotalAverageOn answers per-day, zero when absent", func() {
			So(l.TotalAverageOn(d1), ShouldEqual, 0.75)
			So(l.TotalAverageOn(calendar.Day("2025-01-01")), ShouldEqual, 0)
		})

		Convey("Then ActiveOn tracks recorded days only", func() {
			So(l.ActiveOn(d1), ShouldBeTrue)
			So(l.ActiveOn(d2.AddDays(1)), ShouldBeFalse)
		})
	})
}
