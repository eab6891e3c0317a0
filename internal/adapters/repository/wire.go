// Package repository persists ledgers through the key-value store and
// shields callers from the stored wire format and from malformed values.
package repository

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/lumokids/playledger/internal/domain/calendar"
	"github.com/lumokids/playledger/internal/domain/model"
	"github.com/lumokids/playledger/internal/domain/score"
)

// The stored wire format is a JSON array of day objects. Field casing is
// uneven (TotalMatches vs matches) and the per-match averageScore is a
// fixed-2-decimal string rather than a number; both are load-bearing
// compatibility with ledgers already on user devices.
type wireDay struct {
	Date              string      `json:"date"`
	TotalMatches      int         `json:"TotalMatches"`
	TotalAverageScore wireNumber  `json:"TotalAverageScore"`
	Matches           []wireMatch `json:"matches"`
}

type wireMatch struct {
	Match          int        `json:"match"`
	Score          int        `json:"score"`
	Correct        int        `json:"correct"`
	Incorrect      int        `json:"incorrect"`
	TotalQuestions int        `json:"totalQuestions"`
	AverageScore   wireString `json:"averageScore"`
}

// wireNumber reads a JSON number or a numeric string. Day totals were
// historically written both ways.
type wireNumber float64

func (n *wireNumber) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("day total: %w", err)
	}
	switch v := raw.(type) {
	case float64:
		*n = wireNumber(v)
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("day total %q is not numeric: %w", v, err)
		}
		*n = wireNumber(f)
	case nil:
		*n = 0
	default:
		return fmt.Errorf("day total has unexpected type %T", raw)
	}
	return nil
}

// wireString reads the stored match average: a 2-decimal numeric string,
// with plain numbers tolerated. A non-numeric string is a schema
// mismatch and fails the whole unmarshal.
type wireString float64

func (s *wireString) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("match average: %w", err)
	}
	switch v := raw.(type) {
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("match average %q is not numeric: %w", v, err)
		}
		*s = wireString(f)
	case float64:
		*s = wireString(v)
	case nil:
		*s = 0
	default:
		return fmt.Errorf("match average has unexpected type %T", raw)
	}
	return nil
}

func (s wireString) MarshalJSON() ([]byte, error) {
	return json.Marshal(score.FormatAverage(float64(s)))
}

// decodeLedger parses stored bytes into the domain model, re-deriving the
// day-level totals from the matches so the DayRecord invariants hold no
// matter what was stored.
func decodeLedger(data []byte) (model.Ledger, error) {
	var days []wireDay
	if err := json.Unmarshal(data, &days); err != nil {
		return model.Ledger{}, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	ledger := model.Ledger{Days: make([]model.DayRecord, 0, len(days))}
	for _, wd := range days {
		if !calendar.Valid(wd.Date) {
			return model.Ledger{}, fmt.Errorf("%w: day key %q", ErrMalformed, wd.Date)
		}
		day := model.DayRecord{Date: calendar.Day(wd.Date)}
		for _, wm := range wd.Matches {
			day.Matches = append(day.Matches, model.MatchRecord{
				Ordinal:        wm.Match,
				NetScore:       wm.Score,
				Correct:        wm.Correct,
				Incorrect:      wm.Incorrect,
				TotalQuestions: wm.TotalQuestions,
				AverageScore:   float64(wm.AverageScore),
			})
		}
		day.TotalMatches = len(day.Matches)
		avgs := make([]float64, len(day.Matches))
		for i, m := range day.Matches {
			avgs[i] = m.AverageScore
		}
		day.TotalAverageScore = score.Mean(avgs)
		ledger.Days = append(ledger.Days, day)
	}
	return ledger, nil
}

// encodeLedger renders the domain model back into the wire format.
func encodeLedger(ledger model.Ledger) ([]byte, error) {
	days := make([]wireDay, 0, len(ledger.Days))
	for _, d := range ledger.Days {
		wd := wireDay{
			Date:              d.Date.String(),
			TotalMatches:      d.TotalMatches,
			TotalAverageScore: wireNumber(d.TotalAverageScore),
			Matches:           make([]wireMatch, 0, len(d.Matches)),
		}
		for _, m := range d.Matches {
			wd.Matches = append(wd.Matches, wireMatch{
				Match:          m.Ordinal,
				Score:          m.NetScore,
				Correct:        m.Correct,
				Incorrect:      m.Incorrect,
				TotalQuestions: m.TotalQuestions,
				AverageScore:   wireString(m.AverageScore),
			})
		}
		days = append(days, wd)
	}
	data, err := json.Marshal(days)
	if err != nil {
		return nil, fmt.Errorf("encode ledger: %w", err)
	}
	return data, nil
}
