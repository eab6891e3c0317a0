package model

import (
	"github.com/lumokids/playledger/internal/domain/calendar"
	"github.com/lumokids/playledger/internal/domain/game"
)

// Outcome is the result of recording or upserting one match: where it
// landed and what was written.
type Outcome struct {
	Category game.Category
	Date     calendar.Day
	Match    MatchRecord
	// Duplicate is set when a session id was already recorded and the
	// submission was dropped instead of written.
	Duplicate bool
}
