// Package game enumerates the known game categories and their well-known
// store keys. The keys are part of the stored-data contract: they were
// chosen by the individual games and are stylistically inconsistent, so
// they live here once instead of being scattered across call sites.
package game

import "strings"

// Category identifies one game's ledger in the store. Its string value is
// the store key.
type Category string

// The six known game categories.
const (
	Musical    Category = "musicalGameScore"
	Emotion    Category = "emotionGameScores"
	ColorMatch Category = "colorMatchingGameScores"
	ShapeSort  Category = "ShapeSortingGame"
	Grammar    Category = "grammarDetectiveGame"
	Arithmetic Category = "basicArithmeticGame"
)

// Categories lists every known category in dashboard display order.
func Categories() []Category {
	return []Category{Musical, Emotion, ColorMatch, ShapeSort, Grammar, Arithmetic}
}

// displayNames maps categories to the short names the dashboard shows.
var displayNames = map[Category]string{
	Musical:    "Musical Game",
	Emotion:    "Emotion Game",
	ColorMatch: "Color Game",
	ShapeSort:  "Shape Sort",
	Grammar:    "Grammar",
	Arithmetic: "Math",
}

// aliases accepts the lower-cased store key and the lower-cased display
// name as inbound identifiers.
var aliases = func() map[string]Category {
	m := make(map[string]Category)
	for _, c := range Categories() {
		m[strings.ToLower(string(c))] = c
		m[strings.ToLower(displayNames[c])] = c
	}
	return m
}()

// Key returns the store key for c.
func (c Category) Key() string { return string(c) }

// DisplayName returns the dashboard label for c, or the raw key for a
// category outside the known set.
func (c Category) DisplayName() string {
	if name, ok := displayNames[c]; ok {
		return name
	}
	return string(c)
}

// QuestionsPerMatch returns the session length recorded on matches for
// c. Every known game runs five-question sessions; games that track a
// running question count (the musical game) override it per match
// through the in-progress upsert path.
func (c Category) QuestionsPerMatch() int { return 5 }

// Known reports whether c is one of the six known categories.
func (c Category) Known() bool {
	_, ok := displayNames[c]
	return ok
}

// Parse resolves an inbound game identifier to a Category. Matching is
// case-insensitive over store keys and display names. An unrecognized
// identifier is returned as-is: recording against a never-seen key is not
// an error, it lazily creates a new ledger.
func Parse(s string) Category {
	if c, ok := aliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return c
	}
	return Category(strings.TrimSpace(s))
}
