package testsessions

import (
	"context"
	"crypto/rand"
	"math/big"

	"github.com/google/uuid"

	"github.com/lumokids/playledger/internal/domain/game"
	"github.com/lumokids/playledger/pkg/logger"
)

// Constants for random outcome generation.
const (
	questionsPerSession = 5
	outcomeShapeDivisor = 8
)

// Constants for outcome shape cases.
const (
	casePerfect     = 0
	caseStrong      = 1
	caseMiddling    = 2
	caseWeak        = 3
	caseZeroCorrect = 4
	// Remaining cases fall through to a uniform split.
)

// randomInt returns a random int in [0, n) using crypto/rand.
func randomInt(n int64) int {
	v, _ := rand.Int(rand.Reader, big.NewInt(n))
	return int(v.Int64())
}

// generateSessions creates randomized session outcomes spread across the
// known game categories, each with a unique session id.
func generateSessions(ctx context.Context, config *Config, stats *Stats) ([]Session, error) {
	logger.Get().Info(ctx, "generating sessions", logger.Int("numSessions", config.NumSessions))

	categories := game.Categories()
	sessions := make([]Session, config.NumSessions)
	for i := range sessions {
		category := categories[randomInt(int64(len(categories)))]
		correct, incorrect := generateOutcome()
		sessions[i] = Session{
			Game:      category.Key(),
			Correct:   correct,
			Incorrect: incorrect,
			SessionID: uuid.New().String(),
		}
	}

	stats.SessionsGenerated = len(sessions)
	logger.Get().Info(ctx, "generated sessions successfully", logger.Int("count", len(sessions)))

	return sessions, nil
}

// generateOutcome produces a varied (correct, incorrect) pair the way
// real play sessions distribute: mostly decent runs, a few perfect ones,
// the occasional total miss.
func generateOutcome() (correct, incorrect int) {
	switch randomInt(outcomeShapeDivisor) {
	case casePerfect:
		return questionsPerSession, 0
	case caseStrong:
		return questionsPerSession - 1, 1
	case caseMiddling:
		c := 2 + randomInt(2)
		return c, questionsPerSession - c
	case caseWeak:
		c := 1 + randomInt(2)
		return c, questionsPerSession - c
	case caseZeroCorrect:
		// Exercises the zero-denominator rule: average must come back 0.
		return 0, questionsPerSession
	default:
		c := randomInt(questionsPerSession + 1)
		return c, questionsPerSession - c
	}
}

// withDuplicates appends retries of already-generated sessions so the
// run exercises the duplicate guard.
func withDuplicates(sessions []Session, extra int) []Session {
	if extra <= 0 || len(sessions) == 0 {
		return sessions
	}
	out := make([]Session, 0, len(sessions)+extra)
	out = append(out, sessions...)
	for i := 0; i < extra; i++ {
		out = append(out, sessions[randomInt(int64(len(sessions)))])
	}
	return out
}
