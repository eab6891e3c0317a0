package testsessions

import "time"

// HTTP status code constants.
const (
	StatusOK       = 200
	StatusAccepted = 202
)

// Worker configuration constants.
const (
	WorkerChannelMultiplier = 2
)

// Runner configuration constants.
const (
	// SettleDelay gives the last in-flight writes time to land; the
	// engine writes synchronously so this stays short.
	SettleDelay          = 2 * time.Second
	PercentageMultiplier = 100
)
