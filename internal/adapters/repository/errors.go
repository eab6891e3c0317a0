package repository

import "errors"

// Sentinel kinds for repository errors. ErrMalformed never escapes Load;
// it exists so tests and logs can identify the recovery path.
var (
	ErrMalformed = errors.New("stored ledger malformed")
)
