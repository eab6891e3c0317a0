package kvstore

import "errors"

// Sentinel kinds for store errors.
var (
	ErrOpen = errors.New("store open failed")
	ErrLoad = errors.New("store load failed")
	ErrSave = errors.New("store save failed")
)
