package snapshot

import "errors"

var (
	// ErrFetchFailed is returned when both content sources are unusable.
	ErrFetchFailed = errors.New("snapshot: content fetch failed")
)
