package translate

import "errors"

var (
	// ErrEmptyTranslation is returned when a provider answers with no
	// usable text.
	ErrEmptyTranslation = errors.New("translate: provider returned empty translation")

	// ErrAllEndpointsFailed is returned when every endpoint of a
	// multi-endpoint provider was exhausted.
	ErrAllEndpointsFailed = errors.New("translate: all endpoints failed")
)
