package event

import (
	"time"

	"github.com/google/uuid"
)

// Type identifies a process-wide notification. Signals carry no payload
// beyond the trigger itself; subscribers re-read the state they care about.
type Type string

const (
	// TranslationUpdated fires after a translation lands in the durable
	// store, so consumers showing the stale source text can re-resolve.
	TranslationUpdated Type = "translation_updated"

	// LanguageChanged fires after the site language preference changes.
	LanguageChanged Type = "language_changed"

	// ContentChanged fires after the content snapshot is replaced.
	ContentChanged Type = "content_changed"
)

// Signal is one notification instance.
type Signal struct {
	ID   uuid.UUID
	Type Type
	At   time.Time
}

// NewSignal stamps a fresh signal of the given type.
func NewSignal(t Type) Signal {
	return Signal{
		ID:   uuid.New(),
		Type: t,
		At:   time.Now(),
	}
}
