package translate

import (
	"context"

	"github.com/forsaj/sitecontent/core/lang"
)

// Provider translates source-language text into a target language. The
// abstraction keeps the service independent of any particular machine
// translation backend.
type Provider interface {
	// Name identifies the provider in logs.
	Name() string

	// Translate translates text authored in the source language into the
	// target display language. Implementations must return a non-empty
	// result or an error.
	Translate(ctx context.Context, text string, target lang.Language) (string, error)
}
