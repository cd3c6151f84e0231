package logger

import (
	"log/slog"
	"time"

	"github.com/forsaj/sitecontent/core/lang"
)

// Attribute helpers use the empty Attr pattern for nil safety, so call
// sites never need explicit nil checks before logging.

// Error creates an attribute for a single error under the key "error".
// Returns an empty Attr for nil errors.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Component tags a log line with the emitting component name.
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Page tags a log line with a content page id.
func Page(id string) slog.Attr {
	return slog.String("page", id)
}

// Key tags a log line with a section lookup key.
func Key(key string) slog.Attr {
	return slog.String("key", key)
}

// Lang tags a log line with a display language.
func Lang(l lang.Language) slog.Attr {
	return slog.String("lang", string(l))
}

// Provider tags a log line with a translation provider name.
func Provider(name string) slog.Attr {
	return slog.String("provider", name)
}

// Duration records an elapsed time under the key "duration".
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}
