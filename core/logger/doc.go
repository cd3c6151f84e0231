// Package logger provides slog attribute helpers shared across the content
// resolution packages. Helpers follow the empty Attr pattern: passing a nil
// error yields an attribute slog silently drops, so call sites never need
// nil checks.
//
// Services in this module accept an injected *slog.Logger and default to a
// discard logger, keeping the library silent unless the host application
// opts in:
//
//	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
//	svc := translate.NewService(store, translate.WithServiceLogger(log))
//
//	log.Info("content refreshed",
//		logger.Component("site"),
//		logger.Page("about"),
//		logger.Duration(time.Since(start)),
//	)
package logger
