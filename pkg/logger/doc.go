// Package logger provides a small factory around Go's slog package plus
// helper attribute constructors that keep attribute naming consistent.
//
// New creates a *slog.Logger configured by Option functions:
//
//   - WithFormat / WithTextFormatter / WithJSONFormatter – output format.
//   - WithLevel / WithLevelName – minimum log level.
//   - WithOutput – destination writer.
//   - WithAttr – static attributes attached to every record.
//   - WithHandlerOptions – full control over slog.HandlerOptions.
//
// Helper constructors such as Error, Property, ErrorKind or ListenableID live
// in attr.go. The error-policy of package listenable uses them for its log
// mode.
//
// # Usage
//
//	import "github.com/dmitrymomot/listenkit/pkg/logger"
//
//	log := logger.New(
//	    logger.WithTextFormatter(),
//	    logger.WithLevel(slog.LevelWarn),
//	    logger.WithAttr(logger.Component("listenable")),
//	)
//	log.Warn("value rejected", logger.Property("title"), logger.Value(42))
//
// # Error Handling
//
// Error produces an attribute only when the supplied error value is
// non-nil, allowing calls like:
//
//	log.Info("operation finished", logger.Error(err))
//
// without an additional nil check.
package logger
