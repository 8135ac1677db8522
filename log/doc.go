// Package log provides a concurrency-safe simplified logging interface
// based on [log/slog].
//
// The package offers configurable time formatting, caller information,
// and output formats that are applied at logger creation time using
// functional options.
//
// # Basic Usage
//
//	logger := log.Make(os.Stdout)
//	logger.Info("application started", slog.String("version", "1.0.0"))
//	logger.Error("failed to connect", slog.Any("error", err))
//
// # Configuration
//
// Configure the logger using functional options:
//
//	logger := log.Make(os.Stdout,
//		log.WithLevel(log.LevelDebug),
//		log.WithTimeLayout("RFC3339Nano"),
//		log.WithCaller(true))
//
// The package-level functions ([Info], [Debug], and so on) write through a
// default logger that can be reconfigured with [Config] or replaced with
// [SetDefault].
//
// # Adding Attributes
//
// Attributes can be added to the logger to be included in all subsequent
// log messages using the [Logger.With] method:
//
//	logger = logger.With(slog.String("component", "parser"))
//	logger.Info("parsed") // includes component=parser
//
// # Context-Aware Logging
//
// Each logging level has both a context-aware and context-unaware variant:
//
//	logger.InfoContext(ctx, "processing request")
//	logger.Info("message without context") // uses DefaultContextProvider
//
// Context-unaware functions use [DefaultContextProvider], which returns
// [context.TODO] by default.
//
// # Supported Levels
//
// The package supports five log levels: [LevelTrace], [LevelDebug],
// [LevelInfo], [LevelWarn], and [LevelError]. Messages below the configured
// level are discarded.
//
// # Output Formats
//
// Two output formats are supported: [FormatJSON] (default) and
// [FormatText]. Either can be pretty printed with [WithPretty], which
// colorizes output with lipgloss when the writer is a terminal.
package log
