package progress

import (
	"context"
	"log/slog"
)

// =============================================================================
// LogReporter
// =============================================================================

// LogReporter logs updates using slog.
type LogReporter struct {
	Logger *slog.Logger
}

// NewLogReporter creates a reporter that logs to the given logger.
// If logger is nil, uses the default slog logger.
func NewLogReporter(logger *slog.Logger) *LogReporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogReporter{Logger: logger}
}

// Report implements Reporter.
func (r *LogReporter) Report(ctx context.Context, update Update) {
	level := slog.LevelInfo
	switch update.Severity {
	case SeverityWarning:
		level = slog.LevelWarn
	case SeverityError:
		level = slog.LevelError
	}

	r.Logger.Log(ctx, level, update.Message,
		"phase", update.Phase,
		"session", update.SessionID,
		"keyword", update.Keyword,
	)
}
