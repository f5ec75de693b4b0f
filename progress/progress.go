// Package progress delivers phase/message updates from a running
// workflow to an external UI or sink.
package progress

import (
	"context"
	"time"
)

// Phase identifies the pipeline phase an update belongs to.
type Phase string

// Pipeline phases.
const (
	PhaseResearch Phase = "research"
	PhaseWriting  Phase = "writing"
	PhaseSaving   Phase = "saving"
	PhaseComplete Phase = "complete"
	PhaseError    Phase = "error"
)

// Severity constants for updates.
const (
	SeverityInfo    = "info"
	SeverityWarning = "warning"
	SeverityError   = "error"
)

// Update describes a single progress event.
type Update struct {
	SessionID string    `json:"session_id"`
	Keyword   string    `json:"keyword,omitempty"`
	Phase     Phase     `json:"phase"`
	Message   string    `json:"message"`
	Severity  string    `json:"severity"`
	Timestamp time.Time `json:"timestamp"`
}

// Reporter receives progress updates. Delivery is synchronous;
// implementations must handle their own errors gracefully (log, don't
// crash) and never panic back into the workflow.
type Reporter interface {
	Report(ctx context.Context, update Update)
}

// =============================================================================
// CallbackReporter
// =============================================================================

// CallbackReporter adapts a plain (phase, message) callback.
type CallbackReporter struct {
	Fn func(phase Phase, message string)
}

// NewCallbackReporter wraps fn as a Reporter. A nil fn yields a no-op
// reporter.
func NewCallbackReporter(fn func(phase Phase, message string)) *CallbackReporter {
	return &CallbackReporter{Fn: fn}
}

// Report implements Reporter.
func (r *CallbackReporter) Report(_ context.Context, update Update) {
	if r.Fn != nil {
		r.Fn(update.Phase, update.Message)
	}
}

// =============================================================================
// NopReporter
// =============================================================================

// NopReporter discards all updates. Useful when progress reporting is
// disabled.
type NopReporter struct{}

// Report implements Reporter.
func (NopReporter) Report(context.Context, Update) {}
