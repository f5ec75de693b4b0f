package progress

import "context"

// =============================================================================
// MultiReporter
// =============================================================================

// MultiReporter fans updates out to multiple reporters.
type MultiReporter struct {
	Reporters []Reporter
}

// NewMultiReporter creates a reporter that fans out to all given
// reporters in order.
func NewMultiReporter(reporters ...Reporter) *MultiReporter {
	return &MultiReporter{Reporters: reporters}
}

// Report implements Reporter.
func (m *MultiReporter) Report(ctx context.Context, update Update) {
	for _, r := range m.Reporters {
		r.Report(ctx, update)
	}
}
