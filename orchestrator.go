package seoflow

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/randalmurphal/seoflow/progress"
)

// MinRecommendedSources is the usable-source count below which the
// research phase emits a non-fatal warning.
const MinRecommendedSources = 3

// Uploader publishes a committed artifact directory to an external
// document store. Upload is strictly best-effort: failures are logged
// and never affect the workflow outcome.
type Uploader interface {
	Upload(ctx context.Context, keyword, dir string) error
}

// Options configures an Orchestrator.
type Options struct {
	// OutputRoot is the directory that holds snapshots, staging
	// directories and committed output (default: "output").
	OutputRoot string

	// Researcher performs the research phase (required for Run/Resume).
	Researcher Researcher

	// Writer performs the writing phase (required for Run/Resume).
	Writer Writer

	// Reporter receives progress updates (default: none).
	Reporter progress.Reporter

	// Uploader optionally mirrors committed output to a cloud store.
	Uploader Uploader

	// Retry is the research-phase retry policy (default: DefaultPolicy).
	Retry *Policy

	// Logger is the structured logger (default: slog.Default).
	Logger *slog.Logger
}

// Orchestrator drives one workflow run through the three pipeline
// phases, persisting a snapshot after every state transition. Each
// instance owns a private session id, snapshot path and staging
// directory, so multiple instances run concurrently without locking.
// A single instance is not safe for concurrent use.
type Orchestrator struct {
	outputRoot string
	researcher Researcher
	writer     Writer
	reporter   progress.Reporter
	uploader   Uploader
	retry      Policy
	logger     *slog.Logger

	store     *StateStore
	committer *Committer

	// now is the time source for output directory naming; replaceable
	// in tests.
	now func() time.Time

	sessionID    string
	snapshotPath string
	snap         *Snapshot
	degraded     bool

	// preserveStaging is set when a commit failure leaves the staging
	// directory behind for inspection; Close must not delete it.
	preserveStaging bool
}

// New creates an orchestrator. No filesystem I/O happens until Run or
// Resume is called.
func New(opts Options) *Orchestrator {
	o := &Orchestrator{
		outputRoot: opts.OutputRoot,
		researcher: opts.Researcher,
		writer:     opts.Writer,
		reporter:   opts.Reporter,
		uploader:   opts.Uploader,
		retry:      DefaultPolicy(),
		logger:     opts.Logger,
	}
	if o.outputRoot == "" {
		o.outputRoot = "output"
	}
	if opts.Retry != nil {
		o.retry = *opts.Retry
	}
	if o.reporter == nil {
		o.reporter = progress.NopReporter{}
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	o.store = NewStateStore()
	o.committer = NewCommitter(o.outputRoot)
	o.now = time.Now
	return o
}

// SessionID returns the session id of the current or last run. Empty
// before the first Run or Resume.
func (o *Orchestrator) SessionID() string {
	return o.sessionID
}

// SnapshotPath returns the snapshot file path for the current run.
func (o *Orchestrator) SnapshotPath() string {
	return o.snapshotPath
}

// State returns the current workflow state, or "" before the first run.
func (o *Orchestrator) State() State {
	if o.snap == nil {
		return ""
	}
	return o.snap.State
}

// Degraded reports whether snapshot persistence has failed during this
// run. A degraded run completes normally but cannot be resumed.
func (o *Orchestrator) Degraded() bool {
	return o.degraded
}

// SetProgressCallback installs a synchronous (phase, message) callback.
// A nil fn disables reporting.
func (o *Orchestrator) SetProgressCallback(fn func(phase progress.Phase, message string)) {
	if fn == nil {
		o.reporter = progress.NopReporter{}
		return
	}
	o.reporter = progress.NewCallbackReporter(fn)
}

// =============================================================================
// Full Workflow
// =============================================================================

// Run executes the full research -> writing -> saving pipeline for
// keyword and returns the committed landing-document path. A snapshot
// is persisted after every transition. Any unrecovered error leaves the
// run FAILED, rolls back partial work to ROLLED_BACK, and is returned
// unwrapped.
func (o *Orchestrator) Run(ctx context.Context, keyword string) (string, error) {
	keyword, err := validateKeyword(keyword)
	if err != nil {
		return "", err
	}

	o.begin(keyword)

	research, err := o.runResearch(ctx, keyword)
	if err != nil {
		return "", o.fail(ctx, err)
	}

	article, err := o.runWriting(ctx, keyword, research)
	if err != nil {
		return "", o.fail(ctx, err)
	}

	path, err := o.saveAtomic(ctx, keyword, article, research)
	if err != nil {
		return "", o.fail(ctx, err)
	}
	return path, nil
}

// validateKeyword trims and checks the keyword before any I/O.
func validateKeyword(keyword string) (string, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return "", &ValidationError{Msg: "keyword cannot be empty", Err: ErrEmptyKeyword}
	}
	if utf8.RuneCountInString(keyword) > MaxKeywordLength {
		return "", &ValidationError{Msg: "keyword too long", Err: ErrKeywordTooLong}
	}
	return keyword, nil
}

// begin opens a new session and persists the INITIALIZED snapshot.
func (o *Orchestrator) begin(keyword string) {
	o.sessionID = NewSessionID(keyword)
	o.snapshotPath = SnapshotPath(o.outputRoot, o.sessionID)
	o.snap = NewSnapshot(keyword)
	o.degraded = false
	o.preserveStaging = false
	o.persist()
}

// =============================================================================
// Phases
// =============================================================================

func (o *Orchestrator) runResearch(ctx context.Context, keyword string) (*ResearchResult, error) {
	o.transition(StateResearching)
	o.report(ctx, progress.PhaseResearch, progress.SeverityInfo,
		fmt.Sprintf("Researching %q", keyword))

	var result *ResearchResult
	attempts := 0
	err := o.retry.Do(ctx, func(ctx context.Context) error {
		attempts++
		r, err := o.researcher.Research(ctx, keyword)
		if err != nil {
			return err
		}
		// A structurally-empty result can never succeed on retry.
		if r.Empty() {
			return &ValidationError{Msg: "research returned no usable sources", Err: ErrEmptyResearch}
		}
		result = r
		return nil
	})
	o.snap.Data.ResearchAttempts = attempts
	if err != nil {
		o.logger.Error("research failed", "session", o.sessionID, "attempts", attempts, "error", err)
		return nil, err
	}

	if n := result.UsableSources(); n < MinRecommendedSources {
		warning := fmt.Sprintf("only %d usable source(s) found; article quality may suffer", n)
		o.snap.Data.SourceWarning = warning
		o.logger.Warn("low source count", "session", o.sessionID, "usable_sources", n)
		o.report(ctx, progress.PhaseResearch, progress.SeverityWarning, warning)
	}

	o.snap.Data.Research = result
	o.snap.Data.ResearchCompletedAt = o.now().UTC()
	o.transition(StateResearchComplete)
	o.report(ctx, progress.PhaseResearch, progress.SeverityInfo,
		fmt.Sprintf("Research complete: %d sources", len(result.Sources)))
	return result, nil
}

func (o *Orchestrator) runWriting(ctx context.Context, keyword string, research *ResearchResult) (*ArticleResult, error) {
	o.transition(StateWriting)
	o.report(ctx, progress.PhaseWriting, progress.SeverityInfo,
		fmt.Sprintf("Writing article for %q", keyword))

	// Writing is invoked exactly once; it is never retried.
	article, err := o.writer.Write(ctx, keyword, research)
	if err != nil {
		return nil, err
	}
	if len(article.CitedSources) == 0 {
		return nil, &ValidationError{Msg: "article cites no sources", Err: ErrNoCitations}
	}

	o.snap.Data.Article = article
	o.snap.Data.WritingCompletedAt = o.now().UTC()
	o.transition(StateWritingComplete)
	o.report(ctx, progress.PhaseWriting, progress.SeverityInfo,
		fmt.Sprintf("Article complete: %d cited sources", len(article.CitedSources)))
	return article, nil
}

// saveAtomic writes all artifacts into the staging directory, then
// publishes them with a single rename. On success the snapshot is
// deleted and the run is COMPLETE.
func (o *Orchestrator) saveAtomic(ctx context.Context, keyword string, article *ArticleResult, research *ResearchResult) (string, error) {
	o.transition(StateSaving)
	o.report(ctx, progress.PhaseSaving, progress.SeverityInfo, "Saving outputs")

	stagingDir, err := o.committer.Stage(o.sessionID)
	if err != nil {
		return "", err
	}
	o.snap.StagingDir = stagingDir
	o.persist()

	if err := o.committer.WriteArtifacts(stagingDir, article, research); err != nil {
		return "", err
	}

	finalDir := FinalPath(o.outputRoot, keyword, o.now())
	if err := o.committer.Commit(stagingDir, finalDir); err != nil {
		return "", err
	}

	o.snap.StagingDir = ""
	o.snap.Data.FinalDir = finalDir
	o.snap.Data.CommittedAt = o.now().UTC()
	o.snap.Transition(StateComplete)
	if err := o.store.Delete(o.snapshotPath); err != nil {
		o.logger.Warn("delete snapshot after commit", "path", o.snapshotPath, "error", err)
	}

	o.report(ctx, progress.PhaseComplete, progress.SeverityInfo,
		fmt.Sprintf("Output committed to %s", finalDir))

	o.uploadCommitted(ctx, keyword, finalDir)

	return filepath.Join(finalDir, ArtifactIndex), nil
}

// SaveOutputs is the direct-save variant: it writes the artifact set
// straight into a fresh sanitized keyword_timestamp directory without
// staging, and returns the landing-document path. Unlike Run, it gives
// no atomicity guarantee; a crash mid-write leaves a partial directory.
func (o *Orchestrator) SaveOutputs(ctx context.Context, keyword string, article *ArticleResult, research *ResearchResult) (string, error) {
	keyword, err := validateKeyword(keyword)
	if err != nil {
		return "", err
	}

	finalDir := FinalPath(o.outputRoot, keyword, o.now())
	if err := o.committer.SaveDirect(finalDir, article, research); err != nil {
		return "", err
	}

	o.report(ctx, progress.PhaseSaving, progress.SeverityInfo,
		fmt.Sprintf("Output saved to %s", finalDir))
	return filepath.Join(finalDir, ArtifactIndex), nil
}

// uploadCommitted mirrors the committed directory to the configured
// uploader. Best-effort only.
func (o *Orchestrator) uploadCommitted(ctx context.Context, keyword, dir string) {
	if o.uploader == nil {
		return
	}
	if err := o.uploader.Upload(ctx, keyword, dir); err != nil {
		o.logger.Warn("cloud upload failed", "session", o.sessionID, "dir", dir, "error", err)
	}
}

// =============================================================================
// Failure Path
// =============================================================================

// fail records the failure, rolls back partial work, and returns the
// original error unwrapped. Staging content is preserved only for
// commit failures, where it is left for inspection.
func (o *Orchestrator) fail(ctx context.Context, cause error) error {
	o.report(ctx, progress.PhaseError, progress.SeverityError, cause.Error())

	o.snap.Data.SetError(cause)
	o.transition(StateFailed)

	keepStaging := IsCommit(cause)
	if keepStaging {
		o.preserveStaging = true
	}
	if !keepStaging && o.snap.StagingDir != "" {
		if err := os.RemoveAll(o.snap.StagingDir); err != nil {
			o.logger.Warn("rollback: remove staging dir", "dir", o.snap.StagingDir, "error", err)
		} else {
			o.snap.StagingDir = ""
		}
	}

	o.snap.Transition(StateRolledBack)
	if err := o.store.Delete(o.snapshotPath); err != nil {
		o.logger.Warn("rollback: delete snapshot", "path", o.snapshotPath, "error", err)
	}

	o.logger.Error("workflow failed", "session", o.sessionID, "error", cause)
	return cause
}

// =============================================================================
// Scoped Cleanup
// =============================================================================

// Close releases the run's on-disk resources. If the run did not reach
// COMPLETE, the instance's staging directory and snapshot are deleted
// best-effort; cleanup errors are swallowed. A COMPLETE run leaves
// nothing to clean. Safe to defer immediately after New.
func (o *Orchestrator) Close() error {
	if o.snap == nil || o.snap.State == StateComplete {
		return nil
	}

	if o.snap.StagingDir != "" && !o.preserveStaging {
		if err := os.RemoveAll(o.snap.StagingDir); err != nil {
			o.logger.Debug("close: remove staging dir", "dir", o.snap.StagingDir, "error", err)
		}
	}
	if o.snapshotPath != "" {
		if err := o.store.Delete(o.snapshotPath); err != nil {
			o.logger.Debug("close: delete snapshot", "path", o.snapshotPath, "error", err)
		}
	}
	return nil
}

// =============================================================================
// Helpers
// =============================================================================

// transition moves the state machine forward and persists the snapshot.
func (o *Orchestrator) transition(state State) {
	o.snap.Transition(state)
	o.persist()
}

// persist saves the snapshot best-effort. Failure flips the run into
// degraded (non-resumable) mode but never aborts the pipeline.
func (o *Orchestrator) persist() {
	if o.snapshotPath == "" {
		return
	}
	if err := o.store.Save(o.snapshotPath, o.snap); err != nil {
		o.degraded = true
		o.logger.Warn("snapshot persistence failed; run is not resumable",
			"path", o.snapshotPath, "error", err)
	}
}

func (o *Orchestrator) report(ctx context.Context, phase progress.Phase, severity, message string) {
	o.reporter.Report(ctx, progress.Update{
		SessionID: o.sessionID,
		Keyword:   o.keyword(),
		Phase:     phase,
		Message:   message,
		Severity:  severity,
		Timestamp: o.now().UTC(),
	})
}

func (o *Orchestrator) keyword() string {
	if o.snap == nil {
		return ""
	}
	return o.snap.Data.Keyword
}
