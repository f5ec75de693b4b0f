package seoflow

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
)

// Resume re-enters an interrupted run from its persisted snapshot and
// drives it to completion, returning the committed landing-document
// path.
//
// The snapshot must decode, carry a recognized state and a non-empty
// keyword; otherwise Resume returns a ValidationError (or a wrapped
// load error when the file cannot be read at all). Re-entry picks the
// earliest phase whose payload is missing: a snapshot at or before
// RESEARCHING redoes research; RESEARCH_COMPLETE reuses the embedded
// research result when present and redoes research only when the
// payload is absent; WRITING/WRITING_COMPLETE proceeds to saving once
// an article payload exists; SAVING redoes the commit. The resumed run
// is marked resumed: true in its snapshot data.
func (o *Orchestrator) Resume(ctx context.Context, stateFile string) (string, error) {
	res := o.store.Load(stateFile)
	if !res.OK() {
		if res.Failure.Reason == LoadMalformed {
			return "", &ValidationError{Msg: "corrupt workflow snapshot", Err: res.Failure}
		}
		return "", fmt.Errorf("resume: %w", res.Failure)
	}

	snap := res.Snapshot
	if !snap.State.Valid() {
		return "", &ValidationError{Msg: fmt.Sprintf("unrecognized workflow state %q", snap.State)}
	}
	keyword := strings.TrimSpace(snap.Data.Keyword)
	if keyword == "" {
		return "", &ValidationError{Msg: "snapshot has no keyword", Err: ErrEmptyKeyword}
	}

	o.adopt(stateFile, snap)
	o.snap.Data.Resumed = true
	o.persist()
	o.logger.Info("resuming workflow",
		"session", o.sessionID, "state", snap.State, "keyword", keyword)

	research := o.snap.Data.Research
	article := o.snap.Data.Article

	if research == nil {
		var err error
		research, err = o.runResearch(ctx, keyword)
		if err != nil {
			return "", o.fail(ctx, err)
		}
	}

	if article == nil {
		var err error
		article, err = o.runWriting(ctx, keyword, research)
		if err != nil {
			return "", o.fail(ctx, err)
		}
	}

	path, err := o.saveAtomic(ctx, keyword, article, research)
	if err != nil {
		return "", o.fail(ctx, err)
	}
	return path, nil
}

// adopt binds the orchestrator to an existing snapshot. The session id
// is recovered from the snapshot filename so the staging directory and
// snapshot path stay stable across the resumed run.
func (o *Orchestrator) adopt(stateFile string, snap *Snapshot) {
	base := filepath.Base(stateFile)
	o.sessionID = strings.TrimSuffix(strings.TrimPrefix(base, snapshotPrefix), snapshotSuffix)
	o.snapshotPath = stateFile
	o.snap = snap
	o.degraded = false
	o.preserveStaging = false
}
