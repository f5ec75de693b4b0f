package seoflow

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// =============================================================================
// StateStore
// =============================================================================

// StateStore persists workflow snapshots as single JSON documents.
// It is path-agnostic: callers decide where snapshots live, so
// concurrent runs with distinct session ids never collide.
type StateStore struct{}

// NewStateStore creates a snapshot store.
func NewStateStore() *StateStore {
	return &StateStore{}
}

// Save writes the snapshot to path atomically (temp file + rename).
// Callers treat failure as a persistence warning, not a fatal error:
// the pipeline continues in a degraded, non-resumable mode.
func (s *StateStore) Save(path string, snap *Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("publish snapshot: %w", err)
	}
	return nil
}

// Delete removes the snapshot at path. A missing file is not an error.
func (s *StateStore) Delete(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// =============================================================================
// Typed Load Outcome
// =============================================================================

// LoadFailureReason classifies why a snapshot could not be loaded.
type LoadFailureReason string

const (
	// LoadMissing means the snapshot file does not exist.
	LoadMissing LoadFailureReason = "missing"

	// LoadUnreadable means the file exists but could not be read.
	LoadUnreadable LoadFailureReason = "unreadable"

	// LoadMalformed means the file contents are not a valid snapshot.
	LoadMalformed LoadFailureReason = "malformed"
)

// LoadResult is the typed outcome of Load. A nil Failure means the
// snapshot loaded successfully; otherwise the caller decides whether
// the failure is fatal.
type LoadResult struct {
	Snapshot *Snapshot
	Failure  *LoadFailure
}

// OK reports whether the snapshot loaded.
func (r LoadResult) OK() bool {
	return r.Failure == nil
}

// LoadFailure describes a failed snapshot load.
type LoadFailure struct {
	Reason LoadFailureReason
	Path   string
	Err    error
}

func (f *LoadFailure) Error() string {
	return fmt.Sprintf("load snapshot %s: %s: %v", f.Path, f.Reason, f.Err)
}

func (f *LoadFailure) Unwrap() error {
	return f.Err
}

// Load reads a snapshot from path. It never panics and reports
// missing or malformed input through the typed result rather than
// deciding fatality itself.
func (s *StateStore) Load(path string) LoadResult {
	data, err := os.ReadFile(path)
	if err != nil {
		reason := LoadUnreadable
		if os.IsNotExist(err) {
			reason = LoadMissing
			err = ErrSnapshotNotFound
		}
		return LoadResult{Failure: &LoadFailure{Reason: reason, Path: path, Err: err}}
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return LoadResult{Failure: &LoadFailure{Reason: LoadMalformed, Path: path, Err: err}}
	}
	return LoadResult{Snapshot: &snap}
}
