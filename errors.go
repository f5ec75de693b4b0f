package seoflow

import (
	"errors"
	"fmt"
)

// Workflow errors
var (
	// ErrEmptyKeyword indicates the keyword is empty after trimming.
	ErrEmptyKeyword = errors.New("keyword cannot be empty")

	// ErrKeywordTooLong indicates the keyword exceeds MaxKeywordLength.
	ErrKeywordTooLong = errors.New("keyword too long")

	// ErrNoCitations indicates the writing phase produced an article
	// that cites zero sources.
	ErrNoCitations = errors.New("article cites no sources")

	// ErrEmptyResearch indicates research returned no usable sources.
	ErrEmptyResearch = errors.New("research returned no usable sources")

	// ErrSnapshotNotFound indicates the snapshot file does not exist.
	ErrSnapshotNotFound = errors.New("snapshot not found")
)

// MaxKeywordLength is the maximum keyword length in runes.
const MaxKeywordLength = 200

// ValidationError indicates input or state that can never succeed:
// a bad keyword, structurally-empty research, an uncited article, or a
// corrupt resumed snapshot. Validation errors are fatal and never
// retried.
type ValidationError struct {
	Msg string // Human-readable description
	Err error  // Optional underlying cause
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a ValidationError wrapping err.
func NewValidationError(msg string, err error) *ValidationError {
	return &ValidationError{Msg: msg, Err: err}
}

// TransientError marks a failure worth retrying, such as a network or
// API error during the research phase. The retry Policy's default
// predicate retries only errors that match this type.
type TransientError struct {
	Op  string // Operation that failed (e.g., "research")
	Err error  // Underlying error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransientError) Unwrap() error {
	return e.Err
}

// NewTransientError wraps err as retryable.
func NewTransientError(op string, err error) *TransientError {
	return &TransientError{Op: op, Err: err}
}

// CommitError indicates the atomic publish of a staging directory
// failed. The staging directory is left in place for inspection; the
// error is fatal and triggers rollback of the snapshot only.
type CommitError struct {
	StagingDir string
	FinalDir   string
	Err        error
}

func (e *CommitError) Error() string {
	return fmt.Sprintf("commit %s -> %s: %v", e.StagingDir, e.FinalDir, e.Err)
}

func (e *CommitError) Unwrap() error {
	return e.Err
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsTransient reports whether err is (or wraps) a TransientError.
func IsTransient(err error) bool {
	var te *TransientError
	return errors.As(err, &te)
}

// IsCommit reports whether err is (or wraps) a CommitError.
func IsCommit(err error) bool {
	var ce *CommitError
	return errors.As(err, &ce)
}
