package seoflow

import (
	"time"
)

// =============================================================================
// Workflow States
// =============================================================================

// State is a workflow state. The happy path is linear:
// INITIALIZED -> RESEARCHING -> RESEARCH_COMPLETE -> WRITING ->
// WRITING_COMPLETE -> SAVING -> COMPLETE. FAILED and ROLLED_BACK are
// reachable from any active state; COMPLETE and ROLLED_BACK are
// terminal.
type State string

const (
	StateInitialized      State = "INITIALIZED"
	StateResearching      State = "RESEARCHING"
	StateResearchComplete State = "RESEARCH_COMPLETE"
	StateWriting          State = "WRITING"
	StateWritingComplete  State = "WRITING_COMPLETE"
	StateSaving           State = "SAVING"
	StateComplete         State = "COMPLETE"
	StateFailed           State = "FAILED"
	StateRolledBack       State = "ROLLED_BACK"
)

// stateOrder positions each state on the happy path. FAILED and
// ROLLED_BACK sit outside the linear order.
var stateOrder = map[State]int{
	StateInitialized:      0,
	StateResearching:      1,
	StateResearchComplete: 2,
	StateWriting:          3,
	StateWritingComplete:  4,
	StateSaving:           5,
	StateComplete:         6,
}

// Valid reports whether s is a recognized workflow state.
func (s State) Valid() bool {
	switch s {
	case StateInitialized, StateResearching, StateResearchComplete,
		StateWriting, StateWritingComplete, StateSaving,
		StateComplete, StateFailed, StateRolledBack:
		return true
	}
	return false
}

// Terminal reports whether s is a terminal state.
func (s State) Terminal() bool {
	return s == StateComplete || s == StateRolledBack
}

// Reached reports whether s is at or past other on the happy path.
// FAILED and ROLLED_BACK never count as having reached a phase.
func (s State) Reached(other State) bool {
	a, ok := stateOrder[s]
	if !ok {
		return false
	}
	b, ok := stateOrder[other]
	if !ok {
		return false
	}
	return a >= b
}

// =============================================================================
// Per-Phase Data
// =============================================================================

// ResearchPhaseData tracks the research phase.
type ResearchPhaseData struct {
	Research            *ResearchResult `json:"research,omitempty"`
	ResearchAttempts    int             `json:"researchAttempts,omitempty"`
	SourceWarning       string          `json:"sourceWarning,omitempty"`
	ResearchCompletedAt time.Time       `json:"researchCompletedAt,omitzero"`
}

// WritingPhaseData tracks the writing phase.
type WritingPhaseData struct {
	Article            *ArticleResult `json:"article,omitempty"`
	WritingCompletedAt time.Time      `json:"writingCompletedAt,omitzero"`
}

// SavingPhaseData tracks the saving phase.
type SavingPhaseData struct {
	FinalDir    string    `json:"finalDir,omitempty"`
	CommittedAt time.Time `json:"committedAt,omitzero"`
}

// WorkflowData is the typed phase payload carried by a snapshot.
type WorkflowData struct {
	Keyword string `json:"keyword"`

	ResearchPhaseData
	WritingPhaseData
	SavingPhaseData

	// Resumed is set when the run was re-entered from a snapshot.
	Resumed bool `json:"resumed,omitempty"`

	// Error records the failure that moved the run to FAILED.
	Error string `json:"error,omitempty"`
}

// SetError records err in the workflow data.
func (d *WorkflowData) SetError(err error) {
	if err != nil {
		d.Error = err.Error()
	}
}

// =============================================================================
// Snapshot
// =============================================================================

// Snapshot is the persisted progress record for one run: exactly one
// JSON document per active run, deleted on COMPLETE or ROLLED_BACK and
// retained on FAILED for postmortem or resume.
type Snapshot struct {
	State      State        `json:"state"`
	Timestamp  time.Time    `json:"timestamp"`
	Data       WorkflowData `json:"data"`
	StagingDir string       `json:"temp_dir,omitempty"`
}

// NewSnapshot creates an INITIALIZED snapshot for keyword.
func NewSnapshot(keyword string) *Snapshot {
	return &Snapshot{
		State:     StateInitialized,
		Timestamp: time.Now().UTC(),
		Data:      WorkflowData{Keyword: keyword},
	}
}

// Transition moves the snapshot to state and stamps the time.
func (s *Snapshot) Transition(state State) {
	s.State = state
	s.Timestamp = time.Now().UTC()
}
