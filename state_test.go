package seoflow

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestState_Valid(t *testing.T) {
	valid := []State{
		StateInitialized, StateResearching, StateResearchComplete,
		StateWriting, StateWritingComplete, StateSaving,
		StateComplete, StateFailed, StateRolledBack,
	}
	for _, s := range valid {
		if !s.Valid() {
			t.Errorf("%s should be valid", s)
		}
	}
	for _, s := range []State{"", "BOGUS", "initialized"} {
		if s.Valid() {
			t.Errorf("%q should not be valid", s)
		}
	}
}

func TestState_Terminal(t *testing.T) {
	if !StateComplete.Terminal() || !StateRolledBack.Terminal() {
		t.Error("COMPLETE and ROLLED_BACK are terminal")
	}
	if StateFailed.Terminal() {
		t.Error("FAILED is not terminal; it precedes rollback or resume")
	}
	if StateSaving.Terminal() {
		t.Error("SAVING is not terminal")
	}
}

func TestState_Reached(t *testing.T) {
	tests := []struct {
		s, other State
		want     bool
	}{
		{StateWriting, StateResearchComplete, true},
		{StateWriting, StateWriting, true},
		{StateResearching, StateWriting, false},
		{StateFailed, StateResearching, false},
		{StateRolledBack, StateInitialized, false},
		{StateComplete, StateSaving, true},
	}
	for _, tt := range tests {
		if got := tt.s.Reached(tt.other); got != tt.want {
			t.Errorf("%s.Reached(%s) = %v, want %v", tt.s, tt.other, got, tt.want)
		}
	}
}

func TestSnapshot_Transition(t *testing.T) {
	snap := NewSnapshot("golang")
	if snap.State != StateInitialized {
		t.Fatalf("new snapshot state = %s, want INITIALIZED", snap.State)
	}
	before := snap.Timestamp

	snap.Transition(StateResearching)
	if snap.State != StateResearching {
		t.Errorf("state = %s, want RESEARCHING", snap.State)
	}
	if snap.Timestamp.Before(before) {
		t.Error("transition should advance the timestamp")
	}
}

func TestSnapshot_JSONRoundTrip(t *testing.T) {
	snap := NewSnapshot("coffee grinders")
	snap.Transition(StateSaving)
	snap.StagingDir = "out/.temp_coffee_grinders_20260826_120000_ab12"
	snap.Data.Research = &ResearchResult{
		Keyword: "coffee grinders",
		Sources: []Source{{URL: "https://example.com", Credibility: 0.8}},
	}
	snap.Data.ResearchAttempts = 2

	data, err := json.Marshal(snap)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	// The staging directory key is the stable wire name other tooling
	// greps for.
	if !strings.Contains(string(data), `"temp_dir"`) {
		t.Errorf("serialized snapshot missing temp_dir key: %s", data)
	}

	var got Snapshot
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.State != StateSaving {
		t.Errorf("state = %s, want SAVING", got.State)
	}
	if got.StagingDir != snap.StagingDir {
		t.Errorf("stagingDir = %q, want %q", got.StagingDir, snap.StagingDir)
	}
	if got.Data.Keyword != "coffee grinders" {
		t.Errorf("keyword = %q", got.Data.Keyword)
	}
	if got.Data.Research == nil || len(got.Data.Research.Sources) != 1 {
		t.Error("research payload should survive the round trip")
	}
	if got.Data.ResearchAttempts != 2 {
		t.Errorf("researchAttempts = %d, want 2", got.Data.ResearchAttempts)
	}
}

func TestSnapshot_OmitsEmptyOptionalFields(t *testing.T) {
	data, err := json.Marshal(NewSnapshot("golang"))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for _, key := range []string{"temp_dir", "error", "resumed", "researchCompletedAt"} {
		if strings.Contains(string(data), `"`+key+`"`) {
			t.Errorf("fresh snapshot should omit %q: %s", key, data)
		}
	}
}

func TestWorkflowData_SetError(t *testing.T) {
	var d WorkflowData
	d.SetError(nil)
	if d.Error != "" {
		t.Errorf("Error = %q, want empty", d.Error)
	}
	d.SetError(errors.New("boom"))
	if d.Error != "boom" {
		t.Errorf("Error = %q, want %q", d.Error, "boom")
	}
}
