package seoflow

import (
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestSanitizeKeyword(t *testing.T) {
	tests := []struct {
		name    string
		keyword string
		want    string
	}{
		{"simple", "golang", "golang"},
		{"spaces", "best coffee grinders", "best_coffee_grinders"},
		{"mixed case", "Best Coffee", "best_coffee"},
		{"punctuation", "what's new in go 1.24?", "what_s_new_in_go_1_24"},
		{"unicode", "café crème", "caf_cr_me"},
		{"leading trailing junk", "  --hello--  ", "hello"},
		{"consecutive specials collapse", "a!!!b", "a_b"},
		{"only specials", "!!!", "keyword"},
		{"empty", "", "keyword"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeKeyword(tt.keyword); got != tt.want {
				t.Errorf("SanitizeKeyword(%q) = %q, want %q", tt.keyword, got, tt.want)
			}
		})
	}
}

func TestSanitizeKeyword_LengthCap(t *testing.T) {
	long := strings.Repeat("a", 80)
	got := SanitizeKeyword(long)
	if len(got) != maxSanitizedLength {
		t.Errorf("len = %d, want %d", len(got), maxSanitizedLength)
	}
}

func TestNewSessionID_Format(t *testing.T) {
	id := NewSessionID("Best Coffee Grinders")

	if !strings.HasPrefix(id, "best_coffee_grinders_") {
		t.Errorf("session id %q should start with sanitized keyword", id)
	}
	parts := strings.Split(id, "_")
	// sanitized keyword contributes 3 parts, timestamp 2, suffix 1
	if len(parts) != 6 {
		t.Fatalf("session id %q has %d parts, want 6", id, len(parts))
	}
	if len(parts[5]) != 4 {
		t.Errorf("random suffix %q should be 4 chars", parts[5])
	}
	if _, err := time.Parse(sessionTimeFormat, parts[3]+"_"+parts[4]); err != nil {
		t.Errorf("timestamp portion does not parse: %v", err)
	}
}

func TestNewSessionID_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		id := NewSessionID("golang")
		if seen[id] {
			t.Fatalf("duplicate session id %q", id)
		}
		seen[id] = true
	}
}

func TestPaths(t *testing.T) {
	root := filepath.Join("out")
	session := "golang_20260826_120000_ab12"

	snap := SnapshotPath(root, session)
	if want := filepath.Join("out", ".workflow_state_golang_20260826_120000_ab12.json"); snap != want {
		t.Errorf("SnapshotPath = %q, want %q", snap, want)
	}

	staging := StagingPath(root, session)
	if want := filepath.Join("out", ".temp_golang_20260826_120000_ab12"); staging != want {
		t.Errorf("StagingPath = %q, want %q", staging, want)
	}

	at := time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC)
	final := FinalPath(root, "Go Tips", at)
	if want := filepath.Join("out", "go_tips_20260826_120000"); final != want {
		t.Errorf("FinalPath = %q, want %q", final, want)
	}
}

func TestNameMatchers(t *testing.T) {
	if !isSnapshotName(".workflow_state_x.json") {
		t.Error("snapshot name should match")
	}
	if !isSnapshotName(".workflow_state_x.json.tmp") {
		t.Error("crashed-save temp snapshot should match")
	}
	if isSnapshotName("article.html") {
		t.Error("artifact should not match snapshot pattern")
	}
	if isSnapshotName("x.json.tmp") {
		t.Error("unprefixed temp file should not match")
	}
	if !isStagingName(".temp_x") {
		t.Error("staging name should match")
	}
	if isStagingName("golang_20260826_120000") {
		t.Error("committed dir should not match staging pattern")
	}
}
