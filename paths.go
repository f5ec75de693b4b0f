package seoflow

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	nanoid "github.com/matoous/go-nanoid/v2"
)

// Filesystem layout under the output root:
//
//	.workflow_state_<session>.json            snapshot
//	.temp_<session>/                          staging directory
//	<sanitized_keyword>_<timestamp>/          committed output
const (
	snapshotPrefix = ".workflow_state_"
	snapshotSuffix = ".json"
	stagingPrefix  = ".temp_"

	sessionTimeFormat = "20060102_150405"
)

// maxSanitizedLength caps the keyword portion of directory names.
const maxSanitizedLength = 50

// SanitizeKeyword converts a keyword into a filesystem-safe slug:
// lowercase, non-alphanumeric runs collapsed to single underscores,
// trimmed and length-capped.
func SanitizeKeyword(keyword string) string {
	var b strings.Builder
	lastUnderscore := false
	for _, r := range strings.ToLower(strings.TrimSpace(keyword)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastUnderscore = false
		default:
			if !lastUnderscore && b.Len() > 0 {
				b.WriteByte('_')
				lastUnderscore = true
			}
		}
	}
	s := strings.Trim(b.String(), "_")
	if s == "" {
		s = "keyword"
	}
	if len(s) > maxSanitizedLength {
		s = strings.Trim(s[:maxSanitizedLength], "_")
	}
	return s
}

// NewSessionID creates a unique session id embedding the sanitized
// keyword and a timestamp. The random suffix keeps concurrent runs for
// the same keyword from colliding.
func NewSessionID(keyword string) string {
	suffix, err := nanoid.Generate("abcdefghijklmnopqrstuvwxyz0123456789", 4)
	if err != nil {
		// nanoid only fails when the system randomness source does;
		// fall back to a time-derived suffix.
		suffix = fmt.Sprintf("%04d", time.Now().Nanosecond()%10000)
	}
	return fmt.Sprintf("%s_%s_%s", SanitizeKeyword(keyword), time.Now().Format(sessionTimeFormat), suffix)
}

// SnapshotPath returns the snapshot file path for a session.
func SnapshotPath(outputRoot, sessionID string) string {
	return filepath.Join(outputRoot, snapshotPrefix+sessionID+snapshotSuffix)
}

// StagingPath returns the staging directory path for a session.
func StagingPath(outputRoot, sessionID string) string {
	return filepath.Join(outputRoot, stagingPrefix+sessionID)
}

// FinalPath returns the committed output directory for a keyword,
// keyed by sanitized keyword plus timestamp.
func FinalPath(outputRoot, keyword string, at time.Time) string {
	name := fmt.Sprintf("%s_%s", SanitizeKeyword(keyword), at.Format(sessionTimeFormat))
	return filepath.Join(outputRoot, name)
}

// isSnapshotName reports whether a directory entry name matches the
// snapshot file pattern, including the ".tmp" intermediate a crashed
// StateStore.Save can leave behind.
func isSnapshotName(name string) bool {
	if !strings.HasPrefix(name, snapshotPrefix) {
		return false
	}
	return strings.HasSuffix(name, snapshotSuffix) || strings.HasSuffix(name, snapshotSuffix+".tmp")
}

// isStagingName reports whether a directory entry name matches the
// staging directory pattern.
func isStagingName(name string) bool {
	return strings.HasPrefix(name, stagingPrefix)
}
