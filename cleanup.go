package seoflow

import (
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// CleanupOrphans sweeps the output root for snapshot files and staging
// directories left by runs that never reached COMPLETE or ROLLED_BACK,
// deleting items whose modification time is older than olderThan.
//
// The sweep never fails: unreadable roots yield zero counts, and
// per-item deletion errors are logged and skipped so one stuck entry
// cannot block the rest. Returns (snapshots removed, staging dirs
// removed).
func CleanupOrphans(outputRoot string, olderThan time.Duration) (int, int) {
	entries, err := os.ReadDir(outputRoot)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("orphan sweep: read output root", "root", outputRoot, "error", err)
		}
		return 0, 0
	}

	cutoff := time.Now().Add(-olderThan)
	snapshots, dirs := 0, 0

	for _, entry := range entries {
		name := entry.Name()

		isSnapshot := !entry.IsDir() && isSnapshotName(name)
		isStaging := entry.IsDir() && isStagingName(name)
		if !isSnapshot && !isStaging {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			slog.Warn("orphan sweep: stat", "name", name, "error", err)
			continue
		}
		if !info.ModTime().Before(cutoff) {
			continue
		}

		path := filepath.Join(outputRoot, name)
		if isSnapshot {
			if err := os.Remove(path); err != nil {
				slog.Warn("orphan sweep: remove snapshot", "path", path, "error", err)
				continue
			}
			snapshots++
		} else {
			if err := os.RemoveAll(path); err != nil {
				slog.Warn("orphan sweep: remove staging dir", "path", path, "error", err)
				continue
			}
			dirs++
		}
	}

	if snapshots > 0 || dirs > 0 {
		slog.Info("orphan sweep complete",
			"root", outputRoot,
			"snapshots_removed", snapshots,
			"staging_dirs_removed", dirs,
		)
	}
	return snapshots, dirs
}
