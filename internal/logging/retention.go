package logging

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// RunLogName returns the per-run log file name for a serve process started at t.
func RunLogName(prefix string, t time.Time) string {
	return fmt.Sprintf("%s-%s.log", prefix, t.UTC().Format("20060102T150405Z"))
}

// PruneLogs removes files in dir matching pattern whose modification time is
// older than retentionDays. keep is never removed. A retentionDays value of 0
// disables pruning. It returns the number of files removed.
func PruneLogs(logger *slog.Logger, retentionDays int, dir, pattern, keep string) int {
	dir = strings.TrimSpace(dir)
	if retentionDays <= 0 || dir == "" {
		return 0
	}
	logger = NewComponentLogger(logger, "log_retention")
	cutoff := time.Now().AddDate(0, 0, -retentionDays)

	var keepAbs string
	if strings.TrimSpace(keep) != "" {
		keepAbs, _ = filepath.Abs(keep)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0
	}
	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if matched, err := filepath.Match(pattern, entry.Name()); err != nil || !matched {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
		if path == keepAbs {
			continue
		}
		info, err := entry.Info()
		if err != nil || !info.ModTime().Before(cutoff) {
			continue
		}
		if err := os.Remove(path); err != nil {
			WarnWithContext(logger, "log retention remove failed; file remains", "log_retention_failed",
				String("path", path),
				Error(err),
				String(FieldErrorHint, "check file permissions and log_dir ownership"),
				String(FieldImpact, "old log file remains on disk"),
			)
			continue
		}
		removed++
		logger.Debug("log pruned",
			String("path", path),
			String(FieldEventType, "log_pruned"),
		)
	}
	return removed
}

// LinkCurrentLog points dir/name at target so operators can tail a stable path.
// It falls back to a hard link where symlinks are unavailable.
func LinkCurrentLog(dir, name, target string) error {
	if dir == "" || target == "" {
		return nil
	}
	current := filepath.Join(dir, name)
	if err := os.Remove(current); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove existing log pointer: %w", err)
	}
	if err := os.Symlink(target, current); err == nil {
		return nil
	}
	if err := os.Link(target, current); err != nil {
		return fmt.Errorf("link log pointer: %w", err)
	}
	return nil
}
