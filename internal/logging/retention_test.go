package logging

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeAged(t *testing.T, path string, age time.Duration) {
	t.Helper()
	if err := os.WriteFile(path, []byte("log\n"), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	when := time.Now().Add(-age)
	if err := os.Chtimes(path, when, when); err != nil {
		t.Fatalf("chtimes %s: %v", path, err)
	}
}

func TestPruneLogsRemovesOnlyOldMatches(t *testing.T) {
	dir := t.TempDir()
	old := filepath.Join(dir, "returnnotify-20200101T000000Z.log")
	fresh := filepath.Join(dir, "returnnotify-20990101T000000Z.log")
	keep := filepath.Join(dir, "returnnotify-20200102T000000Z.log")
	other := filepath.Join(dir, "other.log")
	writeAged(t, old, 90*24*time.Hour)
	writeAged(t, fresh, time.Hour)
	writeAged(t, keep, 90*24*time.Hour)
	writeAged(t, other, 90*24*time.Hour)

	removed := PruneLogs(NewNop(), 30, dir, "returnnotify-*.log", keep)
	if removed != 1 {
		t.Fatalf("expected 1 file removed, got %d", removed)
	}
	if _, err := os.Stat(old); !os.IsNotExist(err) {
		t.Fatalf("expected old log removed, stat err=%v", err)
	}
	for _, path := range []string{fresh, keep, other} {
		if _, err := os.Stat(path); err != nil {
			t.Fatalf("expected %s to remain: %v", path, err)
		}
	}
}

func TestPruneLogsDisabled(t *testing.T) {
	dir := t.TempDir()
	old := filepath.Join(dir, "returnnotify-a.log")
	writeAged(t, old, 365*24*time.Hour)

	if removed := PruneLogs(nil, 0, dir, "returnnotify-*.log", ""); removed != 0 {
		t.Fatalf("expected pruning disabled, removed %d", removed)
	}
	if _, err := os.Stat(old); err != nil {
		t.Fatalf("expected log to remain: %v", err)
	}
}

func TestRunLogName(t *testing.T) {
	got := RunLogName("returnnotify", time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC))
	if got != "returnnotify-20260304T050607Z.log" {
		t.Fatalf("unexpected name %q", got)
	}
}

func TestLinkCurrentLog(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "returnnotify-1.log")
	if err := os.WriteFile(target, []byte("one\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := LinkCurrentLog(dir, "returnnotify.log", target); err != nil {
		t.Fatalf("link: %v", err)
	}
	next := filepath.Join(dir, "returnnotify-2.log")
	if err := os.WriteFile(next, []byte("two\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := LinkCurrentLog(dir, "returnnotify.log", next); err != nil {
		t.Fatalf("relink: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "returnnotify.log"))
	if err != nil {
		t.Fatalf("read pointer: %v", err)
	}
	if string(data) != "two\n" {
		t.Fatalf("pointer should follow latest log, got %q", data)
	}
}
