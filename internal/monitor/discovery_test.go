package monitor

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func touch(t *testing.T, path string, mod time.Time) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("{}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Chtimes(path, mod, mod); err != nil {
		t.Fatal(err)
	}
}

func TestListSessionsNewestFirst(t *testing.T) {
	dir := t.TempDir()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	touch(t, filepath.Join(dir, "proj-a", "old.jsonl"), base)
	touch(t, filepath.Join(dir, "proj-b", "new.jsonl"), base.Add(time.Hour))
	touch(t, filepath.Join(dir, "proj-b", "notes.txt"), base.Add(2*time.Hour))

	files, err := ListSessions(OSFileSystem{}, dir)
	if err != nil {
		t.Fatalf("ListSessions() error = %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("got %d files, want 2", len(files))
	}
	if files[0].ID != "new" || files[1].ID != "old" {
		t.Errorf("order = %s, %s", files[0].ID, files[1].ID)
	}

	latest, err := LatestSession(OSFileSystem{}, dir)
	if err != nil || latest.ID != "new" {
		t.Errorf("LatestSession() = %+v, %v", latest, err)
	}
}

func TestLatestSessionEmpty(t *testing.T) {
	if _, err := LatestSession(OSFileSystem{}, t.TempDir()); err != ErrNoSessionsFound {
		t.Errorf("err = %v, want ErrNoSessionsFound", err)
	}
}

func TestListSessionsMissingDir(t *testing.T) {
	if _, err := ListSessions(OSFileSystem{}, filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("expected error for missing root")
	}
}
