package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestNew_CreatesDirectories(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "artifacts")

	store, err := New(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := os.Stat(store.StagingDir()); err != nil {
		t.Errorf("staging dir not created: %v", err)
	}
}

func TestAdopt(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	src := filepath.Join(store.StagingDir(), "task-1.mp4")
	writeFile(t, src, "media bytes")

	dest, err := store.Adopt("task-1", src)
	if err != nil {
		t.Fatalf("Adopt failed: %v", err)
	}

	if filepath.Base(dest) != "task-1.mp4" {
		t.Errorf("dest name = %s, expected task-1.mp4", filepath.Base(dest))
	}
	if filepath.Dir(dest) != store.Dir() {
		t.Errorf("dest dir = %s, expected %s", filepath.Dir(dest), store.Dir())
	}
	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("read adopted file: %v", err)
	}
	if string(data) != "media bytes" {
		t.Errorf("adopted content = %q", data)
	}
	if _, err := os.Stat(src); !os.IsNotExist(err) {
		t.Error("staged file still present after adoption")
	}
}

func TestRemove(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	path := filepath.Join(store.Dir(), "task-2.mp3")
	writeFile(t, path, "audio")

	if err := store.Remove(path); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("file still present after Remove")
	}

	// Removing an already-gone file is not an error
	if err := store.Remove(path); err != nil {
		t.Errorf("second Remove failed: %v", err)
	}
}

func TestRemove_OutsideStore(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	outside := filepath.Join(t.TempDir(), "victim.txt")
	writeFile(t, outside, "keep me")

	if err := store.Remove(outside); err == nil {
		t.Error("Remove outside the store should fail")
	}
	if _, err := os.Stat(outside); err != nil {
		t.Error("file outside the store was deleted")
	}
}

func TestSweep(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	old := filepath.Join(store.Dir(), "old.mp4")
	writeFile(t, old, "stale")
	stalePartial := filepath.Join(store.StagingDir(), "crashed.mp4.part")
	writeFile(t, stalePartial, "partial")
	fresh := filepath.Join(store.Dir(), "fresh.mp4")
	writeFile(t, fresh, "new")

	past := time.Now().Add(-2 * time.Hour)
	for _, p := range []string{old, stalePartial} {
		if err := os.Chtimes(p, past, past); err != nil {
			t.Fatalf("chtimes %s: %v", p, err)
		}
	}

	removed := store.Sweep(time.Hour)
	if removed != 2 {
		t.Errorf("Sweep removed %d files, expected 2", removed)
	}
	if _, err := os.Stat(old); !os.IsNotExist(err) {
		t.Error("expired artifact survived sweep")
	}
	if _, err := os.Stat(stalePartial); !os.IsNotExist(err) {
		t.Error("orphaned partial survived sweep")
	}
	if _, err := os.Stat(fresh); err != nil {
		t.Error("fresh artifact was swept")
	}
}
