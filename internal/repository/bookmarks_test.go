package repository

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
)

func bookmarkPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "bookmarks.json")
}

func TestBookmarksStartEmptyWithoutFile(t *testing.T) {
	r := NewBookmarkRepository(bookmarkPath(t), zap.NewNop())
	if r.Count() != 0 {
		t.Errorf("Count = %d, want 0", r.Count())
	}
}

func TestBookmarksCorruptFileLoadsEmpty(t *testing.T) {
	path := bookmarkPath(t)
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	r := NewBookmarkRepository(path, zap.NewNop())
	if r.Count() != 0 {
		t.Errorf("Count = %d, want 0 for corrupt data", r.Count())
	}
}

func TestToggleIsItsOwnInverse(t *testing.T) {
	r := NewBookmarkRepository(bookmarkPath(t), zap.NewNop())

	if on := r.Toggle("q1"); !on {
		t.Error("first toggle should bookmark")
	}
	if !r.IsBookmarked("q1") {
		t.Error("IsBookmarked = false after toggle on")
	}

	if on := r.Toggle("q1"); on {
		t.Error("second toggle should unbookmark")
	}
	if r.IsBookmarked("q1") || r.Count() != 0 {
		t.Error("toggle twice did not restore the original set")
	}
}

func TestBookmarksPersistAcrossReload(t *testing.T) {
	path := bookmarkPath(t)

	r := NewBookmarkRepository(path, zap.NewNop())
	r.Toggle("q1")
	r.Toggle("q2")
	r.Toggle("q1") // net: only q2 remains

	reloaded := NewBookmarkRepository(path, zap.NewNop())
	if reloaded.Count() != 1 || !reloaded.IsBookmarked("q2") {
		t.Errorf("reloaded set = %v, want {q2}", reloaded.Keys())
	}
}

func TestBookmarksKeysReturnsSnapshot(t *testing.T) {
	r := NewBookmarkRepository(bookmarkPath(t), zap.NewNop())
	r.Toggle("q1")

	keys := r.Keys()
	delete(keys, "q1")
	if !r.IsBookmarked("q1") {
		t.Error("mutating the snapshot affected the repository")
	}
}

func TestSubscriberToggleAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "subscribers.json")

	r := NewSubscriberRepository(path, zap.NewNop())
	if r.IsSubscribed(7) {
		t.Error("fresh repository has subscribers")
	}
	if on := r.Toggle(7); !on {
		t.Error("first toggle should subscribe")
	}

	reloaded := NewSubscriberRepository(path, zap.NewNop())
	if !reloaded.IsSubscribed(7) {
		t.Error("subscription lost across reload")
	}
	if got := reloaded.All(); len(got) != 1 || got[0] != 7 {
		t.Errorf("All = %v, want [7]", got)
	}
}
