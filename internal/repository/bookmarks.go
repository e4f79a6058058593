package repository

import (
	"encoding/json"
	"os"
	"sync"

	"go.uber.org/zap"
)

// BookmarkRepository is the persistent set of bookmarked question keys.
// It is backed by a single JSON file holding the serialized key list.
// Persistence is best-effort: bookmarking is a convenience feature, so a
// failed write is logged and never surfaced to the user.
type BookmarkRepository struct {
	mu     sync.RWMutex
	keys   map[string]struct{}
	path   string
	logger *zap.Logger
}

// NewBookmarkRepository loads the persisted set. A missing or corrupt
// file loads as an empty set; it never fails the app.
func NewBookmarkRepository(path string, logger *zap.Logger) *BookmarkRepository {
	r := &BookmarkRepository{
		keys:   make(map[string]struct{}),
		path:   path,
		logger: logger,
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("failed to read bookmarks, starting empty", zap.Error(err))
		}
		return r
	}

	var keys []string
	if err := json.Unmarshal(data, &keys); err != nil {
		logger.Warn("corrupt bookmarks file, starting empty", zap.Error(err))
		return r
	}

	for _, k := range keys {
		r.keys[k] = struct{}{}
	}
	return r
}

// Toggle adds the key if absent and removes it if present, then persists
// the set. It returns whether the key is bookmarked after the toggle.
func (r *BookmarkRepository) Toggle(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.keys[key]
	if ok {
		delete(r.keys, key)
	} else {
		r.keys[key] = struct{}{}
	}

	r.persistLocked()
	return !ok
}

// IsBookmarked reports whether the key is in the set.
func (r *BookmarkRepository) IsBookmarked(key string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.keys[key]
	return ok
}

// Keys returns a snapshot of the bookmarked keys.
func (r *BookmarkRepository) Keys() map[string]struct{} {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]struct{}, len(r.keys))
	for k := range r.keys {
		out[k] = struct{}{}
	}
	return out
}

// Count returns the number of bookmarked keys.
func (r *BookmarkRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.keys)
}

func (r *BookmarkRepository) persistLocked() {
	keys := make([]string, 0, len(r.keys))
	for k := range r.keys {
		keys = append(keys, k)
	}

	data, err := json.Marshal(keys)
	if err != nil {
		r.logger.Error("failed to marshal bookmarks", zap.Error(err))
		return
	}

	if err := os.WriteFile(r.path, data, 0o644); err != nil {
		r.logger.Error("failed to persist bookmarks", zap.Error(err))
	}
}
