package repository

import (
	"encoding/json"
	"os"
	"sync"

	"go.uber.org/zap"
)

// SubscriberRepository is the persistent set of chat IDs subscribed to
// the daily challenge reminder. Same file mechanics as bookmarks:
// missing or corrupt data loads empty, writes are best-effort.
type SubscriberRepository struct {
	mu     sync.RWMutex
	chats  map[int64]struct{}
	path   string
	logger *zap.Logger
}

// NewSubscriberRepository loads the persisted subscriber set.
func NewSubscriberRepository(path string, logger *zap.Logger) *SubscriberRepository {
	r := &SubscriberRepository{
		chats:  make(map[int64]struct{}),
		path:   path,
		logger: logger,
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("failed to read subscribers, starting empty", zap.Error(err))
		}
		return r
	}

	var chats []int64
	if err := json.Unmarshal(data, &chats); err != nil {
		logger.Warn("corrupt subscribers file, starting empty", zap.Error(err))
		return r
	}

	for _, id := range chats {
		r.chats[id] = struct{}{}
	}
	return r
}

// Toggle flips the subscription of a chat and persists the set. It
// returns whether the chat is subscribed after the toggle.
func (r *SubscriberRepository) Toggle(chatID int64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.chats[chatID]
	if ok {
		delete(r.chats, chatID)
	} else {
		r.chats[chatID] = struct{}{}
	}

	r.persistLocked()
	return !ok
}

// IsSubscribed reports whether the chat receives daily reminders.
func (r *SubscriberRepository) IsSubscribed(chatID int64) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.chats[chatID]
	return ok
}

// All returns a snapshot of subscribed chat IDs.
func (r *SubscriberRepository) All() []int64 {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]int64, 0, len(r.chats))
	for id := range r.chats {
		out = append(out, id)
	}
	return out
}

func (r *SubscriberRepository) persistLocked() {
	chats := make([]int64, 0, len(r.chats))
	for id := range r.chats {
		chats = append(chats, id)
	}

	data, err := json.Marshal(chats)
	if err != nil {
		r.logger.Error("failed to marshal subscribers", zap.Error(err))
		return
	}

	if err := os.WriteFile(r.path, data, 0o644); err != nil {
		r.logger.Error("failed to persist subscribers", zap.Error(err))
	}
}
