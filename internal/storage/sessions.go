package storage

import (
	"sync"

	"github.com/oubmed/medquiz-bot/internal/domain/entities"
)

// SessionStorage provides in-memory storage for the active session and
// the last finished report of each chat. A chat with no stored session
// is idle; starting a session replaces the previous one wholesale.
type SessionStorage struct {
	mu       sync.RWMutex
	sessions map[int64]*entities.Session
	reports  map[int64]*entities.Report
}

// NewSessionStorage creates a new SessionStorage.
func NewSessionStorage() *SessionStorage {
	return &SessionStorage{
		sessions: make(map[int64]*entities.Session),
		reports:  make(map[int64]*entities.Report),
	}
}

// Store saves the active session for a chat.
func (s *SessionStorage) Store(chatID int64, session *entities.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[chatID] = session
}

// Get retrieves the active session for a chat.
func (s *SessionStorage) Get(chatID int64) (*entities.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[chatID]
	return session, ok
}

// Delete removes the active session for a chat, returning it to idle.
func (s *SessionStorage) Delete(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, chatID)
}

// StoreReport saves the last finished report for a chat.
func (s *SessionStorage) StoreReport(chatID int64, report *entities.Report) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reports[chatID] = report
}

// Report retrieves the last finished report for a chat.
func (s *SessionStorage) Report(chatID int64) (*entities.Report, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	report, ok := s.reports[chatID]
	return report, ok
}
