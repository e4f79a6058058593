package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/oubmed/medquiz-bot/internal/config"
	"github.com/oubmed/medquiz-bot/internal/domain/entities"
	"github.com/oubmed/medquiz-bot/internal/storage"
)

// timeBonusPerSecond is the score added per remaining countdown second
// on a correct answer when the time bonus is enabled.
const timeBonusPerSecond = 10

// QuizService drives quiz sessions: it builds the question sequence for
// a mode, owns the per-chat countdown timers, applies scoring policy and
// keeps the last finished report for review mode.
type QuizService struct {
	selector  *QuestionSelector
	catalog   CatalogRepository
	bookmarks BookmarkRepository
	sessions  *storage.SessionStorage
	cfg       config.Quiz
	logger    *zap.Logger

	mu         sync.Mutex
	countdowns map[int64]*Countdown
	chatLocks  map[int64]*sync.Mutex
}

// NewQuizService creates a new QuizService.
func NewQuizService(
	selector *QuestionSelector,
	catalog CatalogRepository,
	bookmarks BookmarkRepository,
	sessions *storage.SessionStorage,
	cfg config.Quiz,
	logger *zap.Logger,
) *QuizService {
	return &QuizService{
		selector:   selector,
		catalog:    catalog,
		bookmarks:  bookmarks,
		sessions:   sessions,
		cfg:        cfg,
		logger:     logger,
		countdowns: make(map[int64]*Countdown),
		chatLocks:  make(map[int64]*sync.Mutex),
	}
}

// StartTopic starts a standard single-topic session.
func (s *QuizService) StartTopic(ctx context.Context, chatID int64, year, module, topic string, count int) (*entities.Session, error) {
	questions, err := s.selector.SelectTopic(ctx, year, module, topic, count)
	if err != nil {
		return nil, err
	}
	return s.start(chatID, questions, entities.ModeStandard)
}

// StartDaily starts a daily challenge session.
func (s *QuizService) StartDaily(chatID int64) (*entities.Session, error) {
	questions, err := s.selector.SelectDaily(s.cfg.DailyCount)
	if err != nil {
		return nil, err
	}
	return s.start(chatID, questions, entities.ModeDaily)
}

// StartBookmarked starts a session over the bookmarked questions.
func (s *QuizService) StartBookmarked(chatID int64) (*entities.Session, error) {
	return s.start(chatID, s.selector.SelectBookmarks(), entities.ModeBookmarks)
}

// StartReview starts a session over the mistakes of the chat's last
// finished session.
func (s *QuizService) StartReview(chatID int64) (*entities.Session, error) {
	report, ok := s.sessions.Report(chatID)
	if !ok || len(report.Mistakes) == 0 {
		return nil, ErrNoQuestionsAvailable
	}
	return s.start(chatID, s.selector.SelectReview(report.Mistakes), entities.ModeReview)
}

// start refuses empty selections so a session never enters the running
// state with zero questions, then replaces the chat's session wholesale.
func (s *QuizService) start(chatID int64, questions []entities.Question, mode entities.Mode) (*entities.Session, error) {
	if len(questions) == 0 {
		return nil, ErrNoQuestionsAvailable
	}

	lock := s.chatLock(chatID)
	lock.Lock()
	defer lock.Unlock()

	s.countdown(chatID).Cancel()

	session := entities.NewSession(questions, mode)
	s.sessions.Store(chatID, session)

	s.logger.Info("session started",
		zap.Int64("chat_id", chatID),
		zap.String("session_id", session.ID),
		zap.String("mode", string(mode)),
		zap.Int("questions", len(questions)),
	)
	return session, nil
}

// Session returns the chat's active session.
func (s *QuizService) Session(chatID int64) (*entities.Session, bool) {
	return s.sessions.Get(chatID)
}

// End discards the chat's session and pending countdown, returning the
// chat to the selection screen.
func (s *QuizService) End(chatID int64) {
	lock := s.chatLock(chatID)
	lock.Lock()
	defer lock.Unlock()

	s.countdown(chatID).Cancel()
	s.sessions.Delete(chatID)
}

// Answer submits a choice for the chat's current question. The pending
// countdown is cancelled before scoring, so a timeout can never fire for
// a question that has been answered. An empty choice never matches and
// is how a timeout expiry records its miss.
//
// The chat lock serializes this with a countdown expiry already in
// flight: the expiry submits through Answer too, so whichever submission
// takes the lock first wins and the loser hits the answered guard.
func (s *QuizService) Answer(chatID int64, choice string) (entities.AnswerResult, error) {
	lock := s.chatLock(chatID)
	lock.Lock()
	defer lock.Unlock()

	session, ok := s.sessions.Get(chatID)
	if !ok {
		return entities.AnswerResult{}, entities.ErrNoCurrentQuestion
	}

	cd := s.countdown(chatID)
	remaining := cd.Remaining()
	cd.Cancel()

	bonus := 0
	if s.cfg.TimeBonusEnabled {
		bonus = timeBonusPerSecond * remaining
	}

	return session.Submit(choice, bonus)
}

// Advance moves the chat's session to the next question. When the run
// completes it stores the terminal report and reports completion.
func (s *QuizService) Advance(chatID int64) (bool, error) {
	lock := s.chatLock(chatID)
	lock.Lock()
	defer lock.Unlock()

	session, ok := s.sessions.Get(chatID)
	if !ok {
		return false, entities.ErrInvalidState
	}

	s.countdown(chatID).Cancel()

	if err := session.Advance(); err != nil {
		return false, err
	}

	if session.State != entities.StateFinished {
		return false, nil
	}

	report, err := session.Report()
	if err != nil {
		return false, err
	}
	s.sessions.StoreReport(chatID, &report)

	s.logger.Info("session finished",
		zap.Int64("chat_id", chatID),
		zap.String("session_id", session.ID),
		zap.Int("score", report.Score),
		zap.Int("mistakes", len(report.Mistakes)),
	)
	return true, nil
}

// ArmCountdown arms the per-question countdown for a chat. fire runs if
// the countdown expires before the question is answered; the delivery
// layer submits the empty answer and renders the timeout from it.
func (s *QuizService) ArmCountdown(chatID int64, fire func()) {
	if s.cfg.QuestionSeconds <= 0 {
		return
	}
	s.countdown(chatID).Start(time.Duration(s.cfg.QuestionSeconds)*time.Second, fire)
}

// QuestionSeconds returns the configured countdown length.
func (s *QuizService) QuestionSeconds() int {
	return s.cfg.QuestionSeconds
}

// ToggleBookmark flips the bookmark on the chat's current question and
// reports the new state. Bookmarks are independent of the running
// session and survive it.
func (s *QuizService) ToggleBookmark(chatID int64) (bool, error) {
	lock := s.chatLock(chatID)
	lock.Lock()
	defer lock.Unlock()

	session, ok := s.sessions.Get(chatID)
	if !ok {
		return false, entities.ErrNoCurrentQuestion
	}

	q, err := session.Current()
	if err != nil {
		return false, err
	}
	return s.bookmarks.Toggle(q.Key()), nil
}

// CurrentBookmarked reports whether the chat's current question is
// bookmarked.
func (s *QuizService) CurrentBookmarked(chatID int64) bool {
	lock := s.chatLock(chatID)
	lock.Lock()
	defer lock.Unlock()

	session, ok := s.sessions.Get(chatID)
	if !ok {
		return false
	}
	q, err := session.Current()
	if err != nil {
		return false
	}
	return s.bookmarks.IsBookmarked(q.Key())
}

// BookmarkedQuestions returns the bookmarked questions in master-list
// order, for the bookmarks screen.
func (s *QuizService) BookmarkedQuestions() []entities.Question {
	keys := s.bookmarks.Keys()
	if len(keys) == 0 {
		return nil
	}

	var out []entities.Question
	for _, q := range uniqueByKey(s.catalog.Master()) {
		if _, ok := keys[q.Key()]; ok {
			out = append(out, q)
		}
	}
	return out
}

// Report returns the chat's last finished report.
func (s *QuizService) Report(chatID int64) (*entities.Report, bool) {
	return s.sessions.Report(chatID)
}

func (s *QuizService) countdown(chatID int64) *Countdown {
	s.mu.Lock()
	defer s.mu.Unlock()

	cd, ok := s.countdowns[chatID]
	if !ok {
		cd = NewCountdown()
		s.countdowns[chatID] = cd
	}
	return cd
}

// chatLock returns the mutex serializing session mutations for a chat.
// The countdown expiry fires on the timer goroutine while the user's
// answer arrives on the update loop; every path that touches the chat's
// session goes through this lock, never through the session directly.
func (s *QuizService) chatLock(chatID int64) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.chatLocks[chatID]
	if !ok {
		lock = &sync.Mutex{}
		s.chatLocks[chatID] = lock
	}
	return lock
}
