package entities

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Mode is the question-selection strategy a session was started with.
type Mode string

const (
	ModeStandard  Mode = "standard"  // one topic chosen by the user
	ModeDaily     Mode = "daily"     // random sample of the master list
	ModeBookmarks Mode = "bookmarks" // bookmarked questions only
	ModeReview    Mode = "review"    // mistakes of the previous session
)

// SessionState is the lifecycle state of a quiz session.
type SessionState string

const (
	StateRunning  SessionState = "running"
	StateFinished SessionState = "finished"
)

// State machine misuse sentinels. The view never triggers these if it
// obeys the session state; seeing one logged means a delivery bug.
var (
	ErrNoCurrentQuestion = errors.New("session: no current question")
	ErrAlreadyAnswered   = errors.New("session: current question already answered")
	ErrInvalidState      = errors.New("session: operation invalid in current state")
)

// BaseAward is the score added for every correct answer, before any
// time bonus.
const BaseAward = 100

// Session is one run of the quiz from start to finish. The question
// sequence is fixed at construction and never mutated mid-run.
//
// A Session is not safe for concurrent use on its own: a countdown
// expiry submits from the timer goroutine while the user's answer comes
// from the update loop, so the quiz service serializes all access to a
// chat's session behind a per-chat lock.
type Session struct {
	ID           string       // unique session ID
	Mode         Mode         // selection strategy the session was built with
	Questions    []Question   // ordered question sequence, fixed at start
	CurrentIndex int          // 0 <= CurrentIndex <= len(Questions); == len means completed
	Score        int          // accumulated score
	Mistakes     []Question   // questions answered incorrectly during this run
	State        SessionState // running or finished
	StartedAt    time.Time    // when the session started
	CompletedAt  *time.Time   // when the session finished (nil while running)

	answered bool // whether the current question has been answered
}

// NewSession creates a running session over a non-empty question
// sequence. Emptiness is guarded by the quiz service before construction.
func NewSession(questions []Question, mode Mode) *Session {
	return &Session{
		ID:        uuid.New().String(),
		Mode:      mode,
		Questions: questions,
		State:     StateRunning,
		StartedAt: time.Now(),
	}
}

// Current returns the question at the progress pointer.
func (s *Session) Current() (Question, error) {
	if s.State != StateRunning || s.CurrentIndex >= len(s.Questions) {
		return Question{}, ErrNoCurrentQuestion
	}
	return s.Questions[s.CurrentIndex], nil
}

// Answered reports whether the current question has already been answered.
func (s *Session) Answered() bool {
	return s.answered
}

// Submit checks the chosen answer against the current question using
// exact string equality. A correct answer adds BaseAward plus the given
// bonus; an incorrect one appends the question to Mistakes. Submit does
// not advance the progress pointer, and a second call for the same
// question fails with ErrAlreadyAnswered until Advance is called.
func (s *Session) Submit(choice string, bonus int) (AnswerResult, error) {
	q, err := s.Current()
	if err != nil {
		return AnswerResult{}, err
	}
	if s.answered {
		return AnswerResult{}, ErrAlreadyAnswered
	}
	s.answered = true

	correct := choice == q.Answer
	if correct {
		s.Score += BaseAward + bonus
	} else {
		s.Mistakes = append(s.Mistakes, q)
	}

	return AnswerResult{
		Correct:       correct,
		CorrectAnswer: q.Answer,
		Explanation:   q.Explanation,
	}, nil
}

// Advance moves the progress pointer past the answered question. When
// the pointer reaches the end of the sequence the session transitions to
// finished and its score and mistakes become the permanent report.
func (s *Session) Advance() error {
	if s.State != StateRunning || !s.answered {
		return ErrInvalidState
	}

	s.answered = false
	s.CurrentIndex++
	if s.CurrentIndex == len(s.Questions) {
		s.State = StateFinished
		now := time.Now()
		s.CompletedAt = &now
	}
	return nil
}

// Report is the terminal summary of a finished session.
type Report struct {
	Mode           Mode
	Score          int
	TotalQuestions int
	Mistakes       []Question
}

// Report returns the terminal summary. Valid only once the session is
// finished.
func (s *Session) Report() (Report, error) {
	if s.State != StateFinished {
		return Report{}, ErrInvalidState
	}
	return Report{
		Mode:           s.Mode,
		Score:          s.Score,
		TotalQuestions: len(s.Questions),
		Mistakes:       s.Mistakes,
	}, nil
}
