package entities

import (
	"errors"
	"testing"
)

func threeQuestions() []Question {
	return []Question{
		{ID: "q1", Text: "1+1?", Choices: []string{"2", "3"}, Answer: "2", Explanation: "basic"},
		{ID: "q2", Text: "2+2?", Choices: []string{"4", "5"}, Answer: "4"},
		{ID: "q3", Text: "3+3?", Choices: []string{"6", "7"}, Answer: "6"},
	}
}

func mustAnswerAndAdvance(t *testing.T, s *Session, choice string) AnswerResult {
	t.Helper()
	result, err := s.Submit(choice, 0)
	if err != nil {
		t.Fatalf("Submit(%q): %v", choice, err)
	}
	if err := s.Advance(); err != nil {
		t.Fatalf("Advance after Submit(%q): %v", choice, err)
	}
	return result
}

func TestNewSessionStartsRunning(t *testing.T) {
	s := NewSession(threeQuestions(), ModeStandard)

	if s.State != StateRunning {
		t.Errorf("State = %v, want %v", s.State, StateRunning)
	}
	if s.CurrentIndex != 0 || s.Score != 0 || len(s.Mistakes) != 0 {
		t.Errorf("fresh session not zeroed: index=%d score=%d mistakes=%d",
			s.CurrentIndex, s.Score, len(s.Mistakes))
	}
	if s.ID == "" {
		t.Error("session has no ID")
	}
}

func TestCurrentReturnsQuestionAtPointer(t *testing.T) {
	s := NewSession(threeQuestions(), ModeStandard)

	q, err := s.Current()
	if err != nil {
		t.Fatalf("Current: %v", err)
	}
	if q.ID != "q1" {
		t.Errorf("Current = %s, want q1", q.ID)
	}
}

func TestSubmitCorrectScoresBaseAward(t *testing.T) {
	s := NewSession(threeQuestions(), ModeStandard)

	result, err := s.Submit("2", 0)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if !result.Correct {
		t.Error("result.Correct = false, want true")
	}
	if result.CorrectAnswer != "2" || result.Explanation != "basic" {
		t.Errorf("feedback = %+v", result)
	}
	if s.Score != BaseAward {
		t.Errorf("Score = %d, want %d", s.Score, BaseAward)
	}
	if len(s.Mistakes) != 0 {
		t.Errorf("Mistakes = %d, want 0", len(s.Mistakes))
	}
}

func TestSubmitAppliesTimeBonus(t *testing.T) {
	s := NewSession(threeQuestions(), ModeStandard)

	if _, err := s.Submit("2", 70); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if s.Score != BaseAward+70 {
		t.Errorf("Score = %d, want %d", s.Score, BaseAward+70)
	}
}

func TestSubmitIncorrectRecordsMistake(t *testing.T) {
	s := NewSession(threeQuestions(), ModeStandard)

	result, err := s.Submit("3", 50)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if result.Correct {
		t.Error("result.Correct = true, want false")
	}
	if s.Score != 0 {
		t.Errorf("Score = %d, want 0 (no bonus on a miss)", s.Score)
	}
	if len(s.Mistakes) != 1 || s.Mistakes[0].ID != "q1" {
		t.Errorf("Mistakes = %+v, want [q1]", s.Mistakes)
	}
}

func TestSubmitEmptyChoiceNeverMatches(t *testing.T) {
	s := NewSession(threeQuestions(), ModeStandard)

	result, err := s.Submit("", 0)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if result.Correct {
		t.Error("empty choice scored as correct")
	}
}

func TestDoubleSubmitFailsWithAlreadyAnswered(t *testing.T) {
	s := NewSession(threeQuestions(), ModeStandard)

	if _, err := s.Submit("2", 0); err != nil {
		t.Fatalf("first Submit: %v", err)
	}
	_, err := s.Submit("3", 0)
	if !errors.Is(err, ErrAlreadyAnswered) {
		t.Errorf("second Submit err = %v, want ErrAlreadyAnswered", err)
	}
	if s.Score != BaseAward || len(s.Mistakes) != 0 {
		t.Errorf("second Submit mutated the session: score=%d mistakes=%d", s.Score, len(s.Mistakes))
	}
}

func TestSubmitAllowedAgainAfterAdvance(t *testing.T) {
	s := NewSession(threeQuestions(), ModeStandard)

	mustAnswerAndAdvance(t, s, "2")
	if _, err := s.Submit("4", 0); err != nil {
		t.Errorf("Submit after Advance: %v", err)
	}
}

func TestAdvanceBeforeAnswerFails(t *testing.T) {
	s := NewSession(threeQuestions(), ModeStandard)

	if err := s.Advance(); !errors.Is(err, ErrInvalidState) {
		t.Errorf("Advance before answer err = %v, want ErrInvalidState", err)
	}
}

func TestRunToCompletion(t *testing.T) {
	s := NewSession(threeQuestions(), ModeStandard)

	mustAnswerAndAdvance(t, s, "2") // correct
	mustAnswerAndAdvance(t, s, "5") // wrong
	mustAnswerAndAdvance(t, s, "6") // correct

	if s.State != StateFinished {
		t.Fatalf("State = %v, want %v", s.State, StateFinished)
	}
	if s.CompletedAt == nil {
		t.Error("CompletedAt not set on finish")
	}

	report, err := s.Report()
	if err != nil {
		t.Fatalf("Report: %v", err)
	}
	if report.Score != 2*BaseAward {
		t.Errorf("Score = %d, want %d", report.Score, 2*BaseAward)
	}
	if report.TotalQuestions != 3 {
		t.Errorf("TotalQuestions = %d, want 3", report.TotalQuestions)
	}
	if len(report.Mistakes) != 1 || report.Mistakes[0].ID != "q2" {
		t.Errorf("Mistakes = %+v, want [q2]", report.Mistakes)
	}
}

func TestOperationsAfterFinishFail(t *testing.T) {
	s := NewSession(threeQuestions()[:1], ModeStandard)
	mustAnswerAndAdvance(t, s, "2")

	if err := s.Advance(); !errors.Is(err, ErrInvalidState) {
		t.Errorf("Advance after finish err = %v, want ErrInvalidState", err)
	}
	if _, err := s.Current(); !errors.Is(err, ErrNoCurrentQuestion) {
		t.Errorf("Current after finish err = %v, want ErrNoCurrentQuestion", err)
	}
	if _, err := s.Submit("2", 0); !errors.Is(err, ErrNoCurrentQuestion) {
		t.Errorf("Submit after finish err = %v, want ErrNoCurrentQuestion", err)
	}
}

func TestReportBeforeFinishFails(t *testing.T) {
	s := NewSession(threeQuestions(), ModeStandard)

	if _, err := s.Report(); !errors.Is(err, ErrInvalidState) {
		t.Errorf("Report while running err = %v, want ErrInvalidState", err)
	}
}

func TestScoreAfterConsecutiveCorrectAnswers(t *testing.T) {
	questions := threeQuestions()
	s := NewSession(questions, ModeStandard)

	for _, q := range questions {
		mustAnswerAndAdvance(t, s, q.Answer)
	}

	if s.Score != len(questions)*BaseAward {
		t.Errorf("Score = %d, want %d", s.Score, len(questions)*BaseAward)
	}
}
