package entities

import (
	"fmt"
	"hash/fnv"
)

// Question is a single multiple-choice question loaded from a bank file.
type Question struct {
	ID          string   `json:"id,omitempty"`    // stable identifier assigned by the content pipeline (optional)
	Text        string   `json:"question"`        // question text shown to the user
	Choices     []string `json:"choices"`         // answer options, at least two, unique
	Answer      string   `json:"answer"`          // correct answer, must be one of Choices
	Explanation string   `json:"explanation"`     // shown after the question is answered
	Image       string   `json:"image,omitempty"` // optional image URI
	SourceTopic string   `json:"-"`               // topic the question was loaded from, set by the catalog
}

// Key returns the identity used for bookmarking and mistake tracking.
// It prefers the explicit ID from the content pipeline; banks without IDs
// fall back to a hash of the question text, which collides for questions
// with identical wording and orphans bookmarks when a question is reworded.
func (q Question) Key() string {
	if q.ID != "" {
		return q.ID
	}

	h := fnv.New64a()
	_, _ = h.Write([]byte(q.Text))
	return fmt.Sprintf("t:%x", h.Sum64())
}

// Valid reports whether the question satisfies the bank invariants:
// non-empty text, at least two distinct non-empty choices and an answer
// that is one of them. Rejecting empty choices keeps the empty string as
// the never-matching timeout submission.
func (q Question) Valid() bool {
	if q.Text == "" || len(q.Choices) < 2 {
		return false
	}

	seen := make(map[string]struct{}, len(q.Choices))
	for _, c := range q.Choices {
		if c == "" {
			return false
		}
		if _, ok := seen[c]; ok {
			return false
		}
		seen[c] = struct{}{}
	}

	_, ok := seen[q.Answer]
	return ok
}

// AnswerResult is returned after an answer is submitted so the view can
// render feedback before advancing.
type AnswerResult struct {
	Correct       bool
	CorrectAnswer string
	Explanation   string
}
