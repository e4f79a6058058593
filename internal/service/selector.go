package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/oubmed/medquiz-bot/internal/domain/entities"
	"github.com/oubmed/medquiz-bot/internal/repository"
)

var (
	ErrNoQuestionsAvailable = errors.New("no questions available")
	ErrMasterListNotReady   = errors.New("master list not ready")
)

// QuestionSelector turns a user selection into the ordered question
// sequence for a run: filtered, deduplicated, uniformly shuffled and
// capped according to the mode.
type QuestionSelector struct {
	catalog   CatalogRepository
	bookmarks BookmarkRepository

	rng *rand.Rand
}

// NewQuestionSelector creates a new QuestionSelector.
func NewQuestionSelector(catalog CatalogRepository, bookmarks BookmarkRepository) *QuestionSelector {
	return &QuestionSelector{
		catalog:   catalog,
		bookmarks: bookmarks,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// SelectTopic picks questions for a standard single-topic run: the
// topic's bank, shuffled, capped to count. A count of 0 means all; a
// count above the bank size caps silently to the bank size.
func (s *QuestionSelector) SelectTopic(ctx context.Context, year, module, topic string, count int) ([]entities.Question, error) {
	path, ok := s.catalog.Resolve(year, module, topic)
	if !ok {
		return nil, fmt.Errorf("%w: %s/%s/%s", repository.ErrTopicNotFound, year, module, topic)
	}

	bank := s.catalog.LoadBank(ctx, entities.BankRef{Year: year, Module: module, Topic: topic, Path: path})
	return takeFirst(s.shuffled(bank), count), nil
}

// SelectDaily picks the daily challenge: a uniform sample of the whole
// master list. Reports the master list still loading as a soft failure.
func (s *QuestionSelector) SelectDaily(dailyCount int) ([]entities.Question, error) {
	master := s.catalog.Master()
	if len(master) == 0 {
		return nil, ErrMasterListNotReady
	}

	return takeFirst(s.shuffled(uniqueByKey(master)), dailyCount), nil
}

// SelectBookmarks picks every master-list question whose key is in the
// bookmark set, shuffled, uncapped. An empty result is a valid outcome
// ("nothing to review"), not an error.
func (s *QuestionSelector) SelectBookmarks() []entities.Question {
	keys := s.bookmarks.Keys()
	if len(keys) == 0 {
		return nil
	}

	var matched []entities.Question
	for _, q := range s.catalog.Master() {
		if _, ok := keys[q.Key()]; ok {
			matched = append(matched, q)
		}
	}

	return s.shuffled(uniqueByKey(matched))
}

// SelectReview picks the previous run's mistakes verbatim, shuffled,
// uncapped. No dedup: a question missed twice appears twice only if it
// was presented twice.
func (s *QuestionSelector) SelectReview(mistakes []entities.Question) []entities.Question {
	return s.shuffled(mistakes)
}

// shuffled returns a uniformly shuffled copy of the input. rand.Shuffle
// is a Fisher-Yates permutation; every ordering is equally likely.
func (s *QuestionSelector) shuffled(in []entities.Question) []entities.Question {
	out := append([]entities.Question(nil), in...)
	s.rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// uniqueByKey removes duplicate questions by identity key while
// preserving the original order.
func uniqueByKey(qs []entities.Question) []entities.Question {
	seen := make(map[string]struct{}, len(qs))
	out := make([]entities.Question, 0, len(qs))
	for _, q := range qs {
		key := q.Key()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, q)
	}
	return out
}

// takeFirst returns the first n questions, or the whole slice if n <= 0
// or the slice is shorter.
func takeFirst(qs []entities.Question, n int) []entities.Question {
	if n <= 0 || len(qs) <= n {
		return qs
	}
	return qs[:n]
}
