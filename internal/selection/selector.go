package selection

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"sprint-service/internal/models"
	"sprint-service/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// overfetchFactor bounds selection cost: we pull a multiple of the requested
// count from storage and shuffle locally instead of sampling the whole pool.
const overfetchFactor = 5

// ErrNoMatchingTopics is returned when a non-wildcard topic set resolves to
// zero known topics. Failing fast beats silently returning an unfiltered set.
var ErrNoMatchingTopics = errors.New("no matching topics")

// InsufficientPoolError reports how many eligible questions exist versus how
// many were requested, so callers can adjust.
type InsufficientPoolError struct {
	Available int
	Requested int
}

func (e *InsufficientPoolError) Error() string {
	return fmt.Sprintf("insufficient question pool: %d available, %d requested", e.Available, e.Requested)
}

// Selector draws pseudo-randomized, de-duplicated question samples from the
// verified pool. It is not cryptographically random; ties break arbitrarily.
type Selector struct {
	questions *repository.QuestionRepository
	rand      *rand.Rand
}

func NewSelector(questions *repository.QuestionRepository) *Selector {
	return &Selector{
		questions: questions,
		rand:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Select returns count question ids matching subject, topics and difficulty.
// Topic tags resolve to the bank's internal codes unless the set contains the
// ALL wildcard (or is empty), in which case no topic filter applies.
func (s *Selector) Select(ctx context.Context, subject string, topicTags []string, difficulty string, count int) ([]models.Question, error) {
	var topics []string
	if !ContainsAll(topicTags) {
		topics = ResolveTopics(topicTags)
		if len(topics) == 0 {
			return nil, ErrNoMatchingTopics
		}
	}

	available, err := s.questions.CountEligible(ctx, subject, topics, difficulty)
	if err != nil {
		return nil, err
	}
	if available < int64(count) {
		return nil, &InsufficientPoolError{Available: int(available), Requested: count}
	}

	pool, err := s.questions.FindEligible(ctx, subject, topics, difficulty, int64(count*overfetchFactor))
	if err != nil {
		return nil, err
	}
	if len(pool) < count {
		return nil, &InsufficientPoolError{Available: len(pool), Requested: count}
	}

	return s.sample(pool, count), nil
}

// sample shuffles the pool in place and truncates. Fisher-Yates gives every
// question in the fetched pool equal odds.
func (s *Selector) sample(pool []models.Question, count int) []models.Question {
	s.rand.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	return pool[:count]
}

// QuestionIDs projects a selection to its ordered id list.
func QuestionIDs(questions []models.Question) []primitive.ObjectID {
	ids := make([]primitive.ObjectID, len(questions))
	for i, q := range questions {
		ids[i] = q.ID
	}
	return ids
}
