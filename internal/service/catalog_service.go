package service

import (
	"context"
	"fmt"

	"sprint-service/internal/models"
	"sprint-service/internal/repository"
)

// CatalogService serves the static configuration surface a client needs to
// set up a sprint: available subjects, difficulty allowances and the topics
// that actually have verified questions.
type CatalogService struct {
	Questions *repository.QuestionRepository
}

func NewCatalogService(questions *repository.QuestionRepository) *CatalogService {
	return &CatalogService{Questions: questions}
}

type DifficultyInfo struct {
	Difficulty   string `json:"difficulty"`
	TimePerQSecs int    `json:"time_per_question_s"`
}

type SprintConfigs struct {
	Subjects     []string         `json:"subjects"`
	Difficulties []DifficultyInfo `json:"difficulties"`
}

// Configs returns the fixed sprint configuration tables.
func (s *CatalogService) Configs() SprintConfigs {
	return SprintConfigs{
		Subjects: []string{models.SubjectQuant, models.SubjectReasoning},
		Difficulties: []DifficultyInfo{
			{Difficulty: models.DifficultyEasy, TimePerQSecs: models.DifficultyTimeSeconds[models.DifficultyEasy]},
			{Difficulty: models.DifficultyMedium, TimePerQSecs: models.DifficultyTimeSeconds[models.DifficultyMedium]},
			{Difficulty: models.DifficultyHard, TimePerQSecs: models.DifficultyTimeSeconds[models.DifficultyHard]},
			{Difficulty: models.DifficultyMixed, TimePerQSecs: models.DifficultyTimeSeconds[models.DifficultyMixed]},
		},
	}
}

// Topics lists the topics with verified questions for a subject.
func (s *CatalogService) Topics(ctx context.Context, subject string) ([]string, error) {
	if !models.ValidSubject(subject) {
		return nil, fmt.Errorf("%w: unknown subject %q", ErrMissingParams, subject)
	}
	return s.Questions.DistinctTopics(ctx, subject)
}
