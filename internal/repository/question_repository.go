package repository

import (
	"context"

	"sprint-service/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type QuestionRepository struct {
	Col *mongo.Collection
}

func NewQuestionRepository(db *mongo.Database) *QuestionRepository {
	return &QuestionRepository{Col: db.Collection("questions")}
}

func (r *QuestionRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Question, error) {
	var question models.Question
	err := r.Col.FindOne(ctx, bson.M{"_id": id}).Decode(&question)
	if err != nil {
		return nil, err
	}
	return &question, nil
}

func eligibilityFilter(subject string, topics []string, difficulty string) bson.M {
	filter := bson.M{
		"is_verified": true,
		"subject":     subject,
	}
	if difficulty != models.DifficultyMixed {
		filter["difficulty"] = difficulty
	}
	if len(topics) > 0 {
		filter["topic"] = bson.M{"$in": topics}
	}
	return filter
}

// CountEligible counts verified questions matching the sprint criteria. A nil
// topics slice means no topic filter.
func (r *QuestionRepository) CountEligible(ctx context.Context, subject string, topics []string, difficulty string) (int64, error) {
	return r.Col.CountDocuments(ctx, eligibilityFilter(subject, topics, difficulty))
}

// FindEligible returns up to limit eligible questions. Callers overfetch and
// shuffle; ordering here is storage order and carries no meaning.
func (r *QuestionRepository) FindEligible(ctx context.Context, subject string, topics []string, difficulty string, limit int64) ([]models.Question, error) {
	opts := options.Find().SetLimit(limit).SetProjection(bson.M{
		"_id": 1, "subject": 1, "pattern": 1, "topic": 1, "difficulty": 1,
	})
	cur, err := r.Col.Find(ctx, eligibilityFilter(subject, topics, difficulty), opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var questions []models.Question
	if err := cur.All(ctx, &questions); err != nil {
		return nil, err
	}
	return questions, nil
}

// DistinctTopics lists the topics that have verified questions for a subject.
func (r *QuestionRepository) DistinctTopics(ctx context.Context, subject string) ([]string, error) {
	values, err := r.Col.Distinct(ctx, "topic", bson.M{"subject": subject, "is_verified": true})
	if err != nil {
		return nil, err
	}
	topics := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok && s != "" {
			topics = append(topics, s)
		}
	}
	return topics, nil
}
