package repository

import (
	"context"
	"time"

	"sprint-service/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type SessionRepository struct {
	Col *mongo.Collection
}

func NewSessionRepository(db *mongo.Database) *SessionRepository {
	return &SessionRepository{Col: db.Collection("sessions")}
}

func (r *SessionRepository) Create(ctx context.Context, session *models.PracticeSession) error {
	now := time.Now().UTC()
	session.CreatedAt = now
	session.UpdatedAt = now
	res, err := r.Col.InsertOne(ctx, session)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		session.ID = oid
	}
	return nil
}

// FindByIDAndUser scopes every lookup to the owning user so "not yours" and
// "does not exist" are indistinguishable to callers.
func (r *SessionRepository) FindByIDAndUser(ctx context.Context, id primitive.ObjectID, userID string) (*models.PracticeSession, error) {
	var session models.PracticeSession
	err := r.Col.FindOne(ctx, bson.M{"_id": id, "user_id": userID}).Decode(&session)
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// AbandonActive force-transitions any IN_PROGRESS session of the user to
// ABANDONED. Starting a new sprint always wins over prior progress.
func (r *SessionRepository) AbandonActive(ctx context.Context, userID string) error {
	now := time.Now().UTC()
	_, err := r.Col.UpdateMany(ctx,
		bson.M{"user_id": userID, "status": models.StatusInProgress},
		bson.M{"$set": bson.M{
			"status":       models.StatusAbandoned,
			"completed_at": now,
			"updated_at":   now,
		}},
	)
	return err
}

// appendAnswerFilter matches a session only while it can still accept this
// answer: owned by the user, IN_PROGRESS, and with no answer for the question
// yet. The last clause is the idempotency guard; a duplicate submission
// matches nothing instead of double-counting.
func appendAnswerFilter(id primitive.ObjectID, userID string, questionID primitive.ObjectID) bson.M {
	return bson.M{
		"_id":                 id,
		"user_id":             userID,
		"status":              models.StatusInProgress,
		"answers.question_id": bson.M{"$ne": questionID},
	}
}

// appendAnswerUpdate pushes the answer and advances the session counters in
// the same write.
func appendAnswerUpdate(answer models.SessionAnswer) bson.M {
	correctInc := 0
	if answer.IsCorrect {
		correctInc = 1
	}
	return bson.M{
		"$push": bson.M{"answers": answer},
		"$inc": bson.M{
			"correct_count": correctInc,
			"current_index": 1,
			"total_time_ms": answer.TimeMS,
		},
		"$set": bson.M{"updated_at": time.Now().UTC()},
	}
}

// AppendAnswer records an answer if and only if the session is still
// IN_PROGRESS, belongs to the user, and has no answer for that question yet.
// The guard lives in the filter, so concurrent duplicate submissions cannot
// double-count: the second writer matches nothing. Returns the updated
// session, or mongo.ErrNoDocuments when the guard rejected the write.
func (r *SessionRepository) AppendAnswer(ctx context.Context, id primitive.ObjectID, userID string, answer models.SessionAnswer) (*models.PracticeSession, error) {
	filter := appendAnswerFilter(id, userID, answer.QuestionID)
	update := appendAnswerUpdate(answer)

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var session models.PracticeSession
	if err := r.Col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&session); err != nil {
		return nil, err
	}
	return &session, nil
}

// Finalize writes a terminal status with its stats block. The status filter
// makes the transition race-safe: only one writer moves the session out of
// IN_PROGRESS.
func (r *SessionRepository) Finalize(ctx context.Context, id primitive.ObjectID, userID, status string, stats models.SessionStats, topicPerf []models.TopicPerformance) (*models.PracticeSession, error) {
	now := time.Now().UTC()
	filter := bson.M{"_id": id, "user_id": userID, "status": models.StatusInProgress}
	update := bson.M{"$set": bson.M{
		"status":            status,
		"stats":             stats,
		"topic_performance": topicPerf,
		"total_time_ms":     stats.TotalTimeMS,
		"completed_at":      now,
		"updated_at":        now,
	}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var session models.PracticeSession
	if err := r.Col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&session); err != nil {
		return nil, err
	}
	return &session, nil
}

// ListByUser returns the user's sessions, newest first.
func (r *SessionRepository) ListByUser(ctx context.Context, userID string, limit int64) ([]models.PracticeSession, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}).SetLimit(limit)
	cur, err := r.Col.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var sessions []models.PracticeSession
	if err := cur.All(ctx, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

// InvalidSessionIDs returns sessions excluded from analytics: anything not
// completed, plus completed sessions whose total time is implausibly small.
func (r *SessionRepository) InvalidSessionIDs(ctx context.Context, userID string) ([]primitive.ObjectID, error) {
	filter := bson.M{
		"user_id": userID,
		"$or": []bson.M{
			{"status": bson.M{"$ne": models.StatusCompleted}},
			{"stats.total_time_ms": bson.M{"$lt": models.MinValidSessionTimeMS}},
			{"total_time_ms": bson.M{"$lt": models.MinValidSessionTimeMS}},
		},
	}
	opts := options.Find().SetProjection(bson.M{"_id": 1})
	cur, err := r.Col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	ids := make([]primitive.ObjectID, len(docs))
	for i, d := range docs {
		ids[i] = d.ID
	}
	return ids, nil
}

// ValidCompletedSessions returns completed, statistically valid sessions in
// chronological order with their topic performance snapshots. Consistency
// alerts depend on this ordering.
func (r *SessionRepository) ValidCompletedSessions(ctx context.Context, userID string, excludeIDs []primitive.ObjectID) ([]models.PracticeSession, error) {
	filter := bson.M{
		"user_id": userID,
		"status":  models.StatusCompleted,
	}
	if len(excludeIDs) > 0 {
		filter["_id"] = bson.M{"$nin": excludeIDs}
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: 1}}).
		SetProjection(bson.M{"topic_performance": 1, "config": 1, "created_at": 1})
	cur, err := r.Col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var sessions []models.PracticeSession
	if err := cur.All(ctx, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}
