package repository

import (
	"context"

	"sprint-service/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type AttemptRepository struct {
	Col *mongo.Collection
}

func NewAttemptRepository(db *mongo.Database) *AttemptRepository {
	return &AttemptRepository{Col: db.Collection("attempts")}
}

// Create appends to the attempt ledger. There is no update or delete path;
// attempts are immutable facts.
func (r *AttemptRepository) Create(ctx context.Context, attempt *models.Attempt) error {
	res, err := r.Col.InsertOne(ctx, attempt)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		attempt.ID = oid
	}
	return nil
}

// PatternBucket is one aggregation row: attempts for a user grouped by
// (pattern, subject, difficulty).
type PatternBucket struct {
	Pattern    string  `bson:"pattern"`
	Subject    string  `bson:"subject"`
	Difficulty string  `bson:"difficulty"`
	Total      int     `bson:"total"`
	Correct    int     `bson:"correct"`
	AvgTimeMS  float64 `bson:"avg_time"`
}

// AggregateBuckets groups the user's attempts by pattern, subject and
// difficulty, excluding attempts tied to the given sessions. Standalone
// attempts carry no session id and are never excluded.
func (r *AttemptRepository) AggregateBuckets(ctx context.Context, userID string, excludeSessionIDs []primitive.ObjectID) ([]PatternBucket, error) {
	match := bson.M{"user_id": userID}
	if len(excludeSessionIDs) > 0 {
		match["session_id"] = bson.M{"$nin": excludeSessionIDs}
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.M{
			"_id": bson.M{
				"pattern":    "$pattern",
				"subject":    "$subject",
				"difficulty": "$difficulty",
			},
			"total":    bson.M{"$sum": 1},
			"correct":  bson.M{"$sum": bson.M{"$cond": bson.A{"$is_correct", 1, 0}}},
			"avg_time": bson.M{"$avg": "$time_ms"},
		}}},
		{{Key: "$project", Value: bson.M{
			"_id":        0,
			"pattern":    "$_id.pattern",
			"subject":    "$_id.subject",
			"difficulty": "$_id.difficulty",
			"total":      1,
			"correct":    1,
			"avg_time":   1,
		}}},
	}

	cur, err := r.Col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var buckets []PatternBucket
	if err := cur.All(ctx, &buckets); err != nil {
		return nil, err
	}
	return buckets, nil
}

// ListByUser returns the user's attempt history, newest first.
func (r *AttemptRepository) ListByUser(ctx context.Context, userID string, limit int64) ([]models.Attempt, error) {
	opts := optionsFindNewest(limit)
	cur, err := r.Col.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var attempts []models.Attempt
	if err := cur.All(ctx, &attempts); err != nil {
		return nil, err
	}
	return attempts, nil
}
