package db

import (
	"context"
	"time"

	"sprint-service/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var Client *mongo.Client

// InitMongo connects and pings the deployment.
func InitMongo(uri string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return err
	}
	Client = client
	return nil
}

// sessionIndexModels declares the session indexes. The partial unique index
// is what enforces at most one IN_PROGRESS session per user: concurrent
// starts race, but the second insert gets a duplicate key error instead of a
// second live session.
func sessionIndexModels() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"status": models.StatusInProgress}).
				SetName("one_live_session_per_user"),
		},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "status", Value: 1}}},
	}
}

// EnsureIndexes creates the indexes the service depends on.
func EnsureIndexes(ctx context.Context, database *mongo.Database) error {
	sessions := database.Collection("sessions")
	attempts := database.Collection("attempts")
	questions := database.Collection("questions")

	_, err := sessions.Indexes().CreateMany(ctx, sessionIndexModels())
	if err != nil {
		return err
	}

	_, err = attempts.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "session_id", Value: 1}}},
	})
	if err != nil {
		return err
	}

	_, err = questions.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "subject", Value: 1}, {Key: "difficulty", Value: 1}, {Key: "topic", Value: 1}},
	})
	return err
}
