package db

import (
	"testing"

	"sprint-service/internal/models"

	"go.mongodb.org/mongo-driver/bson"
)

func TestSessionIndexEnforcesSingleLiveSession(t *testing.T) {
	idx := sessionIndexModels()[0]

	opts := idx.Options
	if opts == nil || opts.Unique == nil || !*opts.Unique {
		t.Fatal("Expected a unique index")
	}
	if opts.Name == nil || *opts.Name != "one_live_session_per_user" {
		t.Errorf("Unexpected index name: %v", opts.Name)
	}
	partial, ok := opts.PartialFilterExpression.(bson.M)
	if !ok || partial["status"] != models.StatusInProgress {
		t.Errorf("Expected partial filter on IN_PROGRESS, got %v", opts.PartialFilterExpression)
	}
	keys, ok := idx.Keys.(bson.D)
	if !ok || len(keys) != 1 || keys[0].Key != "user_id" {
		t.Errorf("Expected a single user_id key, got %v", idx.Keys)
	}
}
