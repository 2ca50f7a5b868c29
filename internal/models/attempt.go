package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Attempt is the immutable record of one answered question. It is written
// once on submission and never updated or deleted; analytics aggregates over
// this ledger rather than over session bookkeeping.
//
// Subject, pattern and difficulty are denormalized from the question at
// attempt time so the record survives question-bank edits and aggregation
// needs no joins.
type Attempt struct {
	ID             primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	UserID         string              `bson:"user_id" json:"user_id"`
	QuestionID     primitive.ObjectID  `bson:"question_id" json:"question_id"`
	SessionID      *primitive.ObjectID `bson:"session_id,omitempty" json:"session_id,omitempty"`
	SelectedOption string              `bson:"selected_option" json:"selected_option"`
	IsCorrect      bool                `bson:"is_correct" json:"is_correct"`
	TimeMS         int64               `bson:"time_ms" json:"time_ms"`
	Subject        string              `bson:"subject" json:"subject"`
	Pattern        string              `bson:"pattern" json:"pattern"`
	Difficulty     string              `bson:"difficulty" json:"difficulty"`
	CreatedAt      time.Time           `bson:"created_at" json:"created_at"`
}

// NewAttempt builds the ledger record for an answered question. A nil
// sessionID marks standalone practice outside any sprint.
func NewAttempt(userID string, q *Question, sessionID *primitive.ObjectID, selectedOption string, isCorrect bool, timeMS int64) *Attempt {
	return &Attempt{
		UserID:         userID,
		QuestionID:     q.ID,
		SessionID:      sessionID,
		SelectedOption: selectedOption,
		IsCorrect:      isCorrect,
		TimeMS:         timeMS,
		Subject:        q.Subject,
		Pattern:        q.Pattern,
		Difficulty:     q.Difficulty,
		CreatedAt:      time.Now().UTC(),
	}
}
