package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Option is one answer choice.
type Option struct {
	ID   string `bson:"id" json:"id"`
	Text string `bson:"text" json:"text"`
}

// Question is bank content consumed by the sprint engine. The bank itself is
// curated elsewhere; this service only reads verified questions and their
// correct option.
type Question struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Content       string             `bson:"content" json:"content"`
	Options       []Option           `bson:"options" json:"options"`
	CorrectOption string             `bson:"correct_option" json:"-"`
	Explanation   string             `bson:"explanation" json:"explanation,omitempty"`
	Subject       string             `bson:"subject" json:"subject"`
	Pattern       string             `bson:"pattern" json:"pattern"`
	Topic         string             `bson:"topic" json:"topic"`
	Difficulty    string             `bson:"difficulty" json:"difficulty"`
	IsVerified    bool               `bson:"is_verified" json:"is_verified"`
}

// IsCorrect reports whether the selected option matches the answer key.
func (q *Question) IsCorrect(selectedOption string) bool {
	return q.CorrectOption == selectedOption
}
