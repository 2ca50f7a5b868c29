package repository

import (
	"testing"

	"sprint-service/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestAppendAnswerFilterGuards(t *testing.T) {
	sessID := primitive.NewObjectID()
	qID := primitive.NewObjectID()

	filter := appendAnswerFilter(sessID, "user-1", qID)

	if filter["_id"] != sessID || filter["user_id"] != "user-1" {
		t.Errorf("Filter not scoped to session and owner: %v", filter)
	}
	if filter["status"] != models.StatusInProgress {
		t.Errorf("Expected IN_PROGRESS status guard, got %v", filter["status"])
	}
	guard, ok := filter["answers.question_id"].(bson.M)
	if !ok || guard["$ne"] != qID {
		t.Errorf("Expected $ne guard on answers.question_id, got %v", filter["answers.question_id"])
	}
}

func TestAppendAnswerUpdateCounters(t *testing.T) {
	testCases := []struct {
		name           string
		answer         models.SessionAnswer
		wantCorrectInc int
	}{
		{"correct", models.SessionAnswer{SelectedOption: "opt_2", IsCorrect: true, TimeMS: 12000}, 1},
		{"incorrect", models.SessionAnswer{SelectedOption: "opt_3", IsCorrect: false, TimeMS: 12000}, 0},
		{"skipped", models.SessionAnswer{SelectedOption: models.OptionSkipped, IsCorrect: false, TimeMS: 8000}, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			update := appendAnswerUpdate(tc.answer)

			inc, ok := update["$inc"].(bson.M)
			if !ok {
				t.Fatalf("Expected $inc document, got %v", update)
			}
			if inc["correct_count"] != tc.wantCorrectInc {
				t.Errorf("Expected correct_count inc %d, got %v", tc.wantCorrectInc, inc["correct_count"])
			}
			if inc["current_index"] != 1 {
				t.Errorf("Expected current_index inc 1, got %v", inc["current_index"])
			}
			if inc["total_time_ms"] != tc.answer.TimeMS {
				t.Errorf("Expected total_time_ms inc %d, got %v", tc.answer.TimeMS, inc["total_time_ms"])
			}

			push, ok := update["$push"].(bson.M)
			if !ok || push["answers"] == nil {
				t.Errorf("Expected $push of the answer, got %v", update["$push"])
			}
		})
	}
}
