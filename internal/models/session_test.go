package models

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestAccuracyPct(t *testing.T) {
	testCases := []struct {
		name    string
		correct int
		total   int
		want    int
	}{
		{"zero attempts is zero not NaN", 0, 0, 0},
		{"perfect", 10, 10, 100},
		{"rounds half up", 1, 3, 33},
		{"rounds up at midpoint", 1, 2, 50},
		{"two thirds", 2, 3, 67},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := AccuracyPct(tc.correct, tc.total); got != tc.want {
				t.Errorf("AccuracyPct(%d, %d): expected %d, got %d", tc.correct, tc.total, got, tc.want)
			}
		})
	}
}

func TestTimeBudgetMS(t *testing.T) {
	testCases := []struct {
		difficulty string
		count      int
		want       int64
	}{
		{DifficultyEasy, 10, 400000},
		{DifficultyMedium, 10, 300000},
		{DifficultyHard, 10, 250000},
		{DifficultyMixed, 20, 600000},
		{"UNKNOWN", 10, 300000}, // falls back to the mixed allowance
	}

	for _, tc := range testCases {
		t.Run(tc.difficulty, func(t *testing.T) {
			if got := TimeBudgetMS(tc.difficulty, tc.count); got != tc.want {
				t.Errorf("TimeBudgetMS(%s, %d): expected %d, got %d", tc.difficulty, tc.count, tc.want, got)
			}
		})
	}
}

func sessionWithAnswers(answers []SessionAnswer, questionCount int) *PracticeSession {
	ids := make([]primitive.ObjectID, questionCount)
	for i := range ids {
		ids[i] = primitive.NewObjectID()
	}
	return &PracticeSession{
		QuestionIDs: ids,
		Answers:     answers,
		Status:      StatusInProgress,
		Config:      SprintConfig{QuestionCount: questionCount},
	}
}

func TestComputeStats(t *testing.T) {
	s := sessionWithAnswers([]SessionAnswer{
		{QuestionID: primitive.NewObjectID(), IsCorrect: true, TimeMS: 10000, Pattern: "Percentage", Subject: SubjectQuant},
		{QuestionID: primitive.NewObjectID(), IsCorrect: false, TimeMS: 20000, Pattern: "Percentage", Subject: SubjectQuant},
		{QuestionID: primitive.NewObjectID(), IsCorrect: true, TimeMS: 30000, Pattern: "Algebra", Subject: SubjectQuant},
	}, 5)

	stats := s.ComputeStats()
	if stats.TotalQuestions != 5 {
		t.Errorf("Expected 5 total questions, got %d", stats.TotalQuestions)
	}
	if stats.Attempted != 3 || stats.Correct != 2 || stats.Incorrect != 1 {
		t.Errorf("Unexpected counts: %+v", stats)
	}
	if stats.Accuracy != 67 {
		t.Errorf("Expected accuracy 67, got %d", stats.Accuracy)
	}
	if stats.TotalTimeMS != 60000 || stats.AvgTimeMS != 20000 {
		t.Errorf("Unexpected timing: total %d avg %d", stats.TotalTimeMS, stats.AvgTimeMS)
	}
}

func TestComputeStatsCountsSkipsAsIncorrect(t *testing.T) {
	s := sessionWithAnswers([]SessionAnswer{
		{QuestionID: primitive.NewObjectID(), SelectedOption: "opt_1", IsCorrect: true, TimeMS: 10000, Pattern: "Percentage", Subject: SubjectQuant},
		{QuestionID: primitive.NewObjectID(), SelectedOption: OptionSkipped, IsCorrect: false, TimeMS: 5000, Pattern: "Percentage", Subject: SubjectQuant},
	}, 2)

	stats := s.ComputeStats()
	if stats.Attempted != 2 || stats.Correct != 1 || stats.Incorrect != 1 {
		t.Errorf("Expected skip to count as an incorrect attempt, got %+v", stats)
	}
	if stats.Accuracy != 50 {
		t.Errorf("Expected accuracy 50, got %d", stats.Accuracy)
	}

	perf := s.ComputeTopicPerformance()
	if len(perf) != 1 || perf[0].Incorrect != 1 {
		t.Errorf("Expected the skip folded into topic stats, got %+v", perf)
	}
}

func TestComputeStatsEmptySession(t *testing.T) {
	stats := sessionWithAnswers(nil, 10).ComputeStats()
	if stats.Accuracy != 0 || stats.AvgTimeMS != 0 {
		t.Errorf("Expected zeroed stats for empty session, got %+v", stats)
	}
}

func TestComputeTopicPerformance(t *testing.T) {
	s := sessionWithAnswers([]SessionAnswer{
		{QuestionID: primitive.NewObjectID(), IsCorrect: true, TimeMS: 10000, Pattern: "Percentage", Subject: SubjectQuant},
		{QuestionID: primitive.NewObjectID(), IsCorrect: true, TimeMS: 14000, Pattern: "Algebra", Subject: SubjectQuant},
		{QuestionID: primitive.NewObjectID(), IsCorrect: false, TimeMS: 30000, Pattern: "Percentage", Subject: SubjectQuant},
	}, 3)

	perf := s.ComputeTopicPerformance()
	if len(perf) != 2 {
		t.Fatalf("Expected 2 topics, got %d", len(perf))
	}
	// First appearance order.
	if perf[0].Topic != "Percentage" || perf[1].Topic != "Algebra" {
		t.Errorf("Unexpected topic order: %s, %s", perf[0].Topic, perf[1].Topic)
	}
	if perf[0].Total != 2 || perf[0].Correct != 1 || perf[0].Incorrect != 1 {
		t.Errorf("Unexpected Percentage counts: %+v", perf[0])
	}
	if perf[0].Accuracy != 0.5 {
		t.Errorf("Expected Percentage accuracy 0.5, got %.2f", perf[0].Accuracy)
	}
	if perf[0].AvgTimeMS != 20000 {
		t.Errorf("Expected Percentage avg time 20000, got %d", perf[0].AvgTimeMS)
	}
	if perf[1].Total != 1 || perf[1].Correct != 1 {
		t.Errorf("Unexpected Algebra counts: %+v", perf[1])
	}
}

func TestAnswerFor(t *testing.T) {
	qID := primitive.NewObjectID()
	s := sessionWithAnswers([]SessionAnswer{
		{QuestionID: qID, SelectedOption: "opt_2", IsCorrect: true},
	}, 2)

	if answer, ok := s.AnswerFor(qID); !ok || answer.SelectedOption != "opt_2" {
		t.Errorf("Expected stored answer for %s, got ok=%v answer=%+v", qID.Hex(), ok, answer)
	}
	if _, ok := s.AnswerFor(primitive.NewObjectID()); ok {
		t.Error("Did not expect an answer for an unanswered question")
	}
}

func TestIsTerminal(t *testing.T) {
	s := sessionWithAnswers(nil, 1)
	if s.IsTerminal() {
		t.Error("IN_PROGRESS session must not be terminal")
	}
	s.Status = StatusCompleted
	if !s.IsTerminal() {
		t.Error("COMPLETED session must be terminal")
	}
	s.Status = StatusAbandoned
	if !s.IsTerminal() {
		t.Error("ABANDONED session must be terminal")
	}
}
