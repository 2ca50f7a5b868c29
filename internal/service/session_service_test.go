package service

import (
	"context"
	"errors"
	"testing"

	"sprint-service/internal/models"
)

// Validation happens before any repository or selector access, so a
// zero-value service is enough to exercise the parameter checks.

func TestStartValidation(t *testing.T) {
	s := &SessionService{}

	testCases := []struct {
		name string
		req  StartRequest
	}{
		{"unknown subject", StartRequest{Subject: "HISTORY", Difficulty: models.DifficultyEasy, QuestionCount: 10}},
		{"unknown difficulty", StartRequest{Subject: models.SubjectQuant, Difficulty: "BRUTAL", QuestionCount: 10}},
		{"zero count", StartRequest{Subject: models.SubjectQuant, Difficulty: models.DifficultyEasy, QuestionCount: 0}},
		{"negative count", StartRequest{Subject: models.SubjectQuant, Difficulty: models.DifficultyEasy, QuestionCount: -3}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.Start(context.Background(), "user-1", tc.req)
			if !errors.Is(err, ErrMissingParams) {
				t.Errorf("Expected ErrMissingParams, got %v", err)
			}
		})
	}
}

func TestFinalizeRejectsUnknownAction(t *testing.T) {
	s := &SessionService{}
	_, err := s.Finalize(context.Background(), "user-1", "ffffffffffffffffffffffff", "pause", nil)
	if !errors.Is(err, ErrMissingParams) {
		t.Errorf("Expected ErrMissingParams for unknown action, got %v", err)
	}
}

func TestMalformedIDsCollapseToNotFound(t *testing.T) {
	s := &SessionService{}

	if _, err := s.SubmitAnswer(context.Background(), "user-1", "not-hex", "also-not-hex", "opt_1", 1000); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Expected ErrSessionNotFound for malformed session id, got %v", err)
	}
	if _, err := s.SubmitAnswer(context.Background(), "user-1", "ffffffffffffffffffffffff", "not-hex", "opt_1", 1000); !errors.Is(err, ErrQuestionNotFound) {
		t.Errorf("Expected ErrQuestionNotFound for malformed question id, got %v", err)
	}
	if _, err := s.GetSession(context.Background(), "user-1", "not-hex"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Expected ErrSessionNotFound for malformed session id, got %v", err)
	}
	if _, err := s.RecordStandaloneAttempt(context.Background(), "user-1", "not-hex", "opt_1", 1000); !errors.Is(err, ErrQuestionNotFound) {
		t.Errorf("Expected ErrQuestionNotFound for malformed question id, got %v", err)
	}
}

func TestSkipAndRetryMalformedIDs(t *testing.T) {
	s := &SessionService{}

	if _, err := s.SkipQuestion(context.Background(), "user-1", "not-hex", "ffffffffffffffffffffffff", 1000); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Expected ErrSessionNotFound for malformed session id, got %v", err)
	}
	if _, err := s.SkipQuestion(context.Background(), "user-1", "ffffffffffffffffffffffff", "not-hex", 1000); !errors.Is(err, ErrQuestionNotFound) {
		t.Errorf("Expected ErrQuestionNotFound for malformed question id, got %v", err)
	}
	if _, err := s.Retry(context.Background(), "user-1", "not-hex"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Expected ErrSessionNotFound for malformed session id, got %v", err)
	}
}

func TestClampLimit(t *testing.T) {
	testCases := []struct {
		in   int64
		want int64
	}{
		{0, 20},
		{-5, 20},
		{101, 20},
		{1, 1},
		{50, 50},
		{100, 100},
	}

	for _, tc := range testCases {
		if got := clampLimit(tc.in); got != tc.want {
			t.Errorf("clampLimit(%d): expected %d, got %d", tc.in, tc.want, got)
		}
	}
}

func TestApplyTimeOverrideRoundsAverage(t *testing.T) {
	stats := models.SessionStats{Attempted: 3, TotalTimeMS: 90000, AvgTimeMS: 30000}

	applyTimeOverride(&stats, 200000)

	if stats.TotalTimeMS != 200000 {
		t.Errorf("Expected total 200000, got %d", stats.TotalTimeMS)
	}
	// 200000/3 = 66666.67, rounds up rather than truncating.
	if stats.AvgTimeMS != 66667 {
		t.Errorf("Expected avg 66667, got %d", stats.AvgTimeMS)
	}
}

func TestApplyTimeOverrideNoAttempts(t *testing.T) {
	stats := models.SessionStats{}
	applyTimeOverride(&stats, 12000)
	if stats.AvgTimeMS != 0 {
		t.Errorf("Expected avg untouched with no attempts, got %d", stats.AvgTimeMS)
	}
	if stats.TotalTimeMS != 12000 {
		t.Errorf("Expected total 12000, got %d", stats.TotalTimeMS)
	}
}

func TestFinalizeResultFromStoredStats(t *testing.T) {
	session := &models.PracticeSession{
		Status: models.StatusCompleted,
		Stats: &models.SessionStats{
			TotalQuestions: 10,
			Attempted:      10,
			Correct:        7,
			Incorrect:      3,
			Accuracy:       70,
			TotalTimeMS:    250000,
		},
	}

	result := finalizeResult(session)
	if result.Status != models.StatusCompleted {
		t.Errorf("Expected COMPLETED, got %s", result.Status)
	}
	if result.CorrectCount != 7 || result.TotalQuestions != 10 {
		t.Errorf("Unexpected counts: %+v", result)
	}
	if result.AccuracyPct != 70 {
		t.Errorf("Expected accuracy 70, got %d", result.AccuracyPct)
	}
}

func TestFinalizeResultComputesWhenStatsMissing(t *testing.T) {
	session := &models.PracticeSession{
		Status: models.StatusAbandoned,
		Answers: []models.SessionAnswer{
			{IsCorrect: true, TimeMS: 10000},
			{IsCorrect: false, TimeMS: 15000},
		},
		Config: models.SprintConfig{QuestionCount: 5},
	}

	result := finalizeResult(session)
	if result.CorrectCount != 1 {
		t.Errorf("Expected 1 correct, got %d", result.CorrectCount)
	}
	if result.TotalTimeMS != 25000 {
		t.Errorf("Expected 25000ms total, got %d", result.TotalTimeMS)
	}
	if result.AccuracyPct != 50 {
		t.Errorf("Expected accuracy 50, got %d", result.AccuracyPct)
	}
}
