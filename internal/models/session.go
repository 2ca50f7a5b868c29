package models

import (
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SprintConfig is fixed at session creation and never re-rolled.
type SprintConfig struct {
	Subject       string   `bson:"subject" json:"subject"`
	Patterns      []string `bson:"patterns" json:"patterns"`
	Difficulty    string   `bson:"difficulty" json:"difficulty"`
	QuestionCount int      `bson:"question_count" json:"question_count"`
	TimeLimitMS   int64    `bson:"time_limit_ms" json:"time_limit_ms"`
}

// SessionAnswer is one recorded response, embedded in the session document.
// Subject, pattern and difficulty are copied from the question at answer time
// so per-topic stats can be folded without re-reading the question bank.
type SessionAnswer struct {
	QuestionID     primitive.ObjectID `bson:"question_id" json:"question_id"`
	SelectedOption string             `bson:"selected_option" json:"selected_option"`
	IsCorrect      bool               `bson:"is_correct" json:"is_correct"`
	TimeMS         int64              `bson:"time_ms" json:"time_ms"`
	Subject        string             `bson:"subject" json:"subject"`
	Pattern        string             `bson:"pattern" json:"pattern"`
	Difficulty     string             `bson:"difficulty" json:"difficulty"`
	AnsweredAt     time.Time          `bson:"answered_at" json:"answered_at"`
}

// SessionStats is the precomputed summary written when a session reaches a
// terminal state.
type SessionStats struct {
	TotalQuestions int   `bson:"total_questions" json:"total_questions"`
	Attempted      int   `bson:"attempted" json:"attempted"`
	Correct        int   `bson:"correct" json:"correct"`
	Incorrect      int   `bson:"incorrect" json:"incorrect"`
	Accuracy       int   `bson:"accuracy" json:"accuracy"`
	AvgTimeMS      int64 `bson:"avg_time_ms" json:"avg_time_ms"`
	TotalTimeMS    int64 `bson:"total_time_ms" json:"total_time_ms"`
}

// TopicPerformance is a per-topic snapshot stored on completed sessions.
// Consistency alerts read these snapshots across sessions.
type TopicPerformance struct {
	Topic     string  `bson:"topic" json:"topic"`
	Subject   string  `bson:"subject" json:"subject"`
	Total     int     `bson:"total" json:"total"`
	Correct   int     `bson:"correct" json:"correct"`
	Incorrect int     `bson:"incorrect" json:"incorrect"`
	Accuracy  float64 `bson:"accuracy" json:"accuracy"`
	AvgTimeMS int64   `bson:"avg_time_ms" json:"avg_time_ms"`
}

// PracticeSession is one timed sprint. Answers are append-only while the
// session is IN_PROGRESS; terminal states accept no further answers.
type PracticeSession struct {
	ID               primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	UserID           string               `bson:"user_id" json:"user_id"`
	Config           SprintConfig         `bson:"config" json:"config"`
	QuestionIDs      []primitive.ObjectID `bson:"question_ids" json:"question_ids"`
	Answers          []SessionAnswer      `bson:"answers" json:"answers"`
	CorrectCount     int                  `bson:"correct_count" json:"correct_count"`
	CurrentIndex     int                  `bson:"current_index" json:"current_index"`
	TotalTimeMS      int64                `bson:"total_time_ms" json:"total_time_ms"`
	Stats            *SessionStats        `bson:"stats,omitempty" json:"stats,omitempty"`
	TopicPerformance []TopicPerformance   `bson:"topic_performance,omitempty" json:"topic_performance,omitempty"`
	Status           string               `bson:"status" json:"status"`
	StartedAt        time.Time            `bson:"started_at" json:"started_at"`
	CompletedAt      *time.Time           `bson:"completed_at,omitempty" json:"completed_at,omitempty"`
	CreatedAt        time.Time            `bson:"created_at" json:"created_at"`
	UpdatedAt        time.Time            `bson:"updated_at" json:"updated_at"`
}

// AnswerFor returns the recorded answer for a question, if any.
func (s *PracticeSession) AnswerFor(questionID primitive.ObjectID) (SessionAnswer, bool) {
	for _, a := range s.Answers {
		if a.QuestionID == questionID {
			return a, true
		}
	}
	return SessionAnswer{}, false
}

// IsTerminal reports whether the session can no longer accept answers.
func (s *PracticeSession) IsTerminal() bool {
	return s.Status == StatusCompleted || s.Status == StatusAbandoned
}

// AccuracyPct is round(correct/total × 100); 0 when total is 0.
func AccuracyPct(correct, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(correct) / float64(total) * 100))
}

// ComputeStats folds the embedded answers into the terminal stats block.
func (s *PracticeSession) ComputeStats() SessionStats {
	attempted := len(s.Answers)
	correct := 0
	var totalTime int64
	for _, a := range s.Answers {
		if a.IsCorrect {
			correct++
		}
		totalTime += a.TimeMS
	}
	var avgTime int64
	if attempted > 0 {
		avgTime = int64(math.Round(float64(totalTime) / float64(attempted)))
	}
	return SessionStats{
		TotalQuestions: len(s.QuestionIDs),
		Attempted:      attempted,
		Correct:        correct,
		Incorrect:      attempted - correct,
		Accuracy:       AccuracyPct(correct, attempted),
		AvgTimeMS:      avgTime,
		TotalTimeMS:    totalTime,
	}
}

// ComputeTopicPerformance groups the embedded answers by pattern. Order
// follows first appearance so snapshots are stable across recomputation.
func (s *PracticeSession) ComputeTopicPerformance() []TopicPerformance {
	index := make(map[string]int)
	totalTime := make(map[string]int64)
	var out []TopicPerformance

	for _, a := range s.Answers {
		i, ok := index[a.Pattern]
		if !ok {
			i = len(out)
			index[a.Pattern] = i
			out = append(out, TopicPerformance{Topic: a.Pattern, Subject: a.Subject})
		}
		out[i].Total++
		if a.IsCorrect {
			out[i].Correct++
		} else {
			out[i].Incorrect++
		}
		totalTime[a.Pattern] += a.TimeMS
	}

	for i := range out {
		out[i].Accuracy = float64(out[i].Correct) / float64(out[i].Total)
		out[i].AvgTimeMS = int64(math.Round(float64(totalTime[out[i].Topic]) / float64(out[i].Total)))
	}
	return out
}
