package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"sprint-service/internal/event"
	"sprint-service/internal/logger"
	"sprint-service/internal/models"
	"sprint-service/internal/repository"
	"sprint-service/internal/selection"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// startRetries bounds the retry loop when concurrent starts trip the
// one-live-session-per-user index.
const startRetries = 3

// SessionService owns the sprint lifecycle: start, answer submission and
// finalization. All state lives in storage; every call is an independent
// request.
type SessionService struct {
	Sessions  *repository.SessionRepository
	Questions *repository.QuestionRepository
	Attempts  *repository.AttemptRepository
	Selector  *selection.Selector
	Events    *event.Publisher
}

func NewSessionService(
	sessions *repository.SessionRepository,
	questions *repository.QuestionRepository,
	attempts *repository.AttemptRepository,
	selector *selection.Selector,
	events *event.Publisher,
) *SessionService {
	return &SessionService{
		Sessions:  sessions,
		Questions: questions,
		Attempts:  attempts,
		Selector:  selector,
		Events:    events,
	}
}

type StartRequest struct {
	Subject       string
	Topics        []string
	Difficulty    string
	QuestionCount int
}

type StartResult struct {
	SessionID    string               `json:"session_id"`
	QuestionIDs  []primitive.ObjectID `json:"question_ids"`
	TimeBudgetMS int64                `json:"time_budget_ms"`
}

// Start abandons any prior IN_PROGRESS session of the user, selects the
// question set and creates a fresh session. Starting a new sprint always
// wins over prior progress, so callers should warn users before calling.
func (s *SessionService) Start(ctx context.Context, userID string, req StartRequest) (*StartResult, error) {
	if !models.ValidSubject(req.Subject) {
		return nil, fmt.Errorf("%w: unknown subject %q", ErrMissingParams, req.Subject)
	}
	if !models.ValidDifficulty(req.Difficulty) {
		return nil, fmt.Errorf("%w: unknown difficulty %q", ErrMissingParams, req.Difficulty)
	}
	if req.QuestionCount <= 0 {
		return nil, fmt.Errorf("%w: question count must be positive", ErrMissingParams)
	}

	questions, err := s.Selector.Select(ctx, req.Subject, req.Topics, req.Difficulty, req.QuestionCount)
	if err != nil {
		return nil, err
	}
	questionIDs := selection.QuestionIDs(questions)

	session := &models.PracticeSession{
		UserID: userID,
		Config: models.SprintConfig{
			Subject:       req.Subject,
			Patterns:      req.Topics,
			Difficulty:    req.Difficulty,
			QuestionCount: req.QuestionCount,
			TimeLimitMS:   models.TimeBudgetMS(req.Difficulty, req.QuestionCount),
		},
		QuestionIDs: questionIDs,
		Answers:     []models.SessionAnswer{},
		Status:      models.StatusInProgress,
		StartedAt:   time.Now().UTC(),
	}

	if err := s.insertLive(ctx, session); err != nil {
		return nil, err
	}

	s.Events.Publish(event.SessionStarted, map[string]interface{}{
		"session_id": session.ID.Hex(),
		"user_id":    userID,
		"subject":    req.Subject,
		"difficulty": req.Difficulty,
		"count":      req.QuestionCount,
	})

	return &StartResult{
		SessionID:    session.ID.Hex(),
		QuestionIDs:  questionIDs,
		TimeBudgetMS: session.Config.TimeLimitMS,
	}, nil
}

// insertLive abandons any prior IN_PROGRESS session of the owner and inserts
// the new one. Abandon-then-insert races when the same user starts twice at
// once; the partial unique index rejects the losing insert, and abandoning
// again and retrying converges on exactly one live session.
func (s *SessionService) insertLive(ctx context.Context, session *models.PracticeSession) error {
	for attempt := 0; ; attempt++ {
		if err := s.Sessions.AbandonActive(ctx, session.UserID); err != nil {
			return err
		}
		session.ID = primitive.NilObjectID
		err := s.Sessions.Create(ctx, session)
		if err == nil {
			return nil
		}
		if mongo.IsDuplicateKeyError(err) && attempt < startRetries {
			continue
		}
		return err
	}
}

// Retry starts a fresh sprint from an existing session's configuration and
// exact question list. The source session may be in any state; only its
// config and questions are read.
func (s *SessionService) Retry(ctx context.Context, userID, sessionID string) (*StartResult, error) {
	sessID, err := primitive.ObjectIDFromHex(sessionID)
	if err != nil {
		return nil, ErrSessionNotFound
	}
	source, err := s.Sessions.FindByIDAndUser(ctx, sessID, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	if len(source.QuestionIDs) == 0 {
		return nil, ErrSessionNotFound
	}

	session := &models.PracticeSession{
		UserID:      userID,
		Config:      source.Config,
		QuestionIDs: source.QuestionIDs,
		Answers:     []models.SessionAnswer{},
		Status:      models.StatusInProgress,
		StartedAt:   time.Now().UTC(),
	}
	if err := s.insertLive(ctx, session); err != nil {
		return nil, err
	}

	s.Events.Publish(event.SessionStarted, map[string]interface{}{
		"session_id": session.ID.Hex(),
		"user_id":    userID,
		"subject":    session.Config.Subject,
		"difficulty": session.Config.Difficulty,
		"count":      session.Config.QuestionCount,
		"retry_of":   source.ID.Hex(),
	})

	return &StartResult{
		SessionID:    session.ID.Hex(),
		QuestionIDs:  session.QuestionIDs,
		TimeBudgetMS: session.Config.TimeLimitMS,
	}, nil
}

type SubmitResult struct {
	IsCorrect    bool `json:"is_correct"`
	IsComplete   bool `json:"is_complete"`
	CurrentIndex int  `json:"current_index"`
	CorrectCount int  `json:"correct_count"`
}

// SubmitAnswer scores and records one response. Submission is idempotent: a
// repeated (session, question) pair is a no-op that returns the previously
// stored correctness, so clients can retry safely.
func (s *SessionService) SubmitAnswer(ctx context.Context, userID, sessionID, questionID, selectedOption string, timeMS int64) (*SubmitResult, error) {
	return s.recordResponse(ctx, userID, sessionID, questionID, selectedOption, timeMS, false)
}

// SkipQuestion records a skip as an incorrect response, so the question
// still flows into the session counters and the analytics ledger. Skips share
// the submission guard: skipping an already answered question is a no-op.
func (s *SessionService) SkipQuestion(ctx context.Context, userID, sessionID, questionID string, timeMS int64) (*SubmitResult, error) {
	return s.recordResponse(ctx, userID, sessionID, questionID, models.OptionSkipped, timeMS, true)
}

func (s *SessionService) recordResponse(ctx context.Context, userID, sessionID, questionID, selectedOption string, timeMS int64, skipped bool) (*SubmitResult, error) {
	sessID, err := primitive.ObjectIDFromHex(sessionID)
	if err != nil {
		return nil, ErrSessionNotFound
	}
	qID, err := primitive.ObjectIDFromHex(questionID)
	if err != nil {
		return nil, ErrQuestionNotFound
	}

	question, err := s.Questions.FindByID(ctx, qID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrQuestionNotFound
		}
		return nil, err
	}
	isCorrect := !skipped && question.IsCorrect(selectedOption)

	answer := models.SessionAnswer{
		QuestionID:     qID,
		SelectedOption: selectedOption,
		IsCorrect:      isCorrect,
		TimeMS:         timeMS,
		Subject:        question.Subject,
		Pattern:        question.Pattern,
		Difficulty:     question.Difficulty,
		AnsweredAt:     time.Now().UTC(),
	}

	session, err := s.Sessions.AppendAnswer(ctx, sessID, userID, answer)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return s.resolveRejectedSubmit(ctx, sessID, userID, qID)
		}
		return nil, err
	}

	// The durable attempt is advisory ground truth for analytics; a failed
	// write must not fail the submission the session already recorded.
	att := models.NewAttempt(userID, question, &sessID, selectedOption, isCorrect, timeMS)
	if err := s.Attempts.Create(ctx, att); err != nil {
		logger.Log.Error("record attempt", zap.String("session_id", sessionID), zap.Error(err))
	} else {
		s.Events.Publish(event.AttemptRecorded, map[string]interface{}{
			"attempt_id": att.ID.Hex(),
			"user_id":    userID,
			"session_id": sessionID,
			"pattern":    att.Pattern,
			"is_correct": isCorrect,
		})
	}

	isComplete := false
	if session.CurrentIndex >= session.Config.QuestionCount {
		isComplete = true
		if _, err := s.finalizeSession(ctx, session, models.StatusCompleted, nil); err != nil {
			return nil, err
		}
	}

	return &SubmitResult{
		IsCorrect:    isCorrect,
		IsComplete:   isComplete,
		CurrentIndex: session.CurrentIndex,
		CorrectCount: session.CorrectCount,
	}, nil
}

// resolveRejectedSubmit disambiguates a guarded append that matched nothing:
// either the question was already answered (idempotent success) or there is
// no live session for this user (not found).
func (s *SessionService) resolveRejectedSubmit(ctx context.Context, sessID primitive.ObjectID, userID string, qID primitive.ObjectID) (*SubmitResult, error) {
	session, err := s.Sessions.FindByIDAndUser(ctx, sessID, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	stored, ok := session.AnswerFor(qID)
	if !ok {
		// Session exists but is terminal and never saw this question.
		return nil, ErrSessionNotFound
	}
	return &SubmitResult{
		IsCorrect:    stored.IsCorrect,
		IsComplete:   session.IsTerminal() || session.CurrentIndex >= session.Config.QuestionCount,
		CurrentIndex: session.CurrentIndex,
		CorrectCount: session.CorrectCount,
	}, nil
}

// Finalize actions.
const (
	ActionComplete = "complete"
	ActionAbandon  = "abandon"
)

type FinalizeResult struct {
	Status         string `json:"status"`
	CorrectCount   int    `json:"correct_count"`
	TotalQuestions int    `json:"total_questions"`
	TotalTimeMS    int64  `json:"total_time_ms"`
	AccuracyPct    int    `json:"accuracy_pct"`
}

// Finalize moves a session to a terminal state. Finalizing an already
// terminal session changes nothing and returns its current stats, which
// makes client retries harmless. A total-time override replaces the
// accumulated per-question sum when the client measured wall clock time.
func (s *SessionService) Finalize(ctx context.Context, userID, sessionID, action string, totalTimeMS *int64) (*FinalizeResult, error) {
	var status string
	switch action {
	case ActionComplete:
		status = models.StatusCompleted
	case ActionAbandon:
		status = models.StatusAbandoned
	default:
		return nil, fmt.Errorf("%w: unknown action %q", ErrMissingParams, action)
	}

	sessID, err := primitive.ObjectIDFromHex(sessionID)
	if err != nil {
		return nil, ErrSessionNotFound
	}
	session, err := s.Sessions.FindByIDAndUser(ctx, sessID, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	if session.IsTerminal() {
		return finalizeResult(session), nil
	}
	return s.finalizeSession(ctx, session, status, totalTimeMS)
}

// applyTimeOverride replaces the accumulated total with the client's wall
// clock measurement and recomputes the average with the same rounding the
// stats fold uses.
func applyTimeOverride(stats *models.SessionStats, totalTimeMS int64) {
	stats.TotalTimeMS = totalTimeMS
	if stats.Attempted > 0 {
		stats.AvgTimeMS = int64(math.Round(float64(totalTimeMS) / float64(stats.Attempted)))
	}
}

func (s *SessionService) finalizeSession(ctx context.Context, session *models.PracticeSession, status string, totalTimeMS *int64) (*FinalizeResult, error) {
	stats := session.ComputeStats()
	if totalTimeMS != nil {
		applyTimeOverride(&stats, *totalTimeMS)
	}
	topicPerf := session.ComputeTopicPerformance()

	final, err := s.Sessions.Finalize(ctx, session.ID, session.UserID, status, stats, topicPerf)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			// Lost a finalize race; the stored terminal state wins.
			final, err = s.Sessions.FindByIDAndUser(ctx, session.ID, session.UserID)
			if err != nil {
				return nil, err
			}
			return finalizeResult(final), nil
		}
		return nil, err
	}

	s.Events.Publish(event.SessionFinalized, map[string]interface{}{
		"session_id": final.ID.Hex(),
		"user_id":    final.UserID,
		"status":     final.Status,
		"accuracy":   final.Stats.Accuracy,
	})
	return finalizeResult(final), nil
}

func finalizeResult(session *models.PracticeSession) *FinalizeResult {
	stats := session.Stats
	if stats == nil {
		computed := session.ComputeStats()
		stats = &computed
	}
	return &FinalizeResult{
		Status:         session.Status,
		CorrectCount:   stats.Correct,
		TotalQuestions: stats.TotalQuestions,
		TotalTimeMS:    stats.TotalTimeMS,
		AccuracyPct:    stats.Accuracy,
	}
}

// GetSession returns a session for review, scoped to its owner.
func (s *SessionService) GetSession(ctx context.Context, userID, sessionID string) (*models.PracticeSession, error) {
	sessID, err := primitive.ObjectIDFromHex(sessionID)
	if err != nil {
		return nil, ErrSessionNotFound
	}
	session, err := s.Sessions.FindByIDAndUser(ctx, sessID, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return session, nil
}

// clampLimit keeps list sizes sane; out-of-range requests fall back to the
// default page.
func clampLimit(limit int64) int64 {
	if limit <= 0 || limit > 100 {
		return 20
	}
	return limit
}

// History lists the user's sessions, newest first.
func (s *SessionService) History(ctx context.Context, userID string, limit int64) ([]models.PracticeSession, error) {
	return s.Sessions.ListByUser(ctx, userID, clampLimit(limit))
}

// AttemptHistory lists the user's attempt ledger, newest first. It covers
// both sprint and standalone attempts.
func (s *SessionService) AttemptHistory(ctx context.Context, userID string, limit int64) ([]models.Attempt, error) {
	return s.Attempts.ListByUser(ctx, userID, clampLimit(limit))
}

// RecordStandaloneAttempt writes a ledger entry for practice outside any
// sprint. Only the attempt ledger is touched.
func (s *SessionService) RecordStandaloneAttempt(ctx context.Context, userID, questionID, selectedOption string, timeMS int64) (*models.Attempt, error) {
	qID, err := primitive.ObjectIDFromHex(questionID)
	if err != nil {
		return nil, ErrQuestionNotFound
	}
	question, err := s.Questions.FindByID(ctx, qID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrQuestionNotFound
		}
		return nil, err
	}

	att := models.NewAttempt(userID, question, nil, selectedOption, question.IsCorrect(selectedOption), timeMS)
	if err := s.Attempts.Create(ctx, att); err != nil {
		return nil, err
	}
	s.Events.Publish(event.AttemptRecorded, map[string]interface{}{
		"attempt_id": att.ID.Hex(),
		"user_id":    userID,
		"pattern":    att.Pattern,
		"is_correct": att.IsCorrect,
	})
	return att, nil
}
