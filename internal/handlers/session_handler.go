package handlers

import (
	"net/http"
	"strconv"

	"sprint-service/internal/service"

	"github.com/gin-gonic/gin"
)

type SessionHandler struct {
	Service *service.SessionService
}

func NewSessionHandler(s *service.SessionService) *SessionHandler {
	return &SessionHandler{Service: s}
}

// StartSession creates a new sprint. Any prior in-progress session of the
// user is abandoned first.
func (h *SessionHandler) StartSession(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req struct {
		Subject       string   `json:"subject" binding:"required"`
		Topics        []string `json:"topics"`
		Difficulty    string   `json:"difficulty" binding:"required"`
		QuestionCount int      `json:"question_count" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Subject, difficulty and question count are required",
			"details": err.Error(),
		})
		return
	}

	result, err := h.Service.Start(c.Request.Context(), userID, service.StartRequest{
		Subject:       req.Subject,
		Topics:        req.Topics,
		Difficulty:    req.Difficulty,
		QuestionCount: req.QuestionCount,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

// SubmitAnswer records one scored response; safe to retry.
func (h *SessionHandler) SubmitAnswer(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	sessionID := c.Param("id")

	var req struct {
		QuestionID     string `json:"question_id" binding:"required"`
		SelectedOption string `json:"selected_option" binding:"required"`
		TimeMS         int64  `json:"time_ms"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Question id and selected option are required",
			"details": err.Error(),
		})
		return
	}

	result, err := h.Service.SubmitAnswer(c.Request.Context(), userID, sessionID, req.QuestionID, req.SelectedOption, req.TimeMS)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// SkipQuestion records a pass on one question; it counts as incorrect.
func (h *SessionHandler) SkipQuestion(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	sessionID := c.Param("id")

	var req struct {
		QuestionID string `json:"question_id" binding:"required"`
		TimeMS     int64  `json:"time_ms"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Question id is required",
			"details": err.Error(),
		})
		return
	}

	result, err := h.Service.SkipQuestion(c.Request.Context(), userID, sessionID, req.QuestionID, req.TimeMS)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// RetrySession starts a fresh sprint reusing an earlier session's
// configuration and question list.
func (h *SessionHandler) RetrySession(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	result, err := h.Service.Retry(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

// FinalizeSession completes or abandons a sprint.
func (h *SessionHandler) FinalizeSession(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	sessionID := c.Param("id")

	var req struct {
		Action      string `json:"action" binding:"required"`
		TotalTimeMS *int64 `json:"total_time_ms"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Action is required",
			"details": err.Error(),
		})
		return
	}

	result, err := h.Service.Finalize(c.Request.Context(), userID, sessionID, req.Action, req.TotalTimeMS)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetSession returns the full session document for review.
func (h *SessionHandler) GetSession(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	session, err := h.Service.GetSession(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// GetSummary returns the precomputed stats and per-topic snapshot of a
// finalized session.
func (h *SessionHandler) GetSummary(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	session, err := h.Service.GetSession(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	stats := session.Stats
	if stats == nil {
		computed := session.ComputeStats()
		stats = &computed
	}
	topicPerf := session.TopicPerformance
	if topicPerf == nil {
		topicPerf = session.ComputeTopicPerformance()
	}

	c.JSON(http.StatusOK, gin.H{
		"session_id":        session.ID.Hex(),
		"status":            session.Status,
		"config":            session.Config,
		"stats":             stats,
		"topic_performance": topicPerf,
	})
}

// History lists the user's sessions, newest first.
func (h *SessionHandler) History(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "20"), 10, 64)
	sessions, err := h.Service.History(c.Request.Context(), userID, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sessions": sessions})
}

// AttemptHistory lists the user's attempt ledger, newest first.
func (h *SessionHandler) AttemptHistory(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "20"), 10, 64)
	attempts, err := h.Service.AttemptHistory(c.Request.Context(), userID, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"attempts": attempts})
}

// RecordAttempt stores a standalone practice attempt outside any sprint.
func (h *SessionHandler) RecordAttempt(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req struct {
		QuestionID     string `json:"question_id" binding:"required"`
		SelectedOption string `json:"selected_option" binding:"required"`
		TimeMS         int64  `json:"time_ms"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Question id and selected option are required",
			"details": err.Error(),
		})
		return
	}

	attempt, err := h.Service.RecordStandaloneAttempt(c.Request.Context(), userID, req.QuestionID, req.SelectedOption, req.TimeMS)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"attempt_id": attempt.ID.Hex(),
		"is_correct": attempt.IsCorrect,
	})
}
