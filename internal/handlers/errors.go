package handlers

import (
	"errors"
	"net/http"

	"sprint-service/internal/logger"
	"sprint-service/internal/selection"
	"sprint-service/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondError maps domain errors onto the wire. Internal failures are
// logged server side and surfaced as an opaque 500 with no partial payload.
func respondError(c *gin.Context, err error) {
	var poolErr *selection.InsufficientPoolError

	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
	case errors.Is(err, service.ErrQuestionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Question not found"})
	case errors.Is(err, service.ErrMissingParams):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, selection.ErrNoMatchingTopics):
		c.JSON(http.StatusBadRequest, gin.H{"error": "No matching topics for the selected tags"})
	case errors.As(err, &poolErr):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Not enough questions for the selected criteria",
			"available": poolErr.Available,
			"requested": poolErr.Requested,
		})
	default:
		logger.Log.Error("request failed",
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// currentUser pulls the opaque user id the auth layer injected. An empty id
// means the request never passed authentication.
func currentUser(c *gin.Context) (string, bool) {
	userID := c.GetHeader("X-User-ID")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	return userID, true
}
