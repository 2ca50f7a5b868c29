package handlers

import (
	"net/http"

	"sprint-service/internal/models"
	"sprint-service/internal/service"

	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	Service *service.CatalogService
}

func NewCatalogHandler(s *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{Service: s}
}

// GetConfigs returns the fixed sprint configuration tables.
func (h *CatalogHandler) GetConfigs(c *gin.Context) {
	c.JSON(http.StatusOK, h.Service.Configs())
}

// GetTopics lists topics with verified questions for a subject.
func (h *CatalogHandler) GetTopics(c *gin.Context) {
	subject := c.DefaultQuery("subject", models.SubjectQuant)
	topics, err := h.Service.Topics(c.Request.Context(), subject)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"subject": subject, "topics": topics})
}
