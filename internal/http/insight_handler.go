package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"persona-fit/internal/domain"
	"persona-fit/internal/service"
)

// InsightHandler sirve justificación, career fit y perfiles similares.
type InsightHandler struct {
	logger *zap.Logger
	svc    *service.AssessmentService
}

func NewInsightHandler(logger *zap.Logger, svc *service.AssessmentService) *InsightHandler {
	return &InsightHandler{logger: logger, svc: svc}
}

// GetJustification maneja GET /api/justification/:id.
func (h *InsightHandler) GetJustification(c *gin.Context) {
	participantID := strings.TrimSpace(c.Param("id"))
	if participantID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"found": false, "message": "id is required"})
		return
	}

	justification, found, err := h.svc.Justification(c.Request.Context(), participantID)
	if err != nil {
		h.logger.Error("fetch justification failed", zap.Error(err), zap.String("participant_id", participantID))
		c.JSON(http.StatusInternalServerError, gin.H{"found": false, "message": "internal error"})
		return
	}
	if !found {
		c.JSON(http.StatusOK, gin.H{"found": false, "message": "not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"found": true, "justification": justification})
}

// GetCareerFit maneja GET /api/career-fit/:id.
func (h *InsightHandler) GetCareerFit(c *gin.Context) {
	participantID := strings.TrimSpace(c.Param("id"))
	if participantID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"found": false, "message": "id is required"})
		return
	}

	result, err := h.svc.CareerFit(c.Request.Context(), participantID)
	if err != nil {
		h.logger.Error("career fit failed", zap.Error(err), zap.String("participant_id", participantID))
		c.JSON(http.StatusInternalServerError, gin.H{"found": false, "message": "internal error"})
		return
	}
	if !result.Found {
		message := result.Message
		if message == "" {
			message = "not found"
		}
		c.JSON(http.StatusOK, gin.H{"found": false, "message": message})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"found":              true,
		"roles":              result.Roles,
		"ranking":            result.Ranking,
		"top_recommendation": result.TopRecommendation,
	})
}

// GetSimilar maneja GET /api/similar/:id?k=.
func (h *InsightHandler) GetSimilar(c *gin.Context) {
	participantID := strings.TrimSpace(c.Param("id"))
	if participantID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"found": false, "message": "id is required"})
		return
	}

	k := 5
	if raw := c.Query("k"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			k = parsed
		}
	}

	similar, found, err := h.svc.Similar(c.Request.Context(), participantID, k)
	if err != nil {
		h.logger.Error("find similar failed", zap.Error(err), zap.String("participant_id", participantID))
		c.JSON(http.StatusInternalServerError, gin.H{"found": false, "message": "internal error"})
		return
	}
	if !found {
		c.JSON(http.StatusOK, gin.H{"found": false, "message": "not found"})
		return
	}
	if similar == nil {
		similar = []domain.SimilarParticipant{}
	}

	c.JSON(http.StatusOK, gin.H{"found": true, "participants": similar})
}
