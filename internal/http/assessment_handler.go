package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"persona-fit/internal/domain"
	"persona-fit/internal/service"
)

// AssessmentHandler mantiene dependencias para los endpoints del
// cuestionario y las entregas.
type AssessmentHandler struct {
	logger  *zap.Logger
	svc     *service.AssessmentService
	tokens  *service.TokenService
	limiter service.SubmitRateLimiter
}

// NewAssessmentHandler crea una instancia con las dependencias necesarias.
// tokens y limiter pueden ser nil/deshabilitados.
func NewAssessmentHandler(
	logger *zap.Logger,
	svc *service.AssessmentService,
	tokens *service.TokenService,
	limiter service.SubmitRateLimiter,
) *AssessmentHandler {
	return &AssessmentHandler{
		logger:  logger,
		svc:     svc,
		tokens:  tokens,
		limiter: limiter,
	}
}

// Landing maneja GET /.
func (h *AssessmentHandler) Landing(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "API server is running."})
}

// GetQuestions maneja GET /get_questions.
func (h *AssessmentHandler) GetQuestions(c *gin.Context) {
	questions, err := h.svc.Questions(c.Request.Context())
	if err != nil {
		h.logger.Error("list questions failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch questions"})
		return
	}
	if questions == nil {
		questions = []domain.Question{}
	}
	c.JSON(http.StatusOK, questions)
}

// SubmitAssessment maneja POST /submit_assessment.
func (h *AssessmentHandler) SubmitAssessment(c *gin.Context) {
	var req struct {
		ID      string                 `json:"id" binding:"required"`
		Name    string                 `json:"name"`
		Answers map[string]interface{} `json:"answers"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid submit request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	// Un payload sin respuestas es una entrega vacía válida: todos los
	// rasgos quedan en 0.
	if req.Answers == nil {
		req.Answers = map[string]interface{}{}
	}

	participantID := strings.TrimSpace(req.ID)
	if participantID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id is required"})
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = "Anonymous"
	}

	if h.limiter != nil && !h.limiter.Allow(participantID) {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many submissions, try again later"})
		return
	}

	if h.tokens.Enabled() {
		if err := h.tokens.Verify(bearerToken(c), participantID); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or missing assessment token"})
			return
		}
	}

	result, err := h.svc.Submit(c.Request.Context(), participantID, name, req.Answers)
	if err != nil {
		var vErr *domain.ValidationError
		if errors.As(err, &vErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Error()})
			return
		}
		h.logger.Error("submit assessment failed", zap.Error(err), zap.String("participant_id", participantID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not process assessment"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetPreviousResult maneja GET /get_previous_result?id=.
func (h *AssessmentHandler) GetPreviousResult(c *gin.Context) {
	participantID := strings.TrimSpace(c.Query("id"))
	if participantID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"found": false, "message": "id is required"})
		return
	}

	result, err := h.svc.PreviousResult(c.Request.Context(), participantID)
	if err != nil {
		h.logger.Error("previous result failed", zap.Error(err), zap.String("participant_id", participantID))
		c.JSON(http.StatusInternalServerError, gin.H{"found": false, "message": "internal error"})
		return
	}
	if !result.Found {
		c.JSON(http.StatusOK, gin.H{"found": false, "message": "not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"found":       true,
		"scores":      result.Scores,
		"performance": result.Performance,
		"analysis":    result.Analysis,
	})
}

// ValidateUser maneja POST /validate_user.
func (h *AssessmentHandler) ValidateUser(c *gin.Context) {
	var req struct {
		ID   string `json:"id" binding:"required"`
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"valid": false, "message": "User ID is required"})
		return
	}

	participantID := strings.TrimSpace(req.ID)
	if participantID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"valid": false, "message": "User ID is required"})
		return
	}

	valid, message, err := h.svc.ValidateUser(c.Request.Context(), participantID, strings.TrimSpace(req.Name))
	if err != nil {
		h.logger.Error("validate user failed", zap.Error(err), zap.String("participant_id", participantID))
		c.JSON(http.StatusInternalServerError, gin.H{"valid": false, "message": "Internal server error"})
		return
	}
	if !valid {
		c.JSON(http.StatusOK, gin.H{"valid": false, "message": message})
		return
	}

	resp := gin.H{"valid": true}
	if h.tokens.Enabled() {
		token, err := h.tokens.Issue(participantID, strings.TrimSpace(req.Name))
		if err != nil {
			h.logger.Warn("issue assessment token failed", zap.Error(err))
		} else {
			resp["token"] = token
		}
	}
	c.JSON(http.StatusOK, resp)
}

// bearerToken extrae el token del header Authorization.
func bearerToken(c *gin.Context) string {
	auth := c.GetHeader("Authorization")
	const prefix = "Bearer "
	if len(auth) > len(prefix) && strings.EqualFold(auth[:len(prefix)], prefix) {
		return auth[len(prefix):]
	}
	return ""
}
