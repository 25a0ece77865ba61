package http

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewRouter configura el router de Gin con middlewares y rutas.
func NewRouter(
	logger *zap.Logger,
	allowedOrigin string,
	assessH *AssessmentHandler,
	insightH *InsightHandler,
) *gin.Engine {
	r := gin.New()

	// Middlewares básicos: logging, recovery, CORS para el frontend y
	// JSON content-type.
	r.Use(zapLoggerMiddleware(logger), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{allowedOrigin},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{"Content-Type", "Authorization"},
		MaxAge:       12 * time.Hour,
	}))
	r.Use(jsonContentTypeMiddleware())

	r.GET("/", assessH.Landing)
	r.GET("/get_questions", assessH.GetQuestions)
	r.POST("/submit_assessment", assessH.SubmitAssessment)
	r.GET("/get_previous_result", assessH.GetPreviousResult)
	r.POST("/validate_user", assessH.ValidateUser)

	api := r.Group("/api")
	api.GET("/justification/:id", insightH.GetJustification)
	api.GET("/career-fit/:id", insightH.GetCareerFit)
	api.GET("/similar/:id", insightH.GetSimilar)

	return r
}

// zapLoggerMiddleware crea un middleware simple de logging con zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// jsonContentTypeMiddleware fuerza Content-Type: application/json en responses.
func jsonContentTypeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json")
		c.Next()
	}
}
