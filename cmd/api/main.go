package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"persona-fit/internal/config"
	"persona-fit/internal/db"
	apihttp "persona-fit/internal/http"
	"persona-fit/internal/llm"
	"persona-fit/internal/questionbank"
	"persona-fit/internal/repository"
	"persona-fit/internal/service"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer pool.Close()

	// Store ausente o corrupto es fatal en el arranque.
	if err := repository.EnsureSchema(ctx, pool); err != nil {
		logger.Fatal("ensure schema", zap.Error(err))
	}

	questions, err := questionbank.LoadFile(cfg.QuestionBank)
	if err != nil {
		logger.Fatal("load question bank", zap.Error(err))
	}

	questionRepo := repository.NewPgQuestionRepository(pool)
	if err := questionRepo.Seed(ctx, questions); err != nil {
		logger.Fatal("seed question bank", zap.Error(err))
	}
	logger.Info("question bank seeded", zap.Int("questions", len(questions)))

	participantRepo := repository.NewPgParticipantRepository(pool)

	// Sin API key el servicio degrada a explicaciones determinísticas.
	var llmClient llm.Client = llm.Disabled{}
	if cfg.LLMAPIKey != "" {
		llmClient = llm.NewHTTPClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel, logger)
	} else {
		logger.Warn("llm api key not configured, deterministic fallbacks active")
	}

	explanationSvc := service.NewExplanationService(llmClient, logger)
	assessmentSvc := service.NewAssessmentService(logger, questionRepo, participantRepo, explanationSvc)

	var limiter service.SubmitRateLimiter
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed", zap.Error(err))
		} else {
			limiter = service.NewRedisSubmitRateLimiter(redisClient, time.Duration(cfg.SubmitWindowSec)*time.Second, cfg.SubmitMax)
		}
		cancel()
	}

	tokenSvc := service.NewTokenService(cfg.JWTSecret, time.Duration(cfg.JWTTTLMinutes)*time.Minute)
	if !tokenSvc.Enabled() {
		logger.Warn("jwt secret not configured, assessment tokens disabled")
	}

	assessmentHandler := apihttp.NewAssessmentHandler(logger, assessmentSvc, tokenSvc, limiter)
	insightHandler := apihttp.NewInsightHandler(logger, assessmentSvc)
	router := apihttp.NewRouter(logger, cfg.AllowedOrigin, assessmentHandler, insightHandler)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting server", zap.String("port", cfg.HTTPPort))

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}
