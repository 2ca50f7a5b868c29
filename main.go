package main

import (
	"context"
	"net/http"
	"time"

	"sprint-service/internal/config"
	"sprint-service/internal/db"
	"sprint-service/internal/event"
	"sprint-service/internal/handlers"
	"sprint-service/internal/logger"
	"sprint-service/internal/repository"
	"sprint-service/internal/selection"
	"sprint-service/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	logger.Init(cfg.Server.Mode)
	defer logger.Log.Sync()

	if err := db.InitMongo(cfg.Mongo.URI); err != nil {
		logger.Log.Fatal("connect mongo", zap.Error(err))
	}
	database := db.Client.Database(cfg.Mongo.Database)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := db.EnsureIndexes(ctx, database); err != nil {
		cancel()
		logger.Log.Fatal("ensure indexes", zap.Error(err))
	}
	cancel()

	// RabbitMQ is optional; a nil publisher publishes nothing.
	var publisher *event.Publisher
	if cfg.Rabbit.URI != "" && cfg.Rabbit.Exchange != "" {
		publisher, err = event.NewPublisher(cfg.Rabbit.URI, cfg.Rabbit.Exchange)
		if err != nil {
			logger.Log.Fatal("connect rabbitmq", zap.Error(err))
		}
		defer publisher.Close()
	} else {
		logger.Log.Info("RabbitMQ not configured, domain events will not be published")
	}

	gin.SetMode(cfg.Server.Mode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Content-Length", "Accept-Encoding", "Authorization", "X-User-ID", "Cache-Control", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	sessionRepo := repository.NewSessionRepository(database)
	questionRepo := repository.NewQuestionRepository(database)
	attemptRepo := repository.NewAttemptRepository(database)

	selector := selection.NewSelector(questionRepo)

	sessionService := service.NewSessionService(sessionRepo, questionRepo, attemptRepo, selector, publisher)
	analyticsService := service.NewAnalyticsService(sessionRepo, attemptRepo)
	catalogService := service.NewCatalogService(questionRepo)

	sessionHandler := handlers.NewSessionHandler(sessionService)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService)
	catalogHandler := handlers.NewCatalogHandler(catalogService)

	public := r.Group("/public/practice")
	{
		public.GET("/configs", catalogHandler.GetConfigs)
		public.GET("/topics", catalogHandler.GetTopics)
	}

	protected := r.Group("/protected/practice")
	protected.Use(requireUser())
	{
		protected.POST("/session", sessionHandler.StartSession)
		protected.POST("/session/:id/answer", sessionHandler.SubmitAnswer)
		protected.POST("/session/:id/skip", sessionHandler.SkipQuestion)
		protected.POST("/session/:id/retry", sessionHandler.RetrySession)
		protected.POST("/session/:id/finalize", sessionHandler.FinalizeSession)
		protected.GET("/session/history", sessionHandler.History)
		protected.GET("/session/:id", sessionHandler.GetSession)
		protected.GET("/session/:id/summary", sessionHandler.GetSummary)
		protected.POST("/attempt", sessionHandler.RecordAttempt)
		protected.GET("/attempt/history", sessionHandler.AttemptHistory)
		protected.GET("/analytics", analyticsHandler.GetAnalytics)
	}

	logger.Log.Info("sprint service listening", zap.String("port", cfg.Server.Port))
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		logger.Log.Fatal("server stopped", zap.Error(err))
	}
}

// requireUser rejects requests without the opaque user id the gateway
// injects after authentication.
func requireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("X-User-ID") == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}
		c.Next()
	}
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Log.Info("request",
			zap.Int("status", c.Writer.Status()),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
