package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/zizouhuweidi/trivia/internal/cache"
	"github.com/zizouhuweidi/trivia/internal/config"
	"github.com/zizouhuweidi/trivia/internal/database"
	"github.com/zizouhuweidi/trivia/internal/domain"
	"github.com/zizouhuweidi/trivia/internal/handler"
	"github.com/zizouhuweidi/trivia/internal/logger"
	"github.com/zizouhuweidi/trivia/internal/repository/memory"
	"github.com/zizouhuweidi/trivia/internal/repository/postgres"
	"github.com/zizouhuweidi/trivia/internal/service"
	"github.com/zizouhuweidi/trivia/internal/websocket"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := logger.New(cfg.LogLevel)
	defer logger.Sync()

	ctx := context.Background()

	// Initialize repositories
	var (
		questionRepo domain.QuestionRepository
		categoryRepo domain.CategoryRepository
	)
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		pool, err := database.ConnectPostgres(ctx, cfg.Postgres)
		if err != nil {
			logger.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer pool.Close()

		if cfg.Migrate {
			if err := postgres.Migrate(ctx, pool); err != nil {
				logger.Fatal("Failed to migrate database", zap.Error(err))
			}
		}
		if cfg.Seed {
			n, err := postgres.Seed(ctx, pool)
			if err != nil {
				logger.Fatal("Failed to seed database", zap.Error(err))
			}
			logger.Info("seeded categories", zap.Int("count", n))
		}

		questionRepo = postgres.NewQuestionRepository(pool)
		categoryRepo = postgres.NewCategoryRepository(pool)

	case config.DriverMemory:
		store := memory.NewStore()
		for _, name := range postgres.DefaultCategories {
			store.AddCategory(name)
		}
		questionRepo = store.Questions()
		categoryRepo = store.Categories()
		logger.Warn("using in-memory store, data is lost on exit")
	}

	// Initialize Redis client
	var (
		categoryCache service.CategoryCache
		limiter       handler.RateLimiter
	)
	if cfg.RedisEnabled {
		redisClient, err := database.ConnectRedis(ctx, cfg.Redis)
		if err != nil {
			logger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer redisClient.Close()

		cacheManager := cache.NewManager(redisClient, cfg.CategoryCacheTTL)
		// Categories may have been reseeded since the last run
		if err := cacheManager.InvalidateCategories(ctx); err != nil {
			logger.Warn("failed to invalidate category cache", zap.Error(err))
		}
		categoryCache = cacheManager
		limiter = cacheManager
	}

	// Initialize websocket hub
	hub := websocket.NewHub(logger)
	go hub.Run()

	// Initialize services
	categoryService := service.NewCategoryService(categoryRepo, categoryCache, logger)
	questionService := service.NewQuestionService(questionRepo, categoryService, hub, logger)
	quizService := service.NewQuizService(questionRepo, categoryService)

	e := handler.NewRouter(handler.Deps{
		Categories:      categoryService,
		Questions:       questionService,
		Quiz:            quizService,
		Hub:             hub,
		Log:             logger,
		RequestTimeout:  cfg.RequestTimeout,
		Limiter:         limiter,
		WriteRateLimit:  cfg.WriteRateLimit,
		WriteRateWindow: cfg.WriteRateWindow,
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           e,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// Start server
	go func() {
		logger.Info("starting server", zap.String("addr", server.Addr), zap.String("store", cfg.StoreDriver))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("shutting down the server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("failed to shut down server", zap.Error(err))
	}
	hub.Stop()
	logger.Info("server stopped")
}
