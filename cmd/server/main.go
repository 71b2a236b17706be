package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rokasce/medium-clone-sub000/internal/config"
	"github.com/rokasce/medium-clone-sub000/internal/events"
	"github.com/rokasce/medium-clone-sub000/internal/handler"
	"github.com/rokasce/medium-clone-sub000/internal/infrastructure/database"
	"github.com/rokasce/medium-clone-sub000/internal/logger"
	"github.com/rokasce/medium-clone-sub000/internal/metrics"
	"github.com/rokasce/medium-clone-sub000/internal/middleware"
	"github.com/rokasce/medium-clone-sub000/internal/notifier"
	"github.com/rokasce/medium-clone-sub000/internal/repository"
	"github.com/rokasce/medium-clone-sub000/internal/service"
	"github.com/rokasce/medium-clone-sub000/internal/validator"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration",
			slog.String("error", err.Error()))
	}

	// Connect to database
	pool, err := database.NewPostgres(context.Background(), database.FromConfig(cfg))
	if err != nil {
		logger.Fatal("Failed to connect to database",
			slog.String("error", err.Error()))
	}
	defer pool.Close()

	// Start database pool metrics collector
	poolStatsCollector := metrics.NewPoolStatsCollector(pool)
	poolStatsCollector.Start(15 * time.Second)
	defer poolStatsCollector.Stop()

	// Initialize repositories
	userRepo := repository.NewPostgresUserRepository(pool)
	articleRepo := repository.NewPostgresArticleRepository(pool)
	commentRepo := repository.NewPostgresCommentRepository(pool)
	reactionRepo := repository.NewPostgresReactionRepository(pool)
	notificationRepo := repository.NewPostgresNotificationRepository(pool)
	outboxRepo := repository.NewPostgresOutboxRepository(pool)

	// Wire the event pipeline: committed events flow through the
	// dispatcher into notification handlers, with the outbox relay
	// re-driving anything that missed its post-commit dispatch.
	sink := notifier.NewRepositorySink(notificationRepo)
	dispatcher := events.NewDispatcher()
	dispatcher.Subscribe(notifier.NewClapHandler(sink, articleRepo, userRepo))
	dispatcher.Subscribe(notifier.NewCommentHandler(sink, articleRepo, userRepo))
	dispatcher.Subscribe(notifier.NewReplyHandler(sink, articleRepo, userRepo))
	dispatcher.Subscribe(notifier.NewPublishedHandler(sink))

	uow := events.NewUnitOfWork(pool, outboxRepo, dispatcher)

	relay := events.NewRelay(outboxRepo, dispatcher, cfg.RelayInterval, cfg.RelayBatchSize)
	relay.Start()
	defer relay.Stop()

	// Initialize validator
	v := validator.NewValidator()

	// Initialize services
	articleService := service.NewArticleService(articleRepo, uow, v)
	commentService := service.NewCommentService(commentRepo, articleRepo, uow, v)
	reactionService := service.NewReactionService(reactionRepo, articleRepo, uow)
	notificationService := service.NewNotificationService(notificationRepo)

	// Initialize handlers
	articleHandler := handler.NewArticleHandler(articleService)
	commentHandler := handler.NewCommentHandler(commentService)
	reactionHandler := handler.NewReactionHandler(reactionService)
	notificationHandler := handler.NewNotificationHandler(notificationService)
	healthHandler := handler.NewHealthHandler(pool, outboxRepo)

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Metrics())
	router.Use(gin.Logger())

	// Health and metrics endpoints
	router.GET("/health", healthHandler.Health)
	router.GET("/ready", healthHandler.Ready)
	router.GET("/live", healthHandler.Live)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		articles := v1.Group("/articles")
		{
			articles.POST("", articleHandler.CreateDraft)
			articles.GET("/slug/:slug", articleHandler.GetArticleBySlug)
			articles.GET("/:id", articleHandler.GetArticle)
			articles.DELETE("/:id", articleHandler.DeleteArticle)
			articles.POST("/:id/publish", articleHandler.Publish)
			articles.POST("/:id/unpublish", articleHandler.Unpublish)
			articles.PUT("/:id/content", articleHandler.UpdateContent)
			articles.PUT("/:id/image", articleHandler.SetFeaturedImage)
			articles.DELETE("/:id/image", articleHandler.RemoveFeaturedImage)
			articles.PUT("/:id/tags", articleHandler.UpdateTags)
			articles.PUT("/:id/tags/:tagID", articleHandler.AddTag)
			articles.DELETE("/:id/tags/:tagID", articleHandler.RemoveTag)

			articles.POST("/:id/comments", commentHandler.CreateComment)
			articles.GET("/:id/comments", commentHandler.ListComments)

			articles.POST("/:id/claps", reactionHandler.AddClaps)
			articles.GET("/:id/claps", reactionHandler.GetClaps)
		}

		comments := v1.Group("/comments")
		{
			comments.POST("/:id/replies", commentHandler.CreateReply)
			comments.GET("/:id/replies", commentHandler.ListReplies)
			comments.DELETE("/:id", commentHandler.DeleteComment)
		}

		notifications := v1.Group("/notifications")
		{
			notifications.GET("", notificationHandler.ListNotifications)
			notifications.POST("/read-all", notificationHandler.MarkAllRead)
			notifications.POST("/:id/read", notificationHandler.MarkRead)
		}
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	// Start server in goroutine
	go func() {
		logger.Info("Starting server",
			slog.String("port", cfg.ServerPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server",
				slog.String("error", err.Error()))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server")

	// Shutdown HTTP server first so no new commands enqueue events,
	// then let the relay finish its final sweep via the deferred Stop.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error",
			slog.String("error", err.Error()))
	}

	logger.Info("Server exited")
}
