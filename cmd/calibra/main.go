package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/calibra-app/calibra/internal/app"
	"github.com/calibra-app/calibra/internal/auth"
	"github.com/calibra-app/calibra/internal/evaluations"
	"github.com/calibra-app/calibra/internal/exercises"
	"github.com/calibra-app/calibra/internal/feedback"
	"github.com/calibra-app/calibra/internal/notes"
	"github.com/calibra-app/calibra/internal/observability"
	"github.com/calibra-app/calibra/internal/platform/db"
	"github.com/calibra-app/calibra/internal/stats"
	"github.com/calibra-app/calibra/internal/storage"
	"github.com/calibra-app/calibra/internal/templates"
	"github.com/calibra-app/calibra/internal/users"
	"github.com/calibra-app/calibra/internal/workouts"
	"github.com/calibra-app/calibra/jobs"
	"github.com/calibra-app/calibra/migrations"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	if err := db.Migrate(ctx, cfg.PGDSN, migrations.FS); err != nil {
		logger.Error("run migrations", slog.Any("error", err))
		os.Exit(1)
	}

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Warn("redis ping", slog.Any("error", err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	var store storage.Store
	if cfg.S3Enabled() {
		store, err = storage.NewS3Store(ctx, storage.S3Config{
			Endpoint:  cfg.S3Endpoint,
			Region:    cfg.S3Region,
			Bucket:    cfg.S3Bucket,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
		})
	} else {
		store, err = storage.NewLocalStore(cfg.UploadDir)
	}
	if err != nil {
		logger.Error("init upload storage", slog.Any("error", err))
		os.Exit(1)
	}

	tokens := auth.NewTokenManager([]byte(cfg.JWTSecret), cfg.JWTTTL)
	guard := auth.NewGuard(tokens)

	authRepo := auth.NewRepository(pool)
	authService := auth.NewService(authRepo, tokens)
	authHandler := auth.NewHandler(logger, authService)

	usersRepo := users.NewRepository(pool)
	usersService := users.NewService(usersRepo)
	usersHandler := users.NewHandler(logger, usersService, store)

	exercisesRepo := exercises.NewRepository(pool)
	exercisesService := exercises.NewService(exercisesRepo)
	exercisesHandler := exercises.NewHandler(logger, exercisesService)

	templatesRepo := templates.NewRepository(pool)
	templatesService := templates.NewService(templatesRepo)
	templatesHandler := templates.NewHandler(logger, templatesService)

	workoutsRepo := workouts.NewRepository(pool)
	workoutsService := workouts.NewService(workoutsRepo, templatesService)
	workoutsHandler := workouts.NewHandler(logger, workoutsService)

	statsRepo := stats.NewRepository(pool)
	statsCache := stats.NewCache(redisClient, cfg.StatsCacheTTL)
	statsService := stats.NewService(statsRepo, statsCache)
	statsHandler := stats.NewHandler(logger, statsService)

	feedbackRepo := feedback.NewRepository(pool)
	feedbackService := feedback.NewService(logger, feedbackRepo, exercisesService, statsService)
	feedbackHandler := feedback.NewHandler(logger, feedbackService)

	notesRepo := notes.NewRepository(pool)
	notesService := notes.NewService(notesRepo)
	notesHandler := notes.NewHandler(logger, notesService)

	evaluationsRepo := evaluations.NewRepository(pool)
	evaluationsService := evaluations.NewService(evaluationsRepo)
	evaluationsHandler := evaluations.NewHandler(logger, evaluationsService)

	metrics := observability.NewMetrics()

	// Warm the dashboard caches in the background so the first admin request
	// after a deploy does not pay the rebuild cost. Best effort: the worker
	// may not be running yet.
	jobsClient := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := jobsClient.Close(); err != nil {
			logger.Warn("jobs client close", slog.Any("error", err))
		}
	}()
	if _, err := jobsClient.EnqueueStatsWarmup(ctx, jobs.StatsWarmupPayload{Reason: "startup"}); err != nil {
		logger.Warn("enqueue stats warmup", slog.Any("error", err))
	}

	router := app.NewRouter(app.RouterParams{
		Logger:             logger,
		Config:             cfg,
		Guard:              guard,
		AuthHandler:        authHandler,
		UsersHandler:       usersHandler,
		ExercisesHandler:   exercisesHandler,
		WorkoutsHandler:    workoutsHandler,
		TemplatesHandler:   templatesHandler,
		FeedbackHandler:    feedbackHandler,
		NotesHandler:       notesHandler,
		EvaluationsHandler: evaluationsHandler,
		StatsHandler:       statsHandler,
		Metrics:            metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
