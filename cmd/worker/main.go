package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/ashokvas/flowspace/internal/queue/tasks"
	"github.com/ashokvas/flowspace/internal/repository"
	"github.com/ashokvas/flowspace/internal/storage"
	"github.com/ashokvas/flowspace/pkg/config"
	"github.com/ashokvas/flowspace/pkg/database"
	"github.com/ashokvas/flowspace/pkg/logger"
)

func main() {
	cfg := config.MustLoad()
	log, err := logger.Init(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Fatal("redis connection failed", zap.Error(err))
	}

	ctx := context.Background()
	db, err := database.OpenPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal("failed to open database", zap.Error(err))
	}

	blobs, err := storage.NewLocalStore(cfg.BlobDir, cfg.PublicBaseURL+"/api/v1/files")
	if err != nil {
		log.Fatal("failed to open blob store", zap.Error(err))
	}

	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	}
	srv := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: cfg.AsynqConcurrency,
	})

	noteRepo := repository.NewNoteRepository(db)
	sweep := tasks.NewSweepTaskHandler(noteRepo, blobs, cfg.BlobGracePeriod)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeBlobSweep, sweep.HandleBlobSweep)

	// Periodic sweep enqueue. The worker owns the schedule so the api
	// process stays stateless.
	client := asynq.NewClient(redisOpt)
	defer client.Close()

	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.BlobSweepSchedule, func() {
		task, err := tasks.NewBlobSweepTask()
		if err != nil {
			logger.L().Error("build sweep task failed", zap.Error(err))
			return
		}
		if _, err := client.Enqueue(task); err != nil {
			logger.L().Error("enqueue sweep task failed", zap.Error(err))
		}
	}); err != nil {
		log.Fatal("invalid sweep schedule", zap.String("schedule", cfg.BlobSweepSchedule), zap.Error(err))
	}
	scheduler.Start()
	defer scheduler.Stop()

	errCh := make(chan error, 1)
	go func() {
		logger.L().Info("asynq worker starting", zap.Int("concurrency", cfg.AsynqConcurrency))
		if err := srv.Run(mux); err != nil {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.L().Info("shutdown signal received", zap.String("signal", sig.String()))
	case err := <-errCh:
		logger.L().Error("worker stopped with error", zap.Error(err))
	}

	srv.Shutdown()
}
