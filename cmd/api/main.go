package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/ashokvas/flowspace/internal/api"
	"github.com/ashokvas/flowspace/internal/api/handlers"
	"github.com/ashokvas/flowspace/internal/realtime"
	"github.com/ashokvas/flowspace/internal/repository"
	"github.com/ashokvas/flowspace/internal/services"
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

	log.Info("starting flowspace api",
		zap.String("env", cfg.AppEnv),
		zap.String("addr", cfg.HTTPAddr),
	)

	ctx := context.Background()
	db, err := database.OpenPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	log.Info("database connected")

	jwtSecret := []byte(cfg.JWTSecret)
	if len(jwtSecret) == 0 {
		log.Warn("JWT_SECRET not set, using default (INSECURE for production)")
		jwtSecret = []byte("change-me-in-production-please")
	}

	blobs, err := storage.NewLocalStore(cfg.BlobDir, cfg.PublicBaseURL+"/api/v1/files")
	if err != nil {
		log.Fatal("failed to open blob store", zap.Error(err))
	}

	hub := realtime.NewHub()

	projectRepo := repository.NewProjectRepository(db)
	areaRepo := repository.NewAreaRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	noteRepo := repository.NewNoteRepository(db)
	resourceRepo := repository.NewResourceRepository(db)
	userRepo := repository.NewUserRepository(db)

	router := api.NewRouter(api.Dependencies{
		HMACSecret:       jwtSecret,
		AuthHandler:      handlers.NewAuthHandler(services.NewAuthService(userRepo, jwtSecret)),
		ProjectsHandler:  handlers.NewProjectsHandler(services.NewProjectService(db, projectRepo, hub)),
		AreasHandler:     handlers.NewAreasHandler(services.NewAreaService(db, areaRepo, projectRepo, hub)),
		TasksHandler:     handlers.NewTasksHandler(services.NewTaskService(taskRepo, areaRepo, hub)),
		NotesHandler:     handlers.NewNotesHandler(services.NewNoteService(noteRepo, areaRepo, hub), services.NewAttachmentService(noteRepo, blobs, hub)),
		ResourcesHandler: handlers.NewResourcesHandler(services.NewResourceService(resourceRepo, areaRepo, hub)),
		FilesHandler:     handlers.NewFilesHandler(blobs, jwtSecret, cfg.UploadTokenTTL, cfg.PublicBaseURL),
		SubscribeHandler: handlers.NewSubscribeHandler(hub),
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       90 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server starting", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info("shutdown signal received", zap.String("signal", sig.String()))
	case err := <-errCh:
		log.Error("server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown error", zap.Error(err))
	}
	log.Info("server stopped")
}
