package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/aulagen/aulagen-backend/internal/clients/classroom"
	"github.com/aulagen/aulagen-backend/internal/clients/docs"
	"github.com/aulagen/aulagen-backend/internal/clients/drive"
	redisclient "github.com/aulagen/aulagen-backend/internal/clients/redis"
	"github.com/aulagen/aulagen-backend/internal/data/db"
	"github.com/aulagen/aulagen-backend/internal/data/repos"
	"github.com/aulagen/aulagen-backend/internal/http/handlers"
	"github.com/aulagen/aulagen-backend/internal/http/middleware"
	"github.com/aulagen/aulagen-backend/internal/modules/publish"
	"github.com/aulagen/aulagen-backend/internal/observability"
	"github.com/aulagen/aulagen-backend/internal/platform/envutil"
	"github.com/aulagen/aulagen-backend/internal/platform/gcp"
	"github.com/aulagen/aulagen-backend/internal/platform/logger"
	"github.com/aulagen/aulagen-backend/internal/server"
	"github.com/aulagen/aulagen-backend/internal/services"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx := context.Background()

	// Tracing
	if shutdown := observability.InitOTel(ctx, log, observability.OtelConfig{
		ServiceName: "aulagen",
		Environment: envutil.Str("APP_ENV", "development"),
	}); shutdown != nil {
		defer shutdown(context.Background())
	}

	// Postgres (optional: without it the service publishes but keeps no history)
	var runRepo repos.PublicationRunRepo
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Warn("Postgres init failed, publication history disabled", "error", err)
	} else {
		if err := postgresService.AutoMigrateAll(); err != nil {
			log.Warn("Postgres auto migration failed", "error", err)
		}
		runRepo = repos.NewPublicationRunRepo(postgresService.DB(), log)
	}

	// Redis course cache (optional)
	courseCache, err := redisclient.NewCourseCache(log)
	if err != nil {
		log.Warn("Redis init failed, course list cache disabled", "error", err)
		courseCache = nil
	} else {
		defer courseCache.Close()
	}

	// GCS asset archive (optional)
	archive, err := gcp.NewArchiveService(log)
	if err != nil {
		log.Warn("Asset archive init failed, archiving disabled", "error", err)
		archive = nil
	}

	// Per-request Google API client factories
	lmsFactory := classroom.NewFactory()
	blobFactory := drive.NewFactory()
	docsFactory := docs.NewFactory()

	// Usecases
	log.Info("Setting up usecases from main...")
	publishUsecases := publish.New(publish.UsecasesDeps{
		Log:           log,
		LMS:           lmsFactory,
		Blob:          blobFactory,
		Docs:          docsFactory,
		Archive:       archive,
		Runs:          runRepo,
		TopicReuse:    envutil.Bool("PUBLISH_TOPIC_REUSE", false),
		BranchTimeout: time.Duration(envutil.Int("PUBLISH_BRANCH_TIMEOUT_SECONDS", 60)) * time.Second,
	})

	// Services
	log.Info("Setting up services from main...")
	courseService := services.NewCourseService(log, lmsFactory, courseCache)
	historyService := services.NewHistoryService(log, runRepo)

	// Handlers
	log.Info("Setting up handlers from main...")
	courseHandler := handlers.NewCourseHandler(log, courseService)
	publishHandler := handlers.NewPublishHandler(log, publishUsecases)
	historyHandler := handlers.NewHistoryHandler(log, historyService)

	// Middleware
	authMiddleware := middleware.NewAuthMiddleware(log)

	// Router
	log.Info("Setting up router from main...")
	router := server.NewRouter(server.RouterConfig{
		Log:            log,
		AuthMiddleware: authMiddleware,
		CourseHandler:  courseHandler,
		PublishHandler: publishHandler,
		HistoryHandler: historyHandler,
	})

	port := envutil.Str("PORT", "8080")
	fmt.Printf("Server listening on :%s\n", port)
	if err := router.Run(":" + port); err != nil {
		log.Error("Server failed", "error", err)
	}
}
