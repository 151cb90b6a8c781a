package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"autosave/config"
	"autosave/cron"
	"autosave/database"
	activityRepo "autosave/database/repository/activity"
	draftRepo "autosave/database/repository/draft"
	"autosave/handlers"
	"autosave/middleware"
	"autosave/routes"
	"autosave/services/activity"
	"autosave/services/coreapi"
	"autosave/services/notification"
	"autosave/services/schedule"
	"autosave/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	cfg := config.AppConfig

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// Draft store.
	var redisClient *redis.Client
	var drafts draftRepo.DraftRepository
	switch cfg.DraftStore {
	case "redis":
		redisClient = utils.GetDraftCacheClient()
		drafts = draftRepo.NewRedisDraftRepo(redisClient, cfg.DraftTTL(), cfg.SubmitLockTTL())
	default:
		mem := draftRepo.NewMemoryDraftRepo(cfg.DraftTTL(), cfg.SubmitLockTTL())
		go sweepDrafts(ctx, mem, logger)
		drafts = mem
	}

	// Activity telemetry.
	var mongoClient *mongo.Client
	tracker := activity.Tracker(&activity.LogTracker{Logger: logger})
	if cfg.ActivitySink == "mongo" {
		client, err := database.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Sugar().Fatalf("main: failed to connect to mongo: %v", err)
		}
		mongoClient = client
		repo := activityRepo.NewMongoActivityRepo(client.Database(cfg.DatabaseName))
		if err := repo.EnsureIndexes(ctx); err != nil {
			logger.Warn("main: failed to ensure activity indexes", zap.Error(err))
		}
		tracker = activity.Multi{tracker, &activity.RepoTracker{Repo: repo, Logger: logger}}
	}

	// Push notifications go through the asynq queue and a local worker.
	var notifier notification.Notifier = notification.Nop{}
	var worker *asynq.Server
	if cfg.NotificationsEnabled {
		redisOpts := asynq.RedisClientOpt{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisQueueDB}
		fcm, err := utils.NewFCMClient(ctx, cfg.FirebaseCredentialsFile)
		if err != nil {
			logger.Sugar().Fatalf("main: failed to initialize firebase messaging: %v", err)
		}
		queue := asynq.NewClient(redisOpts)
		defer queue.Close()
		notifier = &notification.QueueNotifier{Queue: queue}

		srv, mux := cron.NewNotificationWorker(redisOpts, cfg.WorkerConcurrency, fcm, logger)
		worker = srv
		go func() {
			if err := srv.Run(mux); err != nil {
				logger.Error("main: notification worker stopped", zap.Error(err))
			}
		}()
	}

	utils.StartHealthMonitor(ctx, redisClient, mongoClient)

	savingsAPI := coreapi.NewClient(cfg.CoreAPIURL, cfg.CoreAPITimeout())
	draftService := &schedule.DefaultDraftSessionService{
		Repo:      drafts,
		Catalog:   savingsAPI,
		Submitter: &schedule.Submitter{Creator: savingsAPI},
		Tracker:   tracker,
		Notifier:  notifier,
		Logger:    logger,
	}
	handlerBundle := handlers.NewHandlerBundle(handlers.NewScheduleHandler(draftService))

	// Create the Gin router.
	router := gin.New()
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.RateLimitMiddleware(cfg.MaxRequestsPerMin))
	routes.RegisterRoutes(router, handlerBundle)

	port := cfg.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s (draft store: %s)...", srv.Addr, cfg.DraftStore)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}
	if worker != nil {
		worker.Shutdown()
	}
	if mongoClient != nil {
		_ = mongoClient.Disconnect(shutdownCtx)
	}
	if redisClient != nil {
		_ = redisClient.Close()
	}

	logger.Sugar().Info("main: server stopped gracefully")
	_ = logger.Sync()
}

// sweepDrafts evicts expired in-memory drafts until ctx is done.
func sweepDrafts(ctx context.Context, repo *draftRepo.MemoryDraftRepo, logger *zap.Logger) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := repo.Sweep(); n > 0 {
				logger.Debug("expired drafts removed", zap.Int("count", n))
			}
		}
	}
}
