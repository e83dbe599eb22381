package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	handlerHttp "boardpulse/internal/handler/http"
	redisclient "boardpulse/internal/infrastructure/cache"
	"boardpulse/internal/infrastructure/config"
	"boardpulse/internal/infrastructure/database"
	"boardpulse/internal/infrastructure/logger"
	"boardpulse/internal/infrastructure/repository/mongodb"
	"boardpulse/internal/infrastructure/store"
	"boardpulse/internal/infrastructure/uuidgen"
	"boardpulse/internal/infrastructure/validator"
	"boardpulse/internal/scheduler"
	"boardpulse/internal/usecase"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
	appConfig := config.NewConfig()
	appLogger := logger.NewStdLogger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Establish MongoDB connection
	mongoClient, err := database.NewMongoDBClient(appConfig.MongoURI)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer mongoClient.Disconnect()
	db := mongoClient.Client.Database(appConfig.MongoDBName)

	// Counter store on Redis
	rdb := redisclient.NewRedisFromURL(ctx, appConfig.RedisURL)
	defer redisclient.Close(rdb)
	counterStore := store.NewRedisCounterStore(rdb)

	// Register custom validators
	validator.RegisterCustomValidators()

	// Dependency Injection: Repositories
	noticeRepo := mongodb.NewNoticeRepository(db)
	postRepo := mongodb.NewPostRepository(db)

	// Dependency Injection: engagement core
	strategy := usecase.NewAtomicIncrementStrategy(counterStore)
	guard := usecase.NewCorruptionGuard(counterStore, strategy, appLogger)
	viewLimiter := usecase.NewViewRateLimiter(appConfig.ViewRatePerSecond, appConfig.ViewRateBurst)
	viewLimiter.StartJanitor(ctx, 0)
	engagementUC := usecase.NewEngagementUsecase(
		counterStore, guard, noticeRepo, postRepo, viewLimiter, appLogger,
		appConfig.ViewCooldown, appConfig.CounterOpTimeout,
	)

	// Background reconciliation
	reconciler := scheduler.NewReconciler(
		counterStore, guard, noticeRepo, postRepo,
		uuidgen.NewGenerator(), appLogger,
		scheduler.Intervals{
			Drain:       appConfig.DrainInterval,
			MarkerSweep: appConfig.MarkerSweepInterval,
			Repair:      appConfig.RepairInterval,
		},
	)
	reconciler.Start(ctx)
	appLogger.Infof("reconciler started: drain=%s sweep=%s repair=%s cooldown=%s",
		appConfig.DrainInterval, appConfig.MarkerSweepInterval, appConfig.RepairInterval, appConfig.ViewCooldown)

	// Setup API routes
	router := gin.Default()
	appRouter := handlerHttp.NewRouter(engagementUC, guard, reconciler, noticeRepo, postRepo, appConfig.RequestsPerSecond)
	appRouter.SetupRoutes(router)

	// Start the server
	log.Printf("Server running on port %s", appConfig.Port)
	if err := router.Run(":" + appConfig.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
