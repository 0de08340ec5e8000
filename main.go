package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Irina-Gavrilina/shareit/config"
	"github.com/Irina-Gavrilina/shareit/config/db"
	redisclient "github.com/Irina-Gavrilina/shareit/config/redis"
	"github.com/Irina-Gavrilina/shareit/logger"
	"github.com/Irina-Gavrilina/shareit/middlewares/cors"
	logger_middleware "github.com/Irina-Gavrilina/shareit/middlewares/logger"
	"github.com/Irina-Gavrilina/shareit/repository"
	"github.com/Irina-Gavrilina/shareit/routes"
	"github.com/Irina-Gavrilina/shareit/services/booking_service"
	"github.com/Irina-Gavrilina/shareit/services/item_service"
	"github.com/Irina-Gavrilina/shareit/utils"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func init() {
	config.LoadEnv()
	logger.InitLoggers()
}

func main() {
	port := config.GetEnv("PORT", "8080")
	gin.SetMode(config.GetEnv("GIN_MODE", gin.ReleaseMode))

	repo, err := newRepository()
	if err != nil {
		logger.ErrorLogger.Fatalf("Failed to initialise storage: %v", err)
	}
	defer db.Close()
	defer redisclient.CloseRedis()

	clock := utils.RealClock{}
	bookingService := booking_service.NewBookingService(repo, newLocker(), clock)
	itemService := item_service.NewItemService(repo, clock)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger_middleware.GinLogger())
	r.Use(cors.CorsMiddleware())

	routes.RegisterUserRoutes(r, itemService)
	routes.RegisterItemRoutes(r, itemService)
	routes.RegisterBookingRoutes(r, bookingService)

	health := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok from shareit service"})
	}
	r.GET("/health", health)
	r.HEAD("/health", health)

	if config.GetEnvBool("PROMETHEUS_ENABLED") {
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
		logger.InfoLogger.Info("Prometheus metrics exposed on /metrics")
	}

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.InfoLogger.Infof("Server listening on :%s", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.ErrorLogger.Fatalf("Server failed to listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.InfoLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.ErrorLogger.Errorf("Server forced to shutdown: %v", err)
	}
	logger.InfoLogger.Info("Server exited gracefully.")
}

// newRepository returns postgres when DATABASE_URL is set, memory otherwise.
func newRepository() (repository.Repository, error) {
	dsn := config.GetEnv("DATABASE_URL", "")
	if dsn == "" {
		logger.WarnLogger.Warn("DATABASE_URL not set, using in-memory storage")
		return repository.NewMemoryRepository(), nil
	}
	pool, err := db.Connect(dsn)
	if err != nil {
		return nil, err
	}
	return repository.NewPostgresRepository(pool), nil
}

// newLocker returns a Redis lock when Redis is reachable, an in-process one otherwise.
func newLocker() booking_service.Locker {
	client, err := redisclient.GetRedisClient(context.Background())
	if err != nil {
		logger.WarnLogger.Warnf("Using in-process booking locks: %v", err)
		return booking_service.NewLocalLocker()
	}
	return booking_service.NewRedisLocker(client)
}
