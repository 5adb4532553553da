package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/smartnest/sentinel/audit"
	"github.com/smartnest/sentinel/config"
	"github.com/smartnest/sentinel/controller"
	"github.com/smartnest/sentinel/db"
	"github.com/smartnest/sentinel/directory"
	logger "github.com/smartnest/sentinel/logging"
	"github.com/smartnest/sentinel/registry"
	"github.com/smartnest/sentinel/router"
	"github.com/smartnest/sentinel/service"
	"github.com/smartnest/sentinel/util"
)

func main() {
	// Initialize configuration
	if err := config.InitConfig(); err != nil {
		log.Fatalf("Failed to initialize config: %v", err)
	}

	// Initialize logger
	logger.InitLogger(config.GetString("log.dir"))
	defer logger.Sync()

	// Initialize Neo4j (user directory)
	if err := db.InitNeo4j(); err != nil {
		logger.Fatal("Failed to initialize Neo4j", zap.Error(err))
	}
	defer db.CloseNeo4j()

	// Initialize Redis
	if err := db.InitRedis(); err != nil {
		logger.Fatal("Failed to initialize Redis", zap.Error(err))
	}
	defer db.CloseRedis()

	// Initialize EventBus
	eventBus := util.NewEventBus()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	eventBus.Start(ctx)

	// Initialize services and utilities
	clock := util.SystemClock{}
	validationUtil := util.NewValidationUtil()
	cacheService := util.NewCacheService()
	notificationService := util.NewNotificationService()
	auditRepository, err := audit.NewElasticsearchRepository(config.GetString("elasticsearch.url"))
	if err != nil {
		logger.Fatal("Failed to initialize audit repository", zap.Error(err))
	}
	auditService := audit.NewService(auditRepository)

	// Seed the registry from the user directory
	store := registry.NewStore()
	provider := directory.NewNeo4jProvider(db.Neo4jDriver)
	users, err := provider.FetchUsers(ctx)
	if err != nil {
		logger.Fatal("Failed to fetch users from directory", zap.Error(err))
	}
	loaded := store.Seed(users, clock.Now())
	logger.Info("Registry seeded from directory", zap.Int("users", loaded))

	// Initialize services
	services, err := service.InitializeServices(
		store,
		auditService,
		validationUtil,
		cacheService,
		notificationService,
		eventBus,
		clock,
	)
	if err != nil {
		logger.Fatal("Failed to initialize services", zap.Error(err))
	}

	// Start the expiry sweeper
	sweeper := service.NewSweeper(services.Access, clock, config.GetDuration("sweeper.interval"))
	go sweeper.Start(ctx)

	// Initialize controllers
	controllers := controller.InitializeControllers(services, clock)

	// Set up Gin
	gin.SetMode(gin.ReleaseMode)
	engine := router.SetupRouter(
		controllers,
		100,
		time.Minute, // 100 requests per minute
		nil,
	)

	// Set up the server
	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", config.GetString("server.port")),
		Handler: engine,
	}

	// Start the server in a goroutine
	go func() {
		logger.Info("Starting server", zap.String("port", config.GetString("server.port")))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	// Stop the sweeper and event bus, then give the server 5 seconds to
	// finish the request it is currently handling
	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exiting")
}
