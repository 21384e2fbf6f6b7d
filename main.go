package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"equiptrack/config"
	"equiptrack/database"
	deviceRepoPkg "equiptrack/database/repository/device"
	sessionRepoPkg "equiptrack/database/repository/session"
	userRepoPkg "equiptrack/database/repository/user"
	"equiptrack/handlers"
	"equiptrack/middleware"
	"equiptrack/routes"
	"equiptrack/services/auth"
	"equiptrack/services/device"
	"equiptrack/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	mongoClient, err := database.Connect(config.AppConfig.DatabaseURL)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to connect to MongoDB: %v", err)
	}
	defer func() {
		if err := database.Disconnect(mongoClient); err != nil {
			logger.Sugar().Errorf("main: failed to disconnect from MongoDB: %v", err)
		}
	}()

	utils.InitAuthCache()
	authCache := utils.GetAuthCacheClient()
	utils.StartHealthMonitor(authCache, mongoClient)

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	dbName := config.AppConfig.DatabaseName
	userRepo := userRepoPkg.NewMongoUserRepo(mongoClient, dbName)
	sessionRepo := sessionRepoPkg.NewMongoSessionRepo(mongoClient, dbName)
	deviceRepo := deviceRepoPkg.NewMongoDeviceRepo(mongoClient, dbName)

	// services.
	sessionManager := &auth.SessionManager{
		Repo:  sessionRepo,
		Cache: authCache,
	}
	authService := &auth.DefaultAuthService{
		Repo:       userRepo,
		Sessions:   sessionManager,
		InviteCode: config.AppConfig.InviteCode,
	}
	deviceService := &device.DefaultDeviceService{
		Repo: deviceRepo,
	}

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		Sessions: sessionManager,
		Auth:     handlers.NewAuthHandler(authService),
		Devices:  handlers.NewDeviceHandler(deviceService),
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
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

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
