package main

import (
	"context"
	"log"

	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/lumora-app/backend/internal/cache"
	"github.com/lumora-app/backend/internal/router"
	"github.com/lumora-app/backend/pkg/config"
	"github.com/lumora-app/backend/pkg/firebase"
	"github.com/lumora-app/backend/pkg/logging"
)

func main() {
	// Load configuration
	cfg := config.Load()

	if err := logging.Init(cfg.LogLevel, cfg.LogFormat); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	logger := logging.GetLogger()
	defer logger.Sync()

	// Initialize database connections
	db, err := config.InitDB(cfg)
	if err != nil {
		logger.Fatal("Failed to initialize databases", zap.Error(err))
	}
	defer db.CloseDB()

	// Initialize Firebase; without credentials only local auth is available
	ctx := context.Background()
	var firebaseApp *firebase.App
	if cfg.FirebaseCredentialsPath != "" {
		firebaseApp, err = firebase.InitFirebase(ctx, cfg.FirebaseCredentialsPath)
		if err != nil {
			logger.Fatal("Failed to initialize Firebase", zap.Error(err))
		}
	} else {
		logger.Warn("Firebase credentials not configured, firebase-login disabled")
	}

	// Initialize the counter cache; an empty REDIS_URL disables it
	countCache, err := cache.New(cfg.RedisURL)
	if err != nil {
		logger.Fatal("Failed to initialize Redis cache", zap.Error(err))
	}
	defer countCache.Close()

	// Create Echo instance
	e := echo.New()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Setup routes and dependencies
	var firebaseAuth *auth.Client
	if firebaseApp != nil {
		firebaseAuth = firebaseApp.AuthClient
	}
	if err := router.SetupRoutes(e, cfg, db.Postgres, db.Mongo, firebaseAuth, countCache); err != nil {
		logger.Fatal("Failed to set up routes", zap.Error(err))
	}

	// Start server
	logger.Info("Starting server", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
