package router

import (
	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/lumora-app/backend/internal/cache"
	"github.com/lumora-app/backend/internal/handlers"
	"github.com/lumora-app/backend/internal/middleware"
	"github.com/lumora-app/backend/internal/models"
	"github.com/lumora-app/backend/internal/repositories"
	"github.com/lumora-app/backend/pkg/config"
	"github.com/lumora-app/backend/pkg/logging"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	logging.GetLogger().Info("Global middleware configured")
}

// SetupRoutes configures all application routes and injects dependencies.
// firebaseAuthClient may be nil when Firebase is not configured.
func SetupRoutes(e *echo.Echo, cfg *config.Config, pgdb *gorm.DB, mgClient *mongo.Client, firebaseAuthClient *auth.Client, countCache *cache.Cache) error {
	log := logging.GetLogger()

	// AutoMigrate PostgreSQL models
	err := pgdb.AutoMigrate(
		&models.Account{},
		&models.Profile{},
		&models.Post{},
		&models.Follow{},
		&models.Like{},
		&models.Comment{},
		&models.Notification{},
	)
	if err != nil {
		return err
	}
	log.Info("PostgreSQL auto-migrations completed")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	accountRepo := repositories.NewPostgresAccountRepository(pgdb)
	profileRepo := repositories.NewPostgresProfileRepository(pgdb)
	postRepo := repositories.NewPostgresPostRepository(pgdb)
	followRepo := repositories.NewPostgresFollowRepository(pgdb)
	likeRepo := repositories.NewPostgresLikeRepository(pgdb)
	commentRepo := repositories.NewPostgresCommentRepository(pgdb)
	notificationRepo := repositories.NewPostgresNotificationRepository(pgdb)
	mediaRepo := repositories.NewGridFSMediaRepository(mgClient.Database(cfg.MongoDatabase))

	// --- Unprotected routes ---
	authGroup := e.Group("/api/v1/auth")
	authHandler := handlers.NewAuthHandler(accountRepo, firebaseAuthClient, cfg.JWTSecret)
	authHandler.RegisterAuthRoutes(authGroup)

	mediaHandler := handlers.NewMediaHandler(mediaRepo)
	mediaHandler.RegisterMediaRoutes(e)

	// --- Protected routes (require JWT authentication) ---
	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))

	profileHandler := handlers.NewProfileHandler(profileRepo, mediaRepo)
	profileHandler.RegisterProfileRoutes(api)

	postHandler := handlers.NewPostHandler(postRepo, profileRepo, mediaRepo)
	postHandler.RegisterPostRoutes(api)

	followHandler := handlers.NewFollowHandler(followRepo, profileRepo, notificationRepo, countCache)
	followHandler.RegisterFollowRoutes(api)

	likeHandler := handlers.NewLikeHandler(likeRepo, postRepo, profileRepo, notificationRepo, countCache)
	likeHandler.RegisterLikeRoutes(api)

	commentHandler := handlers.NewCommentHandler(commentRepo, postRepo, profileRepo, notificationRepo)
	commentHandler.RegisterCommentRoutes(api)

	notificationHandler := handlers.NewNotificationHandler(notificationRepo, profileRepo)
	notificationHandler.RegisterNotificationRoutes(api)

	log.Info("All routes configured", zap.Bool("firebase", firebaseAuthClient != nil))
	return nil
}
