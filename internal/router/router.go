package router

import (
	"log"

	"firebase.google.com/go/v4/auth"
	"github.com/eryss-app/backend/internal/handlers"
	"github.com/eryss-app/backend/internal/middleware"
	"github.com/eryss-app/backend/internal/models"
	"github.com/eryss-app/backend/internal/repositories"
	"github.com/eryss-app/backend/pkg/media"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Logger())
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, db *gorm.DB, firebaseAuthClient *auth.Client, uploader media.Uploader) {
	// AutoMigrate models
	err := db.AutoMigrate(
		&models.User{},
		&models.Image{},
		&models.Like{},
		&models.Save{},
		&models.Follow{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("Auto-migrations completed for all models.")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(db)
	imageRepo := repositories.NewPostgresImageRepository(db)
	likeRepo := repositories.NewPostgresLikeRepository(db)
	saveRepo := repositories.NewPostgresSaveRepository(db)
	followRepo := repositories.NewPostgresFollowRepository(db)

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/auth")
	authHandler := handlers.NewAuthHandler(userRepo, firebaseAuthClient)
	authHandler.RegisterAuthRoutes(authGroup)
	log.Println("Auth routes configured.")

	// --- Read routes: anonymous viewers allowed, annotated when signed in ---
	public := e.Group("")
	public.Use(middleware.OptionalJWTAuthMiddleware())

	// --- Mutating routes: authentication required ---
	protected := e.Group("")
	protected.Use(middleware.JWTAuthMiddleware())

	imageHandler := handlers.NewImageHandler(imageRepo, likeRepo, saveRepo, userRepo, uploader)
	imageHandler.RegisterPublicImageRoutes(public)
	imageHandler.RegisterProtectedImageRoutes(protected)
	log.Println("Image routes configured.")

	interactionHandler := handlers.NewInteractionHandler(likeRepo, saveRepo, followRepo, imageRepo, userRepo)
	interactionHandler.RegisterInteractionRoutes(protected)
	log.Println("Interaction routes configured.")

	feedHandler := handlers.NewFeedHandler(imageRepo, likeRepo, saveRepo)
	feedHandler.RegisterFeedRoutes(protected)
	log.Println("Feed routes configured.")

	userHandler := handlers.NewUserHandler(userRepo, imageRepo, likeRepo, saveRepo, followRepo)
	userHandler.RegisterProfileRoutes(protected)
	userHandler.RegisterPublicUserRoutes(public)
	log.Println("User routes configured.")

	searchHandler := handlers.NewSearchHandler(imageRepo, userRepo, likeRepo, saveRepo, followRepo)
	searchHandler.RegisterSearchRoutes(public)
	log.Println("Search routes configured.")

	log.Println("All routes configured.")
}
