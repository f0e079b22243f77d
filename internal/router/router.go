package router

import (
	"log"

	"github.com/anonto42/snapgram/backend/internal/auth"
	"github.com/anonto42/snapgram/backend/internal/handlers"
	"github.com/anonto42/snapgram/backend/internal/middleware"
	"github.com/anonto42/snapgram/backend/internal/repositories"
	"github.com/anonto42/snapgram/backend/internal/services"
	"github.com/anonto42/snapgram/backend/pkg/payment"
	"github.com/anonto42/snapgram/backend/pkg/storage"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// Dependencies are the wired backends the routes are built on. Stories,
// Firebase, Payments and UploadDir are optional.
type Dependencies struct {
	DB            *gorm.DB
	Tokens        *auth.TokenManager
	Media         storage.Store
	Stories       repositories.StoryRepository
	Firebase      services.IDTokenVerifier
	Payments      payment.Gateway
	CoinsPerRupee int64
	UploadDir     string
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, deps Dependencies) {
	e.GET("/health", handlers.HealthCheck)
	e.GET("/", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"message": "Snapgram API"})
	})
	if deps.UploadDir != "" {
		e.Static("/uploads", deps.UploadDir)
	}

	// --- Services ---
	accountService := services.NewAccountService(deps.DB, deps.Tokens, deps.Firebase, deps.Media)
	followService := services.NewFollowService(deps.DB)
	likeService := services.NewLikeService(deps.DB)
	contentService := services.NewContentService(deps.DB, deps.Media)
	notificationService := services.NewNotificationService(deps.DB)
	chatService := services.NewChatService(deps.DB)
	walletService := services.NewWalletService(deps.DB, deps.Payments, deps.CoinsPerRupee)
	adminService := services.NewAdminService(deps.DB, deps.Tokens)

	// --- Unprotected routes for authentication ---
	authHandler := handlers.NewAuthHandler(accountService)
	authHandler.RegisterAuthRoutes(e.Group("/api/v1/auth"))

	adminHandler := handlers.NewAdminHandler(adminService, contentService)
	adminHandler.RegisterAdminAuthRoutes(e.Group("/api/v1/admin"))
	log.Println("Auth routes configured.")

	// --- Admin console (admin token) ---
	adminGroup := e.Group("/api/v1/admin",
		middleware.JWTAuthMiddleware(deps.Tokens),
		middleware.RequireRole(auth.RoleAdmin),
	)
	adminHandler.RegisterAdminRoutes(adminGroup)
	log.Println("Admin routes configured.")

	// --- Protected routes (user token) ---
	api := e.Group("/api/v1",
		middleware.JWTAuthMiddleware(deps.Tokens),
		middleware.RequireRole(auth.RoleUser),
	)
	api.GET("/auth/me", authHandler.Me)

	handlers.NewUserHandler(accountService, followService).RegisterProfileRoutes(api)
	handlers.NewFollowHandler(followService).RegisterFollowRoutes(api)
	handlers.NewPostHandler(contentService).RegisterPostRoutes(api)
	handlers.NewFeedHandler(contentService).RegisterFeedRoutes(api)
	handlers.NewCommentHandler(contentService).RegisterCommentRoutes(api)
	handlers.NewLikeHandler(likeService).RegisterLikeRoutes(api)
	handlers.NewNotificationHandler(notificationService).RegisterNotificationRoutes(api)
	handlers.NewChatHandler(chatService, walletService).RegisterChatRoutes(api)
	handlers.NewWalletHandler(walletService).RegisterWalletRoutes(api)
	log.Println("User routes configured.")

	if deps.Stories != nil {
		storyService := services.NewStoryService(deps.DB, deps.Stories, deps.Media)
		handlers.NewStoryHandler(storyService).RegisterStoryRoutes(api)
		log.Println("Story routes configured.")
	}

	log.Println("All routes configured.")
}
