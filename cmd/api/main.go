package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/yourusername/auth-api/internal/config"
	"github.com/yourusername/auth-api/internal/domain/repository"
	"github.com/yourusername/auth-api/internal/handler"
	"github.com/yourusername/auth-api/internal/middleware"
	memoryrepo "github.com/yourusername/auth-api/internal/repository/memory"
	"github.com/yourusername/auth-api/internal/repository/postgres"
	redisrepo "github.com/yourusername/auth-api/internal/repository/redis"
	"github.com/yourusername/auth-api/internal/service"
	"github.com/yourusername/auth-api/pkg/auth"
	"github.com/yourusername/auth-api/pkg/auth/manager"
	"github.com/yourusername/auth-api/pkg/auth/password"
	"github.com/yourusername/auth-api/pkg/database"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.NewPostgresDB(cfg.Database.PostgresConnectionString())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.MigrateDB(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	var redisClient redis.UniversalClient
	if cfg.Redis.Addr != "" {
		redisClient, err = database.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Fatalf("Failed to connect to redis: %v", err)
		}
		defer redisClient.Close()
	}

	rootCtx, stopBackground := context.WithCancel(context.Background())
	defer stopBackground()

	userRepo := postgres.NewUserRepo(db)
	feedbackRepo := postgres.NewFeedbackRepo(db)
	atomic := postgres.NewAtomic(db)

	var stateStore repository.OAuthStateStore
	switch cfg.OAuth.StateStore {
	case "redis":
		stateStore = redisrepo.NewStateStore(redisClient, cfg.OAuth.StateTTL())
	default:
		stateStore = memoryrepo.NewStateStore(rootCtx, cfg.OAuth.StateTTL())
	}

	tokens, err := auth.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.JWTAlgorithm, cfg.Auth.SessionLifetime())
	if err != nil {
		log.Fatalf("Failed to create token service: %v", err)
	}
	cookies, err := manager.NewCookieManager(tokens, !cfg.Auth.InsecureCookies)
	if err != nil {
		log.Fatalf("Failed to create cookie manager: %v", err)
	}

	authService, err := service.NewAuthService(userRepo, password.NewHasher())
	if err != nil {
		log.Fatalf("Failed to create auth service: %v", err)
	}
	feedbackService, err := service.NewFeedbackService(feedbackRepo)
	if err != nil {
		log.Fatalf("Failed to create feedback service: %v", err)
	}

	var googleService *service.GoogleOAuthService
	if cfg.OAuth.GoogleEnabled() {
		redirectURL := strings.TrimRight(cfg.Server.BaseURL, "/") + "/api/auth/google/callback"
		googleService, err = service.NewGoogleOAuthService(atomic, stateStore, service.GoogleOAuthConfig{
			ClientID:     cfg.OAuth.Google.ClientID,
			ClientSecret: cfg.OAuth.Google.ClientSecret,
			RedirectURL:  redirectURL,
		})
		if err != nil {
			log.Fatalf("Failed to create google oauth service: %v", err)
		}
	} else {
		log.Println("[Main] Google OAuth not configured, provider login disabled")
	}

	authHandler, err := handler.NewAuthHandler(authService, cookies)
	if err != nil {
		log.Fatalf("Failed to create auth handler: %v", err)
	}
	oauthHandler, err := handler.NewOAuthHandler(googleService, cookies, cfg.Server.BaseURL)
	if err != nil {
		log.Fatalf("Failed to create oauth handler: %v", err)
	}
	feedbackHandler, err := handler.NewFeedbackHandler(feedbackService, cookies)
	if err != nil {
		log.Fatalf("Failed to create feedback handler: %v", err)
	}
	authMW, err := middleware.NewAuthMiddleware(cookies, userRepo)
	if err != nil {
		log.Fatalf("Failed to create auth middleware: %v", err)
	}

	router := gin.Default()
	if err := router.SetTrustedProxies(nil); err != nil {
		log.Fatalf("Failed to configure trusted proxies: %v", err)
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{strings.TrimRight(cfg.Server.BaseURL, "/")},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := router.Group("/api")
	{
		api.POST("/register", authHandler.Register)
		api.POST("/login", authHandler.Login)
		api.POST("/logout", authHandler.Logout)
		api.GET("/me", authMW.RequireAuth(), authHandler.Me)
		api.POST("/profile", authMW.RequireAuth(), authHandler.UpdateProfile)

		api.GET("/auth/:provider/login", oauthHandler.Login)
		api.GET("/auth/:provider/callback", oauthHandler.Callback)

		api.POST("/feedback", feedbackHandler.Submit)

		admin := api.Group("/admin", authMW.AdminOnly())
		{
			admin.GET("/feedback", feedbackHandler.List)
			admin.POST("/feedback/:id/status",
				middleware.ExtractUintParam("id", "feedback_id"),
				feedbackHandler.UpdateStatus)
		}
	}

	if cfg.Static.Dir != "" {
		router.Static("/static", cfg.Static.Dir)
		router.StaticFile("/", cfg.Static.Dir+"/index.html")
		router.NoRoute(func(c *gin.Context) {
			// SPA fallback: unknown non-API paths serve the frontend shell.
			if !strings.HasPrefix(c.Request.URL.Path, "/api/") {
				c.File(cfg.Static.Dir + "/index.html")
				return
			}
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found", "error_type": "not_found"})
		})
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		log.Printf("[Main] Server listening on :%s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("[Main] Shutting down...")

	stopBackground()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Forced shutdown: %v", err)
	}
	log.Println("[Main] Server stopped")
}
