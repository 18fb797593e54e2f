package main

import (
	"context"
	"os"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/alumni-portal-api/internal/config"
	"github.com/yukikurage/alumni-portal-api/internal/constants"
	"github.com/yukikurage/alumni-portal-api/internal/database"
	"github.com/yukikurage/alumni-portal-api/internal/handlers"
	"github.com/yukikurage/alumni-portal-api/internal/logger"
	"github.com/yukikurage/alumni-portal-api/internal/media"
	"github.com/yukikurage/alumni-portal-api/internal/metrics"
	"github.com/yukikurage/alumni-portal-api/internal/repository"
	"github.com/yukikurage/alumni-portal-api/internal/services"
	"github.com/yukikurage/alumni-portal-api/internal/storage"
	"github.com/yukikurage/alumni-portal-api/internal/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log := logger.New(cfg)
	if err := cfg.Validate(); err != nil {
		log.Fatal("invalid configuration", "err", err)
	}

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatal("failed to connect to database", "err", err)
	}

	// Run migrations
	if err := database.MigrateDatabase(db); err != nil {
		log.Fatal("failed to run migrations", "err", err)
	}

	// Object storage
	var store storage.Store
	var localStore *storage.LocalStore
	switch cfg.StorageDriver {
	case "s3":
		store, err = storage.NewS3Store(context.Background(), storage.S3Options{
			AccountID:       cfg.S3AccountID,
			Endpoint:        cfg.S3Endpoint,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
			Region:          cfg.S3Region,
			Bucket:          cfg.S3Bucket,
			PublicURL:       cfg.StoragePublicURL,
		})
		if err != nil {
			log.Fatal("failed to create s3 store", "err", err)
		}
	default:
		localStore = storage.NewLocalStore(cfg.LocalStorageDir, cfg.StoragePublicURL)
		if err := os.MkdirAll(localStore.Root(), 0o755); err != nil {
			log.Fatal("failed to create upload directory", "err", err)
		}
		store = localStore
	}
	mediaManager := media.NewManager(storage.NewInstrumented(store), log, cfg.MaxUploadMB<<20)

	// Session store
	sessionStore, err := newSessionStore(cfg)
	if err != nil {
		log.Fatal("failed to create session store", "err", err)
	}
	sessionStore.Options(sessions.Options{
		Path:     "/",
		MaxAge:   constants.SessionMaxAge,
		HttpOnly: true,
		Secure:   cfg.IsProduction(),
		SameSite: 2, // Lax
	})

	// Repositories and services
	tokens := utils.NewTokenIssuer(cfg.JWTSecret, cfg.JWTTTL)
	userRepo := repository.NewUserRepository(db)
	authService := services.NewAuthService(userRepo, tokens)
	aiService := services.NewAIService(cfg.OpenAIAPIKey)
	if !aiService.Configured() {
		log.Warn("OPENAI_API_KEY is not set, excerpt drafting is disabled")
	}

	// Initialize Gin router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.Middleware(log))
	r.Use(metrics.Middleware())
	r.MaxMultipartMemory = cfg.MaxUploadMB << 20

	if localStore != nil {
		r.Static("/uploads", localStore.Root())
	}

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Alumni Portal API is running",
		})
	})
	r.GET("/metrics", metrics.Handler())

	handlers.RegisterRoutes(r, handlers.Dependencies{
		Sessions: sessionStore,
		Tokens:   tokens,
		Auth:     authService,
		Users:    services.NewUserService(userRepo, authService, mediaManager),
		Events:   services.NewEventService(repository.NewEventRepository(db), mediaManager),
		News:     services.NewNewsService(repository.NewNewsRepository(db), mediaManager),
		Projects: services.NewProjectService(repository.NewProjectRepository(db), mediaManager),
		Members:  services.NewMemberService(repository.NewMemberRepository(db), userRepo, mediaManager),
		AI:       aiService,
		Logger:   log,
	})

	// Start server
	log.Info("server starting", "port", cfg.Port, "storage", cfg.StorageDriver, "db", cfg.DBDriver)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("failed to start server", "err", err)
	}
}

func newSessionStore(cfg *config.Config) (sessions.Store, error) {
	if cfg.SessionStore == "redis" {
		redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
		return redisStore.NewStore(
			10,        // Redis pool size
			"tcp",     // network type
			redisAddr, // Redis address from config
			"",        // username (empty for default user)
			"",        // password (empty = no password)
			[]byte(cfg.SessionSecret),
		)
	}
	return cookie.NewStore([]byte(cfg.SessionSecret)), nil
}
