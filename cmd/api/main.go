package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/GTDGit/showcase_api/internal/cache"
	"github.com/GTDGit/showcase_api/internal/config"
	"github.com/GTDGit/showcase_api/internal/database"
	"github.com/GTDGit/showcase_api/internal/handler"
	"github.com/GTDGit/showcase_api/internal/middleware"
	"github.com/GTDGit/showcase_api/internal/repository"
	"github.com/GTDGit/showcase_api/internal/service"
	"github.com/GTDGit/showcase_api/internal/storage"
)

// main is the application entrypoint for the showcase portfolio API.
func main() {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// 2. Setup logger
	setupLogger(cfg.Env)
	log.Info().Str("env", cfg.Env).Str("store", cfg.StoreDriver).Msg("starting showcase api")

	// 3. Open product store
	productRepo, closeStore, err := openStore(cfg)
	if err != nil {
		log.Error().Err(err).Msg("store initialization failed")
		fmt.Fprintf(os.Stderr, "store initialization failed: %v\n", err)
		os.Exit(1)
	}
	defer closeStore()

	// 3a. Connect to Redis
	redisClient, err := cache.NewRedisClient(&cfg.Redis)
	if err != nil {
		log.Error().Err(err).Msg("redis connection failed")
		fmt.Fprintf(os.Stderr, "redis connection failed: %v\n", err)
		os.Exit(1)
	}
	defer redisClient.Close()
	log.Info().Msg("redis connected successfully")

	// 3b. Initialize draft cache
	draftCache := cache.NewDraftCache(redisClient, cfg.Draft.TTL)

	// 4. Initialize S3 client for media
	s3Client, err := storage.NewS3Client(context.Background(), &cfg.S3)
	if err != nil {
		log.Error().Err(err).Msg("s3 client initialization failed")
		fmt.Fprintf(os.Stderr, "s3 client initialization failed: %v\n", err)
		os.Exit(1)
	}
	log.Info().Str("bucket", cfg.S3.Bucket).Msg("s3 client initialized")

	// 5. Initialize services
	portfolioSvc := service.NewPortfolioService(productRepo, cfg.PublicBaseURL)
	productSvc := service.NewProductService(productRepo, cfg.Limits, cfg.PublicBaseURL)
	mediaSvc := service.NewMediaService(s3Client, cfg.S3)
	draftSvc := service.NewDraftService(draftCache)

	// 6. Initialize handlers
	handlers := &handler.Handlers{
		Health:    handler.NewHealthHandler(productRepo, redisClient),
		Portfolio: handler.NewPortfolioHandler(portfolioSvc),
		Product:   handler.NewProductHandler(productSvc),
		Media:     handler.NewMediaHandler(mediaSvc, cfg.S3.MaxUploadBytes),
		Draft:     handler.NewDraftHandler(draftSvc),
	}

	// 7. Initialize middleware
	rateLimiter := middleware.NewInvalidAuthRateLimiter(20, time.Minute)
	jwtMw := middleware.NewJWTMiddleware(cfg.JWTSecret, rateLimiter)

	// 8. Setup router
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware(cfg.PublicBaseURL, "http://localhost:3000"))
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.TimeoutMiddleware(cfg.RequestTimeout))
	router.MaxMultipartMemory = cfg.S3.MaxUploadBytes
	handler.SetupRoutes(router, handlers, jwtMw)

	// 9. Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 10. Start background eviction of the auth limiter
	go rateLimiter.Run(ctx, 5*time.Minute)

	// 11. Start HTTP server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// 12. Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// 13. Cancel context to stop background work
	cancel()

	// 14. Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited")
}

// openStore connects the product store selected by STORE_DRIVER and returns
// it together with its close function.
func openStore(cfg *config.Config) (repository.ProductRepository, func(), error) {
	switch cfg.StoreDriver {
	case config.DriverMongo:
		client, db, err := database.ConnectMongo(&cfg.Mongo)
		if err != nil {
			return nil, nil, err
		}
		repo := repository.NewMongoProductRepository(db, cfg.Mongo.Collection)

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := repo.EnsureIndexes(ctx); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, nil, fmt.Errorf("could not ensure indexes: %w", err)
		}
		log.Info().Str("database", cfg.Mongo.Database).Msg("mongo connected successfully")
		return repo, func() { _ = client.Disconnect(context.Background()) }, nil

	case config.DriverMemory:
		log.Warn().Msg("using in-memory store, data is lost on restart")
		return repository.NewMemoryProductRepository(), func() {}, nil

	default:
		db, err := database.Connect(&cfg.DB)
		if err != nil {
			return nil, nil, err
		}
		if err := database.Migrate(db.DB, "file://migrations"); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		log.Info().Msg("migrations completed successfully")
		return repository.NewPostgresProductRepository(db), func() { _ = db.Close() }, nil
	}
}

func setupLogger(env string) {
	if env == "production" {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
}
