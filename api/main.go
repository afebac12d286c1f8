package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/klassico/storefront/internal/auth"
	"github.com/klassico/storefront/internal/config"
	"github.com/klassico/storefront/internal/db"
	api "github.com/klassico/storefront/internal/http"
	"github.com/klassico/storefront/internal/http/ban"
	"github.com/klassico/storefront/internal/http/handlers"
	rl "github.com/klassico/storefront/internal/http/rate_limiter"
	"github.com/klassico/storefront/internal/logger"
	"github.com/klassico/storefront/internal/redissvc"
	"github.com/klassico/storefront/internal/repo"
	"github.com/klassico/storefront/internal/storage"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type repositories struct {
	products   repo.ProductRepository
	categories repo.CategoryRepository
	users      repo.UserRepository
	stats      repo.StatsRepository
}

func openRepositories(ctx context.Context, cfg *config.Config, log *zap.Logger) (*repositories, func(), error) {
	database, err := db.Connect(ctx, cfg.Database.URL)
	if errors.Is(err, db.ErrMissingDatabaseURL) {
		log.Warn("No database configured, using in-memory repositories")
		products := repo.NewInMemoryProductRepository()
		categories := repo.NewInMemoryCategoryRepository()
		return &repositories{
			products:   products,
			categories: categories,
			users:      repo.NewInMemoryUserRepository(),
			stats:      repo.NewInMemoryStatsRepository(products, categories),
		}, func() {}, nil
	}
	if err != nil {
		return nil, nil, err
	}
	if err := db.Migrate(ctx, database); err != nil {
		database.Close()
		return nil, nil, err
	}
	return &repositories{
		products:   repo.NewPostgresProductRepository(database),
		categories: repo.NewPostgresCategoryRepository(database),
		users:      repo.NewPostgresUserRepository(database),
		stats:      repo.NewPostgresStatsRepository(database),
	}, func() { database.Close() }, nil
}

// @title Klassico Catalog API
// @version 1.0
// @description REST API for the Klassico storefront catalog: categories, products, images and home page content.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	configFile := flag.String("config", "", "path to a config file")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		panic(err)
	}

	log, err := logger.InitLogger(&logger.LogConfig{
		Level:       cfg.Log.Level,
		Environment: cfg.Log.Environment,
		ServiceName: cfg.ServiceName,
		File:        cfg.Log.File,
	})
	if err != nil {
		panic(err)
	}
	defer log.Sync()
	log.Info("Starting catalog service", cfg.LogFields()...)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatal("Could not connect to Redis", zap.Error(err))
	}
	defer rdb.Close()
	redisService := redissvc.NewRedisService(rdb)

	repos, closeRepos, err := openRepositories(ctx, cfg, log)
	if err != nil {
		log.Fatal("Could not connect to database", zap.Error(err))
	}
	defer closeRepos()

	issuer := auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.AccessTTL)
	authService := auth.NewAuthService(repos.users, issuer, auth.NewRedisRefreshStore(rdb), cfg.Auth.RefreshTTL)
	seeded, err := authService.SeedAdmin(ctx, cfg.Auth.AdminUsername, cfg.Auth.AdminPassword)
	if err != nil {
		log.Fatal("Could not seed admin user", zap.Error(err))
	}
	if seeded {
		log.Info("Admin user created", zap.String("username", cfg.Auth.AdminUsername))
	}

	images := storage.NewLocalImageStore(cfg.Uploads.Dir, cfg.Server.PublicBaseURL)

	handlers.SetProductRepo(repos.products)
	handlers.SetCategoryRepo(repos.categories)
	handlers.SetStatsRepo(repos.stats)
	handlers.SetAuthService(authService)
	handlers.SetImageStore(images)
	handlers.SetListingCache(redisService, cfg.Redis.ListingTTL)
	handlers.SetMaxUploadBytes(cfg.Uploads.MaxBytes)

	limiter := rl.New(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	bans := ban.NewStore(rdb, cfg.RateLimit.Strikes, cfg.RateLimit.BanDuration)

	sched := startJobs(log, limiter, bans)
	defer sched.Stop()

	srv := &http.Server{
		Addr: cfg.Server.Addr,
		Handler: api.NewRouter(api.RouterConfig{
			Issuer:   issuer,
			Limiter:  limiter,
			Bans:     bans,
			ImageDir: images.Dir(),
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("Server running", zap.String("addr", cfg.Server.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Graceful shutdown failed", zap.Error(err))
	}
}
