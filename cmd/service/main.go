package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kstarostin/campfire-store-api/config"
	"github.com/kstarostin/campfire-store-api/internal/cache"
	"github.com/kstarostin/campfire-store-api/internal/hashing"
	"github.com/kstarostin/campfire-store-api/internal/images"
	"github.com/kstarostin/campfire-store-api/internal/metrics"
	"github.com/kstarostin/campfire-store-api/internal/producer"
	"github.com/kstarostin/campfire-store-api/internal/repository"
	"github.com/kstarostin/campfire-store-api/internal/service"
	"github.com/kstarostin/campfire-store-api/internal/token"
	transport "github.com/kstarostin/campfire-store-api/internal/transport/http"
	"github.com/kstarostin/campfire-store-api/pkg/database"
	"github.com/kstarostin/campfire-store-api/pkg/logger"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()
	isDev := os.Getenv("ENV") == "development"
	if err := logger.Init(isDev); err != nil {
		panic(err)
	}

	defer logger.Sync()

	log := logger.L()

	cfg := config.Load(log)
	db := database.ConnectDB(&cfg.DB.Config, log)
	defer database.CloseDB(db, log)

	repos := repository.New(db)

	var denylist service.TokenDenylist
	if cfg.Redis.Enabled {
		rdb, err := cache.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, log)
		if err != nil {
			log.Fatal("redis connection failed", zap.Error(err))
		}
		defer rdb.Close()
		denylist = rdb
	}

	var bus service.EventBus
	if cfg.Kafka.Enabled {
		orderProducer := producer.NewOrderProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer orderProducer.Close()
		bus = orderProducer
	}

	var appMetrics *metrics.AppMetrics
	if cfg.Otel.Enabled {
		m, provider, err := metrics.Init(context.Background(), cfg.Otel.Endpoint, cfg.Otel.ServiceName)
		if err != nil {
			log.Fatal("metrics init failed", zap.Error(err))
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = provider.Shutdown(ctx)
		}()
		appMetrics = m
	}

	tokens := token.NewHSProvider(cfg.JWT.Secret, cfg.JWT.Issuer)
	hasher := hashing.NewBcrypt(12)
	files := images.NewFileStore(cfg.Upload.Dir, log)

	authSvc := service.NewAuthService(repos.Users, hasher, tokens, denylist, cfg.Locale, cfg.JWT.AccessExp, log)
	userSvc := service.NewUserService(repos.Users, hasher, cfg.Locale, log)
	catalogSvc := service.NewCatalogService(repos.Products, repos.Categories, cfg.Locale, log)
	cartSvc := service.NewCartService(repos.Orders, repos.Entries, repos.Products, bus, cfg.Locale, log)
	lookupSvc := service.NewLookupService(repos.Currencies, repos.Languages, repos.Titles, log)

	r := transport.Router(transport.Deps{
		Cfg:     cfg,
		Repos:   repos,
		Auth:    authSvc,
		Users:   userSvc,
		Catalog: catalogSvc,
		Carts:   cartSvc,
		Lookups: lookupSvc,
		Files:   files,
		Metrics: appMetrics,
		Log:     log,
		Dev:     isDev,
	})

	srv := &http.Server{
		Addr:    cfg.Port,
		Handler: r,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info("Starting storefront HTTP server", zap.String("addr", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("http server failed", zap.Error(err))
		}
	}()

	<-quit
	log.Info("Shutting down storefront HTTP server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("forced shutdown", zap.Error(err))
	}
	log.Info("Storefront HTTP server stopped gracefully")
}
