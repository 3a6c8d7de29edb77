package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"

	"storefront-backend/internal/cache"
	"storefront-backend/internal/config"
	"storefront-backend/internal/db"
	"storefront-backend/internal/httpserver"
	"storefront-backend/internal/ratelimit"
	inquiryrepo "storefront-backend/internal/repository/inquiry"
	cartsvc "storefront-backend/internal/service/cart"
	catalogsvc "storefront-backend/internal/service/catalog"
	contactsvc "storefront-backend/internal/service/contact"
	contentsvc "storefront-backend/internal/service/content"
	"storefront-backend/internal/shopify"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()

	var dbpool *pgxpool.Pool
	if cfg.DBConnString != "" {
		pool, err := db.Connect(ctx, cfg.DBConnString, cfg.DBMaxConns)
		if err != nil {
			logger.Fatalf("connect to db: %v", err)
		}
		defer pool.Close()
		dbpool = pool
	} else {
		logger.Printf("DB_DSN not set, inquiry log disabled")
	}

	var cacheStore cache.Store
	var limitStore ratelimit.Store
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := client.Ping(ctx).Err(); err != nil {
			logger.Fatalf("connect to redis: %v", err)
		}
		defer client.Close()
		cacheStore = cache.NewRedisStore(client)
		limitStore = ratelimit.NewRedisStore(client)
	} else {
		logger.Printf("REDIS_ADDR not set, using in-memory cache and rate limits")
		cacheStore = cache.NewMemoryStore()
		limitStore = ratelimit.NewMemoryStore()
	}

	platform := shopify.New(shopify.Config{
		StoreDomain:     cfg.ShopDomain,
		StorefrontToken: cfg.StorefrontToken,
		AdminToken:      cfg.AdminToken,
		APIVersion:      cfg.APIVersion,
	}, logger)

	var inquiries inquiryrepo.Repository
	if dbpool != nil {
		inquiries = inquiryrepo.NewPostgres(dbpool)
	}

	contactLimiter := ratelimit.New(limitStore, 5*time.Minute, 5)
	subscribeLimiter := ratelimit.New(limitStore, 5*time.Minute, 10)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		Cart:           cartsvc.New(platform, cacheStore, logger),
		Catalog:        catalogsvc.New(platform, logger),
		Contact:        contactsvc.New(platform, inquiries, contactLimiter, subscribeLimiter, logger),
		Content:        contentsvc.New(platform, cacheStore, logger),
		AllowedOrigins: cfg.AllowedOrigins,
	})
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
