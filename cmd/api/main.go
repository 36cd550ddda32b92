// cmd/api/main.go
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/pos-backend/internal/config"
	"github.com/your-org/pos-backend/internal/domain/cart"
	"github.com/your-org/pos-backend/internal/domain/catalog"
	"github.com/your-org/pos-backend/internal/domain/checkout"
	"github.com/your-org/pos-backend/internal/domain/customer"
	"github.com/your-org/pos-backend/internal/domain/order"
	"github.com/your-org/pos-backend/internal/domain/report"
	"github.com/your-org/pos-backend/internal/domain/user"
	"github.com/your-org/pos-backend/internal/infrastructure/bookkeeping"
	"github.com/your-org/pos-backend/internal/infrastructure/database/postgres"
	"github.com/your-org/pos-backend/internal/infrastructure/database/redis"
	"github.com/your-org/pos-backend/internal/interfaces/http"
	"github.com/your-org/pos-backend/internal/interfaces/http/routes"
	"github.com/your-org/pos-backend/internal/pkg/auth"
	"github.com/your-org/pos-backend/internal/pkg/logger"
	"github.com/your-org/pos-backend/internal/pkg/pdf"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	log := logger.New(cfg)
	log.WithFields(logrus.Fields{
		"version":     cfg.App.Version,
		"environment": cfg.App.Environment,
		"cart_store":  cfg.Cart.Store,
	}).Infof("Starting %s", cfg.App.Name)

	if !cfg.VerifiesTokens() {
		log.Warn("JWT_SECRET not set; role claims are not verified locally")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var serverOpts []http.Option

	// Connect to Redis when carts live there or requests are rate limited
	var redisClient *redis.Client
	if cfg.Cart.Store == config.CartStoreRedis || cfg.Security.RateLimitPerMinute > 0 {
		redisClient, err = redis.NewConnection(cfg, log)
		switch {
		case err == nil:
			defer redisClient.Close()
			serverOpts = append(serverOpts, http.WithRedis(redisClient.GetClient(), redisClient))
		case cfg.Cart.Store == config.CartStoreRedis:
			log.WithError(err).Fatal("Failed to connect to Redis")
		default:
			log.WithError(err).Warn("Redis unavailable, rate limiting disabled")
			redisClient = nil
		}
	}

	// Pick the cart store
	var cartRepo cart.Repository
	switch cfg.Cart.Store {
	case config.CartStoreRedis:
		cartRepo = cart.NewRedisRepository(redisClient.GetClient(), cfg.Cart.TTL)
	case config.CartStorePostgres:
		db, err := postgres.NewConnection(cfg, log)
		if err != nil {
			log.WithError(err).Fatal("Failed to connect to database")
		}
		defer db.Close()

		if err := postgres.NewMigration(db.GetDB(), log).RunAutoMigrations(); err != nil {
			log.WithError(err).Fatal("Database migration failed")
		}

		pgRepo := cart.NewPostgresRepository(db.GetDB(), cfg.Cart.TTL)
		go purgeExpiredCarts(ctx, pgRepo, log)

		cartRepo = pgRepo
		serverOpts = append(serverOpts, http.WithHealthCheck("database", db))
	default:
		log.Warn("Carts are kept in memory and will not survive a restart")
		cartRepo = cart.NewMemoryRepository()
	}

	// Bookkeeping API
	client, err := bookkeeping.NewClient(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to create bookkeeping client")
	}

	catalogService := catalog.NewService(client, cfg, log)
	cartService := cart.NewService(cartRepo, catalogService, log)
	customerService := customer.NewService(client, log)
	checkoutService := checkout.NewService(cartService, client, customerService, cfg.Bookkeeping.Timeout, log)
	go checkoutService.Run(ctx, time.Hour, cfg.Cart.TTL)

	// Background refresh needs credentials of its own
	if cfg.Bookkeeping.ServiceToken != "" {
		go catalogService.Run(ctx, cfg.Catalog.RefreshInterval)
	} else {
		log.Info("No service token configured, catalog is fetched on first use")
	}

	deps := &routes.Dependencies{
		Catalog:   catalogService,
		Carts:     cartService,
		Checkout:  checkoutService,
		Customers: customerService,
		Orders:    order.NewService(client, log),
		Users:     user.NewService(client, log),
		Reports:   report.NewService(client, log),
		Receipts:  pdf.NewService(cfg),
		Tokens:    auth.NewTokenInspector(cfg),
	}

	// Create and start HTTP server
	server := http.NewServer(cfg, log, deps, serverOpts...)

	go func() {
		if err := server.Start(); err != nil {
			log.WithError(err).Fatal("Failed to start HTTP server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	<-ctx.Done()
	log.Info("Shutting down gracefully")

	// Give server 30 seconds to shutdown gracefully
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Stop(shutdownCtx); err != nil {
		log.WithError(err).Error("Failed to shutdown HTTP server gracefully")
	}

	log.Info("Server shutdown completed")
}

// purgeExpiredCarts removes abandoned cart snapshots once an hour
func purgeExpiredCarts(ctx context.Context, repo *cart.PostgresRepository, log logrus.FieldLogger) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := repo.PurgeExpired(ctx)
			if err != nil {
				log.WithError(err).Warn("Failed to purge expired carts")
				continue
			}
			if removed > 0 {
				log.WithField("removed", removed).Info("Purged expired carts")
			}
		}
	}
}
