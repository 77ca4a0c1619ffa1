package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/dukahub/dukapos-backend/api/routes"
	authsvc "github.com/dukahub/dukapos-backend/internal/auth"
	cartsvc "github.com/dukahub/dukapos-backend/internal/cart"
	"github.com/dukahub/dukapos-backend/internal/catalog"
	checkoutsvc "github.com/dukahub/dukapos-backend/internal/checkout"
	"github.com/dukahub/dukapos-backend/internal/purchasing"
	"github.com/dukahub/dukapos-backend/internal/rbac"
	salessvc "github.com/dukahub/dukapos-backend/internal/sales"
	storessvc "github.com/dukahub/dukapos-backend/internal/stores"
	"github.com/dukahub/dukapos-backend/internal/users"
	"github.com/dukahub/dukapos-backend/pkg/config"
	"github.com/dukahub/dukapos-backend/pkg/db"
	"github.com/dukahub/dukapos-backend/pkg/logger"
	"github.com/dukahub/dukapos-backend/pkg/migrate"
	"github.com/dukahub/dukapos-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	if cfg.FeatureFlags.SeedDemo && cfg.App.IsDev() {
		if err := catalog.SeedDemo(context.Background(), dbClient, cfg.Password, logg); err != nil {
			logg.Error(context.Background(), "failed to seed demo data", err)
			os.Exit(1)
		}
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	usersRepo := users.NewRepository(dbClient.DB())
	catalogRepo := catalog.NewRepository(dbClient.DB())
	salesRepo := salessvc.NewRepository(dbClient.DB())
	purchasingRepo := purchasing.NewRepository(dbClient.DB())
	storesRepo := storessvc.NewRepository(dbClient.DB())

	elevation, err := rbac.NewElevation(usersRepo, redisClient, cfg.Elevation.TTL)
	if err != nil {
		logg.Error(context.Background(), "failed to create elevation service", err)
		os.Exit(1)
	}

	authService, err := authsvc.NewService(usersRepo, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	catalogService, err := catalog.NewService(catalogRepo, dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	cartService := cartsvc.NewService()

	checkoutService, err := checkoutsvc.NewService(cartService, catalogRepo, salesRepo, dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout service", err)
		os.Exit(1)
	}

	salesService, err := salessvc.NewService(salesRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create sales service", err)
		os.Exit(1)
	}

	purchasingService, err := purchasing.NewService(purchasingRepo, catalogRepo, dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create purchasing service", err)
		os.Exit(1)
	}

	storesService, err := storessvc.NewService(storesRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create stores service", err)
		os.Exit(1)
	}

	snapshotService, err := catalog.NewSnapshot(dbClient, redisClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create snapshot service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:     cfg,
			Logger:     logg,
			DB:         dbClient,
			Redis:      redisClient,
			Elevation:  elevation,
			Auth:       authService,
			Catalog:    catalogService,
			Carts:      cartService,
			Checkout:   checkoutService,
			Sales:      salesService,
			Purchasing: purchasingService,
			Stores:     storesService,
			Snapshot:   snapshotService,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
