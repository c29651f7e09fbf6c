package main

import (
	"alcyxob/gym-admin/internal/api"
	"alcyxob/gym-admin/internal/config"
	"alcyxob/gym-admin/internal/dashboard"
	"alcyxob/gym-admin/internal/logger"
	"alcyxob/gym-admin/internal/metrics"
	"alcyxob/gym-admin/internal/repository"
	"alcyxob/gym-admin/internal/repository/memory"
	"alcyxob/gym-admin/internal/repository/mongo"
	"alcyxob/gym-admin/internal/service"
	"alcyxob/gym-admin/internal/storage"
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// @title Gym Admin API
// @version 1.0
// @description Back office API for gym members, plans, content, live sessions and manual payments.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatal().Err(err).Msg("could not load config")
	}

	logg := logger.New(cfg.Log)
	logg.Info().Str("driver", cfg.Database.Driver).Str("address", cfg.Server.Address).Msg("starting gym admin server")

	// --- Persistence ---
	store, closeStore, err := openStore(cfg.Database, logg)
	if err != nil {
		logg.Fatal().Err(err).Msg("could not open store")
	}
	defer closeStore()

	// --- Initialize Storage ---
	var fileStorage storage.FileStorage
	if cfg.S3.Enabled() {
		fileStorage, err = storage.NewS3Storage(context.Background(), cfg.S3, logg)
		if err != nil {
			logg.Fatal().Err(err).Msg("failed to initialize S3 storage")
		}
	} else {
		logg.Warn().Msg("S3 not configured; thumbnail uploads disabled and media references served as stored")
	}

	// --- Initialize Services ---
	m := metrics.New(prometheus.DefaultRegisterer)
	locks := service.NewKeyedMutex()
	svc := api.Services{
		Auth:     service.NewAuthService(cfg.Admin.Email, cfg.Admin.PasswordHash, cfg.JWT.Secret, cfg.JWT.Expiration),
		Users:    service.NewUserService(store.Users, locks, logg),
		Plans:    service.NewPlanService(store.Plans),
		Content:  service.NewContentService(store.Content, fileStorage, logg),
		Meetings: service.NewMeetingService(store.Meetings, ""),
		Payments: service.NewPaymentService(store, locks, fileStorage, m, logg),
		Dashboard: service.NewDashboardService(store, dashboard.Options{
			ActivityLimit: cfg.Dashboard.ActivityLimit,
			UpcomingLimit: cfg.Dashboard.UpcomingLimit,
			DemoActivity:  cfg.Dashboard.DemoActivity,
		}),
	}
	if cfg.Admin.PasswordHash == "" {
		logg.Warn().Msg("admin.password_hash is empty; login is disabled")
	}

	// --- Initialize Gin Engine ---
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	api.SetupRoutes(router, cfg.JWT.Secret, svc, m, prometheus.DefaultGatherer, logg)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      api.WithCORS(router, cfg.Server.AllowedOrigins),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logg.Info().Str("address", cfg.Server.Address).Msg("server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Fatal().Err(err).Msg("ListenAndServe error")
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logg.Info().Msg("shutting down server")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		logg.Error().Err(err).Msg("server forced to shutdown")
	}
	logg.Info().Msg("server exited")
}

// openStore builds the configured persistence backend. The returned func
// releases it.
func openStore(cfg config.DatabaseConfig, logg zerolog.Logger) (*repository.Store, func(), error) {
	switch cfg.Driver {
	case "memory":
		mem := memory.NewStore()
		store := mem.Repositories()
		if cfg.Seed {
			if err := memory.SeedDemoData(context.Background(), store, time.Now()); err != nil {
				return nil, nil, err
			}
			logg.Info().Msg("memory store seeded with demo data")
		}
		return store, func() {}, nil

	case "mongo":
		client, err := mongo.ConnectDB(context.Background(), cfg.URI)
		if err != nil {
			return nil, nil, err
		}
		logg.Info().Str("database", cfg.Name).Msg("connected to MongoDB")
		db := client.Database(cfg.Name)

		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if err := mongo.EnsureIndexes(ctx, db); err != nil {
			logg.Error().Err(err).Msg("failed to ensure indexes")
		}

		closeFn := func() {
			logg.Info().Msg("disconnecting MongoDB")
			if err := mongo.DisconnectDB(client); err != nil {
				logg.Error().Err(err).Msg("failed to disconnect MongoDB")
			}
		}
		return mongo.NewStore(client, db), closeFn, nil
	}
	return nil, nil, errors.New("unknown database driver " + cfg.Driver)
}
