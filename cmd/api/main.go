// Command api serves the agency HTTP API.
//
//go:generate swag init -g cmd/api/main.go -d ../../ -o ../../docs --parseInternal
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	_ "github.com/vogueline/agency-api/docs"
	"github.com/vogueline/agency-api/internal/api"
	"github.com/vogueline/agency-api/internal/api/handler"
	"github.com/vogueline/agency-api/internal/core/ports"
	"github.com/vogueline/agency-api/internal/core/service"
	"github.com/vogueline/agency-api/internal/infrastructure/db/mongo"
	"github.com/vogueline/agency-api/internal/infrastructure/db/redis"
	"github.com/vogueline/agency-api/internal/infrastructure/http/handlers"
	"github.com/vogueline/agency-api/internal/infrastructure/storage"
	"github.com/vogueline/agency-api/internal/pkg/config"
	"github.com/vogueline/agency-api/pkg/logger"
)

// @title                       Agency API
// @version                     1.0
// @description                 Client, model and admin workflows for a modeling agency.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.IsDevelopment(),
		File: logger.FileOptions{
			Path:       cfg.Log.File,
			MaxSizeMB:  cfg.Log.MaxSizeMB,
			MaxBackups: cfg.Log.MaxBackups,
			MaxAgeDays: cfg.Log.MaxAgeDays,
		},
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Persistence ---
	provider := mongo.NewProvider(mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database, Timeout: cfg.Mongo.Timeout})
	accountRepo := mongo.NewAccountRepository(provider)
	onboardingRepo := mongo.NewOnboardingRepository(provider)
	productRepo := mongo.NewProductRequestRepository(provider)
	assetRepo := mongo.NewAssetRepository(provider)
	activityRepo := mongo.NewActivityRepository(provider)

	indexCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	if err := mongo.EnsureIndexes(indexCtx, accountRepo, onboardingRepo, productRepo, assetRepo, activityRepo); err != nil {
		cancel()
		log.Fatal().Err(err).Msg("failed to prepare mongo collections")
	}
	cancel()

	// --- Idempotency ---
	var (
		guard ports.IdempotencyGuard
		rdb   *goredis.Client
	)
	if cfg.Redis.Addr != "" {
		client, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable, Idempotency-Key support disabled")
		} else {
			rdb = client
			guard = redis.NewIdempotencyGuard(rdb, cfg.Redis.IdempotencyTTL)
		}
	}

	// --- Object storage ---
	store, err := storage.New(storage.Config{
		Endpoint:      cfg.Storage.Endpoint,
		AccessKey:     cfg.Storage.AccessKey,
		SecretKey:     cfg.Storage.SecretKey,
		Region:        cfg.Storage.Region,
		Bucket:        cfg.Storage.Bucket,
		UseSSL:        cfg.Storage.UseSSL,
		PublicBaseURL: cfg.Storage.PublicBaseURL,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to configure object storage")
	}

	// --- Services ---
	tokens := service.NewJWTIssuer(cfg.Auth.JWTSecret)
	creds := service.NewCredentialStore(accountRepo)
	services := api.Services{
		Auth: service.NewAuthService(creds, accountRepo, tokens, service.AuthOptions{
			SessionTTL:       cfg.Auth.SessionTTL,
			AdminSessionTTL:  cfg.Auth.AdminSessionTTL,
			AllowAdminSignup: cfg.Auth.AdminSignupEnabled,
		}, log),
		Tokens:     tokens,
		Onboarding: service.NewOnboardingService(creds, accountRepo, onboardingRepo, activityRepo, guard, cfg.Upload.PhoneRegion, log),
		Products:   service.NewProductService(accountRepo, productRepo, activityRepo, guard, log),
		Assets:     service.NewAssetService(store, assetRepo, accountRepo, cfg.Upload.MaxBytes, log),
		Accounts:   service.NewAccountService(creds, accountRepo, cfg.Upload.PhoneRegion, log),
		Dashboard:  service.NewDashboardService(accountRepo, onboardingRepo, productRepo, activityRepo),
	}

	health := map[string]handlers.Pinger{
		"mongodb": provider,
		"storage": store,
	}
	if rdb != nil {
		health["redis"] = handlers.PingFunc(func(ctx context.Context) error { return rdb.Ping(ctx).Err() })
	}

	e := api.NewRouter(services, api.Options{
		Logger:      log,
		Cookie:      handler.CookieOptions{Secure: cfg.SecureCookies(), Domain: cfg.Auth.CookieDomain},
		CORSOrigins: cfg.HTTP.CORSOrigins,
		BodyLimit:   cfg.HTTP.BodyLimit,
		AuthRate:    rate.Limit(cfg.HTTP.AuthRateLimit),
		AuthBurst:   cfg.HTTP.AuthRateBurst,
		Health:      health,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           e,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Str("env", cfg.Env).Msg("api listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancelShutdown()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	if err := provider.Close(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("mongo disconnect failed")
	}
	if rdb != nil {
		if err := rdb.Close(); err != nil {
			log.Error().Err(err).Msg("redis close failed")
		}
	}
	log.Info().Msg("stopped")
}
