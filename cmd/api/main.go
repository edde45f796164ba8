// @title                       Coffee Catalog API
// @version                     1.0
// @description                 Specialty coffee lots, reviews and profiles.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/sirpyerre/coffee-catalog/internal/api"
	"github.com/sirpyerre/coffee-catalog/internal/api/handler"
	"github.com/sirpyerre/coffee-catalog/internal/core/ports"
	"github.com/sirpyerre/coffee-catalog/internal/core/service"
	mongodb "github.com/sirpyerre/coffee-catalog/internal/infrastructure/db/mongo"
	redisdb "github.com/sirpyerre/coffee-catalog/internal/infrastructure/db/redis"
	"github.com/sirpyerre/coffee-catalog/internal/infrastructure/fetch"
	"github.com/sirpyerre/coffee-catalog/internal/infrastructure/storage"
	"github.com/sirpyerre/coffee-catalog/internal/pkg/config"
	"github.com/sirpyerre/coffee-catalog/pkg/logger"
)

const (
	mediaPrefix     = "/media"
	shutdownTimeout = 15 * time.Second
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "coffee-catalog",
	})

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		AppName:  "coffee-catalog",
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect")
		}
	}()
	if err := mongodb.EnsureSchema(ctx, db); err != nil {
		return err
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return err
	}
	defer rdb.Close()

	objects, mediaDir, closeStorage, err := openStorage(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStorage()

	views := redisdb.NewViewCache(rdb, cfg.Redis.ViewCacheTTL)
	admins := service.NewAdminPolicy(cfg.AdminEmails)

	fetcher := fetch.NewImageFetcher(fetch.Config{
		Timeout:  cfg.Import.FetchTimeout,
		MaxBytes: cfg.Import.FetchMaxBytes,
		RPS:      cfg.Import.FetchRPS,
	}, log.With().Str("component", "image_fetcher").Logger())

	lotRepo := mongodb.NewLotRepository(db)
	reviewRepo := mongodb.NewReviewRepository(db)
	profileRepo := mongodb.NewProfileRepository(db)

	authService := service.NewAuthService(
		mongodb.NewAuthRepository(db), profileRepo, admins,
		cfg.JWTSecret, cfg.TokenTTL, log.With().Str("component", "auth").Logger(),
	)
	lotService := service.NewLotService(
		lotRepo, objects, fetcher, views,
		redisdb.NewIdempotencyStore(rdb), admins,
		service.LotOptions{
			UploadMaxBytes:    cfg.Storage.UploadMaxBytes,
			ImportMaxBytes:    cfg.Import.MaxBytes,
			ImportConcurrency: cfg.Import.Concurrency,
			ImportErrorCap:    cfg.Import.ErrorCap,
		},
		log.With().Str("component", "lots").Logger(),
	)

	router := api.NewRouter(api.Deps{
		Auth:     authService,
		Lots:     lotService,
		Catalog:  service.NewCatalogService(mongodb.NewCatalogRepository(db), views, log.With().Str("component", "catalog").Logger()),
		Reviews:  service.NewReviewService(reviewRepo, lotRepo, views, log.With().Str("component", "reviews").Logger()),
		Profiles: service.NewProfileService(profileRepo, reviewRepo, views, log.With().Str("component", "profiles").Logger()),
		Checks: map[string]handler.CheckFunc{
			"mongodb": func(ctx context.Context) error { return mongoClient.Ping(ctx, readpref.Primary()) },
			"redis":   func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
		},
		BodyLimit:   bodyLimit(cfg),
		MediaPrefix: mediaPrefix,
		MediaDir:    mediaDir,
		Log:         log,
	})

	return serve(ctx, router, ":"+cfg.Port, log)
}

// openStorage returns the configured object store. mediaDir is set only for
// the local driver, whose files the router serves itself.
func openStorage(ctx context.Context, cfg *config.Config) (ports.ObjectStorage, string, func(), error) {
	if cfg.Storage.Driver == config.StorageGCS {
		g, err := storage.NewGCS(ctx, storage.GCSConfig{
			Bucket:          cfg.Storage.Bucket,
			PublicBaseURL:   cfg.Storage.PublicBaseURL,
			CredentialsFile: cfg.Storage.CredentialsFile,
			Endpoint:        cfg.Storage.Endpoint,
		})
		if err != nil {
			return nil, "", nil, err
		}
		return g, "", func() { _ = g.Close() }, nil
	}

	base := cfg.Storage.PublicBaseURL
	if base == "" {
		base = mediaPrefix
	}
	l, err := storage.NewLocal(cfg.Storage.LocalDir, base)
	if err != nil {
		return nil, "", nil, err
	}
	return l, l.Dir(), func() {}, nil
}

// bodyLimit leaves room for multipart framing around the largest payload.
func bodyLimit(cfg *config.Config) string {
	largest := max(cfg.Storage.UploadMaxBytes, cfg.Import.MaxBytes)
	return fmt.Sprintf("%dK", largest/1024+1024)
}

func serve(ctx context.Context, h http.Handler, addr string, log zerolog.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
