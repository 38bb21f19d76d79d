// Package app assembles the DevEvent server from configuration: the store,
// the listing cache, the image store, the services and the HTTP stack.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"devevent/config"
	"devevent/internal/adapters/auth"
	"devevent/internal/adapters/cache"
	"devevent/internal/adapters/eventsapi"
	"devevent/internal/adapters/images"
	httpdelivery "devevent/internal/delivery/http"
	"devevent/internal/delivery/http/controllers"
	"devevent/internal/delivery/http/web"
	"devevent/internal/domain"
	"devevent/internal/repository/mongodb"
	"devevent/internal/repository/postgres"
	"devevent/internal/services"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	cfg        *config.Config
	log        *slog.Logger
	httpServer *http.Server

	// closers run in reverse order on shutdown.
	closers []func(context.Context) error
}

// New connects every backing service and builds the HTTP server. Connection
// failures are returned; nothing is retried.
func New(ctx context.Context, cfg *config.Config, log *slog.Logger) (*App, error) {
	a := &App{cfg: cfg, log: log}

	eventRepo, bookingRepo, err := a.initStore(ctx)
	if err != nil {
		a.close(ctx)
		return nil, fmt.Errorf("init store: %w", err)
	}

	listCache := a.initCache(ctx)

	imageStore, uploads, err := a.initImageStore(ctx)
	if err != nil {
		a.close(ctx)
		return nil, fmt.Errorf("init image store: %w", err)
	}

	processor := images.NewProcessor(images.DefaultMaxBytes, images.DefaultMaxWidth, images.DefaultMaxHeight)
	eventService := services.NewEventService(eventRepo, processor, imageStore, listCache, log, cfg.RequestTimeout)
	bookingService := services.NewBookingService(eventRepo, bookingRepo, log, cfg.RequestTimeout)
	authService := services.NewAuthService(cfg.AdminUsername,
		auth.NewCredentialChecker(cfg.AdminPassword, cfg.AdminPasswordHash),
		auth.NewJWTSessionTokens(cfg.SessionSecret))

	var source domain.EventCatalog = eventService
	if cfg.BaseURL != "" {
		source = eventsapi.NewClient(cfg.BaseURL, &http.Client{Timeout: cfg.RequestTimeout})
		log.Info("public pages read events over HTTP", "base_url", cfg.BaseURL)
	}
	catalog := services.NewCachedCatalog(source, listCache, log)

	secure := cfg.IsProduction()
	pages, err := web.NewPages(log, catalog, eventService, bookingService, authService, secure)
	if err != nil {
		a.close(ctx)
		return nil, fmt.Errorf("init pages: %w", err)
	}

	mux := httpdelivery.NewRouter(httpdelivery.Routes{
		Events:   controllers.NewEventController(log, eventService),
		Bookings: controllers.NewBookingController(log, bookingService),
		Auth:     controllers.NewAuthController(log, authService, secure),
		Pages:    pages,
		Verifier: authService,
		Logger:   log,
		Uploads:  uploads,
	})

	a.httpServer = &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           httpdelivery.Handler(mux, authService, log, cfg.AllowedOrigins),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	return a, nil
}

func (a *App) initStore(ctx context.Context) (domain.EventRepository, domain.BookingRepository, error) {
	switch a.cfg.StoreDriver {
	case config.StorePostgres:
		store := postgres.NewStore(a.cfg.DBUrl)
		db, err := store.Connect(ctx)
		if err != nil {
			return nil, nil, err
		}
		a.closers = append(a.closers, func(context.Context) error { return store.Close() })
		if err := postgres.EnsureSchema(ctx, db); err != nil {
			return nil, nil, err
		}
		a.log.Info("connected to postgres")
		return postgres.NewEventRepository(db), postgres.NewBookingRepository(db), nil
	default:
		store := mongodb.NewStore(a.cfg.MongoURI, a.cfg.MongoDatabase)
		db, err := store.Connect(ctx)
		if err != nil {
			return nil, nil, err
		}
		a.closers = append(a.closers, store.Disconnect)
		if err := mongodb.EnsureIndexes(ctx, db); err != nil {
			return nil, nil, err
		}
		a.log.Info("connected to mongodb", "database", a.cfg.MongoDatabase)
		return mongodb.NewEventRepository(db), mongodb.NewBookingRepository(db), nil
	}
}

// initCache prefers Redis and falls back to the in-process cache when Redis
// is not configured or does not answer a ping.
func (a *App) initCache(ctx context.Context) domain.EventListCache {
	if a.cfg.RedisAddr == "" {
		return cache.NewMemoryEventListCache(a.cfg.EventCacheTTL)
	}
	client := redis.NewClient(&redis.Options{
		Addr:     a.cfg.RedisAddr,
		Password: a.cfg.RedisPassword,
		DB:       a.cfg.RedisDB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		a.log.Warn("redis unavailable, using in-memory listing cache", "addr", a.cfg.RedisAddr, "err", err)
		_ = client.Close()
		return cache.NewMemoryEventListCache(a.cfg.EventCacheTTL)
	}
	a.closers = append(a.closers, func(context.Context) error { return client.Close() })
	a.log.Info("connected to redis", "addr", a.cfg.RedisAddr)
	return cache.NewRedisEventListCache(client, a.cfg.EventCacheTTL)
}

// initImageStore returns the store and, for local storage, the handler that
// serves uploaded files.
func (a *App) initImageStore(ctx context.Context) (domain.ImageStore, http.Handler, error) {
	if a.cfg.ImageStore == config.ImageStoreS3 {
		store, err := images.NewS3Store(ctx, images.S3Config{
			Bucket:          a.cfg.S3Bucket,
			Region:          a.cfg.S3Region,
			Endpoint:        a.cfg.S3Endpoint,
			PublicURL:       a.cfg.S3PublicURL,
			AccessKeyID:     a.cfg.AWSKeyID,
			SecretAccessKey: a.cfg.AWSSecret,
		})
		if err != nil {
			return nil, nil, err
		}
		return store, nil, nil
	}
	return images.NewLocalStore(a.cfg.UploadDir), http.FileServer(http.Dir(a.cfg.UploadDir)), nil
}

// Run serves until SIGINT or SIGTERM, then drains in-flight requests and
// releases the store connections.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		a.log.Info("HTTP server starting", "addr", a.httpServer.Addr, "env", a.cfg.Environment)
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
		a.log.Info("shutdown signal received")
	case runErr = <-errCh:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.log.Error("http server shutdown", "err", err)
	}
	a.close(shutdownCtx)
	a.log.Info("server stopped")
	return runErr
}

func (a *App) close(ctx context.Context) {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil {
			a.log.Error("release resource", "err", err)
		}
	}
	a.closers = nil
}
