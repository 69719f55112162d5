// @title                       Portfolio API
// @version                     2.0
// @description                 Projects and blog posts for a personal portfolio, with a single JWT-authenticated admin.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	_ "github.com/folio/portfolio-api/docs"
	"github.com/folio/portfolio-api/internal/api"
	"github.com/folio/portfolio-api/internal/core/domain"
	"github.com/folio/portfolio-api/internal/core/ports"
	"github.com/folio/portfolio-api/internal/core/service"
	mongostore "github.com/folio/portfolio-api/internal/infrastructure/db/mongo"
	pgstore "github.com/folio/portfolio-api/internal/infrastructure/db/postgres"
	redisstore "github.com/folio/portfolio-api/internal/infrastructure/db/redis"
	"github.com/folio/portfolio-api/internal/pkg/config"
	"github.com/folio/portfolio-api/pkg/logger"
)

const serviceName = "portfolio-api"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", serviceName, err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.LogPretty,
		Service: serviceName,
	})

	st, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer st.close()

	checks := map[string]ports.Pinger{cfg.StoreDriver: st.pinger}

	var cache ports.ListCache = ports.NopListCache{}
	if cfg.Redis.Addr != "" {
		rdb, err := redisstore.Connect(ctx, redisstore.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return err
		}
		defer rdb.Close()

		listCache := redisstore.NewListCache(rdb)
		cache = listCache
		checks["redis"] = listCache
		log.Info().Str("addr", cfg.Redis.Addr).Dur("ttl", cfg.Redis.CacheTTL).Msg("list cache enabled")
	}

	tokens, err := service.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.JWTAlgorithm, cfg.TokenTTL())
	if err != nil {
		return fmt.Errorf("token service: %w", err)
	}
	admin := domain.Admin{
		Username:     cfg.Auth.AdminUsername,
		PasswordHash: cfg.Auth.AdminPasswordHash,
	}

	e := api.NewRouter(api.RouterConfig{
		AllowedOrigins:     cfg.AllowedOrigins,
		ExposeHashPassword: cfg.ExposeHashPassword(),
		EnableSwagger:      !cfg.IsProduction(),
	}, api.Dependencies{
		Auth:     service.NewAuthService(admin, tokens, log),
		Tokens:   tokens,
		Projects: service.NewProjectService(st.projects, cache, cfg.Redis.CacheTTL, log),
		Posts:    service.NewPostService(st.posts, cache, cfg.Redis.CacheTTL, log),
		Checks:   checks,
	}, log)

	srv := &http.Server{
		Addr:         net.JoinHostPort("", cfg.Port),
		Handler:      e,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info().
			Str("addr", srv.Addr).
			Str("env", cfg.Env).
			Str("store", cfg.StoreDriver).
			Bool("hashpw", cfg.ExposeHashPassword()).
			Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	log.Info().Msg("server stopped")
	return nil
}

// store bundles the repositories of the selected driver with its lifecycle.
type store struct {
	projects ports.ProjectRepository
	posts    ports.PostRepository
	pinger   ports.Pinger
	close    func()
}

func openStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*store, error) {
	switch cfg.StoreDriver {
	case config.DriverMongo:
		client, db, err := mongostore.Connect(ctx, mongostore.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
			AppName:  serviceName,
		})
		if err != nil {
			return nil, err
		}
		if err := mongostore.EnsureIndexes(ctx, db); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, err
		}
		log.Info().Str("database", cfg.Mongo.Database).Msg("connected to mongo")
		return &store{
			projects: mongostore.NewProjectRepository(db),
			posts:    mongostore.NewPostRepository(db),
			pinger:   mongostore.NewPinger(client),
			close:    func() { _ = client.Disconnect(context.Background()) },
		}, nil

	default:
		pool, err := pgstore.Connect(ctx, pgstore.Config{
			URL:      cfg.Postgres.URL,
			Password: cfg.Postgres.Key,
			MaxConns: cfg.Postgres.MaxConns,
		})
		if err != nil {
			return nil, err
		}
		if err := pgstore.RunMigrations(pool); err != nil {
			pool.Close()
			return nil, err
		}
		log.Info().Msg("connected to postgres, migrations applied")
		return &store{
			projects: pgstore.NewProjectRepository(pool),
			posts:    pgstore.NewPostRepository(pool),
			pinger:   pool,
			close:    pool.Close,
		}, nil
	}
}
