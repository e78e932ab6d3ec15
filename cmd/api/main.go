// @title                       Blog API
// @version                     1.0
// @description                 User accounts and posts with JWT login.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the access token.
package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/inkwell/blog-api/internal/api"
	"github.com/inkwell/blog-api/internal/api/handler"
	"github.com/inkwell/blog-api/internal/core/service"
	"github.com/inkwell/blog-api/internal/infrastructure/config"
	redisstore "github.com/inkwell/blog-api/internal/infrastructure/db/redis"
	"github.com/inkwell/blog-api/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		boot := logger.New(logger.Options{})
		boot.Fatal().Err(err).Msg("load config")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.LogPretty,
		Service: "blog-api",
		Env:     cfg.Env,
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Error().Err(err).Msg("server stopped with error")
		os.Exit(1)
	}
	log.Info().Msg("server stopped")
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	st, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer st.close()

	checks := map[string]handler.Check{"database": st.ping}

	deps := api.Deps{
		Logger:         log,
		CORSOrigin:     cfg.CORSOrigin,
		LoginRateLimit: cfg.LoginRateLimit,
		Production:     cfg.IsProduction(),
	}

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
		deps.Idempotency = redisstore.NewIdempotencyStore(rdb, cfg.Redis.IdempotencyTTL)
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	} else {
		log.Warn().Msg("REDIS_ADDR not set, idempotency replay disabled")
	}

	tokens, err := service.NewTokenIssuer(service.TokenConfig{
		AccessSecret:  cfg.Token.AccessKey,
		RefreshSecret: cfg.Token.RefreshKey,
		AccessTTL:     cfg.Token.AccessTTL,
		RefreshTTL:    cfg.Token.RefreshTTL,
	})
	if err != nil {
		return err
	}

	deps.Auth = service.NewAuthService(st.users, service.NewBcryptHasher(service.DefaultHashCost), tokens, log)
	deps.Posts = service.NewPostService(st.posts, st.users, log)
	deps.Tokens = tokens
	deps.Checks = checks

	e := api.NewRouter(deps)
	srv := &http.Server{
		Addr:        net.JoinHostPort("", cfg.Port),
		Handler:     e,
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", srv.Addr).Str("store", cfg.Store.Driver).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		log.Info().Msg("shutting down http server")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
