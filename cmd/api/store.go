package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/inkwell/blog-api/internal/core/ports"
	"github.com/inkwell/blog-api/internal/infrastructure/config"
	"github.com/inkwell/blog-api/internal/infrastructure/db/gormdb"
	mongostore "github.com/inkwell/blog-api/internal/infrastructure/db/mongo"
)

// store bundles the repositories of the selected driver with its lifecycle
// hooks.
type store struct {
	users ports.UserRepository
	posts ports.PostRepository
	ping  func(ctx context.Context) error
	close func()
}

func openStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*store, error) {
	switch cfg.Store.Driver {
	case config.StoreMongo:
		client, db, err := mongostore.Connect(ctx, mongostore.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
			AppName:  "blog-api",
		})
		if err != nil {
			return nil, err
		}
		if err := mongostore.EnsureIndexes(ctx, db); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, err
		}
		return &store{
			users: mongostore.NewUserRepository(db),
			posts: mongostore.NewPostRepository(db),
			ping:  func(ctx context.Context) error { return client.Ping(ctx, nil) },
			close: func() {
				if err := client.Disconnect(context.Background()); err != nil {
					log.Warn().Err(err).Msg("mongo disconnect")
				}
			},
		}, nil

	case config.StorePostgres, config.StoreSQLite:
		db, err := gormdb.Connect(ctx, gormdb.Config{Driver: cfg.Store.Driver, DSN: cfg.Store.DatabaseURL}, log)
		if err != nil {
			return nil, err
		}
		return &store{
			users: gormdb.NewUserRepository(db),
			posts: gormdb.NewPostRepository(db),
			ping:  func(ctx context.Context) error { return gormdb.Ping(ctx, db) },
			close: func() {
				if err := gormdb.Close(db); err != nil {
					log.Warn().Err(err).Msg("database close")
				}
			},
		}, nil
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
}
