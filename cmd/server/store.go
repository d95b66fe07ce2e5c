package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/nunu-app/marketplace-api/internal/core/ports"
	"github.com/nunu-app/marketplace-api/internal/infrastructure/config"
	mongostore "github.com/nunu-app/marketplace-api/internal/infrastructure/db/mongo"
	pgstore "github.com/nunu-app/marketplace-api/internal/infrastructure/db/postgres"
)

// store bundles the repositories of the selected backend.
type store struct {
	name      string
	users     ports.UserRepository
	profiles  ports.ProfileRepository
	providers ports.ProviderRepository
	health    ports.Pinger
	close     func(context.Context) error
}

func openStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*store, error) {
	switch cfg.Store.Driver {
	case config.DriverPostgres:
		db, err := pgstore.Open(ctx, pgstore.Config{URL: cfg.Postgres.URL}, log.With().Str("component", "gorm").Logger())
		if err != nil {
			return nil, err
		}
		return &store{
			name:      "postgres",
			users:     pgstore.NewUserRepository(db),
			profiles:  pgstore.NewProfileRepository(db),
			providers: pgstore.NewProviderRepository(db),
			health:    pgstore.NewHealthChecker(db),
			close: func(context.Context) error {
				sqlDB, err := db.DB()
				if err != nil {
					return err
				}
				return sqlDB.Close()
			},
		}, nil

	case config.DriverMongo:
		client, db, err := mongostore.Connect(ctx, mongostore.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, err
		}
		if err := mongostore.EnsureIndexes(ctx, db); err != nil {
			_ = client.Disconnect(ctx)
			return nil, err
		}
		return &store{
			name:      "mongodb",
			users:     mongostore.NewUserRepository(db),
			profiles:  mongostore.NewProfileRepository(db),
			providers: mongostore.NewProviderRepository(db),
			health:    mongostore.NewHealthChecker(client),
			close:     client.Disconnect,
		}, nil
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
}
