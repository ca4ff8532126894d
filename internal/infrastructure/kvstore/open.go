package kvstore

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/sangkips/comanda-pos/internal/config"
	"github.com/sangkips/comanda-pos/internal/domain/repository"
	"github.com/sangkips/comanda-pos/internal/infrastructure/database"
)

// Drivers accepted by Open
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

// Open connects the backend selected by cfg.Storage.Driver and prepares its schema
func Open(ctx context.Context, cfg *config.Config) (repository.KVStore, error) {
	driver := cfg.Storage.Driver
	log.Info().Str("driver", driver).Msg("opening key-value store")

	switch driver {
	case DriverMemory:
		log.Warn().Msg("memory store selected: catalog, ledger and order counter will not survive a restart")
		return NewMemoryStore(), nil

	case DriverSQLite, "":
		db, err := database.OpenSQLite(cfg.Storage.SQLitePath)
		if err != nil {
			return nil, err
		}
		if err := database.MigrateSQL(ctx, db, database.DialectSQLite); err != nil {
			db.Close()
			return nil, err
		}
		return NewSQLStore(db, database.DialectSQLite), nil

	case DriverMySQL:
		db, err := database.OpenMySQL(ctx, cfg.Storage.MySQLDSN)
		if err != nil {
			return nil, err
		}
		if err := database.MigrateSQL(ctx, db, database.DialectMySQL); err != nil {
			db.Close()
			return nil, err
		}
		return NewSQLStore(db, database.DialectMySQL), nil

	case DriverPostgres:
		db, err := database.NewPostgresDB(&cfg.Database, cfg.App.Debug)
		if err != nil {
			return nil, err
		}
		if err := database.AutoMigrate(db); err != nil {
			if cerr := database.CloseGorm(db); cerr != nil {
				log.Warn().Err(cerr).Msg("failed to close PostgreSQL pool")
			}
			return nil, err
		}
		return NewGormStore(db), nil

	case DriverRedis:
		client, err := database.NewRedisClient(ctx, &cfg.Redis)
		if err != nil {
			return nil, err
		}
		return NewRedisStore(client, cfg.Redis.KeyPrefix), nil

	default:
		return nil, fmt.Errorf("unknown storage driver %q (use memory, sqlite, mysql, postgres or redis)", driver)
	}
}
