package store

import (
	"context"
	"fmt"

	"github.com/sangkips/retail-pos/internal/config"
	"github.com/sangkips/retail-pos/internal/infrastructure/database"
	"gorm.io/gorm"
)

// Open builds the blob store selected by cfg.Store.Driver. The returned
// closer releases the underlying connection.
func Open(ctx context.Context, cfg *config.Config) (BlobStore, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Store.Driver {
	case DriverFile, "":
		s, err := NewFileStore(cfg.Store.DataDir)
		if err != nil {
			return nil, nil, err
		}
		return s, noop, nil
	case DriverMemory:
		return NewMemoryStore(), noop, nil
	case DriverPostgres, DriverMySQL:
		var (
			db  *gorm.DB
			err error
		)
		if cfg.Store.Driver == DriverPostgres {
			db, err = database.NewPostgresDB(&cfg.Database, cfg.App.Debug)
		} else {
			db, err = database.NewMySQLDB(&cfg.Database, cfg.App.Debug)
		}
		if err != nil {
			return nil, nil, err
		}
		if err := database.AutoMigrate(db); err != nil {
			return nil, nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, nil, fmt.Errorf("store: %w", err)
		}
		return NewGormStore(db), sqlDB.Close, nil
	case DriverRedis:
		s, err := NewRedisStore(ctx, cfg.Redis.URL, cfg.Store.RedisPrefix)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	default:
		return nil, nil, unknownDriver(cfg.Store.Driver)
	}
}
