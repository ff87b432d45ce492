package repository

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Kilat-Pet-Delivery/service-pet/internal/config"
	petDomain "github.com/Kilat-Pet-Delivery/service-pet/internal/domain/pet"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// CloseFunc releases the resources held by an opened store.
type CloseFunc func(ctx context.Context) error

// Open connects the configured backend and returns the pet Store.
//
// Supported backends:
//
//	"mongo"    - MongoDB collection (default)
//	"postgres" - PostgreSQL table via GORM
//	"sqlite"   - SQLite file via GORM
//	"memory"   - in-memory (ephemeral)
func Open(ctx context.Context, cfg *config.ServiceConfig, log *zap.Logger) (petDomain.Store, CloseFunc, error) {
	switch cfg.StoreBackend {
	case config.BackendMongo, "":
		return openMongo(ctx, cfg.Mongo, log)
	case config.BackendPostgres:
		return openGorm(postgres.Open(cfg.DBConfig.DSN()), cfg, log)
	case config.BackendSQLite:
		if err := os.MkdirAll(filepath.Dir(cfg.SQLitePath), 0o755); err != nil {
			return nil, nil, err
		}
		return openGorm(sqlite.Open(cfg.SQLitePath), cfg, log)
	case config.BackendMemory:
		log.Warn("using in-memory pet store; data is lost on restart")
		return NewMemoryPetStore(), func(context.Context) error { return nil }, nil
	default:
		return nil, nil, fmt.Errorf("unknown store backend: %q", cfg.StoreBackend)
	}
}

// ConnectMongo opens a client and verifies it with a ping.
func ConnectMongo(ctx context.Context, cfg config.MongoConfig) (*mongo.Client, error) {
	opts := options.Client().
		ApplyURI(cfg.URI).
		SetTimeout(cfg.Timeout)
	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create mongo client: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}
	return client, nil
}

func openMongo(ctx context.Context, cfg config.MongoConfig, log *zap.Logger) (petDomain.Store, CloseFunc, error) {
	client, err := ConnectMongo(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	log.Info("connected to mongo",
		zap.String("database", cfg.Database),
		zap.String("collection", cfg.Collection),
	)
	coll := client.Database(cfg.Database).Collection(cfg.Collection)
	return NewMongoPetStore(coll), client.Disconnect, nil
}

func openGorm(dialector gorm.Dialector, cfg *config.ServiceConfig, log *zap.Logger) (petDomain.Store, CloseFunc, error) {
	level := gormlogger.Warn
	if cfg.Debug {
		level = gormlogger.Info
	}
	db, err := gorm.Open(dialector, &gorm.Config{Logger: gormlogger.Default.LogMode(level)})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s database: %w", cfg.StoreBackend, err)
	}

	store := NewGormPetStore(db)
	if cfg.AppEnv == "development" || cfg.StoreBackend == config.BackendSQLite {
		if err := store.AutoMigrate(); err != nil {
			_ = store.Close()
			return nil, nil, fmt.Errorf("failed to run auto-migration: %w", err)
		}
		log.Info("database migration completed (auto-migrate)", zap.String("backend", cfg.StoreBackend))
	}

	log.Info("connected to database", zap.String("backend", cfg.StoreBackend))
	return store, func(context.Context) error { return store.Close() }, nil
}
