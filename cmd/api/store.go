package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/pkordes/tour-planner/backend/internal/config"
	"github.com/pkordes/tour-planner/backend/internal/repo"
	"github.com/pkordes/tour-planner/backend/migrations"
)

// openStore connects to the backend selected by cfg.StoreDriver and returns
// the PlanRepo plus a function that releases its connections.
func openStore(ctx context.Context, cfg config.Config) (repo.PlanRepo, func(), error) {
	switch cfg.StoreDriver {
	case config.StoreMongo:
		return openMongo(ctx, cfg)
	case config.StoreSQLite:
		return openSQLite(ctx, cfg)
	default:
		return openPostgres(ctx, cfg)
	}
}

func openPostgres(ctx context.Context, cfg config.Config) (repo.PlanRepo, func(), error) {
	// pgxpool manages a pool of Postgres connections.
	// New() does not open connections immediately; Ping does.
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("create database pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("connect to database: %w", err)
	}

	if cfg.MigrateOnStart {
		db := stdlib.OpenDBFromPool(pool)
		results, err := migrations.Up(ctx, db)
		db.Close()
		if err != nil {
			pool.Close()
			return nil, nil, err
		}
		slog.Info("database migrated", "applied", len(results))
	}

	slog.Info("database connection established", "driver", config.StorePostgres)
	return repo.NewPlanRepo(pool), pool.Close, nil
}

func openMongo(ctx context.Context, cfg config.Config) (repo.PlanRepo, func(), error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, nil, fmt.Errorf("connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, nil, fmt.Errorf("ping mongo: %w", err)
	}

	closeFn := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Disconnect(ctx); err != nil {
			slog.Error("mongo disconnect", "error", err)
		}
	}

	slog.Info("database connection established", "driver", config.StoreMongo, "database", cfg.MongoDatabase)
	coll := client.Database(cfg.MongoDatabase).Collection(repo.PlanCollection)
	return repo.NewMongoPlanRepo(coll), closeFn, nil
}

func openSQLite(ctx context.Context, cfg config.Config) (repo.PlanRepo, func(), error) {
	db, err := gorm.Open(sqlite.Open(cfg.SQLitePath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("open sqlite %s: %w", cfg.SQLitePath, err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, fmt.Errorf("open sqlite %s: %w", cfg.SQLitePath, err)
	}

	r, err := repo.NewSQLitePlanRepo(ctx, db)
	if err != nil {
		sqlDB.Close()
		return nil, nil, err
	}

	slog.Info("database connection established", "driver", config.StoreSQLite, "path", cfg.SQLitePath)
	return r, func() { sqlDB.Close() }, nil
}
