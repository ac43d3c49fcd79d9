// Package bootstrap wires the process-wide runtime dependencies.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"artspace/internal/cache"
	"artspace/internal/config"
	"artspace/internal/database"
	"artspace/internal/middleware"
	"artspace/internal/storage"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Runtime holds the connections shared by the server and the seeder.
type Runtime struct {
	DB    *gorm.DB
	Redis *redis.Client
	Store storage.Store
}

// InitRuntime connects to the database and Redis and opens the upload store.
// Redis is optional: an unreachable instance leaves Runtime.Redis nil.
func InitRuntime(ctx context.Context, cfg *config.Config) (*Runtime, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	rdb := cache.Connect(ctx, cfg.RedisURL)

	store, err := storage.New(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("upload storage init failed: %w", err)
	}
	middleware.Logger.Info("runtime initialized",
		slog.String("db_driver", cfg.DBDriver),
		slog.String("upload_backend", store.Backend()),
		slog.Bool("redis", rdb != nil),
	)

	return &Runtime{DB: db, Redis: rdb, Store: store}, nil
}
