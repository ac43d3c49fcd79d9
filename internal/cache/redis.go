// Package cache holds the optional Redis client and the cache-aside helpers
// used for user lookups.
package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"artspace/internal/middleware"
	"artspace/internal/observability"

	"github.com/redis/go-redis/v9"
)

// client is nil when Redis is not configured or unreachable.
var client *redis.Client

// errorCounter reports failed commands to the artspace_redis_errors_total metric.
// Cache misses are not failures.
type errorCounter struct{}

func (errorCounter) DialHook(next redis.DialHook) redis.DialHook { return next }

func (errorCounter) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		err := next(ctx, cmd)
		countError(cmd.Name(), err)
		return err
	}
}

func (errorCounter) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		err := next(ctx, cmds)
		countError("pipeline", err)
		return err
	}
}

func countError(operation string, err error) {
	if err != nil && !errors.Is(err, redis.Nil) {
		observability.RedisErrors.WithLabelValues(operation).Inc()
	}
}

// options accepts either a bare host:port or a redis:// URL.
func options(addr string) (*redis.Options, error) {
	if !strings.Contains(addr, "://") {
		return &redis.Options{Addr: addr}, nil
	}
	opts, err := redis.ParseURL(addr)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}
	return opts, nil
}

// Connect dials Redis and installs it as the process-wide client. An empty
// address, a malformed URL or an unreachable server all leave caching
// disabled and return nil.
func Connect(ctx context.Context, addr string) *redis.Client {
	client = nil
	if addr == "" {
		return nil
	}

	opts, err := options(addr)
	if err != nil {
		middleware.Logger.WarnContext(ctx, "continuing without cache", slog.String("error", err.Error()))
		return nil
	}

	rdb := redis.NewClient(opts)
	rdb.AddHook(errorCounter{})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		middleware.Logger.WarnContext(ctx, "Redis unavailable, continuing without cache", slog.String("error", err.Error()))
		_ = rdb.Close()
		return nil
	}

	middleware.Logger.InfoContext(ctx, "Redis connected", slog.String("addr", opts.Addr))
	client = rdb
	return rdb
}

// SetClient replaces the process-wide client. Passing nil disables caching.
func SetClient(c *redis.Client) {
	client = c
}
