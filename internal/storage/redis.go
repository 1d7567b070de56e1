package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ranasykuri/mysteryadvanturebot/pkg/content"
	"github.com/redis/go-redis/v9"
)

const (
	packageKeyPrefix = "content:package:" // Package JSON by name
	packageIndexKey  = "content:packages" // Hash of name to title
)

// RedisStorage implements the Storage interface over a Redis registry of
// published content packages.
type RedisStorage struct {
	client *redis.Client
	logger *slog.Logger
}

// Ensure RedisStorage implements Storage interface
var _ Storage = (*RedisStorage)(nil)

// NewRedisStorage creates a new Redis storage instance. redisURL is a
// redis:// URL; the connection is not checked until first use.
func NewRedisStorage(redisURL string, logger *slog.Logger) (*RedisStorage, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	return &RedisStorage{
		client: redis.NewClient(opt),
		logger: logger,
	}, nil
}

func packageKey(name string) string {
	return packageKeyPrefix + name
}

// Health and lifecycle methods

func (r *RedisStorage) Ping(ctx context.Context) error {
	cmd := r.client.Ping(ctx)
	if err := cmd.Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (r *RedisStorage) Close() error {
	if err := r.client.Close(); err != nil {
		r.logger.Error("Failed to close Redis connection", "error", err)
		return err
	}
	r.logger.Info("Redis connection closed")
	return nil
}

// WaitForConnection waits for Redis to become available (used during startup)
func (r *RedisStorage) WaitForConnection(ctx context.Context, maxRetries int, retryDelay time.Duration) error {
	for i := 0; i < maxRetries; i++ {
		if err := r.Ping(ctx); err != nil {
			r.logger.Debug("Redis not ready yet", "error", err, "attempt", i+1)

			select {
			case <-ctx.Done():
				return fmt.Errorf("context cancelled while waiting for redis: %w", ctx.Err())
			case <-time.After(retryDelay):
				continue
			}
		}

		r.logger.Info("Redis connection established")
		return nil
	}

	return fmt.Errorf("failed to connect to redis after %d attempts", maxRetries)
}

// Content package operations

// SavePackage validates a package and publishes it under its name, replacing
// any earlier version.
func (r *RedisStorage) SavePackage(ctx context.Context, pkg *content.Package) error {
	if err := pkg.Validate(); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := content.Encode(&buf, pkg, content.FormatJSON); err != nil {
		return fmt.Errorf("failed to marshal package: %w", err)
	}

	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, packageKey(pkg.Name), buf.Bytes(), 0)
		pipe.HSet(ctx, packageIndexKey, pkg.Name, pkg.Title)
		return nil
	})
	if err != nil {
		r.logger.Error("Failed to save package", "package", pkg.Name, "error", err)
		return fmt.Errorf("failed to save package: %w", err)
	}

	r.logger.Info("Content package published", "package", pkg.Name, "version", pkg.Version, "bytes", buf.Len())
	return nil
}

func (r *RedisStorage) GetPackage(ctx context.Context, name string) (*content.Package, error) {
	raw, err := r.client.Get(ctx, packageKey(name)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("%w: %s", ErrPackageNotFound, name)
		}
		r.logger.Error("Failed to load package", "package", name, "error", err)
		return nil, fmt.Errorf("failed to load package: %w", err)
	}

	pkg, err := content.Load(raw, content.FormatJSON)
	if err != nil {
		return nil, fmt.Errorf("package %s: %w", name, err)
	}
	return pkg, nil
}

func (r *RedisStorage) ListPackages(ctx context.Context) (map[string]string, error) {
	packages, err := r.client.HGetAll(ctx, packageIndexKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list packages: %w", err)
	}
	return packages, nil
}

func (r *RedisStorage) DeletePackage(ctx context.Context, name string) error {
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, packageKey(name))
		pipe.HDel(ctx, packageIndexKey, name)
		return nil
	})
	if err != nil {
		r.logger.Error("Failed to delete package", "package", name, "error", err)
		return fmt.Errorf("failed to delete package: %w", err)
	}
	return nil
}
