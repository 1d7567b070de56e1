package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ranasykuri/mysteryadvanturebot/internal/config"
	"github.com/ranasykuri/mysteryadvanturebot/pkg/content"
)

// Open returns the storage selected by cfg.ContentSource.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (Storage, error) {
	switch cfg.ContentSource {
	case config.SourceFile:
		return NewDirStorage(cfg.DataDir, logger), nil
	case config.SourceRedis:
		rs, err := NewRedisStorage(cfg.RedisURL, logger)
		if err != nil {
			return nil, err
		}
		if err := rs.WaitForConnection(ctx, 5, time.Second); err != nil {
			rs.Close()
			return nil, err
		}
		return rs, nil
	case config.SourceEmbedded, "":
		return NewEmbeddedStorage(logger)
	default:
		return nil, fmt.Errorf("unknown content source %q", cfg.ContentSource)
	}
}

// LoadPackage opens the configured storage and loads the configured package.
// Integrity problems in the package are returned unchanged.
func LoadPackage(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*content.Package, error) {
	store, err := Open(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	defer store.Close()

	pkg, err := store.GetPackage(ctx, cfg.ContentPackage)
	if err != nil {
		return nil, err
	}
	logger.Info("Content package loaded",
		"package", pkg.Name,
		"version", pkg.Version,
		"source", cfg.ContentSource,
		"locations", len(pkg.Locations))
	return pkg, nil
}
