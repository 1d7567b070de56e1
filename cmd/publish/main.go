package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"time"

	"github.com/ranasykuri/mysteryadvanturebot/internal/config"
	"github.com/ranasykuri/mysteryadvanturebot/internal/logger"
	"github.com/ranasykuri/mysteryadvanturebot/internal/storage"
	"github.com/ranasykuri/mysteryadvanturebot/pkg/content"
)

const usage = `Usage:
  %[1]s push <package file>...   Validate and store packages in Redis
  %[1]s list                     List stored packages
  %[1]s delete <name>...         Remove stored packages
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, usage, os.Args[0])
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	log := logger.Setup(cfg, os.Stderr)

	store, err := storage.NewRedisStorage(cfg.RedisURL, log)
	if err != nil {
		log.Error("Failed to create Redis storage", "error", err)
		os.Exit(1)
	}
	defer func() {
		_ = store.Close() // Ignore error in defer
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := store.WaitForConnection(ctx, 5, time.Second); err != nil {
		log.Error("Failed to connect to Redis", "error", err, "redis_url", cfg.RedisURL)
		os.Exit(1)
	}

	if err := run(ctx, store, log, os.Args[1], os.Args[2:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, store *storage.RedisStorage, log *slog.Logger, command string, args []string) error {
	switch command {
	case "push":
		if len(args) == 0 {
			return fmt.Errorf("push needs at least one package file")
		}
		for _, path := range args {
			if err := push(ctx, store, path); err != nil {
				return err
			}
			log.Info("Package published", "path", path)
		}
		return nil

	case "list":
		packages, err := store.ListPackages(ctx)
		if err != nil {
			return err
		}
		names := make([]string, 0, len(packages))
		for name := range packages {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Printf("%-24s %s\n", name, packages[name])
		}
		return nil

	case "delete":
		for _, name := range args {
			if err := store.DeletePackage(ctx, name); err != nil {
				return fmt.Errorf("failed to delete %s: %w", name, err)
			}
			log.Info("Package deleted", "package", name)
		}
		return nil

	default:
		return fmt.Errorf("unknown command %q", command)
	}
}

func push(ctx context.Context, store *storage.RedisStorage, path string) error {
	format, err := content.FormatFromPath(path)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", path, err)
	}
	pkg, err := content.Load(data, format)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return store.SavePackage(ctx, pkg)
}
