// Package storage provides content packages to the game from the binary,
// a directory, or a Redis registry.
package storage

import (
	"context"
	"errors"

	"github.com/ranasykuri/mysteryadvanturebot/pkg/content"
)

// ErrPackageNotFound is returned when no package has the requested name.
var ErrPackageNotFound = errors.New("content package not found")

// Storage defines the interface for content package retrieval.
type Storage interface {
	// Health and lifecycle
	Ping(ctx context.Context) error
	Close() error

	// ListPackages returns the available packages keyed by name, with their titles.
	ListPackages(ctx context.Context) (map[string]string, error)

	// GetPackage loads and validates a package by name.
	GetPackage(ctx context.Context, name string) (*content.Package, error)
}
