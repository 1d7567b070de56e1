package storage

import (
	"context"
	"fmt"
	"sync"

	"github.com/ranasykuri/mysteryadvanturebot/pkg/content"
)

// MockStorage is a mock implementation of Storage for testing
type MockStorage struct {
	mu        sync.RWMutex
	packages  map[string]*content.Package
	pingError error
}

// Ensure MockStorage implements Storage interface
var _ Storage = (*MockStorage)(nil)

// NewMockStorage creates a new mock storage
func NewMockStorage() *MockStorage {
	return &MockStorage{
		packages: make(map[string]*content.Package),
	}
}

// SetPingError configures the mock to fail on ping with the given error
func (m *MockStorage) SetPingError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pingError = err
}

// AddPackage stores a package as-is, without validation.
func (m *MockStorage) AddPackage(pkg *content.Package) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.packages[pkg.Name] = pkg
}

func (m *MockStorage) Ping(ctx context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.pingError
}

func (m *MockStorage) Close() error {
	return nil
}

func (m *MockStorage) ListPackages(ctx context.Context) (map[string]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	packages := make(map[string]string, len(m.packages))
	for name, pkg := range m.packages {
		packages[name] = pkg.Title
	}
	return packages, nil
}

// GetPackage validates the stored package the way real backends do and
// returns a copy.
func (m *MockStorage) GetPackage(ctx context.Context, name string) (*content.Package, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	pkg, ok := m.packages[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPackageNotFound, name)
	}
	if err := pkg.Validate(); err != nil {
		return nil, err
	}
	return pkg.Clone(), nil
}
