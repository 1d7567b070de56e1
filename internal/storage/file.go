package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"strings"

	"github.com/ranasykuri/mysteryadvanturebot/data"
	"github.com/ranasykuri/mysteryadvanturebot/pkg/content"
)

var packageExtensions = []string{".json", ".yaml", ".yml"}

// FileStorage reads content packages from a file system. Packages are files
// named after the package, in JSON or YAML.
type FileStorage struct {
	fsys   fs.FS
	logger *slog.Logger
}

// Ensure FileStorage implements Storage interface
var _ Storage = (*FileStorage)(nil)

// NewFileStorage creates a storage over fsys.
func NewFileStorage(fsys fs.FS, logger *slog.Logger) *FileStorage {
	return &FileStorage{fsys: fsys, logger: logger}
}

// NewDirStorage creates a storage over a directory on disk.
func NewDirStorage(dir string, logger *slog.Logger) *FileStorage {
	if dir == "" {
		dir = "./data/packages"
	}
	return NewFileStorage(os.DirFS(dir), logger)
}

// NewEmbeddedStorage creates a storage over the packages compiled into the binary.
func NewEmbeddedStorage(logger *slog.Logger) (*FileStorage, error) {
	sub, err := fs.Sub(data.Packages, "packages")
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded packages: %w", err)
	}
	return NewFileStorage(sub, logger), nil
}

func (f *FileStorage) Ping(ctx context.Context) error {
	if _, err := fs.Stat(f.fsys, "."); err != nil {
		return fmt.Errorf("content directory unavailable: %w", err)
	}
	return nil
}

func (f *FileStorage) Close() error {
	return nil
}

// packageFile is a readable package found by walking the file system.
type packageFile struct {
	path  string
	title string
}

// index walks the file system and maps each package name declared inside a
// file to that file. Unreadable files are skipped; the first file to claim a
// name keeps it.
func (f *FileStorage) index() (map[string]packageFile, error) {
	files := make(map[string]packageFile)

	err := fs.WalkDir(f.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		format, err := content.FormatFromPath(p)
		if err != nil {
			return nil
		}

		file, err := f.fsys.Open(p)
		if err != nil {
			f.logger.Warn("Failed to open content file", "path", p, "error", err)
			return nil
		}
		defer file.Close()

		pkg, err := content.Decode(file, format)
		if err != nil {
			f.logger.Warn("Failed to decode content file", "path", p, "error", err)
			return nil
		}
		if pkg.Name == "" {
			pkg.Name = strings.TrimSuffix(path.Base(p), path.Ext(p))
		}
		if prev, dup := files[pkg.Name]; dup {
			f.logger.Warn("Duplicate content package name", "package", pkg.Name, "path", p, "kept", prev.path)
			return nil
		}
		files[pkg.Name] = packageFile{path: p, title: pkg.Title}
		return nil
	})

	if err != nil {
		f.logger.Error("Failed to walk content directory", "error", err)
		return nil, fmt.Errorf("failed to list packages: %w", err)
	}

	return files, nil
}

// ListPackages maps each package name to its title. Every listed name can be
// passed to GetPackage.
func (f *FileStorage) ListPackages(ctx context.Context) (map[string]string, error) {
	files, err := f.index()
	if err != nil {
		return nil, err
	}
	packages := make(map[string]string, len(files))
	for name, file := range files {
		packages[name] = file.title
	}
	return packages, nil
}

// GetPackage loads a package by name. A file named after the package is tried
// first, with name's own extension or each supported one; otherwise the package
// is found by the name declared inside the files.
func (f *FileStorage) GetPackage(ctx context.Context, name string) (*content.Package, error) {
	candidates := []string{name}
	if path.Ext(name) == "" {
		candidates = candidates[:0]
		for _, ext := range packageExtensions {
			candidates = append(candidates, name+ext)
		}
	}

	for _, filename := range candidates {
		pkg, err := f.load(name, filename)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		return pkg, err
	}

	files, err := f.index()
	if err != nil {
		return nil, err
	}
	if file, ok := files[name]; ok {
		return f.load(name, file.path)
	}

	return nil, fmt.Errorf("%w: %s", ErrPackageNotFound, name)
}

func (f *FileStorage) load(name, filename string) (*content.Package, error) {
	format, err := content.FormatFromPath(filename)
	if err != nil {
		return nil, err
	}
	raw, err := fs.ReadFile(f.fsys, filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to read content file: %w", err)
	}
	f.logger.Debug("Loading content package", "name", name, "file", filename)
	return content.Load(raw, format)
}
