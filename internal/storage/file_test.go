package storage

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/ranasykuri/mysteryadvanturebot/pkg/content"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

const tinyJSON = `{
  "name": "tiny",
  "title": "Tiny Adventure",
  "start_location": "hall",
  "items": {},
  "locations": {"hall": {"name": "Hall"}},
  "endings": {}
}`

const brokenYAML = `
name: broken
title: Broken
start_location: nowhere
locations:
  hall:
    name: Hall
`

func TestEmbeddedStorage(t *testing.T) {
	store, err := NewEmbeddedStorage(testLogger())
	if err != nil {
		t.Fatalf("NewEmbeddedStorage() error: %v", err)
	}
	ctx := context.Background()

	if err := store.Ping(ctx); err != nil {
		t.Fatalf("Ping() error: %v", err)
	}

	list, err := store.ListPackages(ctx)
	if err != nil {
		t.Fatalf("ListPackages() error: %v", err)
	}
	if list["mystery_manor"] != "The Mystery Adventure" {
		t.Errorf("mystery_manor title = %q", list["mystery_manor"])
	}
	if list["lighthouse"] != "The Keeper's Light" {
		t.Errorf("lighthouse title = %q", list["lighthouse"])
	}

	for _, name := range []string{"mystery_manor", "mystery_manor.json", "lighthouse"} {
		pkg, err := store.GetPackage(ctx, name)
		if err != nil {
			t.Errorf("GetPackage(%q) error: %v", name, err)
			continue
		}
		if pkg.StartLocation == "" || len(pkg.Locations) == 0 {
			t.Errorf("GetPackage(%q) returned an empty package", name)
		}
	}
}

func TestFileStorage_GetPackage(t *testing.T) {
	fsys := fstest.MapFS{
		"tiny.json":   {Data: []byte(tinyJSON)},
		"broken.yaml": {Data: []byte(brokenYAML)},
		"garbage.yml": {Data: []byte("name: [unterminated")},
		"notes.txt":   {Data: []byte("not content")},
	}
	store := NewFileStorage(fsys, testLogger())
	ctx := context.Background()

	tests := []struct {
		name    string
		pkg     string
		wantErr error
	}{
		{name: "by name", pkg: "tiny"},
		{name: "by file name", pkg: "tiny.json"},
		{name: "missing", pkg: "huge", wantErr: ErrPackageNotFound},
		{name: "broken references", pkg: "broken", wantErr: content.ErrContentIntegrity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pkg, err := store.GetPackage(ctx, tt.pkg)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("GetPackage(%q) error = %v, want %v", tt.pkg, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("GetPackage(%q) unexpected error: %v", tt.pkg, err)
			}
			if pkg.Name != "tiny" {
				t.Errorf("Name = %q, want tiny", pkg.Name)
			}
		})
	}

	if _, err := store.GetPackage(ctx, "garbage"); err == nil {
		t.Error("expected a decode error for garbage.yml")
	}
}

func TestFileStorage_ListPackagesSkipsUnreadable(t *testing.T) {
	fsys := fstest.MapFS{
		"tiny.json":         {Data: []byte(tinyJSON)},
		"nested/other.yaml": {Data: []byte("name: other\ntitle: Other\nstart_location: a\n")},
		"garbage.yml":       {Data: []byte("name: [unterminated")},
		"notes.txt":         {Data: []byte("not content")},
	}
	store := NewFileStorage(fsys, testLogger())

	list, err := store.ListPackages(context.Background())
	if err != nil {
		t.Fatalf("ListPackages() error: %v", err)
	}
	if len(list) != 2 || list["tiny"] != "Tiny Adventure" || list["other"] != "Other" {
		t.Errorf("ListPackages() = %v", list)
	}
}

func TestFileStorage_ListedPackagesLoad(t *testing.T) {
	fsys := fstest.MapFS{
		"manor.yaml":        {Data: []byte("name: mystery\ntitle: Mystery\nstart_location: hall\nlocations:\n  hall:\n    name: Hall\n")},
		"nested/other.yaml": {Data: []byte("name: other\ntitle: Other\nstart_location: a\nlocations:\n  a:\n    name: A\n")},
		"copy.json":         {Data: []byte(`{"name":"other","title":"Copy","start_location":"a","locations":{"a":{"name":"A"}}}`)},
	}
	store := NewFileStorage(fsys, testLogger())
	ctx := context.Background()

	list, err := store.ListPackages(ctx)
	if err != nil {
		t.Fatalf("ListPackages() error: %v", err)
	}
	if len(list) != 2 || list["mystery"] != "Mystery" {
		t.Fatalf("ListPackages() = %v", list)
	}

	for name := range list {
		pkg, err := store.GetPackage(ctx, name)
		if err != nil {
			t.Errorf("listed package %q cannot be loaded: %v", name, err)
			continue
		}
		if pkg.Name != name {
			t.Errorf("GetPackage(%q) returned package %q", name, pkg.Name)
		}
	}

	// Lookup by file name still works.
	if pkg, err := store.GetPackage(ctx, "manor"); err != nil || pkg.Name != "mystery" {
		t.Errorf("GetPackage(manor) = %v, %v", pkg, err)
	}
}

func TestDirStorage(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "tiny.json"), []byte(tinyJSON), 0o644); err != nil {
		t.Fatal(err)
	}
	store := NewDirStorage(dir, testLogger())

	pkg, err := store.GetPackage(context.Background(), "tiny")
	if err != nil {
		t.Fatalf("GetPackage() error: %v", err)
	}
	if pkg.Title != "Tiny Adventure" {
		t.Errorf("Title = %q", pkg.Title)
	}

	missing := NewDirStorage(filepath.Join(dir, "missing"), testLogger())
	if err := missing.Ping(context.Background()); err == nil {
		t.Error("Ping() should fail for a missing directory")
	}
}
