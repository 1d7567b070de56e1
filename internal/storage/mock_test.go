package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/ranasykuri/mysteryadvanturebot/internal/config"
	"github.com/ranasykuri/mysteryadvanturebot/pkg/content"
)

func TestMockStorage_AddAndGetPackage(t *testing.T) {
	mockStorage := NewMockStorage()
	ctx := context.Background()

	mockStorage.AddPackage(tinyPackage(t))

	loaded, err := mockStorage.GetPackage(ctx, "tiny")
	if err != nil {
		t.Fatalf("Failed to get package: %v", err)
	}
	if loaded.Title != "Tiny Adventure" {
		t.Errorf("Expected title 'Tiny Adventure', got %v", loaded.Title)
	}

	// The returned package is a copy.
	loaded.Locations["hall"].Items = append(loaded.Locations["hall"].Items, "x")
	again, _ := mockStorage.GetPackage(ctx, "tiny")
	if len(again.Locations["hall"].Items) != 0 {
		t.Error("GetPackage returned shared state")
	}

	list, err := mockStorage.ListPackages(ctx)
	if err != nil || list["tiny"] != "Tiny Adventure" {
		t.Errorf("ListPackages() = %v, %v", list, err)
	}
}

func TestMockStorage_Errors(t *testing.T) {
	mockStorage := NewMockStorage()
	ctx := context.Background()

	if _, err := mockStorage.GetPackage(ctx, "nonexistent"); !errors.Is(err, ErrPackageNotFound) {
		t.Errorf("Expected ErrPackageNotFound, got: %v", err)
	}

	broken := tinyPackage(t)
	broken.StartLocation = "attic"
	mockStorage.AddPackage(broken)
	if _, err := mockStorage.GetPackage(ctx, "tiny"); !errors.Is(err, content.ErrContentIntegrity) {
		t.Errorf("Expected ErrContentIntegrity, got: %v", err)
	}

	if err := mockStorage.Ping(ctx); err != nil {
		t.Errorf("Expected ping to succeed, got %v", err)
	}
	mockStorage.SetPingError(errors.New("down"))
	if err := mockStorage.Ping(ctx); err == nil {
		t.Error("Expected ping error")
	}
}

func TestLoadPackage(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name    string
		cfg     *config.Config
		want    string
		wantErr error
	}{
		{
			name: "embedded default",
			cfg:  &config.Config{ContentSource: config.SourceEmbedded, ContentPackage: "mystery_manor"},
			want: "mystery_manor",
		},
		{
			name: "embedded yaml",
			cfg:  &config.Config{ContentSource: config.SourceEmbedded, ContentPackage: "lighthouse"},
			want: "lighthouse",
		},
		{
			name:    "embedded missing",
			cfg:     &config.Config{ContentSource: config.SourceEmbedded, ContentPackage: "atlantis"},
			wantErr: ErrPackageNotFound,
		},
		{
			name: "directory",
			cfg:  &config.Config{ContentSource: config.SourceFile, DataDir: "../../data/packages", ContentPackage: "lighthouse"},
			want: "lighthouse",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pkg, err := LoadPackage(ctx, tt.cfg, testLogger())
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("LoadPackage() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadPackage() unexpected error: %v", err)
			}
			if pkg.Name != tt.want {
				t.Errorf("Name = %q, want %q", pkg.Name, tt.want)
			}
		})
	}
}

func TestLoadPackage_Redis(t *testing.T) {
	store, mr := setupTestRedis(t)
	defer mr.Close()
	defer store.Close()
	if err := store.SavePackage(context.Background(), tinyPackage(t)); err != nil {
		t.Fatal(err)
	}

	cfg := &config.Config{ContentSource: config.SourceRedis, RedisURL: "redis://" + mr.Addr(), ContentPackage: "tiny"}
	pkg, err := LoadPackage(context.Background(), cfg, testLogger())
	if err != nil {
		t.Fatalf("LoadPackage() error: %v", err)
	}
	if pkg.Title != "Tiny Adventure" {
		t.Errorf("Title = %q", pkg.Title)
	}
}
