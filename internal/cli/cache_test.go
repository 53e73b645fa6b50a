package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/nfalab/machina/pkg/cache"
)

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		name string
		n    int64
		want string
	}{
		{"bytes", 512, "512 B"},
		{"zero", 0, "0 B"},
		{"kilobytes", 2048, "2.0 KiB"},
		{"megabytes", 5 * 1024 * 1024, "5.0 MiB"},
		{"gigabytes", 3 * 1024 * 1024 * 1024, "3.0 GiB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := formatBytes(tt.n)
			if got != tt.want {
				t.Errorf("formatBytes(%d) = %q, want %q", tt.n, got, tt.want)
			}
		})
	}
}

func TestCacheClearRemovesEntries(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", dir)

	// Seed the cache with a couple of entries.
	c, err := cache.NewFileCache(cacheDir())
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	if err := c.Set(ctx, "one", []byte("1"), 0); err != nil {
		t.Fatal(err)
	}
	if err := c.Set(ctx, "two", []byte("2"), 0); err != nil {
		t.Fatal(err)
	}
	c.Close()

	cmd := newCacheClearCmd()
	cmd.SetArgs([]string{})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("cache clear error: %v", err)
	}

	entries := 0
	err = filepath.Walk(cacheDir(), func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			entries++
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if entries != 0 {
		t.Errorf("cache still holds %d files after clear", entries)
	}
}

func TestCacheClearOnMissingDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", filepath.Join(t.TempDir(), "never-created"))

	cmd := newCacheClearCmd()
	cmd.SetArgs([]string{})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("cache clear on missing dir should succeed, got %v", err)
	}
}

func TestCacheStatsOnMissingDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", filepath.Join(t.TempDir(), "never-created"))

	cmd := newCacheStatsCmd()
	cmd.SetArgs([]string{})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("cache stats on missing dir should succeed, got %v", err)
	}
}
