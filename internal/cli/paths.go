package cli

import (
	"io"
	"os"
	"path/filepath"
)

// cacheDir returns the on-disk cache directory, honoring XDG_CACHE_HOME.
func cacheDir() string {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "."+appName)
	}
	return filepath.Join(home, ".cache", appName)
}

// configPath returns the default config file location, honoring
// XDG_CONFIG_HOME.
func configPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName, "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "."+appName, "config.toml")
	}
	return filepath.Join(home, ".config", appName, "config.toml")
}

// openOutput opens the output destination. An empty path means stdout.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
