// Package config loads the machina configuration file.
//
// Configuration lives in a single TOML file. Every field has a working
// default, so a missing file is not an error: commands run against the
// defaults and flags override whatever the file provides.
package config

import (
	"os"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/nfalab/machina/pkg/errors"
)

// Cache backends selectable via [cache] backend.
const (
	CacheBackendFile   = "file"
	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"
	CacheBackendNone   = "none"
)

// Document store backends selectable via [store] backend.
const (
	StoreBackendMemory = "memory"
	StoreBackendMongo  = "mongo"
)

// ValidCacheBackends lists the supported cache backends.
var ValidCacheBackends = map[string]bool{
	CacheBackendFile:   true,
	CacheBackendMemory: true,
	CacheBackendRedis:  true,
	CacheBackendNone:   true,
}

// ValidStoreBackends lists the supported document store backends.
var ValidStoreBackends = map[string]bool{
	StoreBackendMemory: true,
	StoreBackendMongo:  true,
}

// Config is the root of the machina configuration file.
type Config struct {
	Server    Server    `toml:"server"`
	Converter Converter `toml:"converter"`
	Cache     Cache     `toml:"cache"`
	Store     Store     `toml:"store"`
}

// Server configures the HTTP API listener.
type Server struct {
	Addr string `toml:"addr"`
}

// Converter locates the remote conversion service.
type Converter struct {
	BaseURL        string `toml:"base_url"`
	DFAPath        string `toml:"dfa_path"`
	GrammarPath    string `toml:"grammar_path"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Timeout returns the per-request timeout as a duration.
// Zero means the HTTP client's shared default.
func (c Converter) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Cache configures the shared render cache.
// Dir applies to the file backend; empty selects the per-user cache
// directory. RedisAddr applies to the redis backend.
type Cache struct {
	Backend   string `toml:"backend"`
	Dir       string `toml:"dir"`
	RedisAddr string `toml:"redis_addr"`
}

// Store configures the automaton document store.
type Store struct {
	Backend       string `toml:"backend"`
	MongoURI      string `toml:"mongo_uri"`
	MongoDatabase string `toml:"mongo_database"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Server: Server{
			Addr: ":8466",
		},
		Converter: Converter{
			BaseURL:        "http://localhost:5000",
			DFAPath:        "/convert/dfa",
			GrammarPath:    "/convert/grammar",
			TimeoutSeconds: 10,
		},
		Cache: Cache{
			Backend:   CacheBackendFile,
			RedisAddr: "localhost:6379",
		},
		Store: Store{
			Backend:       StoreBackendMemory,
			MongoURI:      "mongodb://localhost:27017",
			MongoDatabase: "machina",
		},
	}
}

// Load reads a TOML configuration from path. A missing file is not an
// error: the defaults are returned. Fields absent from the file keep
// their default values.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "read config %s", path)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks enum fields and value ranges.
func (c Config) Validate() error {
	if !ValidCacheBackends[c.Cache.Backend] {
		return errors.New(errors.ErrCodeInvalidInput,
			"invalid cache backend %q (must be one of: %s)", c.Cache.Backend, backendList(ValidCacheBackends))
	}
	if !ValidStoreBackends[c.Store.Backend] {
		return errors.New(errors.ErrCodeInvalidInput,
			"invalid store backend %q (must be one of: %s)", c.Store.Backend, backendList(ValidStoreBackends))
	}
	if c.Converter.TimeoutSeconds < 0 {
		return errors.New(errors.ErrCodeInvalidInput,
			"converter timeout must not be negative, got %d", c.Converter.TimeoutSeconds)
	}
	if c.Converter.BaseURL != "" {
		if err := errors.ValidateURL(c.Converter.BaseURL); err != nil {
			return err
		}
	}
	return nil
}

func backendList(valid map[string]bool) string {
	names := make([]string, 0, len(valid))
	for name := range valid {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}
