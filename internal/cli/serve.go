package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nfalab/machina/internal/config"
	"github.com/nfalab/machina/internal/httpapi"
	"github.com/nfalab/machina/pkg/cache"
	"github.com/nfalab/machina/pkg/integrations/conversion"
	"github.com/nfalab/machina/pkg/pipeline"
	"github.com/nfalab/machina/pkg/session"
	"github.com/nfalab/machina/pkg/store"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr       string
	baseURL    string
	configFile string
}

// newServeCmd creates the serve command running the HTTP API.
func newServeCmd() *cobra.Command {
	opts := serveOpts{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the machina HTTP API",
		Long: `Serve runs the HTTP API: stateless validation, projection, and render
endpoints, session-backed editing, and the document store. Backends for
the artifact cache and the document store come from the config file.

Examples:
  machina serve
  machina serve --addr :9000
  machina serve --config /etc/machina/config.toml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), &opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", "", "listen address (overrides config)")
	cmd.Flags().StringVar(&opts.baseURL, "base-url", "", "conversion service URL (overrides config)")
	cmd.Flags().StringVar(&opts.configFile, "config", "", "config file (default: "+configPath()+")")

	return cmd
}

// openCache builds the artifact cache selected by the config.
func openCache(ctx context.Context, cfg config.Cache) (cache.Cache, error) {
	switch cfg.Backend {
	case config.CacheBackendMemory:
		return cache.NewMemoryCache(), nil
	case config.CacheBackendRedis:
		return cache.NewRedisCache(ctx, cfg.RedisAddr)
	case config.CacheBackendNone:
		return cache.NewNullCache(), nil
	default:
		dir := cfg.Dir
		if dir == "" {
			dir = cacheDir()
		}
		return cache.NewFileCache(dir)
	}
}

// openStore builds the document store selected by the config.
func openStore(ctx context.Context, cfg config.Store) (store.Store, error) {
	if cfg.Backend == config.StoreBackendMongo {
		return store.NewMongoStore(ctx, cfg.MongoURI, cfg.MongoDatabase)
	}
	return store.NewMemoryStore(), nil
}

func runServe(ctx context.Context, opts *serveOpts) error {
	logger := loggerFromContext(ctx)

	path := opts.configFile
	if path == "" {
		path = configPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if opts.addr != "" {
		cfg.Server.Addr = opts.addr
	}
	if opts.baseURL != "" {
		cfg.Converter.BaseURL = opts.baseURL
	}

	converter, err := conversion.NewClient(cfg.Converter.BaseURL, conversion.Options{
		DFAPath:     cfg.Converter.DFAPath,
		GrammarPath: cfg.Converter.GrammarPath,
		Timeout:     cfg.Converter.Timeout(),
	})
	if err != nil {
		return err
	}
	logger.Info("using conversion service", "url", converter.BaseURL())

	artifactCache, err := openCache(ctx, cfg.Cache)
	if err != nil {
		return fmt.Errorf("open cache backend %q: %w", cfg.Cache.Backend, err)
	}
	defer artifactCache.Close()
	logger.Info("cache backend ready", "backend", cfg.Cache.Backend)

	documents, err := openStore(ctx, cfg.Store)
	if err != nil {
		return fmt.Errorf("open store backend %q: %w", cfg.Store.Backend, err)
	}
	defer documents.Close(context.Background())
	logger.Info("document store ready", "backend", cfg.Store.Backend)

	sessions := session.NewManager(converter, session.DefaultTTL)
	defer sessions.Close()

	// API render results share the file cache with the render command but
	// live under their own key prefix.
	runner := pipeline.NewRunner(artifactCache, cache.NewScopedKeyer(cache.NewDefaultKeyer(), "api:"), logger)

	srv := httpapi.NewServer(httpapi.Options{
		Addr:      cfg.Server.Addr,
		Converter: converter,
		Sessions:  sessions,
		Store:     documents,
		Runner:    runner,
		Logger:    logger,
	})
	return srv.Run(ctx)
}
