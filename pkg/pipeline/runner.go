package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/nfalab/machina/pkg/automaton"
	"github.com/nfalab/machina/pkg/cache"
	"github.com/nfalab/machina/pkg/graph"
	"github.com/nfalab/machina/pkg/observability"
	"github.com/nfalab/machina/pkg/render/statechart"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger; it doesn't store
// pipeline results. Multiple goroutines can safely use the same Runner with
// different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete compile → project → render pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Compile
	compileStart := time.Now()
	spec, err := r.Compile(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.Spec = spec
	result.Stats.CompileTime = time.Since(compileStart)
	result.Stats.StateCount = len(spec.States)

	opts.Logger.Info("compiled automaton",
		"source", opts.Source(),
		"kind", spec.Kind(),
		"states", len(spec.States),
		"duration", result.Stats.CompileTime)

	// Stage 2: Project
	projectStart := time.Now()
	g, projectHit, err := r.ProjectWithCacheInfo(ctx, spec, opts)
	if err != nil {
		return nil, err
	}
	result.Graph = g
	result.Stats.ProjectTime = time.Since(projectStart)
	result.Stats.NodeCount = g.NodeCount()
	result.Stats.EdgeCount = g.EdgeCount()
	result.CacheInfo.ProjectHit = projectHit

	if data, err := graph.MarshalGraph(g); err == nil {
		result.GraphHash = cache.Hash(data)
	}

	opts.Logger.Info("projected graph",
		"nodes", g.NodeCount(),
		"edges", g.EdgeCount(),
		"cached", projectHit,
		"duration", result.Stats.ProjectTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, g, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	opts.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Compile loads the automaton named by opts, from a file or the inline
// spec, and returns it normalized and validated.
func (r *Runner) Compile(ctx context.Context, opts Options) (automaton.Spec, error) {
	source := opts.Source()
	observability.Pipeline().OnCompileStart(ctx, source)
	start := time.Now()

	var spec automaton.Spec
	var err error
	if opts.Spec != nil {
		spec = opts.Spec.Normalize()
		err = automaton.Validate(spec)
	} else {
		spec, err = automaton.ReadFile(opts.Input)
	}

	observability.Pipeline().OnCompileComplete(ctx, source, len(spec.States), time.Since(start), err)
	if err != nil {
		return automaton.Spec{}, err
	}
	return spec, nil
}

// ProjectWithCacheInfo projects a spec into a graph, serving and feeding the
// cache, and reports whether the graph came from cache.
func (r *Runner) ProjectWithCacheInfo(ctx context.Context, spec automaton.Spec, opts Options) (graph.Graph, bool, error) {
	key := r.Keyer.GraphKey(SpecHash(spec))

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			if g, err := graph.UnmarshalGraph(data); err == nil {
				observability.Cache().OnCacheHit(ctx, "graph")
				return g, true, nil
			}
			// Corrupt entry: fall through and recompute.
		}
		observability.Cache().OnCacheMiss(ctx, "graph")
	}

	observability.Pipeline().OnProjectStart(ctx, len(spec.States))
	start := time.Now()
	g := graph.Project(spec)
	observability.Pipeline().OnProjectComplete(ctx, g.NodeCount(), g.EdgeCount(), time.Since(start))

	if data, err := graph.MarshalGraph(g); err == nil {
		_ = r.Cache.Set(ctx, key, data, cache.TTLGraph)
		observability.Cache().OnCacheSet(ctx, "graph", len(data))
	}
	return g, false, nil
}

// Project is a convenience wrapper that discards the cache hit info.
func (r *Runner) Project(ctx context.Context, spec automaton.Spec, opts Options) (graph.Graph, error) {
	g, _, err := r.ProjectWithCacheInfo(ctx, spec, opts)
	return g, err
}

// RenderWithCacheInfo renders every requested format, serving and feeding
// the cache per format, and reports whether all artifacts came from cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, g graph.Graph, opts Options) (map[string][]byte, bool, error) {
	opts.SetRenderDefaults()
	if err := ValidateFormats(opts.Formats); err != nil {
		return nil, false, err
	}

	dot := statechart.ToDOT(g, statechart.Options{Title: opts.Title})
	dotHash := cache.Hash([]byte(dot))

	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	artifacts := make(map[string][]byte, len(opts.Formats))
	allHit := true
	var renderErr error

	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(dotHash, opts.ArtifactKeyOpts(format))

		if !opts.Refresh {
			if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
				observability.Cache().OnCacheHit(ctx, "artifact")
				artifacts[format] = data
				continue
			}
			observability.Cache().OnCacheMiss(ctx, "artifact")
		}
		allHit = false

		data, err := renderFormat(g, dot, format)
		if err != nil {
			renderErr = err
			break
		}
		artifacts[format] = data
		_ = r.Cache.Set(ctx, key, data, cache.TTLArtifact)
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}

	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), renderErr)
	if renderErr != nil {
		return nil, false, renderErr
	}
	return artifacts, allHit, nil
}

// Render is a convenience wrapper that discards the cache hit info.
func (r *Runner) Render(ctx context.Context, g graph.Graph, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, g, opts)
	return artifacts, err
}

// SpecHash returns the content hash of a spec, used for cache keys.
func SpecHash(spec automaton.Spec) string {
	data, _ := json.Marshal(spec)
	return cache.Hash(data)
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
