package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nfalab/machina/pkg/cache"
	"github.com/nfalab/machina/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output  string // output file path (or base path for multiple formats)
	formats []string
	title   string
	refresh bool // bypass cache reads, recompute everything
	noCache bool // disable the cache entirely
}

// newRenderCmd creates the render command for producing graph artifacts.
func newRenderCmd() *cobra.Command {
	var formatsStr string
	opts := renderOpts{}

	cmd := &cobra.Command{
		Use:   "render <file>",
		Short: "Render an automaton to DOT, SVG, PNG, or JSON",
		Long: `Render compiles an automaton file, projects it onto a node/edge graph,
and writes one artifact per requested format. Projection and render
results are cached under content-addressed keys, so re-rendering an
unchanged machine is instant.

Examples:
  machina render machine.json
  machina render machine.toml -f svg,png -o out/machine
  machina render machine.json --format dot --refresh`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			return runRender(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), dot, png, json (comma-separated)")
	cmd.Flags().StringVar(&opts.title, "title", "", "title drawn above the graph")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass cache reads, recompute everything")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")

	return cmd
}

// parseFormats parses the --format flag into a slice of output formats.
// If empty, defaults to the pipeline default.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.DefaultFormat}
	}
	parts := strings.Split(s, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

// basePath derives the base output path from the output and input paths.
// If output is empty, it strips the extension from input. If output ends
// in a format extension, that extension is stripped.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// newRunner builds a pipeline runner backed by the on-disk cache, or by no
// cache at all when disabled.
func newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	logger := loggerFromContext(ctx)
	if noCache {
		return pipeline.NewRunner(cache.NewNullCache(), nil, logger), nil
	}
	c, err := cache.NewFileCache(cacheDir())
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}
	return pipeline.NewRunner(c, nil, logger), nil
}

func runRender(ctx context.Context, input string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)

	runner, err := newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Cache.Close()

	prog := newProgress(logger)
	result, err := runner.Execute(ctx, pipeline.Options{
		Input:   input,
		Title:   opts.title,
		Formats: opts.formats,
		Refresh: opts.refresh,
		Logger:  logger,
	})
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("rendered %d artifact(s)", len(result.Artifacts)))

	printSuccess("%s (%s)", input, result.Spec.Kind())
	printStats(result.Stats.NodeCount, result.Stats.EdgeCount, result.CacheInfo.RenderHit)

	base := basePath(opts.output, input)
	for _, format := range opts.formats {
		data, ok := result.Artifacts[format]
		if !ok {
			continue
		}

		path := opts.output
		if path == "" || len(opts.formats) > 1 {
			path = base + "." + format
		}

		out, err := openOutput(path)
		if err != nil {
			return err
		}
		if _, err := out.Write(data); err != nil {
			out.Close()
			return err
		}
		if err := out.Close(); err != nil {
			return err
		}
		printFile(path)
	}
	return nil
}
