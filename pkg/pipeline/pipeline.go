// Package pipeline provides the core visualization pipeline for machina.
//
// This package implements the complete compile → project → render pipeline
// that is shared by the CLI, the HTTP API, and the interactive editor. By
// centralizing this logic, every entry point validates, projects, caches,
// and renders automata the same way.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Compile: load an automaton from a file or take an inline spec, then
//     normalize and validate it
//  2. Project: turn the spec into a renderable node/edge graph
//  3. Render: generate output in various formats (DOT, SVG, PNG, JSON)
//
// Each stage can be run independently or as part of the complete pipeline.
// Projection and rendering results are cached under content-addressed keys.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Input:   "machine.json",
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	// Compile only
//	spec, err := runner.Compile(ctx, opts)
//
//	// Project an existing spec
//	g, err := runner.Project(ctx, spec, opts)
//
//	// Render an existing graph
//	artifacts, err := runner.Render(ctx, g, opts)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/nfalab/machina/pkg/automaton"
	"github.com/nfalab/machina/pkg/cache"
	"github.com/nfalab/machina/pkg/errors"
	"github.com/nfalab/machina/pkg/graph"
)

// Format constants for output formats.
const (
	FormatDOT  = "dot"
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatDOT:  true,
	FormatSVG:  true,
	FormatPNG:  true,
	FormatJSON: true,
}

// DefaultFormat is rendered when no formats are requested.
const DefaultFormat = FormatSVG

// Options contains all configuration for the visualization pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Input options. Exactly one of Input (a .json or .toml file path) or
	// Spec (an inline automaton) must be set.
	Input string          `json:"input,omitempty"`
	Spec  *automaton.Spec `json:"spec,omitempty"`

	// Title is drawn above the graph when set.
	Title string `json:"title,omitempty"`

	// Render options
	Formats []string `json:"formats,omitempty"`

	// Refresh bypasses cache reads, forcing recomputation. Results are
	// still written back to the cache.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Spec is the compiled automaton.
	Spec automaton.Spec

	// Graph is the projected graph.
	Graph graph.Graph

	// GraphHash is the content hash of the projected graph.
	GraphHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	StateCount  int
	NodeCount   int
	EdgeCount   int
	CompileTime time.Duration
	ProjectTime time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits for each cached pipeline stage.
type CacheInfo struct {
	ProjectHit bool // whether the projected graph came from cache
	RenderHit  bool // whether all artifacts came from cache
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format %q (must be one of: dot, svg, png, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAndSetDefaults checks required fields and applies defaults for the
// full pipeline. It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Input == "" && o.Spec == nil {
		return errors.New(errors.ErrCodeInvalidInput, "an input file or an inline spec is required")
	}
	if o.Input != "" && o.Spec != nil {
		return errors.New(errors.ErrCodeInvalidInput, "input file and inline spec are mutually exclusive")
	}
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{DefaultFormat}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Source returns a display name for the pipeline input.
func (o *Options) Source() string {
	if o.Input != "" {
		return o.Input
	}
	return "inline"
}

// ArtifactKeyOpts returns cache key options for one rendered format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{Format: format}
}
