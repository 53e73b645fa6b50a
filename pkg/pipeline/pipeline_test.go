package pipeline

import (
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/nfalab/machina/pkg/automaton"
	"github.com/nfalab/machina/pkg/cache"
	"github.com/nfalab/machina/pkg/errors"
	"github.com/nfalab/machina/pkg/graph"
)

func specFixture() automaton.Spec {
	tm := automaton.TransitionMap{}
	tm.Add("q0", "a", "q1")
	tm.Add("q0", "b", "q0")
	return automaton.Spec{
		Alphabet:    []string{"a", "b"},
		States:      []string{"q0", "q1"},
		Initial:     "q0",
		Finals:      []string{"q1"},
		Transitions: tm,
	}
}

func discardLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format string
		ok     bool
	}{
		{"dot", true},
		{"svg", true},
		{"png", true},
		{"json", true},
		{"pdf", false},
		{"exe", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run("format_"+tt.format, func(t *testing.T) {
			err := ValidateFormat(tt.format)
			if tt.ok && err != nil {
				t.Errorf("ValidateFormat(%q) = %v, want nil", tt.format, err)
			}
			if !tt.ok && !errors.Is(err, errors.ErrCodeInvalidFormat) {
				t.Errorf("ValidateFormat(%q) = %v, want %s", tt.format, err, errors.ErrCodeInvalidFormat)
			}
		})
	}
}

func TestOptionsRequireInput(t *testing.T) {
	var opts Options
	if err := opts.ValidateAndSetDefaults(); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("ValidateAndSetDefaults() = %v, want %s", err, errors.ErrCodeInvalidInput)
	}
}

func TestOptionsRejectBothInputs(t *testing.T) {
	spec := specFixture()
	opts := Options{Input: "machine.json", Spec: &spec}
	if err := opts.ValidateAndSetDefaults(); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("ValidateAndSetDefaults() = %v, want %s", err, errors.ErrCodeInvalidInput)
	}
}

func TestOptionsDefaults(t *testing.T) {
	spec := specFixture()
	opts := Options{Spec: &spec}

	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults() error = %v", err)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != DefaultFormat {
		t.Errorf("Formats = %v, want [%s]", opts.Formats, DefaultFormat)
	}
	if opts.Logger == nil {
		t.Error("Logger not defaulted")
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Errorf("second ValidateAndSetDefaults() error = %v", err)
	}
}

func TestRunnerExecuteFromSpec(t *testing.T) {
	spec := specFixture()
	runner := NewRunner(cache.NewMemoryCache(), nil, discardLogger())
	defer runner.Close()

	opts := Options{
		Spec:    &spec,
		Title:   "demo machine",
		Formats: []string{FormatDOT, FormatJSON},
	}
	result, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if result.Stats.StateCount != 2 {
		t.Errorf("StateCount = %d, want 2", result.Stats.StateCount)
	}
	if result.Stats.NodeCount != 2 || result.Stats.EdgeCount != 2 {
		t.Errorf("graph size = %d nodes / %d edges, want 2/2",
			result.Stats.NodeCount, result.Stats.EdgeCount)
	}
	if len(result.GraphHash) != 64 {
		t.Errorf("GraphHash = %q, want 64 hex chars", result.GraphHash)
	}

	dot := string(result.Artifacts[FormatDOT])
	if !strings.Contains(dot, "digraph Automaton") {
		t.Errorf("DOT artifact missing digraph header:\n%s", dot)
	}
	if !strings.Contains(dot, `label="demo machine"`) {
		t.Errorf("DOT artifact missing title:\n%s", dot)
	}

	g, err := graph.UnmarshalGraph(result.Artifacts[FormatJSON])
	if err != nil {
		t.Fatalf("JSON artifact does not decode: %v", err)
	}
	if g.NodeCount() != 2 {
		t.Errorf("JSON artifact NodeCount = %d, want 2", g.NodeCount())
	}

	if result.CacheInfo.ProjectHit || result.CacheInfo.RenderHit {
		t.Errorf("cold run reported cache hits: %+v", result.CacheInfo)
	}
}

func TestRunnerExecuteServesFromCache(t *testing.T) {
	spec := specFixture()
	runner := NewRunner(cache.NewMemoryCache(), nil, discardLogger())
	defer runner.Close()

	opts := Options{Spec: &spec, Formats: []string{FormatDOT}}
	first, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("first Execute() error = %v", err)
	}

	second, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("second Execute() error = %v", err)
	}
	if !second.CacheInfo.ProjectHit || !second.CacheInfo.RenderHit {
		t.Errorf("warm run missed the cache: %+v", second.CacheInfo)
	}
	if string(first.Artifacts[FormatDOT]) != string(second.Artifacts[FormatDOT]) {
		t.Error("cached artifact differs from rendered artifact")
	}
}

func TestRunnerExecuteRefreshBypassesCache(t *testing.T) {
	spec := specFixture()
	runner := NewRunner(cache.NewMemoryCache(), nil, discardLogger())
	defer runner.Close()

	warm := Options{Spec: &spec, Formats: []string{FormatDOT}}
	if _, err := runner.Execute(context.Background(), warm); err != nil {
		t.Fatalf("warm Execute() error = %v", err)
	}

	refreshed := Options{Spec: &spec, Formats: []string{FormatDOT}, Refresh: true}
	result, err := runner.Execute(context.Background(), refreshed)
	if err != nil {
		t.Fatalf("refresh Execute() error = %v", err)
	}
	if result.CacheInfo.ProjectHit || result.CacheInfo.RenderHit {
		t.Errorf("refresh run reported cache hits: %+v", result.CacheInfo)
	}
}

func TestRunnerExecuteFromFile(t *testing.T) {
	dir := t.TempDir()

	for _, name := range []string{"machine.json", "machine.toml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			if err := automaton.WriteFile(specFixture(), path); err != nil {
				t.Fatalf("WriteFile() error = %v", err)
			}

			runner := NewRunner(nil, nil, discardLogger())
			result, err := runner.Execute(context.Background(), Options{
				Input:   path,
				Formats: []string{FormatDOT},
			})
			if err != nil {
				t.Fatalf("Execute() error = %v", err)
			}
			if result.Stats.StateCount != 2 {
				t.Errorf("StateCount = %d, want 2", result.Stats.StateCount)
			}
		})
	}
}

func TestRunnerExecuteMissingFile(t *testing.T) {
	runner := NewRunner(nil, nil, discardLogger())

	_, err := runner.Execute(context.Background(), Options{
		Input:   filepath.Join(t.TempDir(), "absent.json"),
		Formats: []string{FormatDOT},
	})
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Execute() error = %v, want %s", err, errors.ErrCodeFileNotFound)
	}
}

func TestRunnerExecuteInvalidSpec(t *testing.T) {
	spec := specFixture()
	spec.Initial = "ghost"
	runner := NewRunner(nil, nil, discardLogger())

	_, err := runner.Execute(context.Background(), Options{
		Spec:    &spec,
		Formats: []string{FormatDOT},
	})
	if !errors.Is(err, errors.ErrCodeMissingInitialState) {
		t.Errorf("Execute() error = %v, want %s", err, errors.ErrCodeMissingInitialState)
	}
}

func TestRunnerExecuteInvalidFormat(t *testing.T) {
	spec := specFixture()
	runner := NewRunner(nil, nil, discardLogger())

	_, err := runner.Execute(context.Background(), Options{
		Spec:    &spec,
		Formats: []string{"pdf"},
	})
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("Execute() error = %v, want %s", err, errors.ErrCodeInvalidFormat)
	}
}

func TestRunnerCompileNormalizesInlineSpec(t *testing.T) {
	spec := specFixture()
	spec.Alphabet = []string{"a", "a", "b"}
	runner := NewRunner(nil, nil, discardLogger())

	compiled, err := runner.Compile(context.Background(), Options{Spec: &spec})
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	if got := len(compiled.Alphabet); got != 2 {
		t.Errorf("Alphabet has %d symbols, want 2", got)
	}
}
