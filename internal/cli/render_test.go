package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty defaults to svg", "", []string{"svg"}},
		{"single format", "dot", []string{"dot"}},
		{"multiple formats", "svg,png,dot", []string{"svg", "png", "dot"}},
		{"spaces are trimmed", "svg, png", []string{"svg", "png"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseFormats(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("parseFormats(%q) length = %d, want %d", tt.input, len(got), len(tt.want))
			}
			for i, v := range got {
				if v != tt.want[i] {
					t.Errorf("parseFormats(%q)[%d] = %q, want %q", tt.input, i, v, tt.want[i])
				}
			}
		})
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		name   string
		output string
		input  string
		want   string
	}{
		{"derived from input", "", "machine.json", "machine"},
		{"derived from nested input", "", "out/machine.toml", "out/machine"},
		{"output without extension", "diagram", "machine.json", "diagram"},
		{"output with format extension", "diagram.svg", "machine.json", "diagram"},
		{"output with png extension", "diagram.png", "machine.json", "diagram"},
		{"output with foreign extension", "diagram.out", "machine.json", "diagram.out"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := basePath(tt.output, tt.input)
			if got != tt.want {
				t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
			}
		})
	}
}

func TestRunRenderWritesArtifacts(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))

	input := filepath.Join(dir, "machine.json")
	writeAutomatonFile(t, input)

	ctx := withLogger(context.Background(), newLogger(os.Stderr, log.ErrorLevel))
	opts := renderOpts{
		output:  filepath.Join(dir, "out"),
		formats: []string{"dot", "json"},
	}
	if err := runRender(ctx, input, &opts); err != nil {
		t.Fatalf("runRender() error: %v", err)
	}

	dot, err := os.ReadFile(filepath.Join(dir, "out.dot"))
	if err != nil {
		t.Fatalf("reading dot artifact: %v", err)
	}
	if !strings.Contains(string(dot), "digraph") {
		t.Errorf("dot artifact should contain digraph, got %q", string(dot))
	}

	if _, err := os.Stat(filepath.Join(dir, "out.json")); err != nil {
		t.Errorf("json artifact missing: %v", err)
	}
}

func TestRunRenderRejectsInvalidFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))

	input := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(input, []byte(`{"alphabet": ["a"], "states": []`), 0o644); err != nil {
		t.Fatal(err)
	}

	ctx := withLogger(context.Background(), newLogger(os.Stderr, log.ErrorLevel))
	opts := renderOpts{formats: []string{"dot"}, noCache: true}
	if err := runRender(ctx, input, &opts); err == nil {
		t.Fatal("runRender() should fail for malformed input")
	}
}

// writeAutomatonFile writes a small valid DFA to path.
func writeAutomatonFile(t *testing.T, path string) {
	t.Helper()
	body := `{
  "alphabet": ["a", "b"],
  "states": ["q0", "q1"],
  "initial": "q0",
  "finals": ["q1"],
  "transitionMap": {
    "q0": {"a": ["q1"]},
    "q1": {"b": ["q1"]}
  }
}`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}
