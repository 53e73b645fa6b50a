package automaton

import (
	"bytes"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/nfalab/machina/pkg/errors"
)

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantCode errors.Code
		check    func(t *testing.T, s Spec)
	}{
		{
			name: "wire shape",
			input: `{
				"alphabet": ["a", "b"],
				"states": ["Q", "W"],
				"initial": "Q",
				"finals": ["W"],
				"transitionMap": {"Q": {"a": ["W"]}, "W": {"b": ["Q"]}}
			}`,
			check: func(t *testing.T, s Spec) {
				if !reflect.DeepEqual(s, twoState()) {
					t.Errorf("decoded spec = %+v, want twoState", s)
				}
			},
		},
		{
			name:     "broken JSON",
			input:    `{"alphabet": [`,
			wantCode: errors.ErrCodeInvalidFormat,
		},
		{
			name:     "unknown field rejected",
			input:    `{"states": ["q0"], "initial": "q0", "translations": {}}`,
			wantCode: errors.ErrCodeInvalidFormat,
		},
		{
			name:     "invalid spec rejected after decode",
			input:    `{"alphabet": ["a"], "states": ["q0"], "initial": "q9"}`,
			wantCode: errors.ErrCodeMissingInitialState,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, err := DecodeJSON(strings.NewReader(tt.input))
			if tt.wantCode != "" {
				if err == nil {
					t.Fatalf("DecodeJSON() = nil error, want code %s", tt.wantCode)
				}
				if got := errors.GetCode(err); got != tt.wantCode {
					t.Errorf("DecodeJSON() code = %s, want %s", got, tt.wantCode)
				}
				return
			}
			if err != nil {
				t.Fatalf("DecodeJSON() error = %v", err)
			}
			tt.check(t, spec)
		})
	}
}

func TestEncodeJSONShape(t *testing.T) {
	var buf bytes.Buffer
	if err := EncodeJSON(twoState(), &buf); err != nil {
		t.Fatalf("EncodeJSON() error = %v", err)
	}

	out := buf.String()
	for _, key := range []string{`"alphabet"`, `"states"`, `"initial"`, `"finals"`, `"transitionMap"`} {
		if !strings.Contains(out, key) {
			t.Errorf("encoded JSON missing %s:\n%s", key, out)
		}
	}
}

func TestDecodeTOML(t *testing.T) {
	input := `
alphabet = ["a", "b"]
states = ["Q", "W"]
initial = "Q"
finals = ["W"]

[transitions.Q]
a = ["W"]

[transitions.W]
b = ["Q"]
`
	spec, err := DecodeTOML(strings.NewReader(input))
	if err != nil {
		t.Fatalf("DecodeTOML() error = %v", err)
	}
	if !reflect.DeepEqual(spec, twoState()) {
		t.Errorf("decoded spec = %+v, want twoState", spec)
	}

	if _, err := DecodeTOML(strings.NewReader("alphabet = [")); err == nil {
		t.Error("DecodeTOML(broken) = nil error, want INVALID_FORMAT")
	}
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		path    string
		want    string
		wantErr bool
	}{
		{"machine.json", FormatJSON, false},
		{"machine.JSON", FormatJSON, false},
		{"machine.toml", FormatTOML, false},
		{"dir/machine.toml", FormatTOML, false},
		{"machine.yaml", "", true},
		{"machine", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := DetectFormat(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("DetectFormat(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("DetectFormat(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestReadWriteFile(t *testing.T) {
	dir := t.TempDir()
	spec := twoState()

	for _, ext := range []string{".json", ".toml"} {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(dir, "machine"+ext)
			if err := WriteFile(spec, path); err != nil {
				t.Fatalf("WriteFile() error = %v", err)
			}
			back, err := ReadFile(path)
			if err != nil {
				t.Fatalf("ReadFile() error = %v", err)
			}
			if !reflect.DeepEqual(back, spec) {
				t.Errorf("round trip drifted:\n got %+v\nwant %+v", back, spec)
			}
		})
	}

	t.Run("missing file", func(t *testing.T) {
		_, err := ReadFile(filepath.Join(dir, "absent.json"))
		if errors.GetCode(err) != errors.ErrCodeFileNotFound {
			t.Errorf("ReadFile(absent) code = %s, want FILE_NOT_FOUND", errors.GetCode(err))
		}
	})

	t.Run("unsupported extension", func(t *testing.T) {
		if err := WriteFile(spec, filepath.Join(dir, "machine.xml")); errors.GetCode(err) != errors.ErrCodeInvalidFormat {
			t.Errorf("WriteFile(.xml) code = %s, want INVALID_FORMAT", errors.GetCode(err))
		}
	})
}
