package automaton

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/nfalab/machina/pkg/errors"
)

// File formats accepted by [ReadFile] and [WriteFile].
const (
	FormatJSON = "json"
	FormatTOML = "toml"
)

// DecodeJSON reads a spec from JSON. The shape is the same one the
// conversion service speaks: alphabet, states, initial, finals,
// transitionMap. The decoded spec is normalized and validated.
func DecodeJSON(r io.Reader) (Spec, error) {
	var s Spec
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&s); err != nil {
		return Spec{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "invalid automaton JSON")
	}
	s = s.Normalize()
	if err := Validate(s); err != nil {
		return Spec{}, err
	}
	return s, nil
}

// EncodeJSON writes the spec as indented JSON.
func EncodeJSON(s Spec, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode automaton JSON")
	}
	return nil
}

// DecodeTOML reads a spec from TOML. Transition tables nest as
// [transitions.<state>] with symbol = ["dest", ...] entries.
func DecodeTOML(r io.Reader) (Spec, error) {
	var s Spec
	if _, err := toml.NewDecoder(r).Decode(&s); err != nil {
		return Spec{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "invalid automaton TOML")
	}
	s = s.Normalize()
	if err := Validate(s); err != nil {
		return Spec{}, err
	}
	return s, nil
}

// EncodeTOML writes the spec as TOML.
func EncodeTOML(s Spec, w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(s); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode automaton TOML")
	}
	return nil
}

// DetectFormat maps a file path to a format by extension.
func DetectFormat(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidFormat,
			"unsupported automaton file %q (expected .json or .toml)", filepath.Base(path))
	}
}

// ReadFile loads a spec from a JSON or TOML file, selected by extension.
func ReadFile(path string) (Spec, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return Spec{}, err
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Spec{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "automaton file %q", path)
		}
		return Spec{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %q", path)
	}
	defer f.Close()

	switch format {
	case FormatTOML:
		return DecodeTOML(f)
	default:
		return DecodeJSON(f)
	}
}

// WriteFile stores a spec to a JSON or TOML file, selected by extension.
func WriteFile(s Spec, path string) error {
	format, err := DetectFormat(path)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "create %q", path)
	}
	defer f.Close()

	switch format {
	case FormatTOML:
		return EncodeTOML(s, f)
	default:
		return EncodeJSON(s, f)
	}
}
