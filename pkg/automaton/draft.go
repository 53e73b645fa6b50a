package automaton

import (
	"encoding/json"
	"strings"

	"github.com/nfalab/machina/pkg/errors"
)

// Field identifies one editable field of a draft.
type Field string

// Editable draft fields.
const (
	FieldAlphabet    Field = "alphabet"
	FieldStates      Field = "states"
	FieldInitial     Field = "initial"
	FieldFinals      Field = "finals"
	FieldTransitions Field = "transitions"
)

// ValidField reports whether f names an editable field.
func ValidField(f Field) bool {
	switch f {
	case FieldAlphabet, FieldStates, FieldInitial, FieldFinals, FieldTransitions:
		return true
	}
	return false
}

// Draft is the raw editor form of a specification: exactly what the user
// typed, unparsed and unvalidated. List fields hold comma-separated text,
// Transitions holds transition-map JSON text. Drafts accept anything;
// problems surface only when the draft is compiled at submission time.
type Draft struct {
	Alphabet    string `json:"alphabet"`
	States      string `json:"states"`
	Initial     string `json:"initial"`
	Finals      string `json:"finals"`
	Transitions string `json:"transitions"`
}

// Apply returns a copy of the draft with one field replaced. Unknown fields
// are ignored so stale events cannot corrupt a draft.
func (d Draft) Apply(field Field, value string) Draft {
	switch field {
	case FieldAlphabet:
		d.Alphabet = value
	case FieldStates:
		d.States = value
	case FieldInitial:
		d.Initial = value
	case FieldFinals:
		d.Finals = value
	case FieldTransitions:
		d.Transitions = value
	}
	return d
}

// SplitList parses comma-separated editor text into an ordered list,
// trimming whitespace and dropping empty entries. "a, b" and "a,b" are the
// same list.
func SplitList(text string) []string {
	var out []string
	for _, part := range strings.Split(text, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// JoinList renders a list back into editor text.
func JoinList(items []string) string {
	return strings.Join(items, ", ")
}

// Compile is the pure submission-time boundary between editor text and the
// structured model. It parses the transition JSON, normalizes the result,
// and validates every invariant. On failure the zero Spec and a structured
// error are returned; nothing downstream of Compile ever parses raw text.
func Compile(d Draft) (Spec, error) {
	spec := Spec{
		Alphabet: SplitList(d.Alphabet),
		States:   SplitList(d.States),
		Initial:  strings.TrimSpace(d.Initial),
		Finals:   SplitList(d.Finals),
	}

	text := strings.TrimSpace(d.Transitions)
	if text != "" {
		var tm TransitionMap
		if err := json.Unmarshal([]byte(text), &tm); err != nil {
			return Spec{}, errors.Wrap(errors.ErrCodeMalformedTransitionMap, err,
				"transition map is not valid JSON")
		}
		spec.Transitions = tm
	}

	spec = spec.Normalize()
	if err := Validate(spec); err != nil {
		return Spec{}, err
	}
	return spec, nil
}

// DraftOf renders a spec back into its editor form, for loading an existing
// automaton into the editing surface. The transition map is indented so the
// text field stays readable.
func DraftOf(s Spec) Draft {
	d := Draft{
		Alphabet: JoinList(s.Alphabet),
		States:   JoinList(s.States),
		Initial:  s.Initial,
		Finals:   JoinList(s.Finals),
	}
	if len(s.Transitions) > 0 {
		if text, err := json.MarshalIndent(s.Transitions, "", "  "); err == nil {
			d.Transitions = string(text)
		}
	}
	return d
}
