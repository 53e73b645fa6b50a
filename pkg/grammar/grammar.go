package grammar

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Epsilon is the marker the conversion service uses for an empty-string
// production. It is rendered verbatim like any other right-hand side.
const Epsilon = "&"

// Production is one nonterminal (a state identifier) with its ordered
// right-hand sides.
type Production struct {
	State string   `json:"state" bson:"state"`
	RHS   []string `json:"rhs" bson:"rhs"`
}

// Result is a right-linear grammar keyed by nonterminal.
//
// The conversion service transmits it as a JSON object of
// state → [right-hand sides]. Decoding into a Go map would lose the
// object's key order, and display order is part of the contract, so Result
// keeps an ordered production list and implements its own JSON codec.
type Result struct {
	Productions []Production
}

// Add appends right-hand sides for a state, extending an existing
// production if the state was already added.
func (r *Result) Add(state string, rhs ...string) {
	for i := range r.Productions {
		if r.Productions[i].State == state {
			r.Productions[i].RHS = append(r.Productions[i].RHS, rhs...)
			return
		}
	}
	r.Productions = append(r.Productions, Production{State: state, RHS: rhs})
}

// Empty reports whether the grammar has no productions at all.
func (r Result) Empty() bool {
	return len(r.Productions) == 0
}

// RuleCount returns the number of display rules (one per right-hand side).
func (r Result) RuleCount() int {
	n := 0
	for _, p := range r.Productions {
		n += len(p.RHS)
	}
	return n
}

// UnmarshalJSON decodes the service's state → [rhs] object, preserving the
// order states appear in and the order of each state's right-hand sides.
func (r *Result) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("grammar result: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("grammar result: expected JSON object, got %v", tok)
	}

	r.Productions = nil
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("grammar result: %w", err)
		}
		state, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("grammar result: expected string key, got %v", keyTok)
		}

		var rhs []string
		if err := dec.Decode(&rhs); err != nil {
			return fmt.Errorf("grammar result: productions for %q: %w", state, err)
		}
		r.Productions = append(r.Productions, Production{State: state, RHS: rhs})
	}

	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("grammar result: %w", err)
	}
	return nil
}

// MarshalJSON encodes the grammar back into the service's object shape,
// preserving production order.
func (r Result) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, p := range r.Productions {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(p.State)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		rhs := p.RHS
		if rhs == nil {
			rhs = []string{}
		}
		val, err := json.Marshal(rhs)
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Rule is one display line of a rendered grammar.
type Rule struct {
	LHS string `json:"lhs" bson:"lhs"`
	RHS string `json:"rhs" bson:"rhs"`
}

// String renders the rule in conventional arrow notation.
func (r Rule) String() string {
	return r.LHS + " -> " + r.RHS
}

// Rules flattens a grammar into display rules, one per right-hand side,
// preserving per-state order and per-rule order. A state with an empty
// right-hand-side list contributes nothing.
func Rules(res Result) []Rule {
	rules := make([]Rule, 0, res.RuleCount())
	for _, p := range res.Productions {
		for _, rhs := range p.RHS {
			rules = append(rules, Rule{LHS: p.State, RHS: rhs})
		}
	}
	return rules
}

// RenderText renders the grammar as one rule per line, ready for terminal
// or text display. An empty grammar renders to the empty string.
func RenderText(res Result) string {
	rules := Rules(res)
	if len(rules) == 0 {
		return ""
	}

	var b strings.Builder
	for _, rule := range rules {
		b.WriteString(rule.String())
		b.WriteByte('\n')
	}
	return b.String()
}
