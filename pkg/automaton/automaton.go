package automaton

// Kind labels for the two automaton families.
const (
	KindDFA = "DFA"
	KindNFA = "NFA"
)

// TransitionMap maps state → symbol → destination states.
// A missing (state, symbol) entry means the transition is undefined; an
// entry with multiple destinations is nondeterministic.
type TransitionMap map[string]map[string][]string

// Add appends destination states for the (from, symbol) pair, creating the
// nested maps as needed. Destinations keep insertion order.
func (m TransitionMap) Add(from, symbol string, to ...string) {
	bySymbol, ok := m[from]
	if !ok {
		bySymbol = make(map[string][]string)
		m[from] = bySymbol
	}
	bySymbol[symbol] = append(bySymbol[symbol], to...)
}

// Destinations returns the destination states for (from, symbol), or nil if
// the transition is undefined.
func (m TransitionMap) Destinations(from, symbol string) []string {
	return m[from][symbol]
}

// Clone returns a deep copy of the map.
func (m TransitionMap) Clone() TransitionMap {
	if m == nil {
		return nil
	}
	out := make(TransitionMap, len(m))
	for from, bySymbol := range m {
		cp := make(map[string][]string, len(bySymbol))
		for symbol, dests := range bySymbol {
			cp[symbol] = append([]string(nil), dests...)
		}
		out[from] = cp
	}
	return out
}

// Count returns the total number of (state, symbol, destination) triples.
func (m TransitionMap) Count() int {
	n := 0
	for _, bySymbol := range m {
		for _, dests := range bySymbol {
			n += len(dests)
		}
	}
	return n
}

// Spec is a finite automaton specification.
//
// Alphabet and States are ordered; their order drives display and
// projection order. Finals is a subset of States and may be empty.
// Transitions may leave any (state, symbol) pair undefined.
//
// A Spec is a value. Functions in this package never mutate one that was
// handed to them; editing flows produce fresh Specs via [Draft] and
// [Compile].
type Spec struct {
	Alphabet    []string      `json:"alphabet" toml:"alphabet" bson:"alphabet"`
	States      []string      `json:"states" toml:"states" bson:"states"`
	Initial     string        `json:"initial" toml:"initial" bson:"initial"`
	Finals      []string      `json:"finals" toml:"finals" bson:"finals"`
	Transitions TransitionMap `json:"transitionMap" toml:"transitions" bson:"transition_map"`
}

// Clone returns a deep copy of the spec.
func (s Spec) Clone() Spec {
	return Spec{
		Alphabet:    append([]string(nil), s.Alphabet...),
		States:      append([]string(nil), s.States...),
		Initial:     s.Initial,
		Finals:      append([]string(nil), s.Finals...),
		Transitions: s.Transitions.Clone(),
	}
}

// HasState reports whether id is a declared state.
func (s Spec) HasState(id string) bool {
	for _, st := range s.States {
		if st == id {
			return true
		}
	}
	return false
}

// HasSymbol reports whether sym is a declared alphabet symbol.
func (s Spec) HasSymbol(sym string) bool {
	for _, a := range s.Alphabet {
		if a == sym {
			return true
		}
	}
	return false
}

// IsFinal reports whether id is a final state.
func (s Spec) IsFinal(id string) bool {
	for _, f := range s.Finals {
		if f == id {
			return true
		}
	}
	return false
}

// Deterministic reports whether every (state, symbol) pair has at most one
// destination. This is a structural predicate used for display labeling; it
// performs no conversion.
func (s Spec) Deterministic() bool {
	for _, bySymbol := range s.Transitions {
		for _, dests := range bySymbol {
			if len(dests) > 1 {
				return false
			}
		}
	}
	return true
}

// Kind returns [KindDFA] if the spec is deterministic, [KindNFA] otherwise.
func (s Spec) Kind() string {
	if s.Deterministic() {
		return KindDFA
	}
	return KindNFA
}

// Normalize returns a copy with display-order cleanups applied: duplicate
// alphabet symbols and duplicate final states are dropped, keeping the first
// occurrence of each. State duplicates are left alone; those are a
// validation error, not a cleanup.
func (s Spec) Normalize() Spec {
	out := s.Clone()
	out.Alphabet = dedupe(out.Alphabet)
	out.Finals = dedupe(out.Finals)
	if out.Transitions == nil {
		out.Transitions = TransitionMap{}
	}
	return out
}

// dedupe removes duplicate entries, keeping first occurrences in order.
func dedupe(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := items[:0]
	for _, it := range items {
		if _, ok := seen[it]; ok {
			continue
		}
		seen[it] = struct{}{}
		out = append(out, it)
	}
	return out
}
