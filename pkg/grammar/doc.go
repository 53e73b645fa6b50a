// Package grammar holds right-linear grammar results returned by the
// conversion service and renders them for display.
//
// A grammar arrives as a JSON object mapping each nonterminal (a state
// identifier) to an ordered list of right-hand sides. Both orders are
// display contracts, so [Result] preserves them through decode, transform,
// and re-encode instead of collapsing into a Go map.
//
// [Rules] flattens a result into one {LHS, RHS} pair per right-hand side;
// [RenderText] produces the conventional one-rule-per-line arrow listing:
//
//	q0 -> a
//	q0 -> aq1
//	q1 -> b
//
// Right-hand sides are rendered verbatim, including the service's "&"
// epsilon marker.
package grammar
