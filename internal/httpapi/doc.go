// Package httpapi exposes the automaton workbench over HTTP.
//
// The API plays the role a browser UI would otherwise fill: stateless
// endpoints compile, project, render, and convert a submitted automaton in
// one round-trip, while session endpoints hold a live workbench per client
// so edits and conversion submissions behave exactly as they do in the
// interactive editor. Document endpoints persist named automata in the
// configured store.
//
// All request and response bodies are JSON. Errors use a single envelope,
//
//	{"error": {"code": "...", "message": "..."}}
//
// with the code drawn from pkg/errors and the HTTP status derived from it.
package httpapi
