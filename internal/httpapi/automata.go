package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nfalab/machina/pkg/automaton"
	"github.com/nfalab/machina/pkg/errors"
	"github.com/nfalab/machina/pkg/grammar"
	"github.com/nfalab/machina/pkg/graph"
	"github.com/nfalab/machina/pkg/pipeline"
	"github.com/nfalab/machina/pkg/workbench"
)

// automatonRequest carries the automaton for a stateless call, either as
// the raw editor text (draft) or as a structured spec. Exactly one must be
// present.
type automatonRequest struct {
	Draft *automaton.Draft `json:"draft,omitempty"`
	Spec  *automaton.Spec  `json:"spec,omitempty"`
}

// resolve compiles or validates the request into a normalized spec.
func (req automatonRequest) resolve() (automaton.Spec, error) {
	switch {
	case req.Draft != nil && req.Spec != nil:
		return automaton.Spec{}, errors.New(errors.ErrCodeInvalidInput, "provide either draft or spec, not both")
	case req.Draft != nil:
		return automaton.Compile(*req.Draft)
	case req.Spec != nil:
		spec := req.Spec.Normalize()
		if err := automaton.Validate(spec); err != nil {
			return automaton.Spec{}, err
		}
		return spec, nil
	default:
		return automaton.Spec{}, errors.New(errors.ErrCodeInvalidInput, "request must include a draft or a spec")
	}
}

type validateResponse struct {
	Spec automaton.Spec `json:"spec"`
	Kind string         `json:"kind"`
}

// handleValidate compiles the submitted automaton and returns its
// normalized form, or the first validation error found.
func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req automatonRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	spec, err := req.resolve()
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, validateResponse{Spec: spec, Kind: spec.Kind()})
}

type graphResponse struct {
	Graph graph.Graph `json:"graph"`
}

// handleGraph projects the automaton into its node/edge display form.
func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	var req automatonRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	spec, err := req.resolve()
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, graphResponse{Graph: graph.Project(spec)})
}

type renderRequest struct {
	automatonRequest
	Title   string   `json:"title,omitempty"`
	Formats []string `json:"formats,omitempty"`
	Refresh bool     `json:"refresh,omitempty"`
}

type renderResponse struct {
	Spec      automaton.Spec    `json:"spec"`
	GraphHash string            `json:"graphHash"`
	Artifacts map[string][]byte `json:"artifacts"`
	Stats     renderStats       `json:"stats"`
	Cache     renderCache       `json:"cache"`
}

type renderStats struct {
	StateCount    int   `json:"stateCount"`
	NodeCount     int   `json:"nodeCount"`
	EdgeCount     int   `json:"edgeCount"`
	CompileMillis int64 `json:"compileMillis"`
	ProjectMillis int64 `json:"projectMillis"`
	RenderMillis  int64 `json:"renderMillis"`
}

type renderCache struct {
	ProjectHit bool `json:"projectHit"`
	RenderHit  bool `json:"renderHit"`
}

// handleRender runs the full pipeline and returns the rendered artifacts.
// Binary formats arrive base64-encoded by JSON's []byte convention.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var req renderRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	spec, err := req.resolve()
	if err != nil {
		writeError(w, err)
		return
	}

	result, err := s.runner.Execute(r.Context(), pipeline.Options{
		Spec:    &spec,
		Title:   req.Title,
		Formats: req.Formats,
		Refresh: req.Refresh,
		Logger:  s.logger,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, renderResponse{
		Spec:      result.Spec,
		GraphHash: result.GraphHash,
		Artifacts: result.Artifacts,
		Stats: renderStats{
			StateCount:    result.Stats.StateCount,
			NodeCount:     result.Stats.NodeCount,
			EdgeCount:     result.Stats.EdgeCount,
			CompileMillis: result.Stats.CompileTime.Milliseconds(),
			ProjectMillis: result.Stats.ProjectTime.Milliseconds(),
			RenderMillis:  result.Stats.RenderTime.Milliseconds(),
		},
		Cache: renderCache{
			ProjectHit: result.CacheInfo.ProjectHit,
			RenderHit:  result.CacheInfo.RenderHit,
		},
	})
}

type convertResponse struct {
	DFA     *automaton.Spec `json:"dfa,omitempty"`
	Grammar *grammar.Result `json:"grammar,omitempty"`
}

// handleConvert proxies one conversion round-trip to the remote service.
// Requests are attempted exactly once; clients resubmit if they want a
// fresh attempt.
func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	op := workbench.Op(chi.URLParam(r, "op"))
	if !workbench.ValidOp(op) {
		writeError(w, errors.New(errors.ErrCodeInvalidInput, "invalid operation %q (must be one of: dfa, grammar)", string(op)))
		return
	}

	var req automatonRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	spec, err := req.resolve()
	if err != nil {
		writeError(w, err)
		return
	}

	switch op {
	case workbench.OpDFA:
		dfa, err := s.converter.ToDFA(r.Context(), spec)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, convertResponse{DFA: &dfa})
	case workbench.OpGrammar:
		res, err := s.converter.ToGrammar(r.Context(), spec)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, convertResponse{Grammar: &res})
	}
}
