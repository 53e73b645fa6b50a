package httpapi

import (
	"context"
	stderrors "errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/nfalab/machina/pkg/automaton"
	"github.com/nfalab/machina/pkg/errors"
	"github.com/nfalab/machina/pkg/session"
	"github.com/nfalab/machina/pkg/workbench"
)

type sessionResponse struct {
	ID        string          `json:"id"`
	CreatedAt time.Time       `json:"createdAt"`
	ExpiresAt time.Time       `json:"expiresAt"`
	State     workbench.State `json:"state"`
}

func sessionPayload(sess *session.Session) sessionResponse {
	return sessionResponse{
		ID:        sess.ID,
		CreatedAt: sess.CreatedAt,
		ExpiresAt: sess.ExpiresAt(),
		State:     sess.Workbench.Snapshot(),
	}
}

// session resolves the {sessionID} route parameter. Expired sessions are
// indistinguishable from missing ones to clients: both are gone.
func (s *Server) session(r *http.Request) (*session.Session, error) {
	id := chi.URLParam(r, "sessionID")
	sess, err := s.sessions.Get(id)
	if err != nil {
		if stderrors.Is(err, session.ErrNotFound) || stderrors.Is(err, session.ErrExpired) {
			return nil, errors.Wrap(errors.ErrCodeSessionNotFound, err, "session %s", id)
		}
		return nil, err
	}
	return sess, nil
}

type sessionCreateRequest struct {
	Draft *automaton.Draft `json:"draft,omitempty"`
}

// handleSessionCreate opens a workbench session. The body is optional; an
// empty one starts from a blank draft.
func (s *Server) handleSessionCreate(w http.ResponseWriter, r *http.Request) {
	var req sessionCreateRequest
	if err := decodeBody(r, &req); err != nil && !stderrors.Is(err, io.EOF) {
		writeError(w, err)
		return
	}

	var draft automaton.Draft
	if req.Draft != nil {
		draft = *req.Draft
	}

	sess, err := s.sessions.Create(draft)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, sessionPayload(sess))
}

// handleSessionGet returns a point-in-time snapshot of the session state.
// Clients poll this to observe submission progress.
func (s *Server) handleSessionGet(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionPayload(sess))
}

func (s *Server) handleSessionDelete(w http.ResponseWriter, r *http.Request) {
	s.sessions.Delete(chi.URLParam(r, "sessionID"))
	w.WriteHeader(http.StatusNoContent)
}

type fieldEdit struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

type sessionEditRequest struct {
	Edits []fieldEdit      `json:"edits,omitempty"`
	Draft *automaton.Draft `json:"draft,omitempty"`
}

// handleSessionEdit applies field edits, or replaces the whole draft, in
// the order given. The response carries the state after the last edit.
func (s *Server) handleSessionEdit(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req sessionEditRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	if req.Draft != nil && len(req.Edits) > 0 {
		writeError(w, errors.New(errors.ErrCodeInvalidInput, "provide either edits or draft, not both"))
		return
	}
	if req.Draft == nil && len(req.Edits) == 0 {
		writeError(w, errors.New(errors.ErrCodeInvalidInput, "request must include edits or a draft"))
		return
	}

	events := make([]workbench.Event, 0, len(req.Edits)+1)
	if req.Draft != nil {
		events = append(events, workbench.SetDraft{Draft: *req.Draft})
	}
	for _, edit := range req.Edits {
		field := automaton.Field(edit.Field)
		if !automaton.ValidField(field) {
			writeError(w, errors.New(errors.ErrCodeInvalidInput,
				"invalid field %q (must be one of: alphabet, states, initial, finals, transitions)", edit.Field))
			return
		}
		events = append(events, workbench.EditField{Field: field, Value: edit.Value})
	}

	for _, ev := range events {
		if err := sess.Workbench.Dispatch(ev); err != nil {
			writeError(w, errors.Wrap(errors.ErrCodeSessionNotFound, err, "session %s", sess.ID))
			return
		}
	}

	writeJSON(w, http.StatusOK, sessionPayload(sess))
}

type sessionSubmitRequest struct {
	Op workbench.Op `json:"op"`
}

type sessionSubmitResponse struct {
	Submission uint64          `json:"submission"`
	State      workbench.State `json:"state"`
}

// handleSessionSubmit starts a conversion for the session's current draft.
// The round-trip continues after this request returns; clients poll the
// session snapshot for the outcome. Stale completions from superseded
// submissions never surface.
func (s *Server) handleSessionSubmit(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req sessionSubmitRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if !workbench.ValidOp(req.Op) {
		writeError(w, errors.New(errors.ErrCodeInvalidInput, "invalid operation %q (must be one of: dfa, grammar)", string(req.Op)))
		return
	}

	// The conversion must outlive this request, clients poll for it.
	id, err := sess.Workbench.Submit(context.WithoutCancel(r.Context()), req.Op)
	if err != nil {
		if stderrors.Is(err, workbench.ErrClosed) {
			writeError(w, errors.Wrap(errors.ErrCodeSessionNotFound, err, "session %s", sess.ID))
			return
		}
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusAccepted, sessionSubmitResponse{
		Submission: id,
		State:      sess.Workbench.Snapshot(),
	})
}
