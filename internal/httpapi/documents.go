package httpapi

import (
	stderrors "errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/nfalab/machina/pkg/errors"
	"github.com/nfalab/machina/pkg/store"
)

type documentSaveRequest struct {
	automatonRequest
	Name string `json:"name"`
}

type documentListResponse struct {
	Documents []store.Document `json:"documents"`
}

// handleDocumentSave validates and persists an automaton under a name.
// Only valid automata are stored; a draft that does not compile is
// rejected, not saved broken.
func (s *Server) handleDocumentSave(w http.ResponseWriter, r *http.Request) {
	var req documentSaveRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeError(w, errors.New(errors.ErrCodeInvalidInput, "document name is required"))
		return
	}

	spec, err := req.resolve()
	if err != nil {
		writeError(w, err)
		return
	}

	doc, err := s.store.Save(r.Context(), req.Name, spec)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, doc)
}

func (s *Server) handleDocumentList(w http.ResponseWriter, r *http.Request) {
	docs, err := s.store.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if docs == nil {
		docs = []store.Document{}
	}
	writeJSON(w, http.StatusOK, documentListResponse{Documents: docs})
}

func (s *Server) handleDocumentGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "documentID")

	doc, err := s.store.Get(r.Context(), id)
	if err != nil {
		writeError(w, wrapDocumentErr(err, id))
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (s *Server) handleDocumentDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "documentID")

	if err := s.store.Delete(r.Context(), id); err != nil {
		writeError(w, wrapDocumentErr(err, id))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func wrapDocumentErr(err error, id string) error {
	if stderrors.Is(err, store.ErrNotFound) {
		return errors.Wrap(errors.ErrCodeDocumentNotFound, err, "document %s", id)
	}
	return err
}
