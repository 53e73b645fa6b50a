// Package store persists named automata as shareable documents.
//
// A document is a saved automaton specification with a stable UUID, so it
// can be fetched again later or linked to someone else. Two backends
// implement the Store interface: an in-memory map for the default server
// mode and tests, and MongoDB for deployments that need documents to
// survive restarts.
package store

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nfalab/machina/pkg/automaton"
)

// ErrNotFound is returned when no document has the requested ID.
var ErrNotFound = errors.New("document not found")

// Document is one saved automaton.
type Document struct {
	ID   string `json:"id" bson:"_id"`
	Name string `json:"name" bson:"name"`

	// Kind is the display label of the spec at save time, DFA or NFA.
	Kind string `json:"kind" bson:"kind"`

	Spec      automaton.Spec `json:"spec" bson:"spec"`
	CreatedAt time.Time      `json:"createdAt" bson:"created_at"`
}

// Store is a document backend. Implementations are safe for concurrent use.
type Store interface {
	// Save stores spec under name and returns the stored document with its
	// assigned ID.
	Save(ctx context.Context, name string, spec automaton.Spec) (Document, error)

	// Get fetches a document by ID. Returns ErrNotFound if it does not exist.
	Get(ctx context.Context, id string) (Document, error)

	// List returns all documents, newest first.
	List(ctx context.Context) ([]Document, error)

	// Delete removes a document. Returns ErrNotFound if it does not exist.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}

// newDocument builds a Document with a fresh UUID and timestamp. The spec is
// cloned so later edits by the caller cannot change what was saved.
func newDocument(name string, spec automaton.Spec) (Document, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Document{}, errors.New("document name is required")
	}
	id, err := uuid.NewRandom()
	if err != nil {
		return Document{}, err
	}
	return Document{
		ID:        id.String(),
		Name:      name,
		Kind:      spec.Kind(),
		Spec:      spec.Clone(),
		CreatedAt: time.Now().UTC(),
	}, nil
}
