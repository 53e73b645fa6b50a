package store

import (
	"context"
	"sort"
	"sync"

	"github.com/nfalab/machina/pkg/automaton"
)

// MemoryStore keeps documents in a map. It is the default backend and the
// one tests use.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string]Document
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string]Document)}
}

func (s *MemoryStore) Save(_ context.Context, name string, spec automaton.Spec) (Document, error) {
	doc, err := newDocument(name, spec)
	if err != nil {
		return Document{}, err
	}

	stored := doc
	stored.Spec = doc.Spec.Clone()

	s.mu.Lock()
	s.docs[doc.ID] = stored
	s.mu.Unlock()
	return doc, nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (Document, error) {
	s.mu.RLock()
	doc, ok := s.docs[id]
	s.mu.RUnlock()

	if !ok {
		return Document{}, ErrNotFound
	}
	doc.Spec = doc.Spec.Clone()
	return doc, nil
}

func (s *MemoryStore) List(_ context.Context) ([]Document, error) {
	s.mu.RLock()
	out := make([]Document, 0, len(s.docs))
	for _, doc := range s.docs {
		doc.Spec = doc.Spec.Clone()
		out = append(out, doc)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.docs[id]; !ok {
		return ErrNotFound
	}
	delete(s.docs, id)
	return nil
}

func (s *MemoryStore) Close(context.Context) error { return nil }

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)
