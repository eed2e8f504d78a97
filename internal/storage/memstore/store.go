// Package memstore is an in-process catalog store used by the memory repositories.
// All access is serialized; Write gives transaction semantics by restoring a copy
// of the data when the callback fails.
package memstore

import (
	"sync"

	"github.com/fekuna/omnipos-catalog-service/internal/model"
)

// Tx exposes the tables to a Read or Write callback. Read callbacks must not mutate it.
type Tx struct {
	Categories     map[string]model.Category
	Products       map[string]model.Product
	ModifierGroups map[string]model.ModifierGroup
}

type Store struct {
	mu       sync.RWMutex
	data     Tx
	writeErr error
}

func New() *Store {
	return &Store{data: Tx{
		Categories:     map[string]model.Category{},
		Products:       map[string]model.Product{},
		ModifierGroups: map[string]model.ModifierGroup{},
	}}
}

func (s *Store) Read(fn func(tx *Tx) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(&s.data)
}

func (s *Store) Write(fn func(tx *Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.writeErr; err != nil {
		s.writeErr = nil
		return err
	}
	backup := s.data.clone()
	if err := fn(&s.data); err != nil {
		s.data = backup
		return err
	}
	return nil
}

// FailNextWrite makes the next Write return err without running its callback.
func (s *Store) FailNextWrite(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writeErr = err
}

func (tx *Tx) clone() Tx {
	out := Tx{
		Categories:     make(map[string]model.Category, len(tx.Categories)),
		Products:       make(map[string]model.Product, len(tx.Products)),
		ModifierGroups: make(map[string]model.ModifierGroup, len(tx.ModifierGroups)),
	}
	for k, v := range tx.Categories {
		v.Banners = append(v.Banners[:0:0], v.Banners...)
		out.Categories[k] = v
	}
	for k, v := range tx.Products {
		out.Products[k] = v.Clone()
	}
	for k, v := range tx.ModifierGroups {
		out.ModifierGroups[k] = v.Clone()
	}
	return out
}
