// Package session keeps a client's view of the catalog: the last fetched tree,
// optimistic local edits on top of it, and the gate state derived from it.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/fekuna/omnipos-catalog-service/internal/catalog/tree"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/pkg/logger"
	"go.uber.org/zap"
)

var (
	// ErrSuperseded is returned by Refresh when a newer Refresh started before this one finished.
	ErrSuperseded = errors.New("fetch superseded by a newer one")
	// ErrCrossScope is returned when a product is dropped onto a product of another category.
	ErrCrossScope = errors.New("products can only be reordered within one category")
)

// Backend is the remote catalog API the session talks to.
type Backend interface {
	FetchTree(ctx context.Context, includeUnavailable bool) (tree.Tree, error)
	PersistCategoryOrder(ctx context.Context, parentID string, orderedIDs []string) error
	PersistProductOrder(ctx context.Context, categoryID string, orderedIDs []string) error
	ToggleAvailability(ctx context.Context, productID string) (model.Product, error)
	MoveProduct(ctx context.Context, productID, categoryID string) (model.Product, error)
}

type Options struct {
	PrimaryLang        string
	IncludeUnavailable bool
}

type Session struct {
	backend Backend
	logger  logger.ZapLogger
	opts    Options

	mu       sync.Mutex
	snapshot tree.Tree
	gate     tree.GateState
	// version increases on every applied snapshot; rollbacks only happen when
	// the snapshot they would undo is still the current one.
	version     uint64
	fetchSeq    uint64
	cancelFetch context.CancelFunc
}

func New(backend Backend, log logger.ZapLogger, opts Options) *Session {
	s := &Session{
		backend: backend,
		logger:  log,
		opts:    opts,
	}
	s.gate = tree.ComputeGateState(s.snapshot)
	return s
}

// Snapshot returns the current tree. Callers may keep it; it is never mutated.
func (s *Session) Snapshot() tree.Tree {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot
}

func (s *Session) Gate() tree.GateState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gate
}

// Products lists products from the current snapshot.
func (s *Session) Products(scopeCategoryID, searchTerm, lang string) []tree.ListedProduct {
	return tree.ListProducts(s.Snapshot(), tree.Query{
		ScopeCategoryID: scopeCategoryID,
		SearchTerm:      searchTerm,
		Lang:            lang,
		PrimaryLang:     s.opts.PrimaryLang,
	})
}

// Refresh fetches the whole tree. Starting a Refresh cancels the one in flight,
// and a response that arrives after a newer Refresh started is dropped.
func (s *Session) Refresh(ctx context.Context) error {
	s.mu.Lock()
	if s.cancelFetch != nil {
		s.cancelFetch()
	}
	s.fetchSeq++
	seq := s.fetchSeq
	fctx, cancel := context.WithCancel(ctx)
	s.cancelFetch = cancel
	s.mu.Unlock()

	t, err := s.backend.FetchTree(fctx, s.opts.IncludeUnavailable)

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.fetchSeq {
		cancel()
		return ErrSuperseded
	}
	cancel()
	s.cancelFetch = nil
	if err != nil {
		s.logger.Error("failed to fetch catalog tree", zap.Error(err))
		return err
	}
	s.applyLocked(t)
	return nil
}

func (s *Session) applyLocked(t tree.Tree) uint64 {
	s.snapshot = t
	s.gate = tree.ComputeGateState(t)
	s.version++
	return s.version
}

// rollbackLocked restores prev if the snapshot applied at version is still current.
func (s *Session) rollbackLocked(version uint64, prev tree.Tree) bool {
	if s.version != version {
		return false
	}
	s.applyLocked(prev)
	return true
}

// revertOrderLocked undoes a failed reorder. When other edits were applied on
// top of the optimistic snapshot, only the scope order is put back, and only
// while the scope still shows the order that failed to persist.
func (s *Session) revertOrderLocked(version uint64, prev tree.Tree, current func(tree.Tree) ([]string, bool), reorder func(tree.Tree) (tree.Tree, error), failed []string) {
	if s.rollbackLocked(version, prev) {
		return
	}
	ids, ok := current(s.snapshot)
	if !ok || !equalIDs(ids, failed) {
		return
	}
	t, err := reorder(s.snapshot)
	if err != nil {
		s.logger.Warn("could not restore order after failed reorder", zap.Error(err))
		return
	}
	s.applyLocked(t)
}

// ReorderCategories moves movedID onto targetID's position among the children
// of parentID ("" for root categories).
func (s *Session) ReorderCategories(ctx context.Context, parentID, movedID, targetID string) error {
	s.mu.Lock()
	prev := s.snapshot
	ids, ok := prev.CategoryIDs(parentID)
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", tree.ErrUnknownScope, parentID)
	}
	newIDs, err := tree.ReorderSiblings(ids, movedID, targetID)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	if equalIDs(ids, newIDs) {
		s.mu.Unlock()
		return nil
	}
	next, err := prev.WithCategoryOrder(parentID, newIDs)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	version := s.applyLocked(next)
	s.mu.Unlock()

	if err := s.backend.PersistCategoryOrder(ctx, parentID, newIDs); err != nil {
		s.logger.Warn("category reorder failed, rolling back",
			zap.String("parent_id", parentID), zap.String("moved_id", movedID), zap.Error(err))
		s.mu.Lock()
		s.revertOrderLocked(version, prev,
			func(t tree.Tree) ([]string, bool) { return t.CategoryIDs(parentID) },
			func(t tree.Tree) (tree.Tree, error) { return t.WithCategoryOrder(parentID, ids) },
			newIDs)
		s.mu.Unlock()
		return err
	}
	return nil
}

// ReorderProducts moves movedID onto targetID's position. Both must belong to
// the same category; a cross-category drop changes nothing.
func (s *Session) ReorderProducts(ctx context.Context, movedID, targetID string) error {
	s.mu.Lock()
	prev := s.snapshot
	moved, ok := prev.Product(movedID)
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", tree.ErrUnknownSibling, movedID)
	}
	target, ok := prev.Product(targetID)
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", tree.ErrUnknownSibling, targetID)
	}
	if moved.CategoryID != target.CategoryID {
		s.mu.Unlock()
		return ErrCrossScope
	}
	categoryID := moved.CategoryID
	ids, _ := prev.ProductIDs(categoryID)
	newIDs, err := tree.ReorderSiblings(ids, movedID, targetID)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	if equalIDs(ids, newIDs) {
		s.mu.Unlock()
		return nil
	}
	next, err := prev.WithProductOrder(categoryID, newIDs)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	version := s.applyLocked(next)
	s.mu.Unlock()

	if err := s.backend.PersistProductOrder(ctx, categoryID, newIDs); err != nil {
		s.logger.Warn("product reorder failed, rolling back",
			zap.String("category_id", categoryID), zap.String("moved_id", movedID), zap.Error(err))
		s.mu.Lock()
		s.revertOrderLocked(version, prev,
			func(t tree.Tree) ([]string, bool) { return t.ProductIDs(categoryID) },
			func(t tree.Tree) (tree.Tree, error) { return t.WithProductOrder(categoryID, ids) },
			newIDs)
		s.mu.Unlock()
		return err
	}
	return nil
}

// ToggleAvailability flips the product locally, then replaces it with the
// server's copy. On failure the local flip is undone, keeping edits applied meanwhile.
func (s *Session) ToggleAvailability(ctx context.Context, productID string) (model.Product, error) {
	s.mu.Lock()
	prev := s.snapshot
	p, ok := prev.Product(productID)
	if !ok {
		s.mu.Unlock()
		return model.Product{}, fmt.Errorf("%w: %s", tree.ErrUnknownSibling, productID)
	}
	p.IsAvailable = !p.IsAvailable
	next, _ := prev.WithProduct(p)
	version := s.applyLocked(next)
	s.mu.Unlock()

	updated, err := s.backend.ToggleAvailability(ctx, productID)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.logger.Warn("availability toggle failed, rolling back", zap.String("product_id", productID), zap.Error(err))
		if !s.rollbackLocked(version, prev) {
			if cur, ok := s.snapshot.Product(productID); ok && cur.IsAvailable == p.IsAvailable {
				cur.IsAvailable = !p.IsAvailable
				if t, ok := s.snapshot.WithProduct(cur); ok {
					s.applyLocked(t)
				}
			}
		}
		return model.Product{}, err
	}
	if t, ok := s.snapshot.WithProduct(updated); ok {
		s.applyLocked(t)
	}
	return updated, nil
}

// MoveProduct is a structural write: the product changes category on the server
// and the tree is fetched again.
func (s *Session) MoveProduct(ctx context.Context, productID, categoryID string) (model.Product, error) {
	p, err := s.backend.MoveProduct(ctx, productID, categoryID)
	if err != nil {
		return model.Product{}, err
	}
	if err := s.Refresh(ctx); err != nil && !errors.Is(err, ErrSuperseded) {
		return p, err
	}
	return p, nil
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
