package repository

import (
	"context"
	"sort"

	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/storage/memstore"
)

// MemoryRepository implements modifier.Repository on a memstore.Store.
type MemoryRepository struct {
	store *memstore.Store
}

func NewMemoryRepository(store *memstore.Store) *MemoryRepository {
	return &MemoryRepository{store: store}
}

func (r *MemoryRepository) Create(_ context.Context, g *model.ModifierGroup) error {
	return r.store.Write(func(tx *memstore.Tx) error {
		tx.ModifierGroups[g.ID] = g.Clone()
		return nil
	})
}

func (r *MemoryRepository) FindByID(_ context.Context, merchantID, id string) (*model.ModifierGroup, error) {
	var found *model.ModifierGroup
	err := r.store.Read(func(tx *memstore.Tx) error {
		if g, ok := tx.ModifierGroups[id]; ok && g.MerchantID == merchantID {
			c := g.Clone()
			found = &c
		}
		return nil
	})
	return found, err
}

func (r *MemoryRepository) FindByIDs(_ context.Context, merchantID string, ids []string) ([]model.ModifierGroup, error) {
	groups := []model.ModifierGroup{}
	err := r.store.Read(func(tx *memstore.Tx) error {
		for _, id := range ids {
			if g, ok := tx.ModifierGroups[id]; ok && g.MerchantID == merchantID {
				groups = append(groups, g.Clone())
			}
		}
		return nil
	})
	return groups, err
}

func (r *MemoryRepository) FindAll(_ context.Context, merchantID string) ([]model.ModifierGroup, error) {
	groups := []model.ModifierGroup{}
	err := r.store.Read(func(tx *memstore.Tx) error {
		for _, g := range tx.ModifierGroups {
			if g.MerchantID == merchantID {
				groups = append(groups, g.Clone())
			}
		}
		return nil
	})
	sort.Slice(groups, func(i, j int) bool {
		if !groups[i].CreatedAt.Equal(groups[j].CreatedAt) {
			return groups[i].CreatedAt.Before(groups[j].CreatedAt)
		}
		return groups[i].ID < groups[j].ID
	})
	return groups, err
}

func (r *MemoryRepository) Update(_ context.Context, g *model.ModifierGroup) error {
	return r.store.Write(func(tx *memstore.Tx) error {
		if old, ok := tx.ModifierGroups[g.ID]; ok && old.MerchantID == g.MerchantID {
			tx.ModifierGroups[g.ID] = g.Clone()
		}
		return nil
	})
}

func (r *MemoryRepository) Delete(_ context.Context, merchantID, id string) (bool, int, error) {
	found, detached := false, 0
	err := r.store.Write(func(tx *memstore.Tx) error {
		g, ok := tx.ModifierGroups[id]
		if !ok || g.MerchantID != merchantID {
			return nil
		}
		found = true
		for pid, p := range tx.Products {
			kept := p.ModifierGroupIDs[:0:0]
			for _, gid := range p.ModifierGroupIDs {
				if gid != id {
					kept = append(kept, gid)
				}
			}
			if len(kept) != len(p.ModifierGroupIDs) {
				p.ModifierGroupIDs = kept
				tx.Products[pid] = p
				detached++
			}
		}
		delete(tx.ModifierGroups, id)
		return nil
	})
	return found, detached, err
}
