package repository

import (
	"context"
	"sort"
	"time"

	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/product/dto"
	"github.com/fekuna/omnipos-catalog-service/internal/storage/memstore"
)

// MemoryRepository implements product.Repository on a memstore.Store.
type MemoryRepository struct {
	store *memstore.Store
}

func NewMemoryRepository(store *memstore.Store) *MemoryRepository {
	return &MemoryRepository{store: store}
}

func (r *MemoryRepository) Create(_ context.Context, p *model.Product) error {
	return r.store.Write(func(tx *memstore.Tx) error {
		p.SortOrder = nextSortOrder(tx, p.MerchantID, p.CategoryID)
		tx.Products[p.ID] = p.Clone()
		return nil
	})
}

func (r *MemoryRepository) FindByID(_ context.Context, merchantID, id string) (*model.Product, error) {
	var found *model.Product
	err := r.store.Read(func(tx *memstore.Tx) error {
		if p, ok := tx.Products[id]; ok && p.MerchantID == merchantID {
			c := p.Clone()
			found = &c
		}
		return nil
	})
	return found, err
}

func (r *MemoryRepository) FindAll(_ context.Context, f *dto.ProductFilters) ([]model.Product, int, error) {
	out := []model.Product{}
	err := r.store.Read(func(tx *memstore.Tx) error {
		for _, p := range tx.Products {
			if p.MerchantID != f.MerchantID {
				continue
			}
			if f.CategoryID != "" && p.CategoryID != f.CategoryID {
				continue
			}
			if !f.IncludeUnavailable && !p.IsAvailable {
				continue
			}
			out = append(out, p.Clone())
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].CategoryID != out[j].CategoryID {
			return out[i].CategoryID < out[j].CategoryID
		}
		if out[i].SortOrder != out[j].SortOrder {
			return out[i].SortOrder < out[j].SortOrder
		}
		return out[i].ID < out[j].ID
	})
	total := len(out)
	if f.PageSize > 0 {
		start := (max(f.Page, 1) - 1) * f.PageSize
		if start >= total {
			return []model.Product{}, total, err
		}
		out = out[start:min(start+f.PageSize, total)]
	}
	return out, total, err
}

func (r *MemoryRepository) Update(_ context.Context, p *model.Product) error {
	return r.store.Write(func(tx *memstore.Tx) error {
		old, ok := tx.Products[p.ID]
		if !ok || old.MerchantID != p.MerchantID {
			return nil
		}
		p.SortOrder = old.SortOrder
		if old.CategoryID != p.CategoryID {
			p.SortOrder = nextSortOrder(tx, p.MerchantID, p.CategoryID)
		}
		updated := p.Clone()
		updated.IsAvailable = old.IsAvailable
		tx.Products[p.ID] = updated
		return nil
	})
}

func (r *MemoryRepository) Delete(_ context.Context, merchantID, id string) (bool, error) {
	deleted := false
	err := r.store.Write(func(tx *memstore.Tx) error {
		if p, ok := tx.Products[id]; ok && p.MerchantID == merchantID {
			delete(tx.Products, id)
			deleted = true
		}
		return nil
	})
	return deleted, err
}

func (r *MemoryRepository) ToggleAvailability(_ context.Context, merchantID, id string) (*model.Product, error) {
	return r.updateAvailability(merchantID, id, func(current bool) bool { return !current })
}

func (r *MemoryRepository) SetAvailability(_ context.Context, merchantID, id string, available bool) (*model.Product, error) {
	return r.updateAvailability(merchantID, id, func(bool) bool { return available })
}

func (r *MemoryRepository) updateAvailability(merchantID, id string, next func(bool) bool) (*model.Product, error) {
	var out *model.Product
	err := r.store.Write(func(tx *memstore.Tx) error {
		p, ok := tx.Products[id]
		if !ok || p.MerchantID != merchantID {
			return nil
		}
		p.IsAvailable = next(p.IsAvailable)
		p.UpdatedAt = time.Now()
		tx.Products[id] = p
		c := p.Clone()
		out = &c
		return nil
	})
	return out, err
}

func nextSortOrder(tx *memstore.Tx, merchantID, categoryID string) int {
	next := 0
	for _, p := range tx.Products {
		if p.MerchantID == merchantID && p.CategoryID == categoryID && p.SortOrder >= next {
			next = p.SortOrder + 1
		}
	}
	return next
}

func (r *MemoryRepository) ReplaceOrder(_ context.Context, merchantID, categoryID string, orderedIDs []string) error {
	return r.store.Write(func(tx *memstore.Tx) error {
		var current []string
		for _, p := range tx.Products {
			if p.MerchantID == merchantID && p.CategoryID == categoryID {
				current = append(current, p.ID)
			}
		}
		if !sameIDs(current, orderedIDs) {
			return model.ErrOrderMismatch
		}
		for i, id := range orderedIDs {
			p := tx.Products[id]
			p.SortOrder = i
			tx.Products[id] = p
		}
		return nil
	})
}

func (r *MemoryRepository) Move(_ context.Context, merchantID, id, categoryID string) (int, error) {
	next := 0
	err := r.store.Write(func(tx *memstore.Tx) error {
		p, ok := tx.Products[id]
		if !ok || p.MerchantID != merchantID {
			return nil
		}
		next = nextSortOrder(tx, merchantID, categoryID)
		p.CategoryID = categoryID
		p.SortOrder = next
		p.UpdatedAt = time.Now()
		tx.Products[id] = p
		return nil
	})
	return next, err
}
