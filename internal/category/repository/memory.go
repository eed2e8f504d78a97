package repository

import (
	"context"
	"sort"

	"github.com/fekuna/omnipos-catalog-service/internal/category/dto"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/storage/memstore"
)

// MemoryRepository implements category.Repository on a memstore.Store.
type MemoryRepository struct {
	store *memstore.Store
}

func NewMemoryRepository(store *memstore.Store) *MemoryRepository {
	return &MemoryRepository{store: store}
}

func (r *MemoryRepository) Create(_ context.Context, c *model.Category, at *int) error {
	return r.store.Write(func(tx *memstore.Tx) error {
		if at != nil {
			for id, sib := range tx.Categories {
				if isSibling(sib, c.MerchantID, c.ParentID) && sib.SortOrder >= *at {
					sib.SortOrder++
					tx.Categories[id] = sib
				}
			}
			c.SortOrder = *at
		} else {
			c.SortOrder = nextSortOrder(tx, c.MerchantID, c.ParentID)
		}
		tx.Categories[c.ID] = *c
		return nil
	})
}

func (r *MemoryRepository) FindByID(_ context.Context, merchantID, id string) (*model.Category, error) {
	var found *model.Category
	err := r.store.Read(func(tx *memstore.Tx) error {
		if c, ok := tx.Categories[id]; ok && c.MerchantID == merchantID {
			found = &c
		}
		return nil
	})
	return found, err
}

func (r *MemoryRepository) FindAll(_ context.Context, f *dto.CategoryFilters) ([]model.Category, int, error) {
	var out []model.Category
	err := r.store.Read(func(tx *memstore.Tx) error {
		for _, c := range tx.Categories {
			if c.MerchantID != f.MerchantID {
				continue
			}
			if f.ParentID != nil && c.ParentKey() != *f.ParentID {
				continue
			}
			out = append(out, c)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].IsRoot() != out[j].IsRoot() {
			return out[i].IsRoot()
		}
		if out[i].SortOrder != out[j].SortOrder {
			return out[i].SortOrder < out[j].SortOrder
		}
		return out[i].ID < out[j].ID
	})
	total := len(out)
	if f.PageSize > 0 {
		start := (max(f.Page, 1) - 1) * f.PageSize
		end := min(start+f.PageSize, total)
		if start >= total {
			return []model.Category{}, total, err
		}
		out = out[start:end]
	}
	return out, total, err
}

func (r *MemoryRepository) Update(_ context.Context, c *model.Category) error {
	return r.store.Write(func(tx *memstore.Tx) error {
		old, ok := tx.Categories[c.ID]
		if !ok || old.MerchantID != c.MerchantID {
			return nil
		}
		c.SortOrder = old.SortOrder
		if old.ParentKey() != parentKey(c.ParentID) {
			c.SortOrder = nextSortOrder(tx, c.MerchantID, c.ParentID)
		}
		tx.Categories[c.ID] = *c
		return nil
	})
}

func (r *MemoryRepository) CountContents(_ context.Context, merchantID, id string) (int, int, error) {
	subs, products := 0, 0
	err := r.store.Read(func(tx *memstore.Tx) error {
		scope := map[string]bool{id: true}
		for _, c := range tx.Categories {
			if c.MerchantID == merchantID && c.ParentKey() == id {
				subs++
				scope[c.ID] = true
			}
		}
		for _, p := range tx.Products {
			if p.MerchantID == merchantID && scope[p.CategoryID] {
				products++
			}
		}
		return nil
	})
	return subs, products, err
}

func (r *MemoryRepository) DeleteCascade(_ context.Context, merchantID, id string) (*dto.DeleteResult, error) {
	result := &dto.DeleteResult{}
	err := r.store.Write(func(tx *memstore.Tx) error {
		for _, c := range tx.Categories {
			if c.MerchantID == merchantID && (c.ID == id || c.ParentKey() == id) {
				result.CategoryIDs = append(result.CategoryIDs, c.ID)
			}
		}
		scope := map[string]bool{}
		for _, cid := range result.CategoryIDs {
			scope[cid] = true
			delete(tx.Categories, cid)
		}
		for pid, p := range tx.Products {
			if p.MerchantID == merchantID && scope[p.CategoryID] {
				result.ProductIDs = append(result.ProductIDs, pid)
				delete(tx.Products, pid)
			}
		}
		return nil
	})
	sort.Strings(result.CategoryIDs)
	sort.Strings(result.ProductIDs)
	return result, err
}

func nextSortOrder(tx *memstore.Tx, merchantID string, parentID *string) int {
	next := 0
	for _, c := range tx.Categories {
		if isSibling(c, merchantID, parentID) && c.SortOrder >= next {
			next = c.SortOrder + 1
		}
	}
	return next
}

func isSibling(c model.Category, merchantID string, parentID *string) bool {
	return c.MerchantID == merchantID && c.ParentKey() == parentKey(parentID)
}

func (r *MemoryRepository) ListSiblingIDs(_ context.Context, merchantID string, parentID *string) ([]string, error) {
	var siblings []model.Category
	err := r.store.Read(func(tx *memstore.Tx) error {
		for _, c := range tx.Categories {
			if c.MerchantID == merchantID && c.ParentKey() == parentKey(parentID) {
				siblings = append(siblings, c)
			}
		}
		return nil
	})
	sort.Slice(siblings, func(i, j int) bool {
		if siblings[i].SortOrder != siblings[j].SortOrder {
			return siblings[i].SortOrder < siblings[j].SortOrder
		}
		return siblings[i].ID < siblings[j].ID
	})
	ids := make([]string, len(siblings))
	for i, c := range siblings {
		ids[i] = c.ID
	}
	return ids, err
}

func (r *MemoryRepository) ReplaceOrder(_ context.Context, merchantID string, parentID *string, orderedIDs []string) error {
	return r.store.Write(func(tx *memstore.Tx) error {
		var current []string
		for _, c := range tx.Categories {
			if c.MerchantID == merchantID && c.ParentKey() == parentKey(parentID) {
				current = append(current, c.ID)
			}
		}
		if !sameIDs(current, orderedIDs) {
			return model.ErrOrderMismatch
		}
		for i, id := range orderedIDs {
			c := tx.Categories[id]
			c.SortOrder = i
			tx.Categories[id] = c
		}
		return nil
	})
}

func parentKey(parentID *string) string {
	if parentID == nil {
		return ""
	}
	return *parentID
}
