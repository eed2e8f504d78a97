// Package tree holds the read model of a merchant's catalog: root categories,
// their subcategories and the products attached at either level. A Tree is a
// snapshot. Every transformation returns a new Tree and leaves the receiver
// untouched, so a caller can keep the previous snapshot around for rollback.
package tree

import (
	"sort"

	"github.com/fekuna/omnipos-catalog-service/internal/model"
)

type Node struct {
	Category      model.Category  `json:"category"`
	Subcategories []Node          `json:"subcategories"`
	Products      []model.Product `json:"products"`
}

type Tree struct {
	Categories []Node `json:"categories"`
}

// Build composes the tree from flat rows. Only two levels exist: a category whose
// parent is itself a subcategory is dropped along with its products, and so are
// products whose category is unknown.
func Build(categories []model.Category, products []model.Product) Tree {
	byID := make(map[string]model.Category, len(categories))
	for _, c := range categories {
		byID[c.ID] = c
	}

	var roots []model.Category
	children := map[string][]model.Category{}
	for _, c := range categories {
		if c.IsRoot() {
			roots = append(roots, c)
			continue
		}
		parent, ok := byID[*c.ParentID]
		if !ok || !parent.IsRoot() {
			continue
		}
		children[parent.ID] = append(children[parent.ID], c)
	}

	productsByCat := map[string][]model.Product{}
	for _, p := range products {
		productsByCat[p.CategoryID] = append(productsByCat[p.CategoryID], p.Clone())
	}
	for _, list := range productsByCat {
		sortProducts(list)
	}

	sortCategories(roots)
	t := Tree{Categories: make([]Node, 0, len(roots))}
	for _, r := range roots {
		subs := children[r.ID]
		sortCategories(subs)
		node := Node{
			Category:      r,
			Subcategories: make([]Node, 0, len(subs)),
			Products:      nonNil(productsByCat[r.ID]),
		}
		for _, s := range subs {
			node.Subcategories = append(node.Subcategories, Node{
				Category:      s,
				Subcategories: []Node{},
				Products:      nonNil(productsByCat[s.ID]),
			})
		}
		t.Categories = append(t.Categories, node)
	}
	return t
}

func nonNil(p []model.Product) []model.Product {
	if p == nil {
		return []model.Product{}
	}
	return p
}

func sortCategories(c []model.Category) {
	sort.SliceStable(c, func(i, j int) bool {
		if c[i].SortOrder != c[j].SortOrder {
			return c[i].SortOrder < c[j].SortOrder
		}
		return c[i].ID < c[j].ID
	})
}

func sortProducts(p []model.Product) {
	sort.SliceStable(p, func(i, j int) bool {
		if p[i].SortOrder != p[j].SortOrder {
			return p[i].SortOrder < p[j].SortOrder
		}
		return p[i].ID < p[j].ID
	})
}

// Clone deep-copies the tree.
func (t Tree) Clone() Tree {
	out := Tree{Categories: make([]Node, len(t.Categories))}
	for i, n := range t.Categories {
		out.Categories[i] = n.clone()
	}
	return out
}

func (n Node) clone() Node {
	out := Node{Category: n.Category}
	if n.Category.Banners != nil {
		out.Category.Banners = append(n.Category.Banners[:0:0], n.Category.Banners...)
	}
	out.Subcategories = make([]Node, len(n.Subcategories))
	for i, s := range n.Subcategories {
		out.Subcategories[i] = s.clone()
	}
	out.Products = make([]model.Product, len(n.Products))
	for i := range n.Products {
		out.Products[i] = n.Products[i].Clone()
	}
	return out
}

// Find locates a root or a subcategory by id.
func (t Tree) Find(categoryID string) (Node, bool) {
	for _, r := range t.Categories {
		if r.Category.ID == categoryID {
			return r, true
		}
		for _, s := range r.Subcategories {
			if s.Category.ID == categoryID {
				return s, true
			}
		}
	}
	return Node{}, false
}

// Product returns the product with the given id, wherever it sits.
func (t Tree) Product(productID string) (model.Product, bool) {
	var found model.Product
	ok := false
	t.walk(func(n Node) bool {
		for _, p := range n.Products {
			if p.ID == productID {
				found, ok = p.Clone(), true
				return false
			}
		}
		return true
	})
	return found, ok
}

// CategoryIDs returns the ordered sibling ids under parentID ("" for roots).
// ok is false when parentID names no root category.
func (t Tree) CategoryIDs(parentID string) ([]string, bool) {
	if parentID == "" {
		ids := make([]string, len(t.Categories))
		for i, n := range t.Categories {
			ids[i] = n.Category.ID
		}
		return ids, true
	}
	for _, r := range t.Categories {
		if r.Category.ID == parentID {
			ids := make([]string, len(r.Subcategories))
			for i, s := range r.Subcategories {
				ids[i] = s.Category.ID
			}
			return ids, true
		}
	}
	return nil, false
}

// ProductIDs returns the ordered product ids directly attached to categoryID.
func (t Tree) ProductIDs(categoryID string) ([]string, bool) {
	n, ok := t.Find(categoryID)
	if !ok {
		return nil, false
	}
	ids := make([]string, len(n.Products))
	for i, p := range n.Products {
		ids[i] = p.ID
	}
	return ids, true
}

// ProductCount counts products at every level.
func (t Tree) ProductCount() int {
	count := 0
	t.walk(func(n Node) bool {
		count += len(n.Products)
		return true
	})
	return count
}

// walk visits roots and their subcategories in display order until fn returns false.
func (t Tree) walk(fn func(Node) bool) {
	for _, r := range t.Categories {
		if !fn(r) {
			return
		}
		for _, s := range r.Subcategories {
			if !fn(s) {
				return
			}
		}
	}
}
