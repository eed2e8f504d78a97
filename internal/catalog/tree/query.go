package tree

import (
	"strings"

	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"golang.org/x/text/cases"
)

type Query struct {
	// ScopeCategoryID limits the listing to one root (with its subcategories) or one subcategory.
	ScopeCategoryID string
	// SearchTerm filters by case-insensitive substring of the resolved product name.
	SearchTerm  string
	Lang        string
	PrimaryLang string
}

// ListedProduct is a product annotated with its owning category's display name.
type ListedProduct struct {
	model.Product
	CategoryName string `json:"category_name"`
}

// ListProducts flattens the tree in display order. Within a root, the root's own
// products come before those of its subcategories. An unknown scope yields an
// empty list.
func ListProducts(t Tree, q Query) []ListedProduct {
	out := []ListedProduct{}

	var nodes []Node
	if q.ScopeCategoryID == "" {
		for _, r := range t.Categories {
			nodes = append(nodes, r)
			nodes = append(nodes, r.Subcategories...)
		}
	} else {
		n, ok := t.Find(q.ScopeCategoryID)
		if !ok {
			return out
		}
		nodes = append(nodes, n)
		nodes = append(nodes, n.Subcategories...)
	}

	fold := cases.Fold()
	term := fold.String(strings.TrimSpace(q.SearchTerm))

	for _, n := range nodes {
		catName := n.Category.Name.Resolve(q.Lang, q.PrimaryLang)
		for _, p := range n.Products {
			if term != "" {
				name := fold.String(p.Name.Resolve(q.Lang, q.PrimaryLang))
				if !strings.Contains(name, term) {
					continue
				}
			}
			out = append(out, ListedProduct{Product: p.Clone(), CategoryName: catName})
		}
	}
	return out
}

// WithProduct replaces the stored copy of p (matched by id) and returns the new tree.
// ok is false when the product is not in the tree.
func (t Tree) WithProduct(p model.Product) (Tree, bool) {
	if _, ok := t.Product(p.ID); !ok {
		return t, false
	}
	out := t.Clone()
	for i := range out.Categories {
		replaceProduct(&out.Categories[i], p)
		for j := range out.Categories[i].Subcategories {
			replaceProduct(&out.Categories[i].Subcategories[j], p)
		}
	}
	return out, true
}

func replaceProduct(n *Node, p model.Product) {
	for i := range n.Products {
		if n.Products[i].ID == p.ID {
			n.Products[i] = p.Clone()
		}
	}
}
