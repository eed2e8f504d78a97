package tree

import (
	"errors"
	"fmt"

	"github.com/fekuna/omnipos-catalog-service/internal/model"
)

var (
	// ErrUnknownSibling is returned when a moved or target id is not in the sibling list.
	ErrUnknownSibling = errors.New("id is not part of the sibling set")
	// ErrNotPermutation is returned when a proposed order is not exactly the current sibling set.
	ErrNotPermutation = errors.New("order must list every sibling exactly once")
	// ErrUnknownScope is returned when the parent or category of a reorder does not exist.
	ErrUnknownScope = errors.New("unknown sibling scope")
)

// ReorderSiblings moves movedID to the index targetID occupied and shifts the
// elements in between. The input slice is never modified.
func ReorderSiblings(ids []string, movedID, targetID string) ([]string, error) {
	from, to := -1, -1
	for i, id := range ids {
		if id == movedID {
			from = i
		}
		if id == targetID {
			to = i
		}
	}
	out := append([]string(nil), ids...)
	if from < 0 {
		return out, fmt.Errorf("%w: %s", ErrUnknownSibling, movedID)
	}
	if to < 0 {
		return out, fmt.Errorf("%w: %s", ErrUnknownSibling, targetID)
	}
	if from == to {
		return out, nil
	}
	moved := out[from]
	out = append(out[:from], out[from+1:]...)
	out = append(out[:to], append([]string{moved}, out[to:]...)...)
	return out, nil
}

// SamePermutation reports whether proposed lists exactly the ids of current, each once.
func SamePermutation(current, proposed []string) bool {
	if len(current) != len(proposed) {
		return false
	}
	seen := make(map[string]int, len(current))
	for _, id := range current {
		seen[id]++
	}
	for _, id := range proposed {
		if seen[id] == 0 {
			return false
		}
		seen[id]--
	}
	return true
}

// WithCategoryOrder returns a tree whose siblings under parentID follow ids.
func (t Tree) WithCategoryOrder(parentID string, ids []string) (Tree, error) {
	current, ok := t.CategoryIDs(parentID)
	if !ok {
		return t, fmt.Errorf("%w: %s", ErrUnknownScope, parentID)
	}
	if !SamePermutation(current, ids) {
		return t, ErrNotPermutation
	}
	pos := positions(ids)
	out := t.Clone()
	if parentID == "" {
		out.Categories = reorderNodes(out.Categories, pos)
		return out, nil
	}
	for i := range out.Categories {
		if out.Categories[i].Category.ID == parentID {
			out.Categories[i].Subcategories = reorderNodes(out.Categories[i].Subcategories, pos)
		}
	}
	return out, nil
}

// WithProductOrder returns a tree whose products in categoryID follow ids.
func (t Tree) WithProductOrder(categoryID string, ids []string) (Tree, error) {
	current, ok := t.ProductIDs(categoryID)
	if !ok {
		return t, fmt.Errorf("%w: %s", ErrUnknownScope, categoryID)
	}
	if !SamePermutation(current, ids) {
		return t, ErrNotPermutation
	}
	pos := positions(ids)
	out := t.Clone()
	out.mutateNode(categoryID, func(n *Node) {
		reordered := make([]model.Product, len(n.Products))
		for _, p := range n.Products {
			i := pos[p.ID]
			p.SortOrder = i
			reordered[i] = p
		}
		n.Products = reordered
	})
	return out, nil
}

func positions(ids []string) map[string]int {
	pos := make(map[string]int, len(ids))
	for i, id := range ids {
		pos[id] = i
	}
	return pos
}

func reorderNodes(nodes []Node, pos map[string]int) []Node {
	out := make([]Node, len(nodes))
	for _, n := range nodes {
		i := pos[n.Category.ID]
		n.Category.SortOrder = i
		out[i] = n
	}
	return out
}

// mutateNode applies fn to the node with the given id. Callers must own the tree (a clone).
func (t *Tree) mutateNode(categoryID string, fn func(*Node)) bool {
	for i := range t.Categories {
		if t.Categories[i].Category.ID == categoryID {
			fn(&t.Categories[i])
			return true
		}
		for j := range t.Categories[i].Subcategories {
			if t.Categories[i].Subcategories[j].Category.ID == categoryID {
				fn(&t.Categories[i].Subcategories[j])
				return true
			}
		}
	}
	return false
}
