// Package mapper converts between domain models and catalogv1 wire messages.
package mapper

import (
	catalogv1 "github.com/fekuna/omnipos-catalog-service/api/catalog/v1"
	"github.com/fekuna/omnipos-catalog-service/internal/catalog/tree"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
)

// URLFunc turns a stored asset reference into a public address. Nil leaves image URLs empty.
type URLFunc func(ref string) string

func CategoryToAPI(c *model.Category) catalogv1.Category {
	out := catalogv1.Category{
		ID:        c.ID,
		ParentID:  c.ParentKey(),
		Name:      c.Name,
		Banners:   append([]string{}, c.Banners...),
		SortOrder: int32(c.SortOrder),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
	return out
}

func CategoryFromAPI(c catalogv1.Category, merchantID string) model.Category {
	out := model.Category{
		BaseModel:  model.BaseModel{ID: c.ID, CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt},
		MerchantID: merchantID,
		Name:       c.Name,
		Banners:    append([]string{}, c.Banners...),
		SortOrder:  int(c.SortOrder),
	}
	if c.ParentID != "" {
		parentID := c.ParentID
		out.ParentID = &parentID
	}
	return out
}

func ProductToAPI(p *model.Product, url URLFunc) catalogv1.Product {
	out := catalogv1.Product{
		ID:               p.ID,
		CategoryID:       p.CategoryID,
		Name:             p.Name,
		Description:      p.Description,
		Price:            p.Price,
		IsAvailable:      p.IsAvailable,
		IsOffer:          p.IsOffer,
		IsHighlight:      p.IsHighlight,
		HasVariants:      p.HasVariants,
		Variants:         VariantsToAPI(p.Variants),
		ModifierGroupIDs: append([]string{}, p.ModifierGroupIDs...),
		SortOrder:        int32(p.SortOrder),
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
	if p.ImageRef != nil {
		out.ImageRef = *p.ImageRef
		if url != nil {
			out.ImageURL = url(*p.ImageRef)
		}
	}
	return out
}

func ProductFromAPI(p catalogv1.Product, merchantID string) model.Product {
	out := model.Product{
		BaseModel:        model.BaseModel{ID: p.ID, CreatedAt: p.CreatedAt, UpdatedAt: p.UpdatedAt},
		MerchantID:       merchantID,
		CategoryID:       p.CategoryID,
		Name:             p.Name,
		Description:      p.Description,
		Price:            p.Price,
		IsAvailable:      p.IsAvailable,
		IsOffer:          p.IsOffer,
		IsHighlight:      p.IsHighlight,
		HasVariants:      p.HasVariants,
		Variants:         VariantsFromAPI(p.Variants),
		ModifierGroupIDs: append([]string{}, p.ModifierGroupIDs...),
		SortOrder:        int(p.SortOrder),
	}
	if p.ImageRef != "" {
		ref := p.ImageRef
		out.ImageRef = &ref
	}
	return out
}

func VariantsToAPI(variants []model.ProductVariant) []catalogv1.Variant {
	out := make([]catalogv1.Variant, len(variants))
	for i, v := range variants {
		out[i] = catalogv1.Variant{Name: v.Name, Price: v.Price}
	}
	return out
}

func VariantsFromAPI(variants []catalogv1.Variant) []model.ProductVariant {
	out := make([]model.ProductVariant, len(variants))
	for i, v := range variants {
		out[i] = model.ProductVariant{Position: i, Name: v.Name, Price: v.Price}
	}
	return out
}

func ModifierGroupToAPI(g *model.ModifierGroup) catalogv1.ModifierGroup {
	out := catalogv1.ModifierGroup{
		ID:           g.ID,
		Name:         g.Name,
		MinSelection: int32(g.MinSelection),
		MaxSelection: int32(g.MaxSelection),
		Options:      make([]catalogv1.ModifierOption, len(g.Options)),
		CreatedAt:    g.CreatedAt,
		UpdatedAt:    g.UpdatedAt,
	}
	for i, o := range g.Options {
		out.Options[i] = catalogv1.ModifierOption{Name: o.Name, Price: o.Price}
	}
	return out
}

func ModifierOptionsFromAPI(options []catalogv1.ModifierOption) model.ModifierOptions {
	out := make(model.ModifierOptions, len(options))
	for i, o := range options {
		out[i] = model.ModifierOption{Name: o.Name, Price: o.Price}
	}
	return out
}

func TreeToAPI(t tree.Tree, url URLFunc) []catalogv1.CategoryNode {
	out := make([]catalogv1.CategoryNode, len(t.Categories))
	for i, n := range t.Categories {
		out[i] = nodeToAPI(n, url)
	}
	return out
}

func nodeToAPI(n tree.Node, url URLFunc) catalogv1.CategoryNode {
	out := catalogv1.CategoryNode{
		Category:      CategoryToAPI(&n.Category),
		Subcategories: make([]catalogv1.CategoryNode, len(n.Subcategories)),
		Products:      make([]catalogv1.Product, len(n.Products)),
	}
	for i, s := range n.Subcategories {
		out.Subcategories[i] = nodeToAPI(s, url)
	}
	for i := range n.Products {
		out.Products[i] = ProductToAPI(&n.Products[i], url)
	}
	return out
}

// TreeFromAPI rebuilds a tree from wire nodes, keeping the server's order.
func TreeFromAPI(nodes []catalogv1.CategoryNode, merchantID string) tree.Tree {
	out := tree.Tree{Categories: make([]tree.Node, len(nodes))}
	for i, n := range nodes {
		out.Categories[i] = nodeFromAPI(n, merchantID)
	}
	return out
}

func nodeFromAPI(n catalogv1.CategoryNode, merchantID string) tree.Node {
	out := tree.Node{
		Category:      CategoryFromAPI(n.Category, merchantID),
		Subcategories: make([]tree.Node, len(n.Subcategories)),
		Products:      make([]model.Product, len(n.Products)),
	}
	for i, s := range n.Subcategories {
		out.Subcategories[i] = nodeFromAPI(s, merchantID)
	}
	for i, p := range n.Products {
		out.Products[i] = ProductFromAPI(p, merchantID)
	}
	return out
}

func ListedToAPI(items []tree.ListedProduct, url URLFunc) []catalogv1.ListedProduct {
	out := make([]catalogv1.ListedProduct, len(items))
	for i := range items {
		out[i] = catalogv1.ListedProduct{
			Product:      ProductToAPI(&items[i].Product, url),
			CategoryName: items[i].CategoryName,
		}
	}
	return out
}

func GateToAPI(g tree.GateState) catalogv1.GateState {
	return catalogv1.GateState{
		Locked:           g.Locked,
		HasCategories:    g.HasCategories,
		HasSubcategories: g.HasSubcategories,
	}
}

func DisplayToAPI(p tree.DisplayProduct, imageURL string) catalogv1.DisplayProduct {
	out := catalogv1.DisplayProduct{
		ID:             p.ID,
		Name:           p.Name,
		Description:    p.Description,
		Price:          p.Price,
		ImageURL:       imageURL,
		Variants:       make([]catalogv1.DisplayVariant, len(p.Variants)),
		ModifierGroups: make([]catalogv1.DisplayModifierGroup, len(p.ModifierGroups)),
		IsAvailable:    p.IsAvailable,
	}
	for i, v := range p.Variants {
		out.Variants[i] = catalogv1.DisplayVariant{Name: v.Name, Price: v.Price}
	}
	for i, g := range p.ModifierGroups {
		dg := catalogv1.DisplayModifierGroup{
			ID:           g.ID,
			Name:         g.Name,
			MinSelection: int32(g.MinSelection),
			MaxSelection: int32(g.MaxSelection),
			Options:      make([]catalogv1.DisplayOption, len(g.Options)),
		}
		for j, o := range g.Options {
			dg.Options[j] = catalogv1.DisplayOption{Name: o.Name, Price: o.Price}
		}
		out.ModifierGroups[i] = dg
	}
	return out
}
