package tree

import (
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/shopspring/decimal"
)

type DisplayOption struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

type DisplayModifierGroup struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	MinSelection int             `json:"min_selection"`
	MaxSelection int             `json:"max_selection"`
	Options      []DisplayOption `json:"options"`
}

type DisplayVariant struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// DisplayProduct is a product with every localized field resolved for one language.
type DisplayProduct struct {
	ID             string                 `json:"id"`
	Name           string                 `json:"name"`
	Description    string                 `json:"description"`
	Price          decimal.Decimal        `json:"price"`
	ImageRef       string                 `json:"image_ref,omitempty"`
	Variants       []DisplayVariant       `json:"variants"`
	ModifierGroups []DisplayModifierGroup `json:"modifier_groups"`
	IsAvailable    bool                   `json:"is_available"`
}

// ResolveProduct resolves p for display. Modifier groups are looked up by
// reference; ids missing from groups are skipped. Attachment never alters a
// group's selection bounds or options.
func ResolveProduct(p model.Product, groups map[string]model.ModifierGroup, lang, primary string) DisplayProduct {
	out := DisplayProduct{
		ID:             p.ID,
		Name:           p.Name.Resolve(lang, primary),
		Description:    p.Description.Resolve(lang, primary),
		Price:          p.Price,
		Variants:       []DisplayVariant{},
		ModifierGroups: []DisplayModifierGroup{},
		IsAvailable:    p.IsAvailable,
	}
	if p.ImageRef != nil {
		out.ImageRef = *p.ImageRef
	}
	if p.HasVariants {
		for _, v := range p.Variants {
			out.Variants = append(out.Variants, DisplayVariant{
				Name:  v.Name.Resolve(lang, primary),
				Price: v.Price,
			})
		}
	}
	for _, id := range p.ModifierGroupIDs {
		g, ok := groups[id]
		if !ok {
			continue
		}
		dg := DisplayModifierGroup{
			ID:           g.ID,
			Name:         g.Name.Resolve(lang, primary),
			MinSelection: g.MinSelection,
			MaxSelection: g.MaxSelection,
			Options:      make([]DisplayOption, len(g.Options)),
		}
		for i, o := range g.Options {
			dg.Options[i] = DisplayOption{Name: o.Name.Resolve(lang, primary), Price: o.Price}
		}
		out.ModifierGroups = append(out.ModifierGroups, dg)
	}
	return out
}
