package model

import (
	"github.com/shopspring/decimal"
)

type Product struct {
	BaseModel
	MerchantID       string           `db:"merchant_id" json:"merchant_id"`
	CategoryID       string           `db:"category_id" json:"category_id"`
	Name             LocalizedText    `db:"name" json:"name"`
	Description      LocalizedText    `db:"description" json:"description"`
	Price            decimal.Decimal  `db:"price" json:"price"`
	ImageRef         *string          `db:"image_ref" json:"image_ref"`
	IsAvailable      bool             `db:"is_available" json:"is_available"`
	IsOffer          bool             `db:"is_offer" json:"is_offer"`
	IsHighlight      bool             `db:"is_highlight" json:"is_highlight"`
	HasVariants      bool             `db:"has_variants" json:"has_variants"`
	SortOrder        int              `db:"sort_order" json:"sort_order"`
	Variants         []ProductVariant `db:"-" json:"variants"`           // product_variants rows, by position
	ModifierGroupIDs []string         `db:"-" json:"modifier_group_ids"` // product_modifier_groups rows, by position
}

type ProductVariant struct {
	ProductID string          `db:"product_id" json:"-"`
	Position  int             `db:"position" json:"-"`
	Name      LocalizedText   `db:"name" json:"name"`
	Price     decimal.Decimal `db:"price" json:"price"`
}

// EffectivePrices lists the selectable prices. The base price is authoritative
// unless the product has variants.
func (p *Product) EffectivePrices() []decimal.Decimal {
	if !p.HasVariants || len(p.Variants) == 0 {
		return []decimal.Decimal{p.Price}
	}
	prices := make([]decimal.Decimal, len(p.Variants))
	for i, v := range p.Variants {
		prices[i] = v.Price
	}
	return prices
}

// Clone returns a deep copy so snapshots never share slices.
func (p *Product) Clone() Product {
	out := *p
	if p.Variants != nil {
		out.Variants = append([]ProductVariant(nil), p.Variants...)
	}
	if p.ModifierGroupIDs != nil {
		out.ModifierGroupIDs = append([]string(nil), p.ModifierGroupIDs...)
	}
	if p.ImageRef != nil {
		ref := *p.ImageRef
		out.ImageRef = &ref
	}
	return out
}
