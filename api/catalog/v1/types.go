package catalogv1

import (
	"time"

	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/shopspring/decimal"
)

// LocalizedText is a language-tag keyed object whose key order is preserved on the wire.
type LocalizedText = model.LocalizedText

type Empty struct{}

type Category struct {
	ID        string        `json:"id"`
	ParentID  string        `json:"parent_id,omitempty"`
	Name      LocalizedText `json:"name"`
	Banners   []string      `json:"banners"`
	SortOrder int32         `json:"sort_order"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

type Variant struct {
	Name  LocalizedText   `json:"name"`
	Price decimal.Decimal `json:"price"`
}

type Product struct {
	ID               string          `json:"id"`
	CategoryID       string          `json:"category_id"`
	Name             LocalizedText   `json:"name"`
	Description      LocalizedText   `json:"description"`
	Price            decimal.Decimal `json:"price"`
	ImageRef         string          `json:"image_ref,omitempty"`
	ImageURL         string          `json:"image_url,omitempty"`
	IsAvailable      bool            `json:"is_available"`
	IsOffer          bool            `json:"is_offer"`
	IsHighlight      bool            `json:"is_highlight"`
	HasVariants      bool            `json:"has_variants"`
	Variants         []Variant       `json:"variants"`
	ModifierGroupIDs []string        `json:"modifier_group_ids"`
	SortOrder        int32           `json:"sort_order"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

type ModifierOption struct {
	Name  LocalizedText   `json:"name"`
	Price decimal.Decimal `json:"price"`
}

type ModifierGroup struct {
	ID           string           `json:"id"`
	Name         LocalizedText    `json:"name"`
	MinSelection int32            `json:"min_selection"`
	MaxSelection int32            `json:"max_selection"`
	Options      []ModifierOption `json:"options"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

type CategoryNode struct {
	Category      Category       `json:"category"`
	Subcategories []CategoryNode `json:"subcategories"`
	Products      []Product      `json:"products"`
}

type ListedProduct struct {
	Product      Product `json:"product"`
	CategoryName string  `json:"category_name"`
}

type GateState struct {
	Locked           bool `json:"locked"`
	HasCategories    bool `json:"has_categories"`
	HasSubcategories bool `json:"has_subcategories"`
}

type DisplayOption struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

type DisplayModifierGroup struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	MinSelection int32           `json:"min_selection"`
	MaxSelection int32           `json:"max_selection"`
	Options      []DisplayOption `json:"options"`
}

type DisplayVariant struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

type DisplayProduct struct {
	ID             string                 `json:"id"`
	Name           string                 `json:"name"`
	Description    string                 `json:"description"`
	Price          decimal.Decimal        `json:"price"`
	ImageURL       string                 `json:"image_url,omitempty"`
	Variants       []DisplayVariant       `json:"variants"`
	ModifierGroups []DisplayModifierGroup `json:"modifier_groups"`
	IsAvailable    bool                   `json:"is_available"`
}
