package dto

import (
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/shopspring/decimal"
)

type VariantInput struct {
	Name  model.LocalizedText
	Price decimal.Decimal
}

type CreateProductInput struct {
	MerchantID  string
	CategoryID  string
	Name        model.LocalizedText
	Description model.LocalizedText
	Price       decimal.Decimal
	ImageRef    string
	// IsAvailable defaults to true.
	IsAvailable      *bool
	IsOffer          bool
	IsHighlight      bool
	HasVariants      bool
	Variants         []VariantInput
	ModifierGroupIDs []string
}

// UpdateProductInput replaces the editable fields. Availability and position are
// changed through their own operations.
type UpdateProductInput struct {
	ID               string
	MerchantID       string
	CategoryID       string
	Name             model.LocalizedText
	Description      model.LocalizedText
	Price            decimal.Decimal
	ImageRef         string
	IsOffer          bool
	IsHighlight      bool
	HasVariants      bool
	Variants         []VariantInput
	ModifierGroupIDs []string
}

type ReorderInput struct {
	MerchantID string
	CategoryID string
	OrderedIDs []string
}

type MoveInput struct {
	ID         string
	MerchantID string
	CategoryID string
}

type SearchInput struct {
	MerchantID string
	Query      string
	Lang       string
	Limit      int
}
