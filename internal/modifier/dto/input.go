package dto

import (
	"github.com/fekuna/omnipos-catalog-service/internal/model"
)

type ModifierGroupInput struct {
	MerchantID   string
	Name         model.LocalizedText
	MinSelection int
	MaxSelection int
	Options      []model.ModifierOption
}

type UpdateModifierGroupInput struct {
	ID string
	ModifierGroupInput
}
