package dto

import "github.com/fekuna/omnipos-catalog-service/internal/model"

type CreateCategoryInput struct {
	MerchantID string
	ParentID   *string
	Name       model.LocalizedText
	Banners    []string
	// SortOrder places the category explicitly; nil appends it to its siblings.
	SortOrder *int
}

type UpdateCategoryInput struct {
	ID         string
	MerchantID string
	ParentID   *string // nil or "" makes it a root category
	Name       model.LocalizedText
	Banners    []string
}

type DeleteCategoryInput struct {
	ID         string
	MerchantID string
	// Cascade must be set to delete a category that still has subcategories or products.
	Cascade bool
}

type ReorderInput struct {
	MerchantID string
	ParentID   *string
	OrderedIDs []string
}
