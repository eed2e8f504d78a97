package dto

type ProductFilters struct {
	MerchantID string
	// CategoryID limits the listing to products directly attached to one category.
	CategoryID         string
	IncludeUnavailable bool
	Page               int
	PageSize           int
}
