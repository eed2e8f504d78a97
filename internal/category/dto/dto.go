package dto

type CategoryFilters struct {
	MerchantID string
	ParentID   *string // Nil means ignore, empty string means root categories
	Page       int
	PageSize   int
}

type DeleteResult struct {
	CategoryIDs []string
	ProductIDs  []string
}
