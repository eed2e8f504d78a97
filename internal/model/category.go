package model

import "github.com/lib/pq"

type Category struct {
	BaseModel
	MerchantID string         `db:"merchant_id" json:"merchant_id"`
	ParentID   *string        `db:"parent_id" json:"parent_id"` // nil for root categories
	Name       LocalizedText  `db:"name" json:"name"`
	Banners    pq.StringArray `db:"banners" json:"banners"`
	SortOrder  int            `db:"sort_order" json:"sort_order"`
}

func (c *Category) IsRoot() bool {
	return c.ParentID == nil || *c.ParentID == ""
}

// ParentKey returns the sibling scope of the category: "" for roots.
func (c *Category) ParentKey() string {
	if c.IsRoot() {
		return ""
	}
	return *c.ParentID
}
