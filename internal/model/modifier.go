package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

type ModifierGroup struct {
	BaseModel
	MerchantID   string          `db:"merchant_id" json:"merchant_id"`
	Name         LocalizedText   `db:"name" json:"name"`
	MinSelection int             `db:"min_selection" json:"min_selection"`
	MaxSelection int             `db:"max_selection" json:"max_selection"`
	Options      ModifierOptions `db:"options" json:"options"`
}

// ModifierOption is owned by its group and has no identity of its own.
type ModifierOption struct {
	Name  LocalizedText   `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// ModifierOptions is stored as a JSON array on the group row.
type ModifierOptions []ModifierOption

func (o ModifierOptions) Value() (driver.Value, error) {
	if o == nil {
		o = ModifierOptions{}
	}
	b, err := json.Marshal([]ModifierOption(o))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (o *ModifierOptions) Scan(src any) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*o = ModifierOptions{}
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("modifier options: cannot scan %T", src)
	}
	var out []ModifierOption
	if err := json.Unmarshal(data, &out); err != nil {
		return err
	}
	*o = out
	return nil
}

func (g *ModifierGroup) Clone() ModifierGroup {
	out := *g
	out.Options = append(ModifierOptions(nil), g.Options...)
	return out
}
