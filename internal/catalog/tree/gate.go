package tree

// GateState is the onboarding lock derived from a tree. It is never stored.
type GateState struct {
	Locked           bool `json:"locked"`
	HasCategories    bool `json:"has_categories"`
	HasSubcategories bool `json:"has_subcategories"`
}

// ComputeGateState reports the catalog as locked until a product exists at any
// level. It is total: an empty tree or nodes with nil collections are fine.
func ComputeGateState(t Tree) GateState {
	state := GateState{
		Locked:        true,
		HasCategories: len(t.Categories) > 0,
	}
	for _, r := range t.Categories {
		if len(r.Products) > 0 {
			state.Locked = false
		}
		if len(r.Subcategories) > 0 {
			state.HasSubcategories = true
		}
		for _, s := range r.Subcategories {
			if len(s.Products) > 0 {
				state.Locked = false
			}
		}
	}
	return state
}
