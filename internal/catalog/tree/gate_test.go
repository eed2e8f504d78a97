package tree

import (
	"testing"

	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestComputeGateState_EmptyTree(t *testing.T) {
	assert.Equal(t, GateState{Locked: true}, ComputeGateState(Tree{}))
}

func TestComputeGateState_OneEmptyRoot(t *testing.T) {
	tr := Build([]model.Category{cat("root", "", 0, "Root")}, nil)
	assert.Equal(t, GateState{Locked: true, HasCategories: true, HasSubcategories: false}, ComputeGateState(tr))
}

func TestComputeGateState_ProductOnRootUnlocks(t *testing.T) {
	cats := []model.Category{cat("root", "", 0, "Root")}
	tr := Build(cats, []model.Product{prod("p", "root", 0, model.Text("pt", "X"))})
	assert.False(t, ComputeGateState(tr).Locked)
}

func TestComputeGateState_ProductOnSubcategoryUnlocks(t *testing.T) {
	cats := []model.Category{cat("root", "", 0, "Root"), cat("sub", "root", 0, "Sub")}

	empty := ComputeGateState(Build(cats, nil))
	assert.True(t, empty.Locked)
	assert.True(t, empty.HasSubcategories)

	full := ComputeGateState(Build(cats, []model.Product{prod("p", "sub", 0, model.Text("pt", "X"))}))
	assert.False(t, full.Locked)
}

func TestComputeGateState_RelocksWhenLastProductRemoved(t *testing.T) {
	cats := []model.Category{cat("root", "", 0, "Root")}
	withProduct := Build(cats, []model.Product{prod("p", "root", 0, model.Text("pt", "X"))})
	assert.False(t, ComputeGateState(withProduct).Locked)

	assert.True(t, ComputeGateState(Build(cats, nil)).Locked)
}

func TestComputeGateState_NilCollections(t *testing.T) {
	tr := Tree{Categories: []Node{{Category: cat("root", "", 0, "Root")}}}
	state := ComputeGateState(tr)
	assert.True(t, state.Locked)
	assert.True(t, state.HasCategories)
	assert.False(t, state.HasSubcategories)
}

func TestComputeGateState_LockedIffNoProducts(t *testing.T) {
	tr := sampleTree()
	assert.Equal(t, tr.ProductCount() == 0, ComputeGateState(tr).Locked)
}
