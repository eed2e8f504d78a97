package main

import (
	"bytes"
	"testing"

	"github.com/fekuna/omnipos-catalog-service/internal/catalog/tree"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriceLabel(t *testing.T) {
	plain := model.Product{Price: decimal.NewFromInt(7)}
	assert.Equal(t, "7.00", priceLabel(plain))

	ranged := model.Product{
		Price:       decimal.NewFromInt(7),
		HasVariants: true,
		Variants: []model.ProductVariant{
			{Price: decimal.NewFromInt(12)},
			{Price: decimal.RequireFromString("9.5")},
		},
	}
	assert.Equal(t, "9.50-12.00", priceLabel(ranged))
}

func TestPrintTree(t *testing.T) {
	root := "c-1"
	tr := tree.Build(
		[]model.Category{
			{BaseModel: model.BaseModel{ID: "c-1"}, Name: model.Text("pt", "Bebidas", "en", "Drinks")},
			{BaseModel: model.BaseModel{ID: "c-2"}, ParentID: &root, Name: model.Text("pt", "Sucos")},
		},
		[]model.Product{
			{BaseModel: model.BaseModel{ID: "p-1"}, CategoryID: "c-2", Name: model.Text("pt", "Laranja"), Price: decimal.NewFromInt(8)},
		},
	)

	var buf bytes.Buffer
	printTree(&buf, tr, &options{lang: "en", primaryLang: "pt"})
	assert.Equal(t, "Drinks [c-1]\n  Sucos [c-2]\n    - Laranja 8.00 [p-1] (unavailable)\n", buf.String())

	buf.Reset()
	printTree(&buf, tree.Tree{}, &options{primaryLang: "pt"})
	assert.Equal(t, "(empty catalog)\n", buf.String())
}

func TestRootCmd_RequiresMerchant(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"gate"})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	require.Error(t, cmd.Execute())
}
