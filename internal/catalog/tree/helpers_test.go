package tree

import (
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/shopspring/decimal"
)

func cat(id, parent string, order int, name string) model.Category {
	c := model.Category{
		BaseModel: model.BaseModel{ID: id},
		Name:      model.Text("pt", name),
		SortOrder: order,
	}
	if parent != "" {
		c.ParentID = &parent
	}
	return c
}

func prod(id, categoryID string, order int, name model.LocalizedText) model.Product {
	return model.Product{
		BaseModel:   model.BaseModel{ID: id},
		CategoryID:  categoryID,
		Name:        name,
		Price:       decimal.RequireFromString("5.00"),
		IsAvailable: true,
		SortOrder:   order,
	}
}

// sampleTree:
//
//	drinks(0): [juice(0), soda(1)]
//	  hot(0): [coffee(0)]
//	  cold(1): [tea(0)]
//	food(1): [burger(0)]
func sampleTree() Tree {
	cats := []model.Category{
		cat("food", "", 1, "Comida"),
		cat("drinks", "", 0, "Bebidas"),
		cat("cold", "drinks", 1, "Frias"),
		cat("hot", "drinks", 0, "Quentes"),
	}
	prods := []model.Product{
		prod("soda", "drinks", 1, model.Text("pt", "Refrigerante")),
		prod("juice", "drinks", 0, model.Text("pt", "Suco de Laranja")),
		prod("coffee", "hot", 0, model.Text("pt", "Café")),
		prod("tea", "cold", 0, model.Text("en", "Iced Tea")),
		prod("burger", "food", 0, model.Text("pt", "Hambúrguer")),
	}
	return Build(cats, prods)
}

func listedIDs(items []ListedProduct) []string {
	ids := make([]string, len(items))
	for i, p := range items {
		ids[i] = p.ID
	}
	return ids
}
