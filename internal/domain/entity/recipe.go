package entity

import "github.com/shopspring/decimal"

// RecipeLink une un producto con uno de sus insumos.
// QuantityPerBatch está expresada en Unit y corresponde a una tanda completa (RecipeYield unidades).
type RecipeLink struct {
	ID                 string
	ProductID          string
	IngredientID       string
	IngredientName     string
	IngredientBaseUnit BaseUnit
	QuantityPerBatch   decimal.Decimal
	Unit               string
}
