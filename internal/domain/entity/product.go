package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// BaseUnit es la unidad canónica en la que se guarda el stock de un producto.
type BaseUnit string

// Unidades base soportadas.
const (
	BaseUnitGrams       BaseUnit = "g"
	BaseUnitMilliliters BaseUnit = "ml"
	BaseUnitUnits       BaseUnit = "unidades"
)

// Valid indica si la unidad base es una de las soportadas.
func (u BaseUnit) Valid() bool {
	switch u {
	case BaseUnitGrams, BaseUnitMilliliters, BaseUnitUnits:
		return true
	}
	return false
}

// Categorías de producto.
const (
	CategoryProduct    = "Producto"
	CategoryIngredient = "Insumo"
)

// Product representa un producto de venta o un insumo de receta.
// Stock se expresa siempre en BaseUnit y solo lo modifica el ledger de stock.
type Product struct {
	ID                string
	Name              string
	NameKey           string // nombre normalizado para búsqueda (sin tildes, minúsculas)
	Description       string
	Price             decimal.Decimal
	Stock             decimal.Decimal
	BaseUnit          BaseUnit
	IsIngredient      bool
	Category          string
	RecipeYield       int             // unidades producidas por tanda de receta
	LossRate          decimal.Decimal // informativo, nunca se aplica automáticamente
	LowStockThreshold decimal.Decimal
	Active            bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Yield devuelve el rendimiento de receta; valores no positivos equivalen a 1.
func (p *Product) Yield() int {
	if p.RecipeYield <= 0 {
		return 1
	}
	return p.RecipeYield
}
