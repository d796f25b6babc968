package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Categorías de pérdida para insumos.
const (
	LossPackagingDamaged = "empaque_danado"
	LossRecipeOveruse    = "sobreuso_receta"
	LossExpired          = "vencimiento"
	LossColdChain        = "cadena_frio"
)

// Categorías de pérdida para productos terminados.
const (
	LossPhysicalAccident = "accidente_fisico"
	LossContamination    = "contaminacion"
)

// LossCategoryValid indica si la categoría aplica al tipo de producto.
func LossCategoryValid(category string, isIngredient bool) bool {
	if isIngredient {
		switch category {
		case LossPackagingDamaged, LossRecipeOveruse, LossExpired, LossColdChain:
			return true
		}
		return false
	}
	switch category {
	case LossPhysicalAccident, LossContamination, LossExpired, LossColdChain:
		return true
	}
	return false
}

// LossRecord registra una pérdida. Quantity y Unit son los ingresados por el usuario;
// BaseQuantity es la cantidad convertida a la unidad base del producto.
type LossRecord struct {
	ID           string
	ProductID    string
	Quantity     decimal.Decimal
	Unit         string
	BaseQuantity decimal.Decimal
	Category     string
	Description  string
	CostEstimate decimal.Decimal
	UserID       string
	CreatedAt    time.Time
}
