package inventory

import (
	"github.com/jhoicas/panaderia-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// LossCostEstimate calcula el costo estimado de una pérdida: Precio * CantidadIngresada.
// Se usa la cantidad en la unidad que ingresó el usuario, no la convertida.
func LossCostEstimate(unitPrice, enteredQty decimal.Decimal) decimal.Decimal {
	if unitPrice.LessThanOrEqual(decimal.Zero) || enteredQty.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return unitPrice.Mul(enteredQty).Round(2)
}

// PurchaseTotal suma Cantidad * PrecioUnitario de todas las líneas.
func PurchaseTotal(items []entity.PurchaseItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Quantity.Mul(it.UnitPrice))
	}
	return total.Round(2)
}

// SaleTotal suma Cantidad * Precio de todas las líneas.
func SaleTotal(items []entity.SaleItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Quantity.Mul(it.Price))
	}
	return total.Round(2)
}
