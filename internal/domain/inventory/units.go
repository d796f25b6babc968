package inventory

import (
	"strings"

	"github.com/jhoicas/panaderia-api/internal/domain"
	"github.com/jhoicas/panaderia-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

var thousand = decimal.NewFromInt(1000)

// conversions: unidad declarada -> (unidad base destino, factor).
var conversions = map[string]struct {
	base   entity.BaseUnit
	factor decimal.Decimal
}{
	"kg":       {entity.BaseUnitGrams, thousand},
	"g":        {entity.BaseUnitGrams, decimal.NewFromInt(1)},
	"l":        {entity.BaseUnitMilliliters, thousand},
	"ml":       {entity.BaseUnitMilliliters, decimal.NewFromInt(1)},
	"u":        {entity.BaseUnitUnits, decimal.NewFromInt(1)},
	"unidades": {entity.BaseUnitUnits, decimal.NewFromInt(1)},
}

// NormalizeUnit limpia y pasa a minúsculas una unidad declarada.
func NormalizeUnit(unit string) string {
	return strings.ToLower(strings.TrimSpace(unit))
}

// Convert lleva quantity desde la unidad declarada a la unidad base del producto.
// Unidad vacía = misma unidad base (conversión identidad).
func Convert(quantity decimal.Decimal, fromUnit string, base entity.BaseUnit) (decimal.Decimal, error) {
	from := NormalizeUnit(fromUnit)
	if from == "" {
		return quantity, nil
	}
	c, ok := conversions[from]
	if !ok || c.base != base {
		return decimal.Zero, domain.ErrIncompatibleUnit
	}
	return quantity.Mul(c.factor), nil
}

// Compatible indica si la unidad declarada puede convertirse a la unidad base.
func Compatible(fromUnit string, base entity.BaseUnit) bool {
	_, err := Convert(decimal.Zero, fromUnit, base)
	return err == nil
}

// InferBaseUnit deduce la unidad base de un insumo nuevo a partir de la unidad de compra:
// kg/g -> gramos, l/ml -> mililitros, cualquier otra -> unidades.
func InferBaseUnit(declared string) entity.BaseUnit {
	switch NormalizeUnit(declared) {
	case "kg", "g":
		return entity.BaseUnitGrams
	case "l", "ml":
		return entity.BaseUnitMilliliters
	default:
		return entity.BaseUnitUnits
	}
}
