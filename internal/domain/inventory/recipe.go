package inventory

import (
	"github.com/jhoicas/panaderia-api/internal/domain"
	"github.com/jhoicas/panaderia-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Requirement es la cantidad de un producto (en su unidad base) que una operación necesita.
type Requirement struct {
	ProductID   string
	ProductName string
	Quantity    decimal.Decimal
}

// Expand resuelve la receta de product para producir `produced` unidades:
// requerido = CantidadPorTanda * (produced / RecipeYield), convertido a la unidad base del insumo.
// Los insumos contados en unidades se redondean hacia arriba. LossRate no se aplica.
func Expand(product *entity.Product, links []entity.RecipeLink, produced decimal.Decimal) ([]Requirement, error) {
	if len(links) == 0 {
		return nil, domain.ErrNoRecipeDefined
	}
	yield := decimal.NewFromInt(int64(product.Yield()))

	out := make([]Requirement, 0, len(links))
	for _, l := range links {
		perBatch, err := Convert(l.QuantityPerBatch, l.Unit, l.IngredientBaseUnit)
		if err != nil {
			return nil, err
		}
		required := perBatch.Mul(produced).Div(yield)
		if l.IngredientBaseUnit == entity.BaseUnitUnits {
			required = required.Ceil()
		}
		out = append(out, Requirement{
			ProductID:   l.IngredientID,
			ProductName: l.IngredientName,
			Quantity:    required,
		})
	}
	return out, nil
}
