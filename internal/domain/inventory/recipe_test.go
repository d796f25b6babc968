package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/panaderia-api/internal/domain"
	"github.com/jhoicas/panaderia-api/internal/domain/entity"
	"github.com/jhoicas/panaderia-api/internal/domain/inventory"
)

func link(ingredientID string, qty string, unit string, base entity.BaseUnit) entity.RecipeLink {
	return entity.RecipeLink{
		ProductID:          "pan",
		IngredientID:       ingredientID,
		IngredientName:     ingredientID,
		IngredientBaseUnit: base,
		QuantityPerBatch:   decimal.RequireFromString(qty),
		Unit:               unit,
	}
}

// Escenario: 200 g por tanda, rendimiento 10, producir 5 -> 100 g.
func TestExpand_MediaTanda(t *testing.T) {
	p := &entity.Product{ID: "pan", RecipeYield: 10}
	reqs, err := inventory.Expand(p, []entity.RecipeLink{link("harina", "200", "g", entity.BaseUnitGrams)}, decimal.NewFromInt(5))
	require.NoError(t, err)
	require.Len(t, reqs, 1)
	assert.Equal(t, "harina", reqs[0].ProductID)
	assert.Equal(t, "100", reqs[0].Quantity.String())
}

func TestExpand_ConvierteUnidadDeReceta(t *testing.T) {
	p := &entity.Product{ID: "pan", RecipeYield: 4}
	reqs, err := inventory.Expand(p, []entity.RecipeLink{
		link("harina", "1.2", "kg", entity.BaseUnitGrams),
		link("leche", "0.5", "l", entity.BaseUnitMilliliters),
	}, decimal.NewFromInt(2))
	require.NoError(t, err)
	assert.Equal(t, "600", reqs[0].Quantity.String())
	assert.Equal(t, "250", reqs[1].Quantity.String())
}

// Los insumos contados en unidades no se consumen en fracciones.
func TestExpand_RedondeaUnidadesHaciaArriba(t *testing.T) {
	p := &entity.Product{ID: "torta", RecipeYield: 3}
	reqs, err := inventory.Expand(p, []entity.RecipeLink{link("huevo", "4", "u", entity.BaseUnitUnits)}, decimal.NewFromInt(1))
	require.NoError(t, err)
	assert.Equal(t, "2", reqs[0].Quantity.String(), "4/3 huevos se redondean a 2")
}

func TestExpand_FraccionExacta(t *testing.T) {
	p := &entity.Product{ID: "pan", RecipeYield: 3}
	reqs, err := inventory.Expand(p, []entity.RecipeLink{link("harina", "300", "g", entity.BaseUnitGrams)}, decimal.NewFromInt(1))
	require.NoError(t, err)
	assert.Equal(t, "100", reqs[0].Quantity.String())
}

func TestExpand_SinReceta(t *testing.T) {
	p := &entity.Product{ID: "pan", RecipeYield: 10}
	_, err := inventory.Expand(p, nil, decimal.NewFromInt(1))
	assert.ErrorIs(t, err, domain.ErrNoRecipeDefined)
}

func TestExpand_UnidadIncompatibleEnReceta(t *testing.T) {
	p := &entity.Product{ID: "pan", RecipeYield: 1}
	_, err := inventory.Expand(p, []entity.RecipeLink{link("leche", "1", "kg", entity.BaseUnitMilliliters)}, decimal.NewFromInt(1))
	assert.ErrorIs(t, err, domain.ErrIncompatibleUnit)
}

func TestExpand_RendimientoCeroEsUno(t *testing.T) {
	p := &entity.Product{ID: "pan"}
	reqs, err := inventory.Expand(p, []entity.RecipeLink{link("harina", "50", "g", entity.BaseUnitGrams)}, decimal.NewFromInt(2))
	require.NoError(t, err)
	assert.Equal(t, "100", reqs[0].Quantity.String())
}
