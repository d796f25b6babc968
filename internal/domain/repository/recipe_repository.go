package repository

import (
	"context"

	"github.com/jhoicas/panaderia-api/internal/domain/entity"
)

// RecipeRepository puerto de persistencia de recetas.
type RecipeRepository interface {
	Create(ctx context.Context, link *entity.RecipeLink) error
	// ListByProduct devuelve las líneas de receta con nombre y unidad base del insumo.
	ListByProduct(ctx context.Context, productID string) ([]entity.RecipeLink, error)
}
