package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/panaderia-api/internal/domain"
	"github.com/jhoicas/panaderia-api/internal/domain/entity"
	"github.com/jhoicas/panaderia-api/internal/domain/repository"
)

var _ repository.RecipeRepository = (*RecipeRepo)(nil)

// RecipeRepo persistencia de recetas.
type RecipeRepo struct {
	q Querier
}

// NewRecipeRepository construye el repositorio.
func NewRecipeRepository(q Querier) *RecipeRepo {
	return &RecipeRepo{q: q}
}

func (r *RecipeRepo) Create(ctx context.Context, l *entity.RecipeLink) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO recipe_links (id, product_id, ingredient_id, quantity_per_batch, unit)
		VALUES ($1, $2, $3, $4, $5)`,
		l.ID, l.ProductID, l.IngredientID, l.QuantityPerBatch, l.Unit,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert recipe link: %w", err)
	}
	return nil
}

func (r *RecipeRepo) ListByProduct(ctx context.Context, productID string) ([]entity.RecipeLink, error) {
	rows, err := r.q.Query(ctx, `
		SELECT rl.id, rl.product_id, rl.ingredient_id, p.name, p.base_unit, rl.quantity_per_batch, rl.unit
		FROM recipe_links rl
		JOIN products p ON p.id = rl.ingredient_id
		WHERE rl.product_id = $1
		ORDER BY rl.ingredient_id`, productID)
	if err != nil {
		return nil, fmt.Errorf("list recipe: %w", err)
	}
	defer rows.Close()

	var links []entity.RecipeLink
	for rows.Next() {
		var l entity.RecipeLink
		var base string
		if err := rows.Scan(&l.ID, &l.ProductID, &l.IngredientID, &l.IngredientName, &base, &l.QuantityPerBatch, &l.Unit); err != nil {
			return nil, fmt.Errorf("scan recipe link: %w", err)
		}
		l.IngredientBaseUnit = entity.BaseUnit(base)
		links = append(links, l)
	}
	return links, rows.Err()
}
