package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/panaderia-api/internal/domain/entity"
	"github.com/jhoicas/panaderia-api/internal/domain/repository"
)

var _ repository.ProductionRepository = (*ProductionRepo)(nil)

// ProductionRepo persistencia de producciones.
type ProductionRepo struct {
	q Querier
}

// NewProductionRepository construye el repositorio.
func NewProductionRepository(q Querier) *ProductionRepo {
	return &ProductionRepo{q: q}
}

func (r *ProductionRepo) Create(ctx context.Context, run *entity.ProductionRun) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO production_runs (id, user_id, total_units, created_at) VALUES ($1, $2, $3, $4)`,
		run.ID, run.UserID, run.TotalUnits, run.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert production run: %w", err)
	}
	for _, it := range run.Items {
		_, err := r.q.Exec(ctx, `
			INSERT INTO production_items (run_id, product_id, quantity) VALUES ($1, $2, $3)`,
			run.ID, it.ProductID, it.Quantity,
		)
		if err != nil {
			return fmt.Errorf("insert production item: %w", err)
		}
	}
	return nil
}
