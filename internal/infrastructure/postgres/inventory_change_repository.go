package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/panaderia-api/internal/domain/entity"
	"github.com/jhoicas/panaderia-api/internal/domain/repository"
)

var _ repository.InventoryChangeRepository = (*InventoryChangeRepo)(nil)

// InventoryChangeRepo persistencia de ajustes de inventario.
type InventoryChangeRepo struct {
	q Querier
}

// NewInventoryChangeRepository construye el repositorio.
func NewInventoryChangeRepository(q Querier) *InventoryChangeRepo {
	return &InventoryChangeRepo{q: q}
}

func (r *InventoryChangeRepo) Create(ctx context.Context, c *entity.InventoryChange) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO inventory_changes (id, type, product_id, quantity, reason, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		c.ID, c.Type, c.ProductID, c.Quantity, c.Reason, c.UserID, c.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert inventory change: %w", err)
	}
	return nil
}
