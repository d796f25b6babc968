package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/panaderia-api/internal/domain/entity"
	"github.com/jhoicas/panaderia-api/internal/domain/repository"
)

var _ repository.LossRepository = (*LossRepo)(nil)

// LossRepo persistencia de pérdidas.
type LossRepo struct {
	q Querier
}

// NewLossRepository construye el repositorio.
func NewLossRepository(q Querier) *LossRepo {
	return &LossRepo{q: q}
}

func (r *LossRepo) Create(ctx context.Context, l *entity.LossRecord) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO loss_records (id, product_id, quantity, unit, base_quantity, category, description,
			cost_estimate, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		l.ID, l.ProductID, l.Quantity, l.Unit, l.BaseQuantity, l.Category, l.Description,
		l.CostEstimate, l.UserID, l.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert loss record: %w", err)
	}
	return nil
}

func (r *LossRepo) List(ctx context.Context, productID string, limit, offset int) ([]*entity.LossRecord, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, product_id, quantity, unit, base_quantity, category, description, cost_estimate, user_id, created_at
		FROM loss_records
		WHERE ($1 = '' OR product_id = $1)
		ORDER BY created_at DESC, id
		LIMIT $2 OFFSET $3`, productID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list losses: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.LossRecord, 0)
	for rows.Next() {
		var l entity.LossRecord
		if err := rows.Scan(&l.ID, &l.ProductID, &l.Quantity, &l.Unit, &l.BaseQuantity, &l.Category,
			&l.Description, &l.CostEstimate, &l.UserID, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan loss record: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}
