package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/panaderia-api/internal/domain/entity"
	"github.com/jhoicas/panaderia-api/internal/domain/repository"
)

var _ repository.PurchaseRepository = (*PurchaseRepo)(nil)

const purchaseColumns = `id, supplier, supplier_id, items, total, status, created_by, approved_by, approved_at, created_at`

// PurchaseRepo persistencia de compras. Los ítems se guardan como JSONB.
type PurchaseRepo struct {
	q Querier
}

// NewPurchaseRepository construye el repositorio.
func NewPurchaseRepository(q Querier) *PurchaseRepo {
	return &PurchaseRepo{q: q}
}

func scanPurchase(row pgx.Row) (*entity.Purchase, error) {
	var p entity.Purchase
	err := row.Scan(&p.ID, &p.Supplier, &p.SupplierID, &p.Items, &p.Total, &p.Status,
		&p.CreatedBy, &p.ApprovedBy, &p.ApprovedAt, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PurchaseRepo) Create(ctx context.Context, p *entity.Purchase) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO purchases (`+purchaseColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		p.ID, p.Supplier, p.SupplierID, p.Items, p.Total, p.Status, p.CreatedBy, p.ApprovedBy, p.ApprovedAt, p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert purchase: %w", err)
	}
	return nil
}

func (r *PurchaseRepo) GetByID(ctx context.Context, id string) (*entity.Purchase, error) {
	p, err := scanPurchase(r.q.QueryRow(ctx, `SELECT `+purchaseColumns+` FROM purchases WHERE id = $1`, id))
	if err != nil {
		return nil, notFound(err, "get purchase")
	}
	return p, nil
}

// GetForUpdate bloquea la compra; dos aprobaciones concurrentes se serializan aquí.
func (r *PurchaseRepo) GetForUpdate(ctx context.Context, id string) (*entity.Purchase, error) {
	p, err := scanPurchase(r.q.QueryRow(ctx, `SELECT `+purchaseColumns+` FROM purchases WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		return nil, notFound(err, "get purchase for update")
	}
	return p, nil
}

func (r *PurchaseRepo) UpdateStatus(ctx context.Context, p *entity.Purchase) error {
	_, err := r.q.Exec(ctx, `
		UPDATE purchases SET status = $2, approved_by = $3, approved_at = $4, items = $5
		WHERE id = $1`,
		p.ID, p.Status, p.ApprovedBy, p.ApprovedAt, p.Items,
	)
	if err != nil {
		return fmt.Errorf("update purchase: %w", err)
	}
	return nil
}

func (r *PurchaseRepo) List(ctx context.Context, status string, limit, offset int) ([]*entity.Purchase, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+purchaseColumns+` FROM purchases
		WHERE ($1 = '' OR status = $1)
		ORDER BY created_at DESC, id
		LIMIT $2 OFFSET $3`, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.Purchase, 0)
	for rows.Next() {
		p, err := scanPurchase(rows)
		if err != nil {
			return nil, fmt.Errorf("scan purchase: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}
