package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/panaderia-api/internal/domain/entity"
	"github.com/jhoicas/panaderia-api/internal/domain/repository"
)

var _ repository.AuditRepository = (*AuditRepo)(nil)

// AuditRepo historial de stock. La tabla rechaza UPDATE y DELETE por trigger.
type AuditRepo struct {
	q Querier
}

// NewAuditRepository construye el repositorio.
func NewAuditRepository(q Querier) *AuditRepo {
	return &AuditRepo{q: q}
}

func (r *AuditRepo) Create(ctx context.Context, a *entity.AuditRecord) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO audit_records (id, kind, mutation_ref, product_id, user_id, role, change_type,
			quantity, previous_stock, new_stock, reason, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		a.ID, string(a.Kind), a.MutationRef, a.ProductID, a.UserID, a.Role, a.ChangeType,
		a.Quantity, a.PreviousStock, a.NewStock, a.Reason, a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert audit record: %w", err)
	}
	return nil
}

func (r *AuditRepo) List(ctx context.Context, f repository.AuditFilter) ([]*entity.AuditRecord, error) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if f.ProductID != "" {
		add("product_id = $%d", f.ProductID)
	}
	if f.UserID != "" {
		add("user_id = $%d", f.UserID)
	}
	if f.ChangeType != "" {
		add("change_type = $%d", f.ChangeType)
	}
	if f.Kind != "" {
		add("kind = $%d", string(f.Kind))
	}
	if f.From != nil {
		add("created_at >= $%d", *f.From)
	}
	if f.To != nil {
		add("created_at <= $%d", *f.To)
	}

	query := `
		SELECT id, kind, mutation_ref, product_id, user_id, role, change_type,
			quantity, previous_stock, new_stock, reason, created_at
		FROM audit_records`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	args = append(args, f.Limit, f.Offset)
	query += fmt.Sprintf(" ORDER BY created_at DESC, seq DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list audit records: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.AuditRecord, 0)
	for rows.Next() {
		var a entity.AuditRecord
		var kind string
		if err := rows.Scan(&a.ID, &kind, &a.MutationRef, &a.ProductID, &a.UserID, &a.Role, &a.ChangeType,
			&a.Quantity, &a.PreviousStock, &a.NewStock, &a.Reason, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan audit record: %w", err)
		}
		a.Kind = entity.MutationKind(kind)
		list = append(list, &a)
	}
	return list, rows.Err()
}
