package stock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/panaderia-api/internal/domain/entity"
	"github.com/jhoicas/panaderia-api/internal/domain/repository"
)

const maxAuditPage = 500

// recordAudit escribe el registro inmutable de un cambio. Solo se llama desde el Ledger,
// con los repositorios de la transacción en curso.
func recordAudit(ctx context.Context, repo repository.AuditRepository, actor entity.Actor, ch StockChange, m mark, now time.Time) error {
	changeType := entity.ChangeTypeEntry
	qty := ch.NewStock.Sub(ch.PreviousStock)
	if qty.IsNegative() || m.exit {
		changeType = entity.ChangeTypeExit
		qty = qty.Abs()
	}
	rec := &entity.AuditRecord{
		ID:            uuid.New().String(),
		Kind:          ch.Kind,
		MutationRef:   ch.Ref,
		ProductID:     ch.ProductID,
		UserID:        actor.UserID,
		Role:          actor.Role,
		ChangeType:    changeType,
		Quantity:      qty,
		PreviousStock: ch.PreviousStock,
		NewStock:      ch.NewStock,
		Reason:        m.reason,
		CreatedAt:     now,
	}
	if err := repo.Create(ctx, rec); err != nil {
		return fmt.Errorf("create audit record: %w", err)
	}
	return nil
}

// QueryAudit consulta el historial, más reciente primero.
func (e *Engine) QueryAudit(ctx context.Context, actor entity.Actor, filter repository.AuditFilter) ([]*entity.AuditRecord, error) {
	if err := authorize(e.policy, actor, CapViewAudit); err != nil {
		return nil, err
	}
	if filter.Limit <= 0 || filter.Limit > maxAuditPage {
		filter.Limit = 100
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return e.repos.Audit.List(ctx, filter)
}
