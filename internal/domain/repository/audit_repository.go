package repository

import (
	"context"
	"time"

	"github.com/jhoicas/panaderia-api/internal/domain/entity"
)

// AuditFilter criterios de consulta del historial. Campos vacíos no filtran.
type AuditFilter struct {
	ProductID  string
	UserID     string
	ChangeType string
	Kind       entity.MutationKind
	From       *time.Time
	To         *time.Time
	Limit      int
	Offset     int
}

// AuditRepository historial append-only: no expone Update ni Delete.
type AuditRepository interface {
	Create(ctx context.Context, record *entity.AuditRecord) error
	// List devuelve registros ordenados por fecha descendente.
	List(ctx context.Context, filter AuditFilter) ([]*entity.AuditRecord, error)
}
