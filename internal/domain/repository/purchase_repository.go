package repository

import (
	"context"

	"github.com/jhoicas/panaderia-api/internal/domain/entity"
)

// PurchaseRepository puerto de persistencia de compras.
type PurchaseRepository interface {
	Create(ctx context.Context, purchase *entity.Purchase) error
	GetByID(ctx context.Context, id string) (*entity.Purchase, error)
	// GetForUpdate bloquea la fila de la compra hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.Purchase, error)
	// UpdateStatus persiste estado, aprobador e ítems (los ítems pueden ganar ProductID al recibirse).
	UpdateStatus(ctx context.Context, purchase *entity.Purchase) error
	List(ctx context.Context, status string, limit, offset int) ([]*entity.Purchase, error)
}
