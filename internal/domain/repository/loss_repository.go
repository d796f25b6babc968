package repository

import (
	"context"

	"github.com/jhoicas/panaderia-api/internal/domain/entity"
)

// LossRepository persiste registros de pérdida.
type LossRepository interface {
	Create(ctx context.Context, loss *entity.LossRecord) error
	List(ctx context.Context, productID string, limit, offset int) ([]*entity.LossRecord, error)
}
