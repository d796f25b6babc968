package repository

import (
	"context"

	"github.com/jhoicas/panaderia-api/internal/domain/entity"
)

// SaleRepository persiste ventas con sus líneas.
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
}
