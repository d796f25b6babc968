package repository

import (
	"context"

	"github.com/jhoicas/panaderia-api/internal/domain/entity"
)

// InventoryChangeRepository puerto para ajustes manuales de inventario.
type InventoryChangeRepository interface {
	Create(ctx context.Context, change *entity.InventoryChange) error
}
