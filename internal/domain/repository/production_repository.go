package repository

import (
	"context"

	"github.com/jhoicas/panaderia-api/internal/domain/entity"
)

// ProductionRepository persiste producciones con sus líneas.
type ProductionRepository interface {
	Create(ctx context.Context, run *entity.ProductionRun) error
}
