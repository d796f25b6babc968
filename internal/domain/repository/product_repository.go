package repository

import (
	"context"

	"github.com/jhoicas/panaderia-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// ProductFilter filtros para listar productos.
type ProductFilter struct {
	IngredientsOnly *bool
	IncludeInactive bool
	// LowStockOnly deja solo productos con umbral positivo y stock por debajo de él.
	LowStockOnly bool
	Limit        int
	Offset       int
}

// ProductRepository puerto de persistencia de productos.
// UpdateStock solo debe invocarse desde el ledger de stock, dentro de una transacción
// que ya tenga la fila bloqueada con GetForUpdate.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	// GetOrCreateByName busca un producto activo por NameKey; si no existe inserta template.
	// Devuelve el producto y true si fue creado.
	GetOrCreateByName(ctx context.Context, template *entity.Product) (*entity.Product, bool, error)
	UpdateStock(ctx context.Context, id string, stock decimal.Decimal) error
	SoftDelete(ctx context.Context, id string) error
	List(ctx context.Context, filter ProductFilter) ([]*entity.Product, error)
}
