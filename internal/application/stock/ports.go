package stock

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/panaderia-api/internal/domain/entity"
	"github.com/jhoicas/panaderia-api/internal/domain/repository"
)

// TxRepos agrupa los repositorios atados a una misma transacción (o al pool, fuera de ella).
type TxRepos struct {
	Products    repository.ProductRepository
	Recipes     repository.RecipeRepository
	Changes     repository.InventoryChangeRepository
	Audit       repository.AuditRepository
	Purchases   repository.PurchaseRepository
	Productions repository.ProductionRepository
	Losses      repository.LossRepository
	Sales       repository.SaleRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error se hace Rollback y ningún efecto es visible.
type TxRunner interface {
	Run(ctx context.Context, fn func(ctx context.Context, repos TxRepos) error) error
}

// StockChange describe el efecto confirmado de una mutación sobre un producto.
type StockChange struct {
	ProductID     string              `json:"product_id"`
	ProductName   string              `json:"product_name"`
	Kind          entity.MutationKind `json:"kind"`
	Ref           string              `json:"ref"`
	PreviousStock decimal.Decimal     `json:"previous_stock"`
	NewStock      decimal.Decimal     `json:"new_stock"`
	BaseUnit      entity.BaseUnit     `json:"base_unit"`
	LowStock      bool                `json:"low_stock"`
}

// Notifier recibe los cambios de stock después del commit. No debe bloquear.
type Notifier interface {
	Publish(changes []StockChange)
}

// Recorder registra métricas del motor.
type Recorder interface {
	ObserveMutation(kind entity.MutationKind, outcome string, elapsed time.Duration)
	SetStockLevel(productID, productName string, level decimal.Decimal)
}

type nopNotifier struct{}

func (nopNotifier) Publish([]StockChange) {}

type nopRecorder struct{}

func (nopRecorder) ObserveMutation(entity.MutationKind, string, time.Duration) {}
func (nopRecorder) SetStockLevel(string, string, decimal.Decimal)              {}
