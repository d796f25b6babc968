package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de cambio de inventario.
const (
	ChangeTypeEntry = "Entrada"
	ChangeTypeExit  = "Salida"
)

// InventoryChange registra un ajuste manual de inventario (o el reflejo de una pérdida).
type InventoryChange struct {
	ID        string
	Type      string
	ProductID string
	Quantity  decimal.Decimal // siempre positiva, en unidad base
	Reason    string
	UserID    string
	CreatedAt time.Time
}
