package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MutationKind identifica el disparador de una mutación de stock.
type MutationKind string

// Tipos de mutación.
const (
	KindEntry           MutationKind = "entry"
	KindExit            MutationKind = "exit"
	KindSale            MutationKind = "sale"
	KindPurchaseReceipt MutationKind = "purchase_receipt"
	KindProduction      MutationKind = "production"
	KindLoss            MutationKind = "loss"
	KindInitialStock    MutationKind = "initial_stock"
	KindStockCount      MutationKind = "stock_count"
)

// AuditRecord es una entrada inmutable del historial de stock.
type AuditRecord struct {
	ID            string
	Kind          MutationKind
	MutationRef   string // id del cambio, venta, compra, producción o pérdida que lo originó
	ProductID     string
	UserID        string
	Role          string
	ChangeType    string // Entrada | Salida
	Quantity      decimal.Decimal
	PreviousStock decimal.Decimal
	NewStock      decimal.Decimal
	Reason        string
	CreatedAt     time.Time
}
