package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleItem es una línea de venta.
type SaleItem struct {
	ProductID string
	Quantity  decimal.Decimal
	Price     decimal.Decimal
}

// Sale representa una venta con sus líneas.
type Sale struct {
	ID            string
	UserID        string
	PaymentMethod string
	Total         decimal.Decimal
	Items         []SaleItem
	CreatedAt     time.Time
}
