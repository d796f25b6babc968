package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductionItem es una línea producida.
type ProductionItem struct {
	ProductID string
	Quantity  decimal.Decimal
}

// ProductionRun registra una producción ya aplicada al stock.
type ProductionRun struct {
	ID         string
	UserID     string
	TotalUnits decimal.Decimal
	Items      []ProductionItem
	CreatedAt  time.Time
}
