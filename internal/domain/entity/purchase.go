package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una compra.
const (
	PurchaseStatusPending  = "Pendiente"
	PurchaseStatusApproved = "Aprobada"
	PurchaseStatusRejected = "Rechazada"
)

// PurchaseItem es una línea de compra. ProductID puede venir vacío si solo se conoce el nombre.
type PurchaseItem struct {
	ProductID string          `json:"product_id,omitempty"`
	Name      string          `json:"name"`
	Quantity  decimal.Decimal `json:"quantity"`
	Unit      string          `json:"unit"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// Purchase representa una compra a proveedor con su ciclo de aprobación.
type Purchase struct {
	ID         string
	Supplier   string
	SupplierID *int64
	Items      []PurchaseItem
	Total      decimal.Decimal
	Status     string
	CreatedBy  string
	ApprovedBy string
	ApprovedAt *time.Time
	CreatedAt  time.Time
}

// IsPending indica si la compra aún admite aprobación o rechazo.
func (p *Purchase) IsPending() bool { return p.Status == PurchaseStatusPending }
