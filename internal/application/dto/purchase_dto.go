package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/panaderia-api/internal/application/stock"
	"github.com/jhoicas/panaderia-api/internal/domain/entity"
)

// PurchaseItemRequest línea de compra: product_id o nombre.
type PurchaseItemRequest struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name" validate:"required_without=ProductID,max=200"`
	Quantity  decimal.Decimal `json:"quantity" validate:"gt=0"`
	Unit      string          `json:"unit"`
	UnitPrice decimal.Decimal `json:"unit_price" validate:"gte=0"`
}

// CreatePurchaseRequest body para POST /api/purchases.
type CreatePurchaseRequest struct {
	Supplier   string                `json:"supplier" validate:"required,max=200"`
	SupplierID *int64                `json:"supplier_id,omitempty"`
	Items      []PurchaseItemRequest `json:"items" validate:"required,min=1,dive"`
}

// ToMutation convierte el request en la mutación del motor.
func (r CreatePurchaseRequest) ToMutation() stock.PurchaseRequest {
	items := make([]entity.PurchaseItem, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, entity.PurchaseItem{
			ProductID: it.ProductID, Name: it.Name, Quantity: it.Quantity, Unit: it.Unit, UnitPrice: it.UnitPrice,
		})
	}
	return stock.PurchaseRequest{Supplier: r.Supplier, SupplierID: r.SupplierID, Items: items}
}

// PurchaseResponse salida de una compra.
type PurchaseResponse struct {
	ID         string                `json:"id"`
	Supplier   string                `json:"supplier"`
	SupplierID *int64                `json:"supplier_id,omitempty"`
	Items      []entity.PurchaseItem `json:"items"`
	Total      decimal.Decimal       `json:"total"`
	Status     string                `json:"status"`
	CreatedBy  string                `json:"created_by"`
	ApprovedBy string                `json:"approved_by,omitempty"`
	ApprovedAt *time.Time            `json:"approved_at,omitempty"`
	CreatedAt  time.Time             `json:"created_at"`
}

// FromPurchase mapea la entidad.
func FromPurchase(p *entity.Purchase) PurchaseResponse {
	return PurchaseResponse{
		ID: p.ID, Supplier: p.Supplier, SupplierID: p.SupplierID, Items: p.Items, Total: p.Total,
		Status: p.Status, CreatedBy: p.CreatedBy, ApprovedBy: p.ApprovedBy, ApprovedAt: p.ApprovedAt,
		CreatedAt: p.CreatedAt,
	}
}

// PurchaseListQuery filtros de GET /api/purchases.
type PurchaseListQuery struct {
	Status string `query:"status" validate:"omitempty,oneof=Pendiente Aprobada Rechazada"`
	PageRequest
}
