package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/panaderia-api/internal/application/stock"
	"github.com/jhoicas/panaderia-api/internal/domain/entity"
)

// ProductionItemRequest producto y cantidad a producir.
type ProductionItemRequest struct {
	ProductID string          `json:"product_id" validate:"required"`
	Quantity  decimal.Decimal `json:"quantity" validate:"gt=0"`
}

// ProductionRequest body para POST /api/production.
type ProductionRequest struct {
	Items []ProductionItemRequest `json:"items" validate:"required,min=1,dive"`
}

// ToMutation convierte el request en la mutación del motor.
func (r ProductionRequest) ToMutation() stock.Production {
	items := make([]entity.ProductionItem, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, entity.ProductionItem{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	return stock.Production{Items: items}
}

// ProductionResponse salida de una producción.
type ProductionResponse struct {
	ID         string                  `json:"id"`
	UserID     string                  `json:"user_id"`
	TotalUnits decimal.Decimal         `json:"total_units"`
	Items      []ProductionItemRequest `json:"items"`
	CreatedAt  time.Time               `json:"created_at"`
}

// FromProductionRun mapea la entidad.
func FromProductionRun(r *entity.ProductionRun) ProductionResponse {
	out := ProductionResponse{ID: r.ID, UserID: r.UserID, TotalUnits: r.TotalUnits, CreatedAt: r.CreatedAt}
	for _, it := range r.Items {
		out.Items = append(out.Items, ProductionItemRequest{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	return out
}
