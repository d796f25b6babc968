package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/panaderia-api/internal/application/stock"
	"github.com/jhoicas/panaderia-api/internal/domain/entity"
)

// LossRequest body para POST /api/losses.
type LossRequest struct {
	ProductID   string          `json:"product_id" validate:"required"`
	Quantity    decimal.Decimal `json:"quantity" validate:"gt=0"`
	Unit        string          `json:"unit"`
	Category    string          `json:"category" validate:"required"`
	Description string          `json:"description" validate:"max=500"`
}

// ToMutation convierte el request en la mutación del motor.
func (r LossRequest) ToMutation() stock.Loss {
	return stock.Loss{ProductID: r.ProductID, Quantity: r.Quantity, Unit: r.Unit, Category: r.Category, Description: r.Description}
}

// LossResponse salida de una pérdida.
type LossResponse struct {
	ID           string          `json:"id"`
	ProductID    string          `json:"product_id"`
	Quantity     decimal.Decimal `json:"quantity"`
	Unit         string          `json:"unit"`
	BaseQuantity decimal.Decimal `json:"base_quantity"`
	Category     string          `json:"category"`
	Description  string          `json:"description"`
	CostEstimate decimal.Decimal `json:"cost_estimate"`
	UserID       string          `json:"user_id"`
	CreatedAt    time.Time       `json:"created_at"`
}

// FromLossRecord mapea la entidad.
func FromLossRecord(l *entity.LossRecord) LossResponse {
	return LossResponse{
		ID: l.ID, ProductID: l.ProductID, Quantity: l.Quantity, Unit: l.Unit, BaseQuantity: l.BaseQuantity,
		Category: l.Category, Description: l.Description, CostEstimate: l.CostEstimate,
		UserID: l.UserID, CreatedAt: l.CreatedAt,
	}
}

// LossListQuery filtros de GET /api/losses.
type LossListQuery struct {
	ProductID string `query:"product_id"`
	PageRequest
}
