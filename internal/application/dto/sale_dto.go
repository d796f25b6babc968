package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/panaderia-api/internal/application/stock"
	"github.com/jhoicas/panaderia-api/internal/domain/entity"
)

// SaleItemRequest línea de venta. Precio 0 usa el precio del producto.
type SaleItemRequest struct {
	ProductID string          `json:"product_id" validate:"required"`
	Quantity  decimal.Decimal `json:"quantity" validate:"gt=0"`
	Price     decimal.Decimal `json:"price" validate:"gte=0"`
}

// SaleRequest body para POST /api/sales.
type SaleRequest struct {
	PaymentMethod string            `json:"payment_method" validate:"omitempty,max=50"`
	Items         []SaleItemRequest `json:"items" validate:"required,min=1,dive"`
}

// ToMutation convierte el request en la mutación del motor.
func (r SaleRequest) ToMutation() stock.SaleDeduction {
	items := make([]entity.SaleItem, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, entity.SaleItem{ProductID: it.ProductID, Quantity: it.Quantity, Price: it.Price})
	}
	return stock.SaleDeduction{PaymentMethod: r.PaymentMethod, Items: items}
}

// SaleItemResponse línea de venta en la salida.
type SaleItemResponse struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

// SaleResponse salida de una venta.
type SaleResponse struct {
	ID            string             `json:"id"`
	UserID        string             `json:"user_id"`
	PaymentMethod string             `json:"payment_method"`
	Total         decimal.Decimal    `json:"total"`
	Items         []SaleItemResponse `json:"items"`
	CreatedAt     time.Time          `json:"created_at"`
}

// FromSale mapea la entidad.
func FromSale(s *entity.Sale) SaleResponse {
	out := SaleResponse{ID: s.ID, UserID: s.UserID, PaymentMethod: s.PaymentMethod, Total: s.Total, CreatedAt: s.CreatedAt}
	for _, it := range s.Items {
		out.Items = append(out.Items, SaleItemResponse{ProductID: it.ProductID, Quantity: it.Quantity, Price: it.Price})
	}
	return out
}
