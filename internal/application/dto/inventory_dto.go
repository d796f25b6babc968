package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/panaderia-api/internal/application/stock"
	"github.com/jhoicas/panaderia-api/internal/domain/entity"
)

// AdjustmentRequest body para POST /api/inventory/adjustments.
type AdjustmentRequest struct {
	ProductID string          `json:"product_id" validate:"required"`
	Type      string          `json:"type" validate:"required,oneof=Entrada Salida"`
	Quantity  decimal.Decimal `json:"quantity" validate:"gt=0"`
	Unit      string          `json:"unit,omitempty" validate:"omitempty,max=20"`
	Reason    string          `json:"reason" validate:"max=500"`
}

// ToMutation convierte el request en la mutación del motor.
func (r AdjustmentRequest) ToMutation() stock.Adjustment {
	return stock.Adjustment{ProductID: r.ProductID, Type: r.Type, Quantity: r.Quantity, Unit: r.Unit, Reason: r.Reason}
}

// InventoryChangeResponse salida de un ajuste.
type InventoryChangeResponse struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	Reason    string          `json:"reason"`
	UserID    string          `json:"user_id"`
	CreatedAt time.Time       `json:"created_at"`
}

// FromInventoryChange mapea la entidad.
func FromInventoryChange(c *entity.InventoryChange) InventoryChangeResponse {
	return InventoryChangeResponse{
		ID: c.ID, Type: c.Type, ProductID: c.ProductID, Quantity: c.Quantity,
		Reason: c.Reason, UserID: c.UserID, CreatedAt: c.CreatedAt,
	}
}

// StockCountLineRequest línea de conteo físico.
type StockCountLineRequest struct {
	ProductID string          `json:"product_id" validate:"required"`
	Counted   decimal.Decimal `json:"counted" validate:"gte=0"`
	Unit      string          `json:"unit,omitempty"`
}

// StockCountRequest body para POST /api/inventory/stock-counts.
type StockCountRequest struct {
	Reason string                  `json:"reason" validate:"max=500"`
	Lines  []StockCountLineRequest `json:"lines" validate:"required,min=1,dive"`
}

// ToMutation convierte el request en la mutación del motor.
func (r StockCountRequest) ToMutation() stock.StockCount {
	lines := make([]stock.CountLine, 0, len(r.Lines))
	for _, l := range r.Lines {
		lines = append(lines, stock.CountLine{ProductID: l.ProductID, Counted: l.Counted, Unit: l.Unit})
	}
	return stock.StockCount{Lines: lines, Reason: r.Reason}
}

// AuditQuery filtros de GET /api/inventory/audit.
type AuditQuery struct {
	ProductID  string `query:"product_id"`
	UserID     string `query:"user_id"`
	ChangeType string `query:"change_type" validate:"omitempty,oneof=Entrada Salida"`
	Kind       string `query:"kind"`
	From       string `query:"from" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	To         string `query:"to" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	PageRequest
}

// AuditRecordResponse salida del historial.
type AuditRecordResponse struct {
	ID            string          `json:"id"`
	Kind          string          `json:"kind"`
	MutationRef   string          `json:"mutation_ref"`
	ProductID     string          `json:"product_id"`
	UserID        string          `json:"user_id"`
	Role          string          `json:"role"`
	ChangeType    string          `json:"change_type"`
	Quantity      decimal.Decimal `json:"quantity"`
	PreviousStock decimal.Decimal `json:"previous_stock"`
	NewStock      decimal.Decimal `json:"new_stock"`
	Reason        string          `json:"reason"`
	CreatedAt     time.Time       `json:"created_at"`
}

// FromAuditRecord mapea la entidad.
func FromAuditRecord(a *entity.AuditRecord) AuditRecordResponse {
	return AuditRecordResponse{
		ID: a.ID, Kind: string(a.Kind), MutationRef: a.MutationRef, ProductID: a.ProductID,
		UserID: a.UserID, Role: a.Role, ChangeType: a.ChangeType, Quantity: a.Quantity,
		PreviousStock: a.PreviousStock, NewStock: a.NewStock, Reason: a.Reason, CreatedAt: a.CreatedAt,
	}
}

// AuditListResponse lista paginada del historial.
type AuditListResponse struct {
	Items []AuditRecordResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}
