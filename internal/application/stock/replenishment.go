package stock

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/panaderia-api/internal/domain/entity"
	"github.com/jhoicas/panaderia-api/internal/domain/repository"
)

// idealStockFactor fija el stock objetivo de reposición en 1.5 veces el umbral de alerta.
var idealStockFactor = decimal.NewFromFloat(1.5)

const lowStockPageSize = 200

// LowStockItem es una sugerencia de reposición para un producto bajo su umbral.
type LowStockItem struct {
	ProductID          string          `json:"product_id"`
	ProductName        string          `json:"product_name"`
	BaseUnit           entity.BaseUnit `json:"base_unit"`
	IsIngredient       bool            `json:"is_ingredient"`
	CurrentStock       decimal.Decimal `json:"current_stock"`
	Threshold          decimal.Decimal `json:"threshold"`
	IdealStock         decimal.Decimal `json:"ideal_stock"`
	SuggestedOrderQty  decimal.Decimal `json:"suggested_order_qty"`
	UnitPrice          decimal.Decimal `json:"unit_price"`
	EstimatedOrderCost decimal.Decimal `json:"estimated_order_cost"`
	Priority           int             `json:"priority"`
}

// LowStockReport lista los productos activos por debajo de su umbral con la cantidad
// sugerida de pedido. Prioridad 1 es el de mayor déficit relativo.
func (e *Engine) LowStockReport(ctx context.Context, actor entity.Actor) ([]LowStockItem, error) {
	if err := authorize(e.policy, actor, CapRequestPurchase); err != nil {
		return nil, err
	}

	var products []*entity.Product
	for offset := 0; ; offset += lowStockPageSize {
		page, err := e.repos.Products.List(ctx, repository.ProductFilter{
			LowStockOnly: true, Limit: lowStockPageSize, Offset: offset,
		})
		if err != nil {
			return nil, err
		}
		products = append(products, page...)
		if len(page) < lowStockPageSize {
			break
		}
	}

	items := make([]LowStockItem, 0, len(products))
	for _, p := range products {
		ideal := p.LowStockThreshold.Mul(idealStockFactor)
		suggested := ideal.Sub(p.Stock)
		if !p.IsIngredient {
			suggested = suggested.Ceil()
		}
		if suggested.IsNegative() {
			suggested = decimal.Zero
		}
		items = append(items, LowStockItem{
			ProductID:          p.ID,
			ProductName:        p.Name,
			BaseUnit:           p.BaseUnit,
			IsIngredient:       p.IsIngredient,
			CurrentStock:       p.Stock,
			Threshold:          p.LowStockThreshold,
			IdealStock:         ideal,
			SuggestedOrderQty:  suggested,
			UnitPrice:          p.Price,
			EstimatedOrderCost: suggested.Mul(p.Price).Round(2),
		})
	}

	// Mayor déficit relativo primero; a igualdad, mayor déficit absoluto.
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		ra, rb := a.CurrentStock.Div(a.Threshold), b.CurrentStock.Div(b.Threshold)
		if !ra.Equal(rb) {
			return ra.LessThan(rb)
		}
		return a.Threshold.Sub(a.CurrentStock).GreaterThan(b.Threshold.Sub(b.CurrentStock))
	})
	for i := range items {
		items[i].Priority = i + 1
	}
	return items, nil
}
