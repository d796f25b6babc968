package stock

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/panaderia-api/internal/domain"
	"github.com/jhoicas/panaderia-api/internal/domain/entity"
	"github.com/jhoicas/panaderia-api/internal/domain/inventory"
)

const defaultPaymentMethod = "efectivo"

// SaleDeduction es una venta: descuenta cada línea del stock del producto vendido.
type SaleDeduction struct {
	PaymentMethod string
	Items         []entity.SaleItem
}

func (s *SaleDeduction) kind() entity.MutationKind { return entity.KindSale }
func (s *SaleDeduction) capability() Capability    { return CapRecordSale }

func (s *SaleDeduction) validate() error {
	if len(s.Items) == 0 {
		return domain.Invalid("la venta debe tener al menos una línea")
	}
	for i, it := range s.Items {
		if strings.TrimSpace(it.ProductID) == "" {
			return domain.Invalid("línea %d: product_id es obligatorio", i+1)
		}
		if !it.Quantity.IsPositive() {
			return domain.Invalid("línea %d: la cantidad debe ser mayor a cero", i+1)
		}
		if it.Price.IsNegative() {
			return domain.Invalid("línea %d: el precio no puede ser negativo", i+1)
		}
	}
	return nil
}

// RecordSale registra una venta. Todas las líneas se bloquean y verifican antes de descontar.
func (e *Engine) RecordSale(ctx context.Context, actor entity.Actor, in SaleDeduction) (*entity.Sale, error) {
	out, err := e.Execute(ctx, actor, &in)
	if err != nil {
		return nil, err
	}
	return out.Record.(*entity.Sale), nil
}

func (e *Engine) sell(ctx context.Context, repos TxRepos, l *Ledger, in *SaleDeduction) (string, any, error) {
	ids := make([]string, 0, len(in.Items))
	for _, it := range in.Items {
		ids = append(ids, it.ProductID)
	}
	if err := l.Lock(ctx, ids...); err != nil {
		return "", nil, err
	}

	sale := &entity.Sale{
		ID:            uuid.New().String(),
		UserID:        l.actor.UserID,
		PaymentMethod: in.PaymentMethod,
		Items:         make([]entity.SaleItem, 0, len(in.Items)),
		CreatedAt:     l.now,
	}
	if sale.PaymentMethod == "" {
		sale.PaymentMethod = defaultPaymentMethod
	}

	reqs := make([]inventory.Requirement, 0, len(in.Items))
	for _, it := range in.Items {
		p := l.Product(it.ProductID)
		if _, err := toBase(p, it.Quantity, ""); err != nil {
			return "", nil, err
		}
		if it.Price.IsZero() {
			it.Price = p.Price
		}
		sale.Items = append(sale.Items, it)
		reqs = append(reqs, inventory.Requirement{ProductID: p.ID, ProductName: p.Name, Quantity: it.Quantity})
	}
	if err := l.Check(reqs); err != nil {
		return "", nil, err
	}

	m := mark{kind: entity.KindSale, ref: sale.ID, reason: "Venta"}
	for _, it := range sale.Items {
		if _, err := l.ApplyDelta(ctx, it.ProductID, it.Quantity.Neg(), m); err != nil {
			return "", nil, err
		}
	}
	sale.Total = inventory.SaleTotal(sale.Items)
	if err := repos.Sales.Create(ctx, sale); err != nil {
		return "", nil, fmt.Errorf("create sale: %w", err)
	}
	return sale.ID, sale, nil
}
