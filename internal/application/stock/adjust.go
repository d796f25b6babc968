package stock

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/panaderia-api/internal/domain"
	"github.com/jhoicas/panaderia-api/internal/domain/entity"
	"github.com/jhoicas/panaderia-api/internal/domain/inventory"
)

// Adjustment es una entrada o salida manual de inventario.
// Unit es opcional; vacío significa la unidad base del producto.
type Adjustment struct {
	ProductID string
	Type      string // Entrada | Salida
	Quantity  decimal.Decimal
	Unit      string
	Reason    string
}

func (a *Adjustment) kind() entity.MutationKind {
	if a.Type == entity.ChangeTypeExit {
		return entity.KindExit
	}
	return entity.KindEntry
}

func (a *Adjustment) capability() Capability { return CapAdjustInventory }

func (a *Adjustment) validate() error {
	if strings.TrimSpace(a.ProductID) == "" {
		return domain.Invalid("product_id es obligatorio")
	}
	if a.Type != entity.ChangeTypeEntry && a.Type != entity.ChangeTypeExit {
		return domain.Invalid("tipo de ajuste %q no válido", a.Type)
	}
	if !a.Quantity.IsPositive() {
		return domain.Invalid("la cantidad debe ser mayor a cero")
	}
	return nil
}

// AdjustInventory registra una entrada o salida manual.
func (e *Engine) AdjustInventory(ctx context.Context, actor entity.Actor, in Adjustment) (*entity.InventoryChange, error) {
	out, err := e.Execute(ctx, actor, &in)
	if err != nil {
		return nil, err
	}
	return out.Record.(*entity.InventoryChange), nil
}

func (e *Engine) adjust(ctx context.Context, repos TxRepos, l *Ledger, in *Adjustment) (string, any, error) {
	if err := l.Lock(ctx, in.ProductID); err != nil {
		return "", nil, err
	}
	p := l.Product(in.ProductID)

	qty, err := toBase(p, in.Quantity, in.Unit)
	if err != nil {
		return "", nil, err
	}

	change := &entity.InventoryChange{
		ID:        uuid.New().String(),
		Type:      in.Type,
		ProductID: p.ID,
		Quantity:  qty,
		Reason:    in.Reason,
		UserID:    l.actor.UserID,
		CreatedAt: l.now,
	}

	delta := qty
	if in.Type == entity.ChangeTypeExit {
		if err := l.Check([]inventory.Requirement{{ProductID: p.ID, ProductName: p.Name, Quantity: qty}}); err != nil {
			return "", nil, err
		}
		delta = qty.Neg()
	}
	if _, err := l.ApplyDelta(ctx, p.ID, delta, mark{kind: in.kind(), ref: change.ID, reason: in.Reason}); err != nil {
		return "", nil, err
	}
	if err := repos.Changes.Create(ctx, change); err != nil {
		return "", nil, fmt.Errorf("create inventory change: %w", err)
	}
	return change.ID, change, nil
}

// toBase convierte a la unidad base del producto. Los productos que no son insumo
// se cuentan por piezas y solo admiten cantidades enteras.
func toBase(p *entity.Product, qty decimal.Decimal, unit string) (decimal.Decimal, error) {
	base, err := inventory.Convert(qty, unit, p.BaseUnit)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s: %w", p.Name, err)
	}
	if !p.IsIngredient && !isWhole(base) {
		return decimal.Zero, domain.Invalid("%s solo admite cantidades enteras", p.Name)
	}
	return base, nil
}

func isWhole(d decimal.Decimal) bool {
	return d.Equal(d.Truncate(0))
}
