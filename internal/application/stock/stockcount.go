package stock

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/panaderia-api/internal/domain"
	"github.com/jhoicas/panaderia-api/internal/domain/entity"
)

// CountLine es el resultado del conteo físico de un producto.
type CountLine struct {
	ProductID string
	Counted   decimal.Decimal
	Unit      string
}

// StockCount concilia el stock con un conteo físico.
type StockCount struct {
	Lines  []CountLine
	Reason string
}

// CountResult resume la conciliación por producto.
type CountResult struct {
	Ref   string        `json:"ref"`
	Lines []StockChange `json:"lines"`
}

func (s *StockCount) kind() entity.MutationKind { return entity.KindStockCount }
func (s *StockCount) capability() Capability    { return CapAdjustInventory }

func (s *StockCount) validate() error {
	if len(s.Lines) == 0 {
		return domain.Invalid("el conteo debe tener al menos una línea")
	}
	seen := make(map[string]struct{}, len(s.Lines))
	for i, ln := range s.Lines {
		if strings.TrimSpace(ln.ProductID) == "" {
			return domain.Invalid("línea %d: product_id es obligatorio", i+1)
		}
		if ln.Counted.IsNegative() {
			return domain.Invalid("línea %d: la cantidad contada no puede ser negativa", i+1)
		}
		if _, dup := seen[ln.ProductID]; dup {
			return domain.Invalid("línea %d: producto repetido", i+1)
		}
		seen[ln.ProductID] = struct{}{}
	}
	return nil
}

// ReconcileStockCount fija el stock de cada producto al valor contado.
// Las diferencias quedan en el historial como Entrada o Salida.
func (e *Engine) ReconcileStockCount(ctx context.Context, actor entity.Actor, in StockCount) (*CountResult, error) {
	out, err := e.Execute(ctx, actor, &in)
	if err != nil {
		return nil, err
	}
	return out.Record.(*CountResult), nil
}

func (e *Engine) reconcile(ctx context.Context, repos TxRepos, l *Ledger, in *StockCount) (string, any, error) {
	ids := make([]string, 0, len(in.Lines))
	for _, ln := range in.Lines {
		ids = append(ids, ln.ProductID)
	}
	if err := l.Lock(ctx, ids...); err != nil {
		return "", nil, err
	}

	reason := in.Reason
	if reason == "" {
		reason = "Conteo físico"
	}
	res := &CountResult{Ref: uuid.New().String(), Lines: make([]StockChange, 0, len(in.Lines))}
	m := mark{kind: entity.KindStockCount, ref: res.Ref, reason: reason}

	for _, ln := range in.Lines {
		p := l.Product(ln.ProductID)
		counted, err := toBase(p, ln.Counted, ln.Unit)
		if err != nil {
			return "", nil, err
		}
		ch, err := l.SetStock(ctx, p.ID, counted, m)
		if err != nil {
			return "", nil, err
		}
		res.Lines = append(res.Lines, ch)

		diff := ch.NewStock.Sub(ch.PreviousStock)
		if diff.IsZero() {
			continue
		}
		change := &entity.InventoryChange{
			ID:        uuid.New().String(),
			Type:      entity.ChangeTypeEntry,
			ProductID: p.ID,
			Quantity:  diff.Abs(),
			Reason:    reason,
			UserID:    l.actor.UserID,
			CreatedAt: l.now,
		}
		if diff.IsNegative() {
			change.Type = entity.ChangeTypeExit
		}
		if err := repos.Changes.Create(ctx, change); err != nil {
			return "", nil, fmt.Errorf("create inventory change: %w", err)
		}
	}
	return res.Ref, res, nil
}
