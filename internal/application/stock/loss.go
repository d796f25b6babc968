package stock

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/panaderia-api/internal/domain"
	"github.com/jhoicas/panaderia-api/internal/domain/entity"
	"github.com/jhoicas/panaderia-api/internal/domain/inventory"
)

// Loss registra una merma. Quantity está en Unit (vacío = unidad base).
type Loss struct {
	ProductID   string
	Quantity    decimal.Decimal
	Unit        string
	Category    string
	Description string
}

func (l *Loss) kind() entity.MutationKind { return entity.KindLoss }
func (l *Loss) capability() Capability    { return CapRecordLoss }

func (l *Loss) validate() error {
	if strings.TrimSpace(l.ProductID) == "" {
		return domain.Invalid("product_id es obligatorio")
	}
	if !l.Quantity.IsPositive() {
		return domain.Invalid("la cantidad debe ser mayor a cero")
	}
	if strings.TrimSpace(l.Category) == "" {
		return domain.Invalid("la categoría de pérdida es obligatoria")
	}
	return nil
}

// RecordLoss registra una pérdida. El stock nunca baja de cero: si la pérdida supera
// lo disponible se descuenta solo lo que hay.
func (e *Engine) RecordLoss(ctx context.Context, actor entity.Actor, in Loss) (*entity.LossRecord, error) {
	out, err := e.Execute(ctx, actor, &in)
	if err != nil {
		return nil, err
	}
	return out.Record.(*entity.LossRecord), nil
}

// ListLosses lista pérdidas, opcionalmente de un producto.
func (e *Engine) ListLosses(ctx context.Context, actor entity.Actor, productID string, limit, offset int) ([]*entity.LossRecord, error) {
	if err := authorize(e.policy, actor, CapRecordLoss); err != nil {
		return nil, err
	}
	return e.repos.Losses.List(ctx, productID, pageLimit(limit), max(offset, 0))
}

// precheck rechaza la categoría que no aplica al tipo de producto antes de abrir la transacción.
func (l *Loss) precheck(ctx context.Context, repos TxRepos) error {
	p, err := repos.Products.GetByID(ctx, l.ProductID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("producto %s: %w", l.ProductID, domain.ErrNotFound)
		}
		return fmt.Errorf("get product %s: %w", l.ProductID, err)
	}
	if !p.Active {
		return fmt.Errorf("producto %s: %w", l.ProductID, domain.ErrNotFound)
	}
	if !entity.LossCategoryValid(l.Category, p.IsIngredient) {
		return domain.Invalid("categoría %q no aplica a %s", l.Category, p.Name)
	}
	return nil
}

func (e *Engine) recordLoss(ctx context.Context, repos TxRepos, l *Ledger, in *Loss) (string, any, error) {
	if err := l.Lock(ctx, in.ProductID); err != nil {
		return "", nil, err
	}
	p := l.Product(in.ProductID)
	if !entity.LossCategoryValid(in.Category, p.IsIngredient) {
		return "", nil, domain.Invalid("categoría %q no aplica a %s", in.Category, p.Name)
	}
	base, err := inventory.Convert(in.Quantity, in.Unit, p.BaseUnit)
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", p.Name, err)
	}

	rec := &entity.LossRecord{
		ID:           uuid.New().String(),
		ProductID:    p.ID,
		Quantity:     in.Quantity,
		Unit:         in.Unit,
		BaseQuantity: base,
		Category:     in.Category,
		Description:  in.Description,
		CostEstimate: inventory.LossCostEstimate(p.Price, in.Quantity),
		UserID:       l.actor.UserID,
		CreatedAt:    l.now,
	}
	if rec.Unit == "" {
		rec.Unit = string(p.BaseUnit)
	}

	reason := "Pérdida: " + in.Category
	ch, err := l.ApplyDeltaFloor(ctx, p.ID, base.Neg(), mark{kind: entity.KindLoss, ref: rec.ID, reason: reason})
	if err != nil {
		return "", nil, err
	}
	if err := repos.Losses.Create(ctx, rec); err != nil {
		return "", nil, fmt.Errorf("create loss record: %w", err)
	}

	applied := ch.PreviousStock.Sub(ch.NewStock)
	if applied.IsPositive() {
		mirror := &entity.InventoryChange{
			ID:        uuid.New().String(),
			Type:      entity.ChangeTypeExit,
			ProductID: p.ID,
			Quantity:  applied,
			Reason:    reason,
			UserID:    l.actor.UserID,
			CreatedAt: l.now,
		}
		if err := repos.Changes.Create(ctx, mirror); err != nil {
			return "", nil, fmt.Errorf("create inventory change: %w", err)
		}
	}
	return rec.ID, rec, nil
}

func pageLimit(limit int) int {
	if limit <= 0 || limit > 200 {
		return 50
	}
	return limit
}
