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

// PurchaseRequest crea una compra. Quien tiene auto_approve_purchase la recibe de inmediato;
// el resto la deja Pendiente sin efecto en stock.
type PurchaseRequest struct {
	Supplier   string
	SupplierID *int64
	Items      []entity.PurchaseItem
}

func (r *PurchaseRequest) kind() entity.MutationKind { return kindPurchaseRequest }
func (r *PurchaseRequest) capability() Capability    { return CapRequestPurchase }

func (r *PurchaseRequest) validate() error {
	r.Supplier = strings.TrimSpace(r.Supplier)
	if r.Supplier == "" {
		return domain.Invalid("el proveedor es obligatorio")
	}
	if len(r.Items) == 0 {
		return domain.Invalid("la compra debe tener al menos una línea")
	}
	for i := range r.Items {
		it := &r.Items[i]
		it.Name = strings.TrimSpace(it.Name)
		it.Unit = inventory.NormalizeUnit(it.Unit)
		if it.ProductID == "" && it.Name == "" {
			return domain.Invalid("línea %d: se requiere product_id o nombre", i+1)
		}
		if !it.Quantity.IsPositive() {
			return domain.Invalid("línea %d: la cantidad debe ser mayor a cero", i+1)
		}
		if it.UnitPrice.IsNegative() {
			return domain.Invalid("línea %d: el precio unitario no puede ser negativo", i+1)
		}
	}
	return nil
}

// PurchaseDecision aprueba o rechaza una compra pendiente.
type PurchaseDecision struct {
	PurchaseID string
	Approve    bool
}

func (d *PurchaseDecision) kind() entity.MutationKind {
	if d.Approve {
		return entity.KindPurchaseReceipt
	}
	return kindPurchaseDecision
}

func (d *PurchaseDecision) capability() Capability { return CapApprovePurchase }

func (d *PurchaseDecision) validate() error {
	if strings.TrimSpace(d.PurchaseID) == "" {
		return domain.Invalid("id de compra obligatorio")
	}
	return nil
}

// CreatePurchase registra una compra.
func (e *Engine) CreatePurchase(ctx context.Context, actor entity.Actor, in PurchaseRequest) (*entity.Purchase, error) {
	out, err := e.Execute(ctx, actor, &in)
	if err != nil {
		return nil, err
	}
	return out.Record.(*entity.Purchase), nil
}

// ApprovePurchase aprueba una compra pendiente y recibe sus ítems en stock.
// Una compra ya aprobada o rechazada devuelve ErrInvalidTransition sin efectos.
func (e *Engine) ApprovePurchase(ctx context.Context, actor entity.Actor, id string) (*entity.Purchase, error) {
	out, err := e.Execute(ctx, actor, &PurchaseDecision{PurchaseID: id, Approve: true})
	if err != nil {
		return nil, err
	}
	return out.Record.(*entity.Purchase), nil
}

// RejectPurchase rechaza una compra pendiente. No toca stock.
func (e *Engine) RejectPurchase(ctx context.Context, actor entity.Actor, id string) (*entity.Purchase, error) {
	out, err := e.Execute(ctx, actor, &PurchaseDecision{PurchaseID: id, Approve: false})
	if err != nil {
		return nil, err
	}
	return out.Record.(*entity.Purchase), nil
}

// GetPurchase devuelve una compra.
func (e *Engine) GetPurchase(ctx context.Context, actor entity.Actor, id string) (*entity.Purchase, error) {
	if err := authorize(e.policy, actor, CapRequestPurchase); err != nil {
		return nil, err
	}
	return e.repos.Purchases.GetByID(ctx, id)
}

// ListPurchases lista compras, opcionalmente por estado.
func (e *Engine) ListPurchases(ctx context.Context, actor entity.Actor, status string, limit, offset int) ([]*entity.Purchase, error) {
	if err := authorize(e.policy, actor, CapRequestPurchase); err != nil {
		return nil, err
	}
	switch status {
	case "", entity.PurchaseStatusPending, entity.PurchaseStatusApproved, entity.PurchaseStatusRejected:
	default:
		return nil, domain.Invalid("estado %q no válido", status)
	}
	return e.repos.Purchases.List(ctx, status, pageLimit(limit), max(offset, 0))
}

func (e *Engine) requestPurchase(ctx context.Context, repos TxRepos, l *Ledger, in *PurchaseRequest) (string, any, error) {
	p := &entity.Purchase{
		ID:         uuid.New().String(),
		Supplier:   in.Supplier,
		SupplierID: in.SupplierID,
		Items:      append([]entity.PurchaseItem(nil), in.Items...),
		Total:      inventory.PurchaseTotal(in.Items),
		Status:     entity.PurchaseStatusPending,
		CreatedBy:  l.actor.UserID,
		CreatedAt:  l.now,
	}
	if e.policy.Allows(l.actor, CapAutoApprovePurchase) {
		if err := receive(ctx, repos, l, p); err != nil {
			return "", nil, err
		}
		approvedAt := l.now
		p.Status = entity.PurchaseStatusApproved
		p.ApprovedBy = l.actor.UserID
		p.ApprovedAt = &approvedAt
	}
	if err := repos.Purchases.Create(ctx, p); err != nil {
		return "", nil, fmt.Errorf("create purchase: %w", err)
	}
	return p.ID, p, nil
}

func (e *Engine) decidePurchase(ctx context.Context, repos TxRepos, l *Ledger, in *PurchaseDecision) (string, any, error) {
	p, err := repos.Purchases.GetForUpdate(ctx, in.PurchaseID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", nil, fmt.Errorf("compra %s: %w", in.PurchaseID, domain.ErrNotFound)
		}
		return "", nil, fmt.Errorf("lock purchase %s: %w", in.PurchaseID, err)
	}
	if !p.IsPending() {
		return "", nil, fmt.Errorf("compra %s en estado %s: %w", p.ID, p.Status, domain.ErrInvalidTransition)
	}

	decidedAt := l.now
	p.ApprovedBy = l.actor.UserID
	p.ApprovedAt = &decidedAt
	p.Status = entity.PurchaseStatusRejected
	if in.Approve {
		if err := receive(ctx, repos, l, p); err != nil {
			return "", nil, err
		}
		p.Status = entity.PurchaseStatusApproved
	}
	if err := repos.Purchases.UpdateStatus(ctx, p); err != nil {
		return "", nil, fmt.Errorf("update purchase: %w", err)
	}
	return p.ID, p, nil
}

// receive acredita cada ítem de la compra. Las líneas sin product_id se resuelven por nombre
// y, si no existe un producto con ese nombre, se crea como insumo.
func receive(ctx context.Context, repos TxRepos, l *Ledger, p *entity.Purchase) error {
	ids := make([]string, 0, len(p.Items))
	for i := range p.Items {
		it := &p.Items[i]
		if it.ProductID == "" {
			template := &entity.Product{
				ID:           uuid.New().String(),
				Name:         it.Name,
				NameKey:      inventory.NameKey(it.Name),
				Price:        decimal.Zero,
				BaseUnit:     inventory.InferBaseUnit(it.Unit),
				IsIngredient: true,
				Category:     entity.CategoryIngredient,
				RecipeYield:  1,
				Active:       true,
				CreatedAt:    l.now,
				UpdatedAt:    l.now,
			}
			got, _, err := repos.Products.GetOrCreateByName(ctx, template)
			if err != nil {
				return fmt.Errorf("resolve product %q: %w", it.Name, err)
			}
			it.ProductID = got.ID
		}
		ids = append(ids, it.ProductID)
	}
	if err := l.Lock(ctx, ids...); err != nil {
		return err
	}

	m := mark{kind: entity.KindPurchaseReceipt, ref: p.ID, reason: "Compra a " + p.Supplier}
	for i := range p.Items {
		it := &p.Items[i]
		prod := l.Product(it.ProductID)
		if it.Name == "" {
			it.Name = prod.Name
		}
		qty, err := toBase(prod, it.Quantity, it.Unit)
		if err != nil {
			return err
		}
		if _, err := l.ApplyDelta(ctx, prod.ID, qty, m); err != nil {
			return err
		}
	}
	return nil
}
