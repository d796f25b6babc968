package stock

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/panaderia-api/internal/domain"
	"github.com/jhoicas/panaderia-api/internal/domain/entity"
	"github.com/jhoicas/panaderia-api/internal/domain/inventory"
)

// mark identifica el origen de un movimiento para el historial.
type mark struct {
	kind   entity.MutationKind
	ref    string
	reason string
	// exit fija el tipo Salida en el historial aunque el stock no cambie.
	exit bool
}

// Ledger es la única vía para modificar Product.Stock. Vive dentro de una transacción:
// bloquea filas, verifica suficiencia y aplica deltas dejando un AuditRecord por cada cambio.
type Ledger struct {
	repos   TxRepos
	actor   entity.Actor
	now     time.Time
	locked  map[string]*entity.Product
	changes []StockChange
}

func newLedger(repos TxRepos, actor entity.Actor, now time.Time) *Ledger {
	return &Ledger{
		repos:  repos,
		actor:  actor,
		now:    now,
		locked: make(map[string]*entity.Product),
	}
}

// Lock adquiere SELECT ... FOR UPDATE sobre cada producto en orden ascendente de ID.
// Todas las operaciones bloquean en el mismo orden, así dos transacciones no se esperan en ciclo.
// Un producto inexistente o inactivo aborta con ErrNotFound.
func (l *Ledger) Lock(ctx context.Context, ids ...string) error {
	pending := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := l.locked[id]; ok {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		pending = append(pending, id)
	}
	sort.Strings(pending)

	for _, id := range pending {
		p, err := l.repos.Products.GetForUpdate(ctx, id)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return fmt.Errorf("producto %s: %w", id, domain.ErrNotFound)
			}
			return fmt.Errorf("lock product %s: %w", id, err)
		}
		if !p.Active {
			return fmt.Errorf("producto %s: %w", id, domain.ErrNotFound)
		}
		l.locked[id] = p
	}
	return nil
}

// Product devuelve el producto bloqueado (con el stock vigente dentro de la transacción).
func (l *Ledger) Product(id string) *entity.Product {
	return l.locked[id]
}

// Check verifica que el stock alcance para todos los requerimientos sin modificar nada.
// Agrupa por producto y reporta todos los faltantes, no solo el primero.
func (l *Ledger) Check(reqs []inventory.Requirement) error {
	totals := make(map[string]decimal.Decimal, len(reqs))
	order := make([]string, 0, len(reqs))
	for _, r := range reqs {
		if _, ok := totals[r.ProductID]; !ok {
			order = append(order, r.ProductID)
		}
		totals[r.ProductID] = totals[r.ProductID].Add(r.Quantity)
	}

	var shortages []domain.Shortage
	for _, id := range order {
		p, ok := l.locked[id]
		if !ok {
			return fmt.Errorf("check: producto %s no bloqueado", id)
		}
		required := totals[id]
		if p.Stock.LessThan(required) {
			shortages = append(shortages, domain.Shortage{
				ProductID:   id,
				ProductName: p.Name,
				Required:    required,
				Available:   p.Stock,
				Shortfall:   required.Sub(p.Stock),
			})
		}
	}
	if len(shortages) > 0 {
		return &domain.InsufficientStockError{Shortages: shortages}
	}
	return nil
}

// ApplyDelta suma delta (negativo para salidas) al stock del producto bloqueado.
// Falla con InsufficientStockError si el resultado quedaría negativo.
func (l *Ledger) ApplyDelta(ctx context.Context, id string, delta decimal.Decimal, m mark) (StockChange, error) {
	p, ok := l.locked[id]
	if !ok {
		return StockChange{}, fmt.Errorf("apply: producto %s no bloqueado", id)
	}
	next := p.Stock.Add(delta)
	if next.IsNegative() {
		return StockChange{}, &domain.InsufficientStockError{Shortages: []domain.Shortage{{
			ProductID:   id,
			ProductName: p.Name,
			Required:    delta.Neg(),
			Available:   p.Stock,
			Shortfall:   next.Neg(),
		}}}
	}
	return l.write(ctx, p, next, m)
}

// ApplyDeltaFloor aplica una salida recortando en cero. Solo para pérdidas.
func (l *Ledger) ApplyDeltaFloor(ctx context.Context, id string, delta decimal.Decimal, m mark) (StockChange, error) {
	p, ok := l.locked[id]
	if !ok {
		return StockChange{}, fmt.Errorf("apply: producto %s no bloqueado", id)
	}
	next := p.Stock.Add(delta)
	if next.IsNegative() {
		next = decimal.Zero
	}
	m.exit = delta.IsNegative()
	return l.write(ctx, p, next, m)
}

// SetStock fija el stock a un valor contado. Si no hay diferencia no escribe nada.
func (l *Ledger) SetStock(ctx context.Context, id string, value decimal.Decimal, m mark) (StockChange, error) {
	p, ok := l.locked[id]
	if !ok {
		return StockChange{}, fmt.Errorf("set: producto %s no bloqueado", id)
	}
	if value.IsNegative() {
		return StockChange{}, domain.Invalid("el stock contado no puede ser negativo")
	}
	if value.Equal(p.Stock) {
		return l.change(p, p.Stock, m), nil
	}
	return l.write(ctx, p, value, m)
}

func (l *Ledger) write(ctx context.Context, p *entity.Product, next decimal.Decimal, m mark) (StockChange, error) {
	if err := l.repos.Products.UpdateStock(ctx, p.ID, next); err != nil {
		return StockChange{}, fmt.Errorf("update stock %s: %w", p.ID, err)
	}
	ch := l.change(p, next, m)
	if err := recordAudit(ctx, l.repos.Audit, l.actor, ch, m, l.now); err != nil {
		return StockChange{}, err
	}
	p.Stock = next
	p.UpdatedAt = l.now
	l.changes = append(l.changes, ch)
	return ch, nil
}

func (l *Ledger) change(p *entity.Product, next decimal.Decimal, m mark) StockChange {
	return StockChange{
		ProductID:     p.ID,
		ProductName:   p.Name,
		Kind:          m.kind,
		Ref:           m.ref,
		PreviousStock: p.Stock,
		NewStock:      next,
		BaseUnit:      p.BaseUnit,
		LowStock:      p.LowStockThreshold.IsPositive() && next.LessThan(p.LowStockThreshold),
	}
}

// Changes devuelve los cambios aplicados en orden.
func (l *Ledger) Changes() []StockChange {
	return l.changes
}
