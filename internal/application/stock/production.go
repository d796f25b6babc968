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

// Production produce uno o más productos consumiendo los insumos de su receta.
type Production struct {
	Items []entity.ProductionItem
}

func (p *Production) kind() entity.MutationKind { return entity.KindProduction }
func (p *Production) capability() Capability    { return CapProduce }

func (p *Production) validate() error {
	if len(p.Items) == 0 {
		return domain.Invalid("la producción debe tener al menos un producto")
	}
	for i, it := range p.Items {
		if strings.TrimSpace(it.ProductID) == "" {
			return domain.Invalid("línea %d: product_id es obligatorio", i+1)
		}
		if !it.Quantity.IsPositive() || !isWhole(it.Quantity) {
			return domain.Invalid("línea %d: la cantidad a producir debe ser un entero positivo", i+1)
		}
	}
	return nil
}

// ProduceProduct aplica una producción. Si algún insumo no alcanza no se modifica nada
// y el error lista todos los faltantes.
func (e *Engine) ProduceProduct(ctx context.Context, actor entity.Actor, in Production) (*entity.ProductionRun, error) {
	out, err := e.Execute(ctx, actor, &in)
	if err != nil {
		return nil, err
	}
	return out.Record.(*entity.ProductionRun), nil
}

func (e *Engine) produce(ctx context.Context, repos TxRepos, l *Ledger, in *Production) (string, any, error) {
	recipes := make(map[string][]entity.RecipeLink, len(in.Items))
	ids := make([]string, 0, len(in.Items))
	for _, it := range in.Items {
		links, err := loadRecipe(ctx, repos, it.ProductID)
		if err != nil {
			return "", nil, err
		}
		recipes[it.ProductID] = links
		ids = append(ids, it.ProductID)
		for _, link := range links {
			ids = append(ids, link.IngredientID)
		}
	}
	if err := l.Lock(ctx, ids...); err != nil {
		return "", nil, err
	}

	run := &entity.ProductionRun{
		ID:         uuid.New().String(),
		UserID:     l.actor.UserID,
		TotalUnits: decimal.Zero,
		Items:      in.Items,
		CreatedAt:  l.now,
	}

	var reqs []inventory.Requirement
	for _, it := range in.Items {
		r, err := inventory.Expand(l.Product(it.ProductID), recipes[it.ProductID], it.Quantity)
		if err != nil {
			return "", nil, err
		}
		reqs = append(reqs, r...)
		run.TotalUnits = run.TotalUnits.Add(it.Quantity)
	}
	if err := consume(ctx, l, reqs, mark{kind: entity.KindProduction, ref: run.ID, reason: "Consumo de producción"}); err != nil {
		return "", nil, err
	}

	credit := mark{kind: entity.KindProduction, ref: run.ID, reason: "Producción"}
	for _, it := range in.Items {
		if _, err := l.ApplyDelta(ctx, it.ProductID, it.Quantity, credit); err != nil {
			return "", nil, err
		}
	}
	if err := repos.Productions.Create(ctx, run); err != nil {
		return "", nil, fmt.Errorf("create production run: %w", err)
	}
	return run.ID, run, nil
}

// loadRecipe devuelve la receta de un producto producible.
func loadRecipe(ctx context.Context, repos TxRepos, productID string) ([]entity.RecipeLink, error) {
	p, err := repos.Products.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("producto %s: %w", productID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get product %s: %w", productID, err)
	}
	if !p.Active {
		return nil, fmt.Errorf("producto %s: %w", productID, domain.ErrNotFound)
	}
	if p.IsIngredient {
		return nil, fmt.Errorf("%s: %w", p.Name, domain.ErrNotProducible)
	}
	links, err := repos.Recipes.ListByProduct(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("list recipe %s: %w", productID, err)
	}
	if len(links) == 0 {
		return nil, fmt.Errorf("%s: %w", p.Name, domain.ErrNoRecipeDefined)
	}
	return links, nil
}

// consume verifica todos los requerimientos y luego los descuenta, agrupados por insumo.
func consume(ctx context.Context, l *Ledger, reqs []inventory.Requirement, m mark) error {
	if err := l.Check(reqs); err != nil {
		return err
	}
	totals := make(map[string]decimal.Decimal, len(reqs))
	order := make([]string, 0, len(reqs))
	for _, r := range reqs {
		if _, ok := totals[r.ProductID]; !ok {
			order = append(order, r.ProductID)
		}
		totals[r.ProductID] = totals[r.ProductID].Add(r.Quantity)
	}
	for _, id := range order {
		if _, err := l.ApplyDelta(ctx, id, totals[id].Neg(), m); err != nil {
			return err
		}
	}
	return nil
}
