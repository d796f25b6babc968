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
	"github.com/jhoicas/panaderia-api/internal/domain/repository"
)

// RecipeLine es una línea de receta al crear un producto.
type RecipeLine struct {
	IngredientID string
	Quantity     decimal.Decimal
	Unit         string
}

// NewProduct crea un producto con su receta y, opcionalmente, stock inicial.
// Si el producto tiene receta, el stock inicial consume los insumos como una producción.
type NewProduct struct {
	Name              string
	Description       string
	Price             decimal.Decimal
	BaseUnit          entity.BaseUnit
	IsIngredient      bool
	Category          string
	RecipeYield       int
	LossRate          decimal.Decimal
	LowStockThreshold decimal.Decimal
	Recipe            []RecipeLine
	InitialStock      decimal.Decimal
}

func (n *NewProduct) kind() entity.MutationKind { return entity.KindInitialStock }
func (n *NewProduct) capability() Capability    { return CapCreateProduct }

func (n *NewProduct) validate() error {
	n.Name = strings.TrimSpace(n.Name)
	if n.Name == "" {
		return domain.Invalid("el nombre es obligatorio")
	}
	if n.Price.IsNegative() {
		return domain.Invalid("el precio no puede ser negativo")
	}
	if n.BaseUnit == "" {
		n.BaseUnit = entity.BaseUnitUnits
	}
	if !n.BaseUnit.Valid() {
		return domain.Invalid("unidad base %q no soportada", n.BaseUnit)
	}
	if n.InitialStock.IsNegative() {
		return domain.Invalid("el stock inicial no puede ser negativo")
	}
	if !n.IsIngredient && !isWhole(n.InitialStock) {
		return domain.Invalid("el stock inicial de un producto debe ser entero")
	}
	if n.LossRate.IsNegative() || n.LowStockThreshold.IsNegative() {
		return domain.Invalid("merma y umbral no pueden ser negativos")
	}
	if n.IsIngredient && len(n.Recipe) > 0 {
		return domain.Invalid("un insumo no puede tener receta")
	}
	if n.RecipeYield <= 0 {
		n.RecipeYield = 1
	}
	seen := make(map[string]struct{}, len(n.Recipe))
	for i, r := range n.Recipe {
		if strings.TrimSpace(r.IngredientID) == "" {
			return domain.Invalid("receta línea %d: ingredient_id es obligatorio", i+1)
		}
		if !r.Quantity.IsPositive() {
			return domain.Invalid("receta línea %d: la cantidad debe ser mayor a cero", i+1)
		}
		if _, dup := seen[r.IngredientID]; dup {
			return domain.Invalid("receta línea %d: insumo repetido", i+1)
		}
		seen[r.IngredientID] = struct{}{}
	}
	if n.Category == "" {
		n.Category = entity.CategoryProduct
		if n.IsIngredient {
			n.Category = entity.CategoryIngredient
		}
	}
	return nil
}

// CreateProductWithRecipe crea el producto, sus líneas de receta y el stock inicial en una transacción.
// Si el stock inicial requiere más insumos de los disponibles, no se crea nada.
func (e *Engine) CreateProductWithRecipe(ctx context.Context, actor entity.Actor, in NewProduct) (*entity.Product, error) {
	out, err := e.Execute(ctx, actor, &in)
	if err != nil {
		return nil, err
	}
	return out.Record.(*entity.Product), nil
}

func (e *Engine) createProduct(ctx context.Context, repos TxRepos, l *Ledger, in *NewProduct) (string, any, error) {
	p := &entity.Product{
		ID:                uuid.New().String(),
		Name:              in.Name,
		NameKey:           inventory.NameKey(in.Name),
		Description:       in.Description,
		Price:             in.Price,
		Stock:             decimal.Zero,
		BaseUnit:          in.BaseUnit,
		IsIngredient:      in.IsIngredient,
		Category:          in.Category,
		RecipeYield:       in.RecipeYield,
		LossRate:          in.LossRate,
		LowStockThreshold: in.LowStockThreshold,
		Active:            true,
		CreatedAt:         l.now,
		UpdatedAt:         l.now,
	}
	if err := repos.Products.Create(ctx, p); err != nil {
		return "", nil, fmt.Errorf("create product: %w", err)
	}

	links := make([]entity.RecipeLink, 0, len(in.Recipe))
	for i, r := range in.Recipe {
		ing, err := repos.Products.GetByID(ctx, r.IngredientID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return "", nil, fmt.Errorf("receta línea %d: insumo %s: %w", i+1, r.IngredientID, domain.ErrNotFound)
			}
			return "", nil, fmt.Errorf("get ingredient %s: %w", r.IngredientID, err)
		}
		if !ing.Active {
			return "", nil, fmt.Errorf("receta línea %d: insumo %s: %w", i+1, r.IngredientID, domain.ErrNotFound)
		}
		if !ing.IsIngredient {
			return "", nil, domain.Invalid("receta línea %d: %s no es un insumo", i+1, ing.Name)
		}
		if !inventory.Compatible(r.Unit, ing.BaseUnit) {
			return "", nil, fmt.Errorf("receta línea %d: %s en %q: %w", i+1, ing.Name, r.Unit, domain.ErrIncompatibleUnit)
		}
		unit := r.Unit
		if unit == "" {
			unit = string(ing.BaseUnit)
		}
		link := entity.RecipeLink{
			ID:                 uuid.New().String(),
			ProductID:          p.ID,
			IngredientID:       ing.ID,
			IngredientName:     ing.Name,
			IngredientBaseUnit: ing.BaseUnit,
			QuantityPerBatch:   r.Quantity,
			Unit:               unit,
		}
		if err := repos.Recipes.Create(ctx, &link); err != nil {
			return "", nil, fmt.Errorf("create recipe link: %w", err)
		}
		links = append(links, link)
	}

	if in.InitialStock.IsPositive() {
		ids := []string{p.ID}
		for _, link := range links {
			ids = append(ids, link.IngredientID)
		}
		if err := l.Lock(ctx, ids...); err != nil {
			return "", nil, err
		}
		m := mark{kind: entity.KindInitialStock, ref: p.ID, reason: "Stock inicial"}
		if len(links) > 0 {
			reqs, err := inventory.Expand(l.Product(p.ID), links, in.InitialStock)
			if err != nil {
				return "", nil, err
			}
			if err := consume(ctx, l, reqs, m); err != nil {
				return "", nil, err
			}
		}
		if _, err := l.ApplyDelta(ctx, p.ID, in.InitialStock, m); err != nil {
			return "", nil, err
		}
		p = l.Product(p.ID)
	}
	return p.ID, p, nil
}

// GetProduct devuelve un producto por ID (incluye inactivos).
func (e *Engine) GetProduct(ctx context.Context, id string) (*entity.Product, error) {
	return e.repos.Products.GetByID(ctx, id)
}

// GetProductRecipe devuelve las líneas de receta de un producto.
func (e *Engine) GetProductRecipe(ctx context.Context, id string) ([]entity.RecipeLink, error) {
	return e.repos.Recipes.ListByProduct(ctx, id)
}

// ListProducts lista productos activos.
func (e *Engine) ListProducts(ctx context.Context, filter repository.ProductFilter) ([]*entity.Product, error) {
	filter.Limit = pageLimit(filter.Limit)
	filter.Offset = max(filter.Offset, 0)
	return e.repos.Products.List(ctx, filter)
}

// DeleteProduct desactiva un producto. Las filas nunca se borran: el historial sigue referenciándolo.
func (e *Engine) DeleteProduct(ctx context.Context, actor entity.Actor, id string) error {
	if err := authorize(e.policy, actor, CapAdjustInventory); err != nil {
		return err
	}
	err := e.tx.Run(ctx, func(ctx context.Context, repos TxRepos) error {
		l := newLedger(repos, actor, e.now().UTC())
		if err := l.Lock(ctx, id); err != nil {
			return err
		}
		return repos.Products.SoftDelete(ctx, id)
	})
	if err != nil {
		return err
	}
	e.log.Info().Str("product_id", id).Str("user_id", actor.UserID).Msg("producto desactivado")
	return nil
}
