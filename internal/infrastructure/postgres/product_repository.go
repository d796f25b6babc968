package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/panaderia-api/internal/domain"
	"github.com/jhoicas/panaderia-api/internal/domain/entity"
	"github.com/jhoicas/panaderia-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, name, name_key, description, price, stock, base_unit, is_ingredient, category,
	recipe_yield, loss_rate, low_stock_threshold, active, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	var baseUnit string
	err := row.Scan(
		&p.ID, &p.Name, &p.NameKey, &p.Description, &p.Price, &p.Stock, &baseUnit, &p.IsIngredient, &p.Category,
		&p.RecipeYield, &p.LossRate, &p.LowStockThreshold, &p.Active, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.BaseUnit = entity.BaseUnit(baseUnit)
	return &p, nil
}

// Create persiste un nuevo producto. Un nombre activo repetido devuelve ErrDuplicate.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.Name, p.NameKey, p.Description, p.Price, p.Stock, string(p.BaseUnit), p.IsIngredient, p.Category,
		p.RecipeYield, p.LossRate, p.LowStockThreshold, p.Active, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID, activo o no.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	p, err := scanProduct(r.q.QueryRow(ctx, query, id))
	if err != nil {
		return nil, notFound(err, "get product")
	}
	return p, nil
}

// GetForUpdate obtiene el producto con SELECT ... FOR UPDATE (bloqueo de fila hasta fin de tx).
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1 FOR UPDATE`
	p, err := scanProduct(r.q.QueryRow(ctx, query, id))
	if err != nil {
		return nil, notFound(err, "get product for update")
	}
	return p, nil
}

// GetOrCreateByName inserta el producto si no hay uno activo con el mismo name_key.
// ON CONFLICT sobre el índice único parcial evita duplicados con compras concurrentes.
func (r *ProductRepo) GetOrCreateByName(ctx context.Context, t *entity.Product) (*entity.Product, bool, error) {
	insert := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (name_key) WHERE active DO NOTHING`
	tag, err := r.q.Exec(ctx, insert,
		t.ID, t.Name, t.NameKey, t.Description, t.Price, t.Stock, string(t.BaseUnit), t.IsIngredient, t.Category,
		t.RecipeYield, t.LossRate, t.LowStockThreshold, t.Active, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return nil, false, fmt.Errorf("insert product by name: %w", err)
	}
	created := tag.RowsAffected() == 1

	query := `SELECT ` + productColumns + ` FROM products WHERE name_key = $1 AND active`
	p, err := scanProduct(r.q.QueryRow(ctx, query, t.NameKey))
	if err != nil {
		return nil, false, notFound(err, "get product by name")
	}
	return p, created, nil
}

// UpdateStock fija el stock. Solo lo invoca el ledger con la fila ya bloqueada.
func (r *ProductRepo) UpdateStock(ctx context.Context, id string, stock decimal.Decimal) error {
	tag, err := r.q.Exec(ctx, `UPDATE products SET stock = $2, updated_at = now() WHERE id = $1`, id, stock)
	if err != nil {
		return fmt.Errorf("update stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SoftDelete desactiva el producto.
func (r *ProductRepo) SoftDelete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `UPDATE products SET active = FALSE, updated_at = now() WHERE id = $1 AND active`, id)
	if err != nil {
		return fmt.Errorf("soft delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista productos por nombre.
func (r *ProductRepo) List(ctx context.Context, f repository.ProductFilter) ([]*entity.Product, error) {
	var (
		conds []string
		args  []any
	)
	if !f.IncludeInactive {
		conds = append(conds, "active")
	}
	if f.IngredientsOnly != nil {
		args = append(args, *f.IngredientsOnly)
		conds = append(conds, fmt.Sprintf("is_ingredient = $%d", len(args)))
	}
	if f.LowStockOnly {
		conds = append(conds, "low_stock_threshold > 0 AND stock < low_stock_threshold")
	}
	query := `SELECT ` + productColumns + ` FROM products`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	args = append(args, f.Limit, f.Offset)
	query += fmt.Sprintf(` ORDER BY lower(name), id LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}
