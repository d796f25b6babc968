package memory

import (
	"context"
	"slices"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/panaderia-api/internal/domain"
	"github.com/jhoicas/panaderia-api/internal/domain/entity"
	"github.com/jhoicas/panaderia-api/internal/domain/repository"
)

var (
	_ repository.ProductRepository         = (*productRepo)(nil)
	_ repository.RecipeRepository          = (*recipeRepo)(nil)
	_ repository.InventoryChangeRepository = (*changeRepo)(nil)
	_ repository.AuditRepository           = (*auditRepo)(nil)
	_ repository.PurchaseRepository        = (*purchaseRepo)(nil)
	_ repository.ProductionRepository      = (*productionRepo)(nil)
	_ repository.LossRepository            = (*lossRepo)(nil)
	_ repository.SaleRepository            = (*saleRepo)(nil)
)

type productRepo struct{ a accessor }

func (r *productRepo) Create(_ context.Context, p *entity.Product) error {
	var err error
	r.a.write(func(st *state) {
		if _, ok := st.products[p.ID]; ok {
			err = domain.ErrDuplicate
			return
		}
		if findByNameKey(st, p.NameKey) != nil {
			err = domain.ErrDuplicate
			return
		}
		cp := *p
		st.products[p.ID] = &cp
	})
	return err
}

func findByNameKey(st *state, key string) *entity.Product {
	if key == "" {
		return nil
	}
	for _, p := range st.products {
		if p.Active && p.NameKey == key {
			return p
		}
	}
	return nil
}

func (r *productRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	r.a.read(func(st *state) {
		if p, ok := st.products[id]; ok {
			cp := *p
			out = &cp
		}
	})
	if out == nil {
		return nil, domain.ErrNotFound
	}
	return out, nil
}

func (r *productRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *productRepo) GetOrCreateByName(_ context.Context, template *entity.Product) (*entity.Product, bool, error) {
	var (
		out     *entity.Product
		created bool
	)
	r.a.write(func(st *state) {
		if p := findByNameKey(st, template.NameKey); p != nil {
			cp := *p
			out = &cp
			return
		}
		cp := *template
		st.products[cp.ID] = &cp
		ret := cp
		out, created = &ret, true
	})
	return out, created, nil
}

func (r *productRepo) UpdateStock(_ context.Context, id string, stock decimal.Decimal) error {
	var err error
	r.a.write(func(st *state) {
		p, ok := st.products[id]
		if !ok {
			err = domain.ErrNotFound
			return
		}
		p.Stock = stock
	})
	return err
}

func (r *productRepo) SoftDelete(_ context.Context, id string) error {
	var err error
	r.a.write(func(st *state) {
		p, ok := st.products[id]
		if !ok || !p.Active {
			err = domain.ErrNotFound
			return
		}
		p.Active = false
	})
	return err
}

func (r *productRepo) List(_ context.Context, f repository.ProductFilter) ([]*entity.Product, error) {
	var out []*entity.Product
	r.a.read(func(st *state) {
		for _, p := range st.products {
			if !f.IncludeInactive && !p.Active {
				continue
			}
			if f.IngredientsOnly != nil && p.IsIngredient != *f.IngredientsOnly {
				continue
			}
			if f.LowStockOnly && !(p.LowStockThreshold.IsPositive() && p.Stock.LessThan(p.LowStockThreshold)) {
				continue
			}
			cp := *p
			out = append(out, &cp)
		}
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
		}
		return out[i].ID < out[j].ID
	})
	return page(out, f.Limit, f.Offset), nil
}

type recipeRepo struct{ a accessor }

func (r *recipeRepo) Create(_ context.Context, link *entity.RecipeLink) error {
	r.a.write(func(st *state) {
		st.recipes[link.ProductID] = append(st.recipes[link.ProductID], *link)
	})
	return nil
}

func (r *recipeRepo) ListByProduct(_ context.Context, productID string) ([]entity.RecipeLink, error) {
	var out []entity.RecipeLink
	r.a.read(func(st *state) {
		out = slices.Clone(st.recipes[productID])
		for i := range out {
			if ing, ok := st.products[out[i].IngredientID]; ok {
				out[i].IngredientName = ing.Name
				out[i].IngredientBaseUnit = ing.BaseUnit
			}
		}
	})
	return out, nil
}

type changeRepo struct{ a accessor }

func (r *changeRepo) Create(_ context.Context, c *entity.InventoryChange) error {
	cp := *c
	r.a.write(func(st *state) { st.changes = append(st.changes, &cp) })
	return nil
}

type auditRepo struct{ a accessor }

func (r *auditRepo) Create(_ context.Context, rec *entity.AuditRecord) error {
	cp := *rec
	r.a.write(func(st *state) { st.audit = append(st.audit, &cp) })
	return nil
}

func (r *auditRepo) List(_ context.Context, f repository.AuditFilter) ([]*entity.AuditRecord, error) {
	var out []*entity.AuditRecord
	r.a.read(func(st *state) {
		for i := len(st.audit) - 1; i >= 0; i-- {
			rec := st.audit[i]
			switch {
			case f.ProductID != "" && rec.ProductID != f.ProductID,
				f.UserID != "" && rec.UserID != f.UserID,
				f.ChangeType != "" && rec.ChangeType != f.ChangeType,
				f.Kind != "" && rec.Kind != f.Kind,
				f.From != nil && rec.CreatedAt.Before(*f.From),
				f.To != nil && rec.CreatedAt.After(*f.To):
				continue
			}
			cp := *rec
			out = append(out, &cp)
		}
	})
	// Estable: a igual fecha conserva el orden inverso de inserción.
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return page(out, f.Limit, f.Offset), nil
}

type purchaseRepo struct{ a accessor }

func (r *purchaseRepo) Create(_ context.Context, p *entity.Purchase) error {
	var err error
	r.a.write(func(st *state) {
		if _, ok := st.purchases[p.ID]; ok {
			err = domain.ErrDuplicate
			return
		}
		st.purchases[p.ID] = copyPurchase(p)
	})
	return err
}

func (r *purchaseRepo) GetByID(_ context.Context, id string) (*entity.Purchase, error) {
	var out *entity.Purchase
	r.a.read(func(st *state) {
		if p, ok := st.purchases[id]; ok {
			out = copyPurchase(p)
		}
	})
	if out == nil {
		return nil, domain.ErrNotFound
	}
	return out, nil
}

func (r *purchaseRepo) GetForUpdate(ctx context.Context, id string) (*entity.Purchase, error) {
	return r.GetByID(ctx, id)
}

func (r *purchaseRepo) UpdateStatus(_ context.Context, p *entity.Purchase) error {
	var err error
	r.a.write(func(st *state) {
		if _, ok := st.purchases[p.ID]; !ok {
			err = domain.ErrNotFound
			return
		}
		st.purchases[p.ID] = copyPurchase(p)
	})
	return err
}

func (r *purchaseRepo) List(_ context.Context, status string, limit, offset int) ([]*entity.Purchase, error) {
	var out []*entity.Purchase
	r.a.read(func(st *state) {
		for _, p := range st.purchases {
			if status != "" && p.Status != status {
				continue
			}
			out = append(out, copyPurchase(p))
		}
	})
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return page(out, limit, offset), nil
}

type productionRepo struct{ a accessor }

func (r *productionRepo) Create(_ context.Context, run *entity.ProductionRun) error {
	cp := *run
	cp.Items = slices.Clone(run.Items)
	r.a.write(func(st *state) { st.productions = append(st.productions, &cp) })
	return nil
}

type lossRepo struct{ a accessor }

func (r *lossRepo) Create(_ context.Context, l *entity.LossRecord) error {
	cp := *l
	r.a.write(func(st *state) { st.losses = append(st.losses, &cp) })
	return nil
}

func (r *lossRepo) List(_ context.Context, productID string, limit, offset int) ([]*entity.LossRecord, error) {
	var out []*entity.LossRecord
	r.a.read(func(st *state) {
		for i := len(st.losses) - 1; i >= 0; i-- {
			if productID != "" && st.losses[i].ProductID != productID {
				continue
			}
			cp := *st.losses[i]
			out = append(out, &cp)
		}
	})
	return page(out, limit, offset), nil
}

type saleRepo struct{ a accessor }

func (r *saleRepo) Create(_ context.Context, s *entity.Sale) error {
	cp := *s
	cp.Items = slices.Clone(s.Items)
	r.a.write(func(st *state) { st.sales = append(st.sales, &cp) })
	return nil
}

func page[T any](items []T, limit, offset int) []T {
	offset = max(offset, 0)
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
