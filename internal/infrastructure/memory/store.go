package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/jhoicas/panaderia-api/internal/application/stock"
	"github.com/jhoicas/panaderia-api/internal/domain/entity"
)

// Store es un almacén en memoria para desarrollo y pruebas.
// Las transacciones se serializan: cada una trabaja sobre una copia del estado
// que se publica completa en el commit o se descarta en el rollback.
type Store struct {
	txMu sync.Mutex
	mu   sync.RWMutex
	st   *state
}

var _ stock.TxRunner = (*Store)(nil)

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{st: newState()}
}

// Run ejecuta fn en una transacción.
func (s *Store) Run(ctx context.Context, fn func(ctx context.Context, repos stock.TxRepos) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.RLock()
	work := s.st.clone()
	s.mu.RUnlock()

	if err := fn(ctx, reposFor(direct{st: work})); err != nil {
		return err
	}

	s.mu.Lock()
	s.st = work
	s.mu.Unlock()
	return nil
}

// Repos devuelve repositorios fuera de transacción sobre el estado confirmado.
func (s *Store) Repos() stock.TxRepos {
	return reposFor(shared{s: s})
}

func reposFor(a accessor) stock.TxRepos {
	return stock.TxRepos{
		Products:    &productRepo{a: a},
		Recipes:     &recipeRepo{a: a},
		Changes:     &changeRepo{a: a},
		Audit:       &auditRepo{a: a},
		Purchases:   &purchaseRepo{a: a},
		Productions: &productionRepo{a: a},
		Losses:      &lossRepo{a: a},
		Sales:       &saleRepo{a: a},
	}
}

type accessor interface {
	read(fn func(st *state))
	write(fn func(st *state))
}

// direct opera sobre la copia de una transacción; txMu ya la protege.
type direct struct{ st *state }

func (d direct) read(fn func(st *state))  { fn(d.st) }
func (d direct) write(fn func(st *state)) { fn(d.st) }

type shared struct{ s *Store }

func (a shared) read(fn func(st *state)) {
	a.s.mu.RLock()
	defer a.s.mu.RUnlock()
	fn(a.s.st)
}

func (a shared) write(fn func(st *state)) {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()
	fn(a.s.st)
}

type state struct {
	products    map[string]*entity.Product
	recipes     map[string][]entity.RecipeLink
	changes     []*entity.InventoryChange
	audit       []*entity.AuditRecord
	purchases   map[string]*entity.Purchase
	productions []*entity.ProductionRun
	losses      []*entity.LossRecord
	sales       []*entity.Sale
}

func newState() *state {
	return &state{
		products:  make(map[string]*entity.Product),
		recipes:   make(map[string][]entity.RecipeLink),
		purchases: make(map[string]*entity.Purchase),
	}
}

// clone copia lo mutable; los registros append-only se comparten y se recortan
// para que un append en la copia nunca escriba sobre el arreglo original.
func (st *state) clone() *state {
	c := &state{
		products:    make(map[string]*entity.Product, len(st.products)),
		recipes:     make(map[string][]entity.RecipeLink, len(st.recipes)),
		purchases:   make(map[string]*entity.Purchase, len(st.purchases)),
		changes:     slices.Clip(st.changes),
		audit:       slices.Clip(st.audit),
		productions: slices.Clip(st.productions),
		losses:      slices.Clip(st.losses),
		sales:       slices.Clip(st.sales),
	}
	for id, p := range st.products {
		cp := *p
		c.products[id] = &cp
	}
	for id, links := range st.recipes {
		c.recipes[id] = slices.Clone(links)
	}
	for id, p := range st.purchases {
		c.purchases[id] = copyPurchase(p)
	}
	return c
}

func copyPurchase(p *entity.Purchase) *entity.Purchase {
	cp := *p
	cp.Items = slices.Clone(p.Items)
	if p.ApprovedAt != nil {
		at := *p.ApprovedAt
		cp.ApprovedAt = &at
	}
	return &cp
}

// Seed carga un producto (y su receta) sin pasar por el motor. Solo para datos de arranque y pruebas.
func (s *Store) Seed(p *entity.Product, recipe ...entity.RecipeLink) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *p
	s.st.products[p.ID] = &cp
	if len(recipe) > 0 {
		s.st.recipes[p.ID] = append(s.st.recipes[p.ID], recipe...)
	}
}
