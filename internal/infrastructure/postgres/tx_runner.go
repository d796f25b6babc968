package postgres

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/panaderia-api/internal/application/stock"
)

var _ stock.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool        *pgxpool.Pool
	lockTimeout time.Duration
}

// NewTxRunner construye el runner con el pool. lockTimeout acota la espera por bloqueos de fila.
func NewTxRunner(pool *pgxpool.Pool, lockTimeout time.Duration) *TxRunner {
	return &TxRunner{pool: pool, lockTimeout: lockTimeout}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
// Si un bloqueo excede lock_timeout o hay deadlock, devuelve domain.ErrRetryable.
func (r *TxRunner) Run(ctx context.Context, fn func(ctx context.Context, repos stock.TxRepos) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if r.lockTimeout > 0 {
		ms := strconv.FormatInt(r.lockTimeout.Milliseconds(), 10) + "ms"
		if _, err := tx.Exec(ctx, "SELECT set_config('lock_timeout', $1, true)", ms); err != nil {
			return fmt.Errorf("set lock_timeout: %w", err)
		}
	}

	if err := fn(ctx, Repos(tx)); err != nil {
		return mapRetryable(err)
	}
	if err := tx.Commit(ctx); err != nil {
		return mapRetryable(fmt.Errorf("commit transaction: %w", err))
	}
	return nil
}

// Repos construye todos los repositorios sobre q (pool o tx).
func Repos(q Querier) stock.TxRepos {
	return stock.TxRepos{
		Products:    NewProductRepository(q),
		Recipes:     NewRecipeRepository(q),
		Changes:     NewInventoryChangeRepository(q),
		Audit:       NewAuditRepository(q),
		Purchases:   NewPurchaseRepository(q),
		Productions: NewProductionRepository(q),
		Losses:      NewLossRepository(q),
		Sales:       NewSaleRepository(q),
	}
}
