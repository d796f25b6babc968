package stock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/panaderia-api/internal/domain"
	"github.com/jhoicas/panaderia-api/internal/domain/entity"
	"github.com/jhoicas/panaderia-api/pkg/logger"
)

// Resultados de una mutación para métricas y logs.
const (
	OutcomeCommitted = "committed"
	OutcomeRejected  = "rejected"
	OutcomeRetryable = "retryable"
	OutcomeFailed    = "failed"
)

// Etiquetas de operaciones del flujo de compras que no mueven stock por sí mismas.
const (
	kindPurchaseRequest  entity.MutationKind = "purchase_request"
	kindPurchaseDecision entity.MutationKind = "purchase_decision"
)

// Mutation es una operación que cambia stock. El conjunto es cerrado: Execute
// despacha sobre los tipos de este paquete.
type Mutation interface {
	kind() entity.MutationKind
	capability() Capability
	validate() error
}

// precheck lo implementan las mutaciones que validan contra datos ya guardados
// antes de abrir la transacción.
type precheck interface {
	precheck(ctx context.Context, repos TxRepos) error
}

// Outcome es el resultado de una mutación confirmada.
type Outcome struct {
	Kind    entity.MutationKind
	Ref     string
	Changes []StockChange
	Record  any
}

// Engine es el motor de mutaciones de stock.
type Engine struct {
	tx       TxRunner
	repos    TxRepos
	policy   Policy
	notifier Notifier
	metrics  Recorder
	log      *logger.Logger
	now      func() time.Time
}

// Option configura el Engine.
type Option func(*Engine)

// WithNotifier publica los cambios confirmados (p. ej. hub websocket).
func WithNotifier(n Notifier) Option { return func(e *Engine) { e.notifier = n } }

// WithRecorder registra métricas.
func WithRecorder(r Recorder) Option { return func(e *Engine) { e.metrics = r } }

// WithLogger asigna el logger.
func WithLogger(l *logger.Logger) Option { return func(e *Engine) { e.log = l.Component("stock") } }

// WithClock reemplaza el reloj (pruebas).
func WithClock(now func() time.Time) Option { return func(e *Engine) { e.now = now } }

// NewEngine construye el motor. repos son repositorios fuera de transacción, solo para lecturas.
func NewEngine(tx TxRunner, repos TxRepos, policy Policy, opts ...Option) *Engine {
	e := &Engine{
		tx:       tx,
		repos:    repos,
		policy:   policy,
		notifier: nopNotifier{},
		metrics:  nopRecorder{},
		log:      logger.Nop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Execute valida la capacidad y el payload, y aplica la mutación en una sola transacción.
// Tras el commit registra métricas y notifica los cambios; si falla no hay ningún efecto visible.
func (e *Engine) Execute(ctx context.Context, actor entity.Actor, m Mutation) (*Outcome, error) {
	start := time.Now()
	kind := m.kind()

	if err := authorize(e.policy, actor, m.capability()); err != nil {
		e.finish(kind, actor, start, nil, err)
		return nil, err
	}
	if err := m.validate(); err != nil {
		e.finish(kind, actor, start, nil, err)
		return nil, err
	}
	if pc, ok := m.(precheck); ok {
		if err := pc.precheck(ctx, e.repos); err != nil {
			e.finish(kind, actor, start, nil, err)
			return nil, err
		}
	}

	var out *Outcome
	err := e.tx.Run(ctx, func(ctx context.Context, repos TxRepos) error {
		l := newLedger(repos, actor, e.now().UTC())
		var (
			ref    string
			record any
			err    error
		)
		switch mut := m.(type) {
		case *Adjustment:
			ref, record, err = e.adjust(ctx, repos, l, mut)
		case *SaleDeduction:
			ref, record, err = e.sell(ctx, repos, l, mut)
		case *Production:
			ref, record, err = e.produce(ctx, repos, l, mut)
		case *Loss:
			ref, record, err = e.recordLoss(ctx, repos, l, mut)
		case *NewProduct:
			ref, record, err = e.createProduct(ctx, repos, l, mut)
		case *StockCount:
			ref, record, err = e.reconcile(ctx, repos, l, mut)
		case *PurchaseRequest:
			ref, record, err = e.requestPurchase(ctx, repos, l, mut)
		case *PurchaseDecision:
			ref, record, err = e.decidePurchase(ctx, repos, l, mut)
		default:
			err = fmt.Errorf("mutación no soportada %T", m)
		}
		if err != nil {
			return err
		}
		out = &Outcome{Kind: kind, Ref: ref, Changes: l.Changes(), Record: record}
		return nil
	})
	if err != nil {
		e.finish(kind, actor, start, nil, err)
		return nil, err
	}
	e.finish(kind, actor, start, out, nil)
	return out, nil
}

func (e *Engine) finish(kind entity.MutationKind, actor entity.Actor, start time.Time, out *Outcome, err error) {
	elapsed := time.Since(start)
	outcome := classify(err)
	e.metrics.ObserveMutation(kind, outcome, elapsed)

	if err != nil {
		ev := e.log.Warn()
		if outcome == OutcomeFailed {
			ev = e.log.Error()
		}
		ev.Err(err).
			Str("kind", string(kind)).
			Str("user_id", actor.UserID).
			Str("role", actor.Role).
			Str("outcome", outcome).
			Dur("elapsed", elapsed).
			Msg("mutación de stock rechazada")
		return
	}

	e.log.Info().
		Str("kind", string(kind)).
		Str("ref", out.Ref).
		Str("user_id", actor.UserID).
		Str("role", actor.Role).
		Int("changes", len(out.Changes)).
		Dur("elapsed", elapsed).
		Msg("mutación de stock confirmada")

	for _, ch := range out.Changes {
		e.metrics.SetStockLevel(ch.ProductID, ch.ProductName, ch.NewStock)
	}
	if moved := effective(out.Changes); len(moved) > 0 {
		e.notifier.Publish(moved)
	}
}

// effective descarta los cambios que no movieron stock (p. ej. pérdida con stock en cero).
func effective(changes []StockChange) []StockChange {
	out := make([]StockChange, 0, len(changes))
	for _, ch := range changes {
		if !ch.PreviousStock.Equal(ch.NewStock) {
			out = append(out, ch)
		}
	}
	return out
}

func classify(err error) string {
	switch {
	case err == nil:
		return OutcomeCommitted
	case errors.Is(err, domain.ErrRetryable):
		return OutcomeRetryable
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrInsufficientStock),
		errors.Is(err, domain.ErrIncompatibleUnit),
		errors.Is(err, domain.ErrNoRecipeDefined),
		errors.Is(err, domain.ErrNotProducible),
		errors.Is(err, domain.ErrForbidden),
		errors.Is(err, domain.ErrUnauthorized),
		errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrDuplicate),
		errors.Is(err, domain.ErrInvalidTransition):
		return OutcomeRejected
	default:
		return OutcomeFailed
	}
}
