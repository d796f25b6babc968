package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias de infraestructura).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrIncompatibleUnit  = errors.New("unidad incompatible con la unidad base del producto")
	ErrNoRecipeDefined   = errors.New("el producto no tiene receta definida")
	ErrNotProducible     = errors.New("un insumo no se puede producir")
	ErrInvalidTransition = errors.New("la compra ya fue procesada")
	ErrRetryable         = errors.New("bloqueo no disponible, reintente la operación")
)

// Shortage describe el faltante de un producto en una verificación de suficiencia.
type Shortage struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Required    decimal.Decimal `json:"required"`
	Available   decimal.Decimal `json:"available"`
	Shortfall   decimal.Decimal `json:"shortfall"`
}

// InsufficientStockError reporta todos los productos sin stock suficiente.
// errors.Is(err, ErrInsufficientStock) es verdadero.
type InsufficientStockError struct {
	Shortages []Shortage
}

func (e *InsufficientStockError) Error() string {
	parts := make([]string, 0, len(e.Shortages))
	for _, s := range e.Shortages {
		name := s.ProductName
		if name == "" {
			name = s.ProductID
		}
		parts = append(parts, fmt.Sprintf("%s (requerido %s, disponible %s, faltan %s)",
			name, s.Required.String(), s.Available.String(), s.Shortfall.String()))
	}
	return ErrInsufficientStock.Error() + ": " + strings.Join(parts, "; ")
}

// Is permite comparar contra ErrInsufficientStock.
func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}

// Invalid envuelve ErrInvalidInput con un detalle legible.
func Invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
