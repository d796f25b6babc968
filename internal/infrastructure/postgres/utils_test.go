package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/panaderia-api/internal/domain"
)

func TestMapRetryable(t *testing.T) {
	for _, code := range []string{codeLockNotAvailable, codeDeadlockDetected, codeSerializationFailure} {
		err := fmt.Errorf("lock product p1: %w", &pgconn.PgError{Code: code, Message: "x"})
		assert.ErrorIs(t, mapRetryable(err), domain.ErrRetryable, code)
	}

	other := errors.New("conexión cerrada")
	assert.Equal(t, other, mapRetryable(other))
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(&pgconn.PgError{Code: codeUniqueViolation}))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: codeLockNotAvailable}))
}

func TestNotFound(t *testing.T) {
	assert.ErrorIs(t, notFound(pgx.ErrNoRows, "get product"), domain.ErrNotFound)
	assert.NotErrorIs(t, notFound(errors.New("boom"), "get product"), domain.ErrNotFound)
}
