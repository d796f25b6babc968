package memory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/panaderia-api/internal/application/stock"
	"github.com/jhoicas/panaderia-api/internal/domain"
	"github.com/jhoicas/panaderia-api/internal/domain/entity"
	"github.com/jhoicas/panaderia-api/internal/infrastructure/memory"
)

func TestRun_RollbackDescartaCambios(t *testing.T) {
	s := memory.NewStore()
	s.Seed(&entity.Product{ID: "p1", Name: "Pan", NameKey: "pan", Stock: decimal.NewFromInt(5), Active: true})

	boom := errors.New("boom")
	err := s.Run(context.Background(), func(ctx context.Context, repos stock.TxRepos) error {
		require.NoError(t, repos.Products.UpdateStock(ctx, "p1", decimal.NewFromInt(1)))
		return boom
	})
	require.ErrorIs(t, err, boom)

	p, err := s.Repos().Products.GetByID(context.Background(), "p1")
	require.NoError(t, err)
	assert.True(t, p.Stock.Equal(decimal.NewFromInt(5)))
}

func TestRun_CommitPublicaCambios(t *testing.T) {
	s := memory.NewStore()
	s.Seed(&entity.Product{ID: "p1", Name: "Pan", NameKey: "pan", Stock: decimal.NewFromInt(5), Active: true})

	err := s.Run(context.Background(), func(ctx context.Context, repos stock.TxRepos) error {
		return repos.Products.UpdateStock(ctx, "p1", decimal.NewFromInt(9))
	})
	require.NoError(t, err)

	p, err := s.Repos().Products.GetByID(context.Background(), "p1")
	require.NoError(t, err)
	assert.True(t, p.Stock.Equal(decimal.NewFromInt(9)))
}

func TestProducts_NombreDuplicado(t *testing.T) {
	s := memory.NewStore()
	repos := s.Repos()
	ctx := context.Background()

	require.NoError(t, repos.Products.Create(ctx, &entity.Product{ID: "a", Name: "Harina", NameKey: "harina", Active: true}))
	err := repos.Products.Create(ctx, &entity.Product{ID: "b", Name: "HARINA", NameKey: "harina", Active: true})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	got, created, err := repos.Products.GetOrCreateByName(ctx, &entity.Product{ID: "c", Name: "harina ", NameKey: "harina", Active: true})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, "a", got.ID)
}

func TestProducts_NoEncontrado(t *testing.T) {
	s := memory.NewStore()
	_, err := s.Repos().Products.GetForUpdate(context.Background(), "x")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
