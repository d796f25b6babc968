package stock_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/panaderia-api/internal/application/stock"
	"github.com/jhoicas/panaderia-api/internal/domain"
	"github.com/jhoicas/panaderia-api/internal/domain/entity"
	"github.com/jhoicas/panaderia-api/internal/domain/repository"
)

func TestPurchase_GerenteCreaInsumoPorNombre(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p, err := f.engine.CreatePurchase(ctx, gerente, stock.PurchaseRequest{
		Supplier: "Molinos del Valle",
		Items:    []entity.PurchaseItem{{Name: "Harina", Quantity: dec("5"), Unit: "kg", UnitPrice: dec("4000")}},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.PurchaseStatusApproved, p.Status)
	assert.Equal(t, gerente.UserID, p.ApprovedBy)
	require.NotNil(t, p.ApprovedAt)
	assert.True(t, p.Total.Equal(dec("20000")))
	require.NotEmpty(t, p.Items[0].ProductID)

	harina, err := f.engine.GetProduct(ctx, p.Items[0].ProductID)
	require.NoError(t, err)
	assert.True(t, harina.IsIngredient)
	assert.Equal(t, entity.BaseUnitGrams, harina.BaseUnit)
	assert.Equal(t, entity.CategoryIngredient, harina.Category)
	assert.True(t, harina.Stock.Equal(dec("5000")))

	// Mismo nombre con otra grafía: reutiliza el producto.
	_, err = f.engine.CreatePurchase(ctx, gerente, stock.PurchaseRequest{
		Supplier: "Molinos del Valle",
		Items:    []entity.PurchaseItem{{Name: "  HARINA ", Quantity: dec("500"), Unit: "g"}},
	})
	require.NoError(t, err)
	assertStock(t, f, harina.ID, "5500")

	recs := f.audit(t, repository.AuditFilter{Kind: entity.KindPurchaseReceipt})
	assert.Len(t, recs, 2)
}

func TestPurchase_EncargadoQuedaPendienteSinEfecto(t *testing.T) {
	f := newFixture(t)
	f.ingredient("azucar", "Azúcar", entity.BaseUnitGrams, "100", "5")
	ctx := context.Background()

	p, err := f.engine.CreatePurchase(ctx, encargado, stock.PurchaseRequest{
		Supplier: "Dulces SA",
		Items:    []entity.PurchaseItem{{ProductID: "azucar", Quantity: dec("1"), Unit: "kg"}},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.PurchaseStatusPending, p.Status)
	assert.Nil(t, p.ApprovedAt)
	assertStock(t, f, "azucar", "100")
	assert.Equal(t, 0, f.notifier.count())

	pending, err := f.engine.ListPurchases(ctx, gerente, entity.PurchaseStatusPending, 0, 0)
	require.NoError(t, err)
	assert.Len(t, pending, 1)
}

func TestPurchase_AprobarDosVecesFalla(t *testing.T) {
	f := newFixture(t)
	f.ingredient("azucar", "Azúcar", entity.BaseUnitGrams, "100", "5")
	ctx := context.Background()

	p, err := f.engine.CreatePurchase(ctx, encargado, stock.PurchaseRequest{
		Supplier: "Dulces SA",
		Items:    []entity.PurchaseItem{{ProductID: "azucar", Quantity: dec("1"), Unit: "kg"}},
	})
	require.NoError(t, err)

	approved, err := f.engine.ApprovePurchase(ctx, gerente, p.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PurchaseStatusApproved, approved.Status)
	assertStock(t, f, "azucar", "1100")

	_, err = f.engine.ApprovePurchase(ctx, gerente, p.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assertStock(t, f, "azucar", "1100")

	_, err = f.engine.RejectPurchase(ctx, gerente, p.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestPurchase_RechazoSinEfecto(t *testing.T) {
	f := newFixture(t)
	f.ingredient("azucar", "Azúcar", entity.BaseUnitGrams, "100", "5")
	ctx := context.Background()

	p, err := f.engine.CreatePurchase(ctx, encargado, stock.PurchaseRequest{
		Supplier: "Dulces SA",
		Items:    []entity.PurchaseItem{{ProductID: "azucar", Quantity: dec("1"), Unit: "kg"}},
	})
	require.NoError(t, err)

	rejected, err := f.engine.RejectPurchase(ctx, gerente, p.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PurchaseStatusRejected, rejected.Status)
	assertStock(t, f, "azucar", "100")

	_, err = f.engine.ApprovePurchase(ctx, gerente, p.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assertStock(t, f, "azucar", "100")

	got, err := f.engine.GetPurchase(ctx, encargado, p.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PurchaseStatusRejected, got.Status)
}

func TestPurchase_AprobacionRequiereCapacidad(t *testing.T) {
	f := newFixture(t)
	f.ingredient("azucar", "Azúcar", entity.BaseUnitGrams, "100", "5")
	ctx := context.Background()

	p, err := f.engine.CreatePurchase(ctx, encargado, stock.PurchaseRequest{
		Supplier: "Dulces SA",
		Items:    []entity.PurchaseItem{{ProductID: "azucar", Quantity: dec("1"), Unit: "kg"}},
	})
	require.NoError(t, err)

	_, err = f.engine.ApprovePurchase(ctx, encargado, p.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.engine.CreatePurchase(ctx, cajero, stock.PurchaseRequest{
		Supplier: "Dulces SA",
		Items:    []entity.PurchaseItem{{ProductID: "azucar", Quantity: dec("1")}},
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestPurchase_ProductoInexistenteAbortaTodo(t *testing.T) {
	f := newFixture(t)
	f.ingredient("azucar", "Azúcar", entity.BaseUnitGrams, "100", "5")

	_, err := f.engine.CreatePurchase(context.Background(), gerente, stock.PurchaseRequest{
		Supplier: "Dulces SA",
		Items: []entity.PurchaseItem{
			{ProductID: "azucar", Quantity: dec("1"), Unit: "kg"},
			{ProductID: "no-existe", Quantity: dec("1")},
		},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assertStock(t, f, "azucar", "100")

	all, err := f.engine.ListPurchases(context.Background(), gerente, "", 0, 0)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestPurchase_AprobarInexistente(t *testing.T) {
	f := newFixture(t)
	_, err := f.engine.ApprovePurchase(context.Background(), gerente, "nada")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
