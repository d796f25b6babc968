package stock_test

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/panaderia-api/internal/application/stock"
	"github.com/jhoicas/panaderia-api/internal/domain"
	"github.com/jhoicas/panaderia-api/internal/domain/entity"
	"github.com/jhoicas/panaderia-api/internal/domain/inventory"
	"github.com/jhoicas/panaderia-api/internal/domain/repository"
	"github.com/jhoicas/panaderia-api/internal/infrastructure/memory"
)

var (
	gerente   = entity.Actor{UserID: "u-gerente", Role: entity.RoleManager}
	encargado = entity.Actor{UserID: "u-encargado", Role: entity.RoleSupervisor}
	cajero    = entity.Actor{UserID: "u-cajero", Role: entity.RoleCashier}
)

// ─── Fixture ────────────────────────────────────────────────────────────────

type fixture struct {
	store    *memory.Store
	engine   *stock.Engine
	notifier *recordingNotifier
}

type recordingNotifier struct {
	mu      sync.Mutex
	batches [][]stock.StockChange
}

func (n *recordingNotifier) Publish(changes []stock.StockChange) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.batches = append(n.batches, changes)
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.batches)
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	s := memory.NewStore()
	n := &recordingNotifier{}
	e := stock.NewEngine(s, s.Repos(), stock.DefaultRolePolicy(), stock.WithNotifier(n))
	return &fixture{store: s, engine: e, notifier: n}
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func (f *fixture) ingredient(id, name string, base entity.BaseUnit, stockQty, price string) {
	f.store.Seed(&entity.Product{
		ID: id, Name: name, NameKey: inventory.NameKey(name), BaseUnit: base, IsIngredient: true,
		Category: entity.CategoryIngredient, Stock: dec(stockQty), Price: dec(price), RecipeYield: 1, Active: true,
	})
}

func (f *fixture) product(id, name string, stockQty string, yield int, recipe ...entity.RecipeLink) {
	for i := range recipe {
		recipe[i].ProductID = id
	}
	f.store.Seed(&entity.Product{
		ID: id, Name: name, NameKey: inventory.NameKey(name), BaseUnit: entity.BaseUnitUnits,
		Category: entity.CategoryProduct, Stock: dec(stockQty), Price: dec("1500"), RecipeYield: yield, Active: true,
	}, recipe...)
}

func (f *fixture) stockOf(t *testing.T, id string) decimal.Decimal {
	t.Helper()
	p, err := f.store.Repos().Products.GetByID(context.Background(), id)
	require.NoError(t, err)
	return p.Stock
}

func (f *fixture) audit(t *testing.T, filter repository.AuditFilter) []*entity.AuditRecord {
	t.Helper()
	recs, err := f.engine.QueryAudit(context.Background(), gerente, filter)
	require.NoError(t, err)
	return recs
}

func assertStock(t *testing.T, f *fixture, id, want string) {
	t.Helper()
	got := f.stockOf(t, id)
	assert.Truef(t, got.Equal(dec(want)), "stock de %s: esperado %s, obtenido %s", id, want, got)
}

// ─── Ajustes ────────────────────────────────────────────────────────────────

func TestAdjust_EntradaYSalida(t *testing.T) {
	f := newFixture(t)
	f.product("pan", "Pan", "10", 1)
	ctx := context.Background()

	_, err := f.engine.AdjustInventory(ctx, gerente, stock.Adjustment{ProductID: "pan", Type: entity.ChangeTypeEntry, Quantity: dec("5"), Reason: "horneado extra"})
	require.NoError(t, err)
	assertStock(t, f, "pan", "15")

	change, err := f.engine.AdjustInventory(ctx, gerente, stock.Adjustment{ProductID: "pan", Type: entity.ChangeTypeExit, Quantity: dec("15")})
	require.NoError(t, err)
	assert.Equal(t, entity.ChangeTypeExit, change.Type)
	assertStock(t, f, "pan", "0")

	recs := f.audit(t, repository.AuditFilter{ProductID: "pan"})
	require.Len(t, recs, 2)
	assert.Equal(t, entity.KindExit, recs[0].Kind)
	assert.True(t, recs[0].PreviousStock.Equal(dec("15")))
	assert.True(t, recs[0].NewStock.Equal(dec("0")))
	assert.Equal(t, gerente.UserID, recs[0].UserID)
}

func TestAdjust_SalidaInsuficienteNoModifica(t *testing.T) {
	f := newFixture(t)
	f.product("pan", "Pan", "3", 1)

	_, err := f.engine.AdjustInventory(context.Background(), gerente, stock.Adjustment{ProductID: "pan", Type: entity.ChangeTypeExit, Quantity: dec("4")})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	var shortage *domain.InsufficientStockError
	require.ErrorAs(t, err, &shortage)
	require.Len(t, shortage.Shortages, 1)
	assert.True(t, shortage.Shortages[0].Shortfall.Equal(dec("1")))
	assertStock(t, f, "pan", "3")
	assert.Empty(t, f.audit(t, repository.AuditFilter{}))
	assert.Equal(t, 0, f.notifier.count())
}

func TestAdjust_CajeroSinCapacidad(t *testing.T) {
	f := newFixture(t)
	f.product("pan", "Pan", "3", 1)

	_, err := f.engine.AdjustInventory(context.Background(), cajero, stock.Adjustment{ProductID: "pan", Type: entity.ChangeTypeEntry, Quantity: dec("1")})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assertStock(t, f, "pan", "3")
}

func TestAdjust_ConvierteUnidad(t *testing.T) {
	f := newFixture(t)
	f.ingredient("harina", "Harina", entity.BaseUnitGrams, "0", "3")

	_, err := f.engine.AdjustInventory(context.Background(), gerente, stock.Adjustment{ProductID: "harina", Type: entity.ChangeTypeEntry, Quantity: dec("2.5"), Unit: "kg"})
	require.NoError(t, err)
	assertStock(t, f, "harina", "2500")
}

func TestAdjust_UnidadIncompatible(t *testing.T) {
	f := newFixture(t)
	f.product("pan", "Pan", "3", 1)

	_, err := f.engine.AdjustInventory(context.Background(), gerente, stock.Adjustment{ProductID: "pan", Type: entity.ChangeTypeEntry, Quantity: dec("1"), Unit: "kg"})
	assert.ErrorIs(t, err, domain.ErrIncompatibleUnit)
	assertStock(t, f, "pan", "3")
}

func TestAdjust_ValidacionesDeEntrada(t *testing.T) {
	f := newFixture(t)
	f.product("pan", "Pan", "3", 1)
	ctx := context.Background()

	cases := []stock.Adjustment{
		{ProductID: "pan", Type: entity.ChangeTypeEntry, Quantity: dec("0")},
		{ProductID: "pan", Type: entity.ChangeTypeEntry, Quantity: dec("-1")},
		{ProductID: "pan", Type: "Traslado", Quantity: dec("1")},
		{ProductID: "", Type: entity.ChangeTypeEntry, Quantity: dec("1")},
		{ProductID: "pan", Type: entity.ChangeTypeEntry, Quantity: dec("1.5")},
	}
	for _, c := range cases {
		_, err := f.engine.AdjustInventory(ctx, gerente, c)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "%+v", c)
	}
	assertStock(t, f, "pan", "3")
}

func TestAdjust_ProductoInexistente(t *testing.T) {
	f := newFixture(t)
	_, err := f.engine.AdjustInventory(context.Background(), gerente, stock.Adjustment{ProductID: "nada", Type: entity.ChangeTypeEntry, Quantity: dec("1")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Dos salidas concurrentes de 7 sobre stock 10: exactamente una gana.
func TestAdjust_SalidasConcurrentesSoloUnaGana(t *testing.T) {
	f := newFixture(t)
	f.product("pan", "Pan", "10", 1)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.engine.AdjustInventory(context.Background(), gerente, stock.Adjustment{ProductID: "pan", Type: entity.ChangeTypeExit, Quantity: dec("7")})
		}(i)
	}
	wg.Wait()

	ok, insufficient := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case assert.ErrorIs(t, err, domain.ErrInsufficientStock):
			insufficient++
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, insufficient)
	assertStock(t, f, "pan", "3")
}

// ─── Producción ─────────────────────────────────────────────────────────────

func TestProduce_MediaTanda(t *testing.T) {
	f := newFixture(t)
	f.ingredient("harina", "Harina", entity.BaseUnitGrams, "1000", "3")
	f.product("pan", "Pan", "0", 10, entity.RecipeLink{ID: "r1", IngredientID: "harina", QuantityPerBatch: dec("200"), Unit: "g"})

	run, err := f.engine.ProduceProduct(context.Background(), gerente, stock.Production{Items: []entity.ProductionItem{{ProductID: "pan", Quantity: dec("5")}}})
	require.NoError(t, err)
	assert.True(t, run.TotalUnits.Equal(dec("5")))

	assertStock(t, f, "harina", "900")
	assertStock(t, f, "pan", "5")

	recs := f.audit(t, repository.AuditFilter{Kind: entity.KindProduction})
	assert.Len(t, recs, 2)
	assert.Equal(t, 1, f.notifier.count())
}

func TestProduce_TodoONada(t *testing.T) {
	f := newFixture(t)
	f.ingredient("harina", "Harina", entity.BaseUnitGrams, "5000", "3")
	f.ingredient("huevo", "Huevo", entity.BaseUnitUnits, "1", "500")
	f.product("torta", "Torta", "0", 1,
		entity.RecipeLink{ID: "r1", IngredientID: "harina", QuantityPerBatch: dec("0.5"), Unit: "kg"},
		entity.RecipeLink{ID: "r2", IngredientID: "huevo", QuantityPerBatch: dec("3"), Unit: "u"},
	)

	_, err := f.engine.ProduceProduct(context.Background(), gerente, stock.Production{Items: []entity.ProductionItem{{ProductID: "torta", Quantity: dec("2")}}})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	var shortage *domain.InsufficientStockError
	require.ErrorAs(t, err, &shortage)
	require.Len(t, shortage.Shortages, 1)
	assert.Equal(t, "huevo", shortage.Shortages[0].ProductID)
	assert.True(t, shortage.Shortages[0].Required.Equal(dec("6")))
	assert.True(t, shortage.Shortages[0].Shortfall.Equal(dec("5")))

	assertStock(t, f, "harina", "5000")
	assertStock(t, f, "huevo", "1")
	assertStock(t, f, "torta", "0")
	assert.Empty(t, f.audit(t, repository.AuditFilter{}))
}

func TestProduce_InsumoCompartidoSeSumaAntesDeVerificar(t *testing.T) {
	f := newFixture(t)
	f.ingredient("harina", "Harina", entity.BaseUnitGrams, "300", "3")
	f.product("pan", "Pan", "0", 1, entity.RecipeLink{ID: "r1", IngredientID: "harina", QuantityPerBatch: dec("200"), Unit: "g"})
	f.product("galleta", "Galleta", "0", 1, entity.RecipeLink{ID: "r2", IngredientID: "harina", QuantityPerBatch: dec("200"), Unit: "g"})

	_, err := f.engine.ProduceProduct(context.Background(), gerente, stock.Production{Items: []entity.ProductionItem{
		{ProductID: "pan", Quantity: dec("1")},
		{ProductID: "galleta", Quantity: dec("1")},
	}})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assertStock(t, f, "harina", "300")
	assertStock(t, f, "pan", "0")
}

func TestProduce_Errores(t *testing.T) {
	f := newFixture(t)
	f.ingredient("harina", "Harina", entity.BaseUnitGrams, "300", "3")
	f.product("agua", "Agua", "0", 1)
	ctx := context.Background()

	_, err := f.engine.ProduceProduct(ctx, gerente, stock.Production{Items: []entity.ProductionItem{{ProductID: "harina", Quantity: dec("1")}}})
	assert.ErrorIs(t, err, domain.ErrNotProducible)

	_, err = f.engine.ProduceProduct(ctx, gerente, stock.Production{Items: []entity.ProductionItem{{ProductID: "agua", Quantity: dec("1")}}})
	assert.ErrorIs(t, err, domain.ErrNoRecipeDefined)

	_, err = f.engine.ProduceProduct(ctx, gerente, stock.Production{Items: []entity.ProductionItem{{ProductID: "agua", Quantity: dec("1.5")}}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.engine.ProduceProduct(ctx, encargado, stock.Production{Items: []entity.ProductionItem{{ProductID: "agua", Quantity: dec("1")}}})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// ─── Pérdidas ───────────────────────────────────────────────────────────────

func TestLoss_ConvierteYRecortaEnCero(t *testing.T) {
	f := newFixture(t)
	f.ingredient("harina", "Harina", entity.BaseUnitGrams, "1500", "2")

	rec, err := f.engine.RecordLoss(context.Background(), encargado, stock.Loss{
		ProductID: "harina", Quantity: dec("2"), Unit: "kg", Category: entity.LossPackagingDamaged,
	})
	require.NoError(t, err)
	assert.True(t, rec.BaseQuantity.Equal(dec("2000")))
	assert.True(t, rec.Quantity.Equal(dec("2")))
	assert.True(t, rec.CostEstimate.Equal(dec("4")))
	assertStock(t, f, "harina", "0")

	recs := f.audit(t, repository.AuditFilter{Kind: entity.KindLoss})
	require.Len(t, recs, 1)
	assert.True(t, recs[0].Quantity.Equal(dec("1500")))
	assert.Equal(t, entity.ChangeTypeExit, recs[0].ChangeType)
	assert.Equal(t, rec.ID, recs[0].MutationRef)
}

func TestLoss_CategoriaSegunTipo(t *testing.T) {
	f := newFixture(t)
	f.ingredient("harina", "Harina", entity.BaseUnitGrams, "1500", "2")
	f.product("pan", "Pan", "10", 1)
	ctx := context.Background()

	_, err := f.engine.RecordLoss(ctx, gerente, stock.Loss{ProductID: "harina", Quantity: dec("1"), Category: entity.LossContamination})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.engine.RecordLoss(ctx, gerente, stock.Loss{ProductID: "pan", Quantity: dec("1"), Category: entity.LossRecipeOveruse})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.engine.RecordLoss(ctx, gerente, stock.Loss{ProductID: "pan", Quantity: dec("2"), Category: entity.LossPhysicalAccident})
	require.NoError(t, err)
	assertStock(t, f, "pan", "8")
	assertStock(t, f, "harina", "1500")

	losses, err := f.engine.ListLosses(ctx, gerente, "pan", 0, 0)
	require.NoError(t, err)
	assert.Len(t, losses, 1)
}

func TestLoss_StockEnCeroQuedaComoSalidaSinNotificar(t *testing.T) {
	f := newFixture(t)
	f.ingredient("harina", "Harina", entity.BaseUnitGrams, "0", "2")

	rec, err := f.engine.RecordLoss(context.Background(), encargado, stock.Loss{
		ProductID: "harina", Quantity: dec("1"), Unit: "kg", Category: entity.LossPackagingDamaged,
	})
	require.NoError(t, err)
	assertStock(t, f, "harina", "0")

	recs := f.audit(t, repository.AuditFilter{Kind: entity.KindLoss})
	require.Len(t, recs, 1)
	assert.Equal(t, entity.ChangeTypeExit, recs[0].ChangeType)
	assert.True(t, recs[0].Quantity.IsZero())
	assert.Equal(t, rec.ID, recs[0].MutationRef)
	assert.Equal(t, 0, f.notifier.count(), "sin movimiento real no se publica nada")
}

type countingRunner struct {
	stock.TxRunner
	mu   sync.Mutex
	runs int
}

func (r *countingRunner) Run(ctx context.Context, fn func(ctx context.Context, repos stock.TxRepos) error) error {
	r.mu.Lock()
	r.runs++
	r.mu.Unlock()
	return r.TxRunner.Run(ctx, fn)
}

func TestLoss_CategoriaInvalidaNoAbreTransaccion(t *testing.T) {
	s := memory.NewStore()
	runner := &countingRunner{TxRunner: s}
	e := stock.NewEngine(runner, s.Repos(), stock.DefaultRolePolicy())
	f := &fixture{store: s, engine: e}
	f.ingredient("harina", "Harina", entity.BaseUnitGrams, "1500", "2")
	f.product("pan", "Pan", "10", 1)
	ctx := context.Background()

	_, err := e.RecordLoss(ctx, gerente, stock.Loss{ProductID: "harina", Quantity: dec("1"), Category: entity.LossContamination})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = e.RecordLoss(ctx, gerente, stock.Loss{ProductID: "no-existe", Quantity: dec("1"), Category: entity.LossContamination})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 0, runner.runs)

	_, err = e.RecordLoss(ctx, gerente, stock.Loss{ProductID: "pan", Quantity: dec("1"), Category: entity.LossContamination})
	require.NoError(t, err)
	assert.Equal(t, 1, runner.runs)
	assertStock(t, f, "pan", "9")
}

// ─── Ventas ─────────────────────────────────────────────────────────────────

func TestSale_DescuentaYCalculaTotal(t *testing.T) {
	f := newFixture(t)
	f.product("pan", "Pan", "10", 1)
	f.product("torta", "Torta", "2", 1)

	sale, err := f.engine.RecordSale(context.Background(), cajero, stock.SaleDeduction{Items: []entity.SaleItem{
		{ProductID: "pan", Quantity: dec("4")},
		{ProductID: "torta", Quantity: dec("1"), Price: dec("20000")},
	}})
	require.NoError(t, err)
	assert.True(t, sale.Total.Equal(dec("26000")))
	assert.Equal(t, "efectivo", sale.PaymentMethod)
	assertStock(t, f, "pan", "6")
	assertStock(t, f, "torta", "1")
}

func TestSale_LineaInsuficienteNoDescuentaNinguna(t *testing.T) {
	f := newFixture(t)
	f.product("pan", "Pan", "10", 1)
	f.product("torta", "Torta", "2", 1)

	_, err := f.engine.RecordSale(context.Background(), cajero, stock.SaleDeduction{Items: []entity.SaleItem{
		{ProductID: "pan", Quantity: dec("4")},
		{ProductID: "torta", Quantity: dec("2")},
		{ProductID: "torta", Quantity: dec("1")},
	}})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assertStock(t, f, "pan", "10")
	assertStock(t, f, "torta", "2")
}

// ─── Productos ──────────────────────────────────────────────────────────────

func TestCreateProduct_StockInicialConsumeReceta(t *testing.T) {
	f := newFixture(t)
	f.ingredient("harina", "Harina", entity.BaseUnitGrams, "1000", "3")

	p, err := f.engine.CreateProductWithRecipe(context.Background(), encargado, stock.NewProduct{
		Name:         "Pan Francés",
		Price:        dec("500"),
		RecipeYield:  10,
		Recipe:       []stock.RecipeLine{{IngredientID: "harina", Quantity: dec("0.2"), Unit: "kg"}},
		InitialStock: dec("20"),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.CategoryProduct, p.Category)
	assert.Equal(t, entity.BaseUnitUnits, p.BaseUnit)
	assert.True(t, p.Stock.Equal(dec("20")))
	assertStock(t, f, "harina", "600")

	links, err := f.engine.GetProductRecipe(context.Background(), p.ID)
	require.NoError(t, err)
	require.Len(t, links, 1)
	assert.Equal(t, "Harina", links[0].IngredientName)
}

func TestCreateProduct_FaltanteAbortaCreacion(t *testing.T) {
	f := newFixture(t)
	f.ingredient("harina", "Harina", entity.BaseUnitGrams, "100", "3")

	_, err := f.engine.CreateProductWithRecipe(context.Background(), gerente, stock.NewProduct{
		Name:         "Pan",
		RecipeYield:  1,
		Recipe:       []stock.RecipeLine{{IngredientID: "harina", Quantity: dec("200"), Unit: "g"}},
		InitialStock: dec("1"),
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	products, err := f.engine.ListProducts(context.Background(), repository.ProductFilter{})
	require.NoError(t, err)
	assert.Len(t, products, 1)
	assertStock(t, f, "harina", "100")
}

func TestCreateProduct_RecetaInvalida(t *testing.T) {
	f := newFixture(t)
	f.ingredient("leche", "Leche", entity.BaseUnitMilliliters, "100", "3")
	f.product("pan", "Pan", "0", 1)
	ctx := context.Background()

	_, err := f.engine.CreateProductWithRecipe(ctx, gerente, stock.NewProduct{
		Name: "Flan", Recipe: []stock.RecipeLine{{IngredientID: "leche", Quantity: dec("1"), Unit: "kg"}},
	})
	assert.ErrorIs(t, err, domain.ErrIncompatibleUnit)

	_, err = f.engine.CreateProductWithRecipe(ctx, gerente, stock.NewProduct{
		Name: "Sandwich", Recipe: []stock.RecipeLine{{IngredientID: "pan", Quantity: dec("1")}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.engine.CreateProductWithRecipe(ctx, gerente, stock.NewProduct{Name: "pan"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = f.engine.CreateProductWithRecipe(ctx, cajero, stock.NewProduct{Name: "Galleta"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestDeleteProduct_InactivoNoAceptaMutaciones(t *testing.T) {
	f := newFixture(t)
	f.product("pan", "Pan", "5", 1)
	ctx := context.Background()

	require.NoError(t, f.engine.DeleteProduct(ctx, gerente, "pan"))

	_, err := f.engine.AdjustInventory(ctx, gerente, stock.Adjustment{ProductID: "pan", Type: entity.ChangeTypeEntry, Quantity: dec("1")})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	p, err := f.engine.GetProduct(ctx, "pan")
	require.NoError(t, err)
	assert.False(t, p.Active)
}

// ─── Conteo físico ──────────────────────────────────────────────────────────

func TestStockCount_FijaValoresYAuditaDiferencias(t *testing.T) {
	f := newFixture(t)
	f.product("pan", "Pan", "10", 1)
	f.ingredient("harina", "Harina", entity.BaseUnitGrams, "1000", "3")
	f.ingredient("sal", "Sal", entity.BaseUnitGrams, "50", "1")

	res, err := f.engine.ReconcileStockCount(context.Background(), gerente, stock.StockCount{Lines: []stock.CountLine{
		{ProductID: "pan", Counted: dec("7")},
		{ProductID: "harina", Counted: dec("1.2"), Unit: "kg"},
		{ProductID: "sal", Counted: dec("50")},
	}})
	require.NoError(t, err)
	assert.Len(t, res.Lines, 3)

	assertStock(t, f, "pan", "7")
	assertStock(t, f, "harina", "1200")
	assertStock(t, f, "sal", "50")

	recs := f.audit(t, repository.AuditFilter{Kind: entity.KindStockCount})
	require.Len(t, recs, 2)
	assert.Equal(t, entity.ChangeTypeEntry, recs[0].ChangeType)
	assert.Equal(t, entity.ChangeTypeExit, recs[1].ChangeType)
}

// ─── Reposición ─────────────────────────────────────────────────────────────

func TestLowStockReport_OrdenaPorDeficitRelativo(t *testing.T) {
	f := newFixture(t)
	f.store.Seed(&entity.Product{
		ID: "harina", Name: "Harina", NameKey: inventory.NameKey("Harina"), BaseUnit: entity.BaseUnitGrams,
		IsIngredient: true, Category: entity.CategoryIngredient, Stock: dec("200"), Price: dec("3"),
		LowStockThreshold: dec("1000"), RecipeYield: 1, Active: true,
	})
	f.store.Seed(&entity.Product{
		ID: "pan", Name: "Pan", NameKey: inventory.NameKey("Pan"), BaseUnit: entity.BaseUnitUnits,
		Category: entity.CategoryProduct, Stock: dec("5"), Price: dec("1500"),
		LowStockThreshold: dec("10"), RecipeYield: 1, Active: true,
	})
	f.store.Seed(&entity.Product{
		ID: "sal", Name: "Sal", NameKey: inventory.NameKey("Sal"), BaseUnit: entity.BaseUnitGrams,
		IsIngredient: true, Category: entity.CategoryIngredient, Stock: dec("500"), Price: dec("1"),
		LowStockThreshold: dec("100"), RecipeYield: 1, Active: true,
	})

	items, err := f.engine.LowStockReport(context.Background(), encargado)
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "harina", items[0].ProductID)
	assert.Equal(t, 1, items[0].Priority)
	assert.True(t, items[0].SuggestedOrderQty.Equal(dec("1300")))
	assert.True(t, items[0].EstimatedOrderCost.Equal(dec("3900")))

	assert.Equal(t, "pan", items[1].ProductID)
	assert.True(t, items[1].SuggestedOrderQty.Equal(dec("10")))
	assert.True(t, items[1].EstimatedOrderCost.Equal(dec("15000")))
}

func TestLowStockReport_CajeroSinCapacidad(t *testing.T) {
	f := newFixture(t)
	_, err := f.engine.LowStockReport(context.Background(), cajero)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
