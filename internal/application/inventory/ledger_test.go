package inventory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/comercial-api/internal/application/apptest"
	"github.com/jhoicas/comercial-api/internal/application/dto"
	"github.com/jhoicas/comercial-api/internal/application/inventory"
	"github.com/jhoicas/comercial-api/internal/domain"
	"github.com/jhoicas/comercial-api/internal/domain/entity"
)

var ctx = context.Background()

// ── Libro de inventario ──────────────────────────────────────────────────────

func TestRecord_SalidaSinStockNoDejaMovimiento(t *testing.T) {
	env := apptest.New(t)
	p := env.Product(t, "A", entity.TaxCategoryITBIS18, "10", "5", "3")

	_, err := env.Ledger.Record(ctx, apptest.Actor, inventory.MovementInput{
		ProductID: p.ID,
		Kind:      entity.MovementExit,
		Quantity:  apptest.Dec("4"),
		Cause:     entity.CauseRef{Kind: entity.CauseAdjustment, ID: "manual"},
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.ErrorIs(t, err, domain.ErrResourceExhausted)

	movs, err := env.Ledger.History(ctx, p.ID)
	require.NoError(t, err)
	assert.Len(t, movs, 1)
	assert.True(t, apptest.Dec("3").Equal(env.Stock(t, p.ID)))
}

func TestRecord_InicialSoloSinMovimientos(t *testing.T) {
	env := apptest.New(t)
	p := env.Product(t, "A", entity.TaxCategoryITBIS18, "10", "5", "3")

	_, err := env.Ledger.Record(ctx, apptest.Actor, inventory.MovementInput{
		ProductID: p.ID,
		Kind:      entity.MovementInitial,
		Quantity:  apptest.Dec("10"),
		Cause:     entity.CauseRef{Kind: entity.CauseInitial, ID: p.ID},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRecord_EntradasInvalidas(t *testing.T) {
	env := apptest.New(t)
	p := env.Product(t, "A", entity.TaxCategoryITBIS18, "10", "5", "3")

	cases := []struct {
		name string
		in   inventory.MovementInput
		kind error
	}{
		{"tipo desconocido", inventory.MovementInput{ProductID: p.ID, Kind: "ROBO", Quantity: apptest.Dec("1"), Cause: entity.CauseRef{Kind: entity.CauseSale, ID: "x"}}, domain.ErrInvalidInput},
		{"cantidad cero", inventory.MovementInput{ProductID: p.ID, Kind: entity.MovementEntry, Quantity: apptest.Dec("0"), Cause: entity.CauseRef{Kind: entity.CausePurchase, ID: "x"}}, domain.ErrInvalidInput},
		{"causa vacía", inventory.MovementInput{ProductID: p.ID, Kind: entity.MovementEntry, Quantity: apptest.Dec("1")}, domain.ErrInvalidInput},
		{"producto inexistente", inventory.MovementInput{ProductID: "nope", Kind: entity.MovementEntry, Quantity: apptest.Dec("1"), Cause: entity.CauseRef{Kind: entity.CausePurchase, ID: "x"}}, domain.ErrNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := env.Ledger.Record(ctx, apptest.Actor, tc.in)
			assert.ErrorIs(t, err, tc.kind)
		})
	}
}

func TestReconcile_ReplayIgualAlContador(t *testing.T) {
	env := apptest.New(t)
	s := env.Sale413(t)
	_, err := env.Documents.Void(ctx, apptest.Actor, s.Sale.ID, "prueba")
	require.NoError(t, err)
	_, err = env.Ledger.Record(ctx, apptest.Actor, inventory.MovementInput{
		ProductID: s.A.ID,
		Kind:      entity.MovementEntry,
		Quantity:  apptest.Dec("2.5"),
		Cause:     entity.CauseRef{Kind: entity.CausePurchase, ID: "externa"},
	})
	require.NoError(t, err)

	all, err := env.Ledger.ReconcileAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	for _, r := range all {
		assert.True(t, r.Consistent, "producto %s: replay %s contador %s", r.ProductID, r.ReplayedStock, r.CounterStock)
		assert.Empty(t, r.Breaks)
	}

	movs, err := env.Ledger.History(ctx, s.A.ID)
	require.NoError(t, err)
	for i := 1; i < len(movs); i++ {
		assert.Greater(t, movs[i].Seq, movs[i-1].Seq)
		assert.True(t, movs[i].StockBefore.Equal(movs[i-1].StockAfter))
	}
}

func TestReconcile_ProductoInexistente(t *testing.T) {
	env := apptest.New(t)
	_, err := env.Ledger.Reconcile(ctx, "x")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ── Ajustes ───────────────────────────────────────────────────────────────────

func adjLine(productID, qty string) dto.AdjustmentLineRequest {
	return dto.AdjustmentLineRequest{ProductID: productID, Quantity: apptest.Dec(qty)}
}

func TestAdjustment_CicloCompleto(t *testing.T) {
	env := apptest.New(t)
	a := env.Product(t, "A", entity.TaxCategoryITBIS18, "10", "5", "10")
	b := env.Product(t, "B", entity.TaxCategoryITBIS18, "20", "8", "7")

	adj, err := env.Adjustments.Create(ctx, apptest.Actor, dto.CreateAdjustmentRequest{
		Direction: "out", Reason: "merma",
		Lines: []dto.AdjustmentLineRequest{adjLine(a.ID, "4"), {ProductID: b.ID, Quantity: apptest.Dec("2"), Cost: apptest.Dec("9"), Note: "rotos"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "AJ-20250310-0001", adj.Number)
	assert.Equal(t, entity.AdjustmentPending, adj.State)
	require.Len(t, adj.Lines, 2)
	assert.True(t, apptest.Dec("5").Equal(adj.Lines[0].Cost), "sin costo toma el del producto")
	assert.True(t, apptest.Dec("38").Equal(adj.Value), "valor %s", adj.Value)
	assert.True(t, apptest.Dec("10").Equal(env.Stock(t, a.ID)), "un ajuste pendiente no mueve stock")

	adj, err = env.Adjustments.Complete(ctx, apptest.Actor, adj.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.AdjustmentCompleted, adj.State)
	assert.True(t, apptest.Dec("6").Equal(env.Stock(t, a.ID)))
	assert.True(t, apptest.Dec("5").Equal(env.Stock(t, b.ID)))

	_, err = env.Adjustments.Complete(ctx, apptest.Actor, adj.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	adj, err = env.Adjustments.Void(ctx, apptest.Actor, adj.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.AdjustmentVoid, adj.State)
	assert.True(t, apptest.Dec("10").Equal(env.Stock(t, a.ID)))
	assert.True(t, apptest.Dec("7").Equal(env.Stock(t, b.ID)))

	movs, err := env.Ledger.History(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, movs, 3)
	assert.Equal(t, entity.MovementAdjustOut, movs[1].Kind)
	assert.Equal(t, entity.MovementAdjustIn, movs[2].Kind)
	assert.Equal(t, "AJ-20250310-0001", movs[2].CauseNumber)

	movs, err = env.Ledger.History(ctx, b.ID)
	require.NoError(t, err)
	require.Len(t, movs, 3)
	assert.Equal(t, "merma: rotos", movs[1].Note)
	assert.True(t, apptest.Dec("9").Equal(movs[1].UnitCost))

	_, err = env.Adjustments.Void(ctx, apptest.Actor, adj.ID)
	assert.ErrorIs(t, err, domain.ErrAlreadyVoid)
}

func TestAdjustment_LineaSinStockRevierteTodas(t *testing.T) {
	env := apptest.New(t)
	a := env.Product(t, "A", entity.TaxCategoryITBIS18, "10", "5", "10")
	b := env.Product(t, "B", entity.TaxCategoryITBIS18, "10", "5", "2")

	adj, err := env.Adjustments.Create(ctx, apptest.Actor, dto.CreateAdjustmentRequest{
		Direction: entity.AdjustmentOut, Reason: "conteo",
		Lines:     []dto.AdjustmentLineRequest{adjLine(a.ID, "3"), adjLine(b.ID, "5")},
	})
	require.NoError(t, err)
	_, err = env.Adjustments.Complete(ctx, apptest.Actor, adj.ID)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	// La primera línea tampoco se aplicó.
	assert.True(t, apptest.Dec("10").Equal(env.Stock(t, a.ID)))
	assert.True(t, apptest.Dec("2").Equal(env.Stock(t, b.ID)))
	movs, err := env.Ledger.History(ctx, a.ID)
	require.NoError(t, err)
	assert.Len(t, movs, 1)

	stored, err := env.Store.Repos().Adjustments.GetByID(ctx, adj.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.AdjustmentPending, stored.State)
	assert.Len(t, stored.Lines, 2)

	second, err := env.Adjustments.Create(ctx, apptest.Actor, dto.CreateAdjustmentRequest{
		Direction: entity.AdjustmentIn, Reason: "conteo", Lines: []dto.AdjustmentLineRequest{adjLine(b.ID, "1")},
	})
	require.NoError(t, err)
	assert.Equal(t, "AJ-20250310-0002", second.Number)

	voided, err := env.Adjustments.Void(ctx, apptest.Actor, second.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.AdjustmentVoid, voided.State)
	assert.True(t, apptest.Dec("2").Equal(env.Stock(t, b.ID)))
}

func TestAdjustment_AnularEntradaYaVendidaRevierteTodas(t *testing.T) {
	env := apptest.New(t)
	a := env.Product(t, "A", entity.TaxCategoryITBIS18, "10", "5", "0")
	b := env.Product(t, "B", entity.TaxCategoryITBIS18, "10", "5", "0")

	adj, err := env.Adjustments.Create(ctx, apptest.Actor, dto.CreateAdjustmentRequest{
		Direction: entity.AdjustmentIn, Reason: "hallazgo",
		Lines:     []dto.AdjustmentLineRequest{adjLine(a.ID, "4"), adjLine(b.ID, "4")},
	})
	require.NoError(t, err)
	_, err = env.Adjustments.Complete(ctx, apptest.Actor, adj.ID)
	require.NoError(t, err)

	_, err = env.Ledger.Record(ctx, apptest.Actor, inventory.MovementInput{
		ProductID: b.ID, Kind: entity.MovementExit, Quantity: apptest.Dec("3"),
		Cause: entity.CauseRef{Kind: entity.CauseAdjustment, ID: adj.ID},
	})
	require.NoError(t, err)

	_, err = env.Adjustments.Void(ctx, apptest.Actor, adj.ID)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.True(t, apptest.Dec("4").Equal(env.Stock(t, a.ID)), "la reversa de A se descartó")
	assert.True(t, apptest.Dec("1").Equal(env.Stock(t, b.ID)))

	stored, err := env.Store.Repos().Adjustments.GetByID(ctx, adj.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.AdjustmentCompleted, stored.State)
}

func TestAdjustment_Validaciones(t *testing.T) {
	env := apptest.New(t)
	p := env.Product(t, "A", entity.TaxCategoryITBIS18, "10", "5", "2")

	for name, req := range map[string]dto.CreateAdjustmentRequest{
		"dirección":  {Direction: "X", Reason: "r", Lines: []dto.AdjustmentLineRequest{adjLine(p.ID, "1")}},
		"cantidad":   {Direction: "IN", Reason: "r", Lines: []dto.AdjustmentLineRequest{adjLine(p.ID, "-1")}},
		"costo":      {Direction: "IN", Reason: "r", Lines: []dto.AdjustmentLineRequest{{ProductID: p.ID, Quantity: apptest.Dec("1"), Cost: apptest.Dec("-2")}}},
		"motivo":     {Direction: "IN", Lines: []dto.AdjustmentLineRequest{adjLine(p.ID, "1")}},
		"sin líneas": {Direction: "IN", Reason: "r"},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := env.Adjustments.Create(ctx, apptest.Actor, req)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
	_, err := env.Adjustments.Create(ctx, apptest.Actor, dto.CreateAdjustmentRequest{
		Direction: "IN", Reason: "r", Lines: []dto.AdjustmentLineRequest{adjLine(p.ID, "1"), adjLine("x", "1")},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// El ajuste rechazado no consumió número.
	adj, err := env.Adjustments.Create(ctx, apptest.Actor, dto.CreateAdjustmentRequest{
		Direction: "IN", Reason: "r", Lines: []dto.AdjustmentLineRequest{adjLine(p.ID, "1")},
	})
	require.NoError(t, err)
	assert.Equal(t, "AJ-20250310-0001", adj.Number)
}

// ── Stock bajo ────────────────────────────────────────────────────────────────

func TestLowStock_SugiereReposicion(t *testing.T) {
	env := apptest.New(t)
	low, err := env.Catalog.CreateProduct(ctx, apptest.Actor, dto.CreateProductRequest{
		SKU: "L", Name: "Bajo", Price: apptest.Dec("10"), Cost: apptest.Dec("4"),
		MinStock: apptest.Dec("10"), InitialStock: apptest.Dec("3"),
	})
	require.NoError(t, err)
	env.Product(t, "OK", entity.TaxCategoryITBIS18, "10", "4", "50")

	list, err := env.Catalog.LowStock(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, low.ID, list[0].ProductID)
	assert.True(t, apptest.Dec("12").Equal(list[0].SuggestedOrderQty), "sugerido %s", list[0].SuggestedOrderQty)
	assert.True(t, apptest.Dec("48").Equal(list[0].EstimatedCost))
}
