package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/comercial-api/internal/domain"
	"github.com/jhoicas/comercial-api/internal/domain/entity"
	"github.com/jhoicas/comercial-api/internal/domain/repository"
	"github.com/jhoicas/comercial-api/internal/infrastructure/memory"
)

var ctx = context.Background()

func product(id, sku string) *entity.Product {
	return &entity.Product{ID: id, SKU: sku, Name: sku, TaxCategory: entity.TaxCategoryITBIS18, Active: true}
}

func TestRun_RollbackDescartaTodo(t *testing.T) {
	store := memory.NewStore()
	boom := errors.New("boom")

	err := store.Run(ctx, func(r repository.Repos) error {
		require.NoError(t, r.Products.Create(ctx, product("p1", "A")))
		require.NoError(t, r.Movements.Create(ctx, &entity.InventoryMovement{ID: "m1", ProductID: "p1", Kind: entity.MovementEntry}))
		return boom
	})
	require.ErrorIs(t, err, boom)

	p, err := store.Repos().Products.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Nil(t, p)
	n, err := store.Repos().Movements.CountByProduct(ctx, "p1")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestRun_CommitPublica(t *testing.T) {
	store := memory.NewStore()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, store.Run(ctx, func(r repository.Repos) error {
		if err := r.Products.Create(ctx, product("p1", "A")); err != nil {
			return err
		}
		return r.Products.UpdateStock(ctx, "p1", decimal.NewFromInt(7), now)
	}))

	p, err := store.Repos().Products.GetByID(ctx, "p1")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.True(t, decimal.NewFromInt(7).Equal(p.Stock))

	// Las copias devueltas no alteran el estado.
	p.Stock = decimal.NewFromInt(1000)
	again, _ := store.Repos().Products.GetByID(ctx, "p1")
	assert.True(t, decimal.NewFromInt(7).Equal(again.Stock))
}

func TestMovements_SeqMonotono(t *testing.T) {
	store := memory.NewStore()
	require.NoError(t, store.Run(ctx, func(r repository.Repos) error {
		for _, id := range []string{"m1", "m2", "m3"} {
			if err := r.Movements.Create(ctx, &entity.InventoryMovement{ID: id, ProductID: "p1", Kind: entity.MovementEntry}); err != nil {
				return err
			}
		}
		return nil
	}))
	movs, err := store.Repos().Movements.ListByProduct(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, movs, 3)
	assert.Equal(t, []int64{1, 2, 3}, []int64{movs[0].Seq, movs[1].Seq, movs[2].Seq})
}

func TestDocuments_RestriccionesUnicas(t *testing.T) {
	store := memory.NewStore()
	doc := func(id, kind, cp, ncf string) *entity.Document {
		return &entity.Document{ID: id, Kind: kind, CounterpartyID: cp, FiscalNumber: ncf, State: entity.DocumentCompleted}
	}
	err := store.Run(ctx, func(r repository.Repos) error {
		require.NoError(t, r.Documents.Create(ctx, doc("d1", entity.DocumentSale, "c1", "B0200000001")))
		assert.ErrorIs(t, r.Documents.Create(ctx, doc("d2", entity.DocumentSale, "c2", "B0200000001")), domain.ErrDuplicateFiscalNumber)

		require.NoError(t, r.Documents.Create(ctx, doc("d3", entity.DocumentPurchase, "s1", "B0100000001")))
		require.NoError(t, r.Documents.Create(ctx, doc("d4", entity.DocumentPurchase, "s2", "B0100000001")))
		assert.ErrorIs(t, r.Documents.Create(ctx, doc("d5", entity.DocumentPurchase, "s1", "B0100000001")), domain.ErrDuplicateFiscalNumber)

		require.NoError(t, r.Accounts.Create(ctx, &entity.Account{ID: "a1", DocumentID: "d1"}))
		assert.ErrorIs(t, r.Accounts.Create(ctx, &entity.Account{ID: "a2", DocumentID: "d1"}), domain.ErrAccountExists)
		return nil
	})
	require.NoError(t, err)
}

func TestRun_ContextoCancelado(t *testing.T) {
	store := memory.NewStore()
	cctx, cancel := context.WithCancel(ctx)
	cancel()
	called := false
	err := store.Run(cctx, func(repository.Repos) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

// ── Consecutivos ──────────────────────────────────────────────────────────────

func TestNextNumber_PorTipoYDia(t *testing.T) {
	store := memory.NewStore()
	day := time.Date(2025, 3, 10, 23, 0, 0, 0, time.UTC)

	next := func(fn func(r repository.Repos) (int, error)) int {
		var n int
		require.NoError(t, store.Run(ctx, func(r repository.Repos) error {
			var err error
			n, err = fn(r)
			return err
		}))
		return n
	}
	sale := func(d time.Time) func(r repository.Repos) (int, error) {
		return func(r repository.Repos) (int, error) { return r.Documents.NextNumber(ctx, entity.DocumentSale, d) }
	}

	assert.Equal(t, 1, next(sale(day)))
	assert.Equal(t, 2, next(sale(day)))
	assert.Equal(t, 1, next(func(r repository.Repos) (int, error) {
		return r.Documents.NextNumber(ctx, entity.DocumentPurchase, day)
	}))
	assert.Equal(t, 1, next(func(r repository.Repos) (int, error) { return r.Adjustments.NextNumber(ctx, day) }))
	assert.Equal(t, 1, next(sale(day.Add(2*time.Hour))), "el día siguiente reinicia")

	// Un número tomado en una transacción fallida no se consume.
	boom := errors.New("boom")
	err := store.Run(ctx, func(r repository.Repos) error {
		n, err := r.Documents.NextNumber(ctx, entity.DocumentSale, day)
		require.NoError(t, err)
		assert.Equal(t, 3, n)
		return boom
	})
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 3, next(sale(day)))
}

func TestAdjustment_LineasSonCopias(t *testing.T) {
	store := memory.NewStore()
	adj := &entity.Adjustment{ID: "a1", Number: "AJ-1", Direction: entity.AdjustmentIn, State: entity.AdjustmentPending,
		Lines: []entity.AdjustmentLine{{ID: "l1", ProductID: "p1", Quantity: decimal.NewFromInt(2)}}}
	require.NoError(t, store.Run(ctx, func(r repository.Repos) error { return r.Adjustments.Create(ctx, adj) }))

	adj.Lines[0].Quantity = decimal.NewFromInt(99)
	got, err := store.Repos().Adjustments.GetByID(ctx, "a1")
	require.NoError(t, err)
	require.Len(t, got.Lines, 1)
	assert.True(t, decimal.NewFromInt(2).Equal(got.Lines[0].Quantity))
}
