package catalog_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/comercial-api/internal/application/apptest"
	"github.com/jhoicas/comercial-api/internal/application/dto"
	"github.com/jhoicas/comercial-api/internal/domain"
	"github.com/jhoicas/comercial-api/internal/domain/entity"
)

var ctx = context.Background()

func TestCreateProduct_StockInicialPorLibro(t *testing.T) {
	env := apptest.New(t)
	p, err := env.Catalog.CreateProduct(ctx, apptest.Actor, dto.CreateProductRequest{
		SKU: " ARR-01 ", Name: "Arroz 10lb", Price: apptest.Dec("350"), Cost: apptest.Dec("280"), InitialStock: apptest.Dec("12"),
	})
	require.NoError(t, err)
	assert.Equal(t, "ARR-01", p.SKU)
	assert.Equal(t, entity.TaxCategoryITBIS18, p.TaxCategory)
	assert.True(t, apptest.Dec("12").Equal(p.Stock))

	movs, err := env.Ledger.History(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementInitial, movs[0].Kind)
	assert.Equal(t, "INICIAL", movs[0].CauseNumber)
}

func TestCreateProduct_SinStockInicial(t *testing.T) {
	env := apptest.New(t)
	p, err := env.Catalog.CreateProduct(ctx, apptest.Actor, dto.CreateProductRequest{
		SKU: "X", Name: "X", TaxCategory: "exento", Price: apptest.Dec("1"),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.TaxCategoryExempt, p.TaxCategory)

	movs, err := env.Ledger.History(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, movs)
}

func TestCreateProduct_Validaciones(t *testing.T) {
	env := apptest.New(t)
	env.Product(t, "DUP", entity.TaxCategoryITBIS18, "1", "1", "0")

	cases := []struct {
		name string
		req  dto.CreateProductRequest
		err  error
	}{
		{"sin sku", dto.CreateProductRequest{Name: "x"}, domain.ErrInvalidInput},
		{"categoría", dto.CreateProductRequest{SKU: "a", Name: "x", TaxCategory: "IVA19"}, domain.ErrInvalidInput},
		{"precio negativo", dto.CreateProductRequest{SKU: "a", Name: "x", Price: apptest.Dec("-1")}, domain.ErrInvalidInput},
		{"sku duplicado", dto.CreateProductRequest{SKU: "DUP", Name: "x"}, domain.ErrDuplicate},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := env.Catalog.CreateProduct(ctx, apptest.Actor, tc.req)
			assert.ErrorIs(t, err, tc.err)
		})
	}
}

func TestCreateCounterparty(t *testing.T) {
	env := apptest.New(t)

	c, err := env.Catalog.CreateCounterparty(ctx, dto.CreateCounterpartyRequest{
		Kind: "customer", Name: "Colmado La Esquina", TaxID: "101-01063-2", PaymentTermDays: 30,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.CounterpartyCustomer, c.Kind)

	got, err := env.Catalog.GetCounterparty(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, 30, got.PaymentTermDays)

	_, err = env.Catalog.CreateCounterparty(ctx, dto.CreateCounterpartyRequest{Kind: "SUPPLIER", Name: "X", TaxID: "101010633"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = env.Catalog.CreateCounterparty(ctx, dto.CreateCounterpartyRequest{Kind: "EMPLEADO", Name: "X"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = env.Catalog.GetCounterparty(ctx, "x")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
