package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/comercial-api/internal/domain"
	"github.com/jhoicas/comercial-api/internal/domain/entity"
	"github.com/jhoicas/comercial-api/internal/domain/inventory"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestNextStock(t *testing.T) {
	cases := []struct {
		kind   string
		before string
		qty    string
		want   string
		err    error
	}{
		{entity.MovementEntry, "10", "5", "15", nil},
		{entity.MovementAdjustIn, "0", "2", "2", nil},
		{entity.MovementReturn, "1", "3", "4", nil},
		{entity.MovementInitial, "0", "7", "7", nil},
		{entity.MovementExit, "10", "10", "0", nil},
		{entity.MovementAdjustOut, "5", "2", "3", nil},
		{entity.MovementExit, "2", "3", "2", domain.ErrInsufficientStock},
		{entity.MovementAdjustOut, "0", "1", "0", domain.ErrInsufficientStock},
	}
	for _, tc := range cases {
		t.Run(tc.kind+"_"+tc.before+"_"+tc.qty, func(t *testing.T) {
			got, err := inventory.NextStock(tc.kind, d(tc.before), d(tc.qty))
			if tc.err != nil {
				assert.ErrorIs(t, err, tc.err)
			} else {
				require.NoError(t, err)
			}
			assert.True(t, d(tc.want).Equal(got), "esperado %s, obtenido %s", tc.want, got)
		})
	}
}

func TestNextStock_CantidadNoPositiva(t *testing.T) {
	_, err := inventory.NextStock(entity.MovementEntry, d("1"), d("0"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestReplay_DetectaDiscontinuidad(t *testing.T) {
	movs := []*entity.InventoryMovement{
		{ID: "m1", Seq: 1, Kind: entity.MovementInitial, Quantity: d("10"), StockBefore: d("0"), StockAfter: d("10")},
		{ID: "m2", Seq: 2, Kind: entity.MovementExit, Quantity: d("4"), StockBefore: d("10"), StockAfter: d("6")},
		{ID: "m3", Seq: 3, Kind: entity.MovementEntry, Quantity: d("1"), StockBefore: d("5"), StockAfter: d("6")},
	}
	stock, breaks := inventory.Replay(movs)
	assert.True(t, d("7").Equal(stock))
	require.Len(t, breaks, 1)
	assert.Equal(t, "m3", breaks[0].MovementID)
}

func TestCostCalculator_PromedioPonderado(t *testing.T) {
	// 10 u a 100 + 10 u a 200 = 150
	got := inventory.CostCalculator(d("10"), d("100"), d("10"), d("200"))
	assert.True(t, d("150").Equal(got))

	// sin stock previo toma el costo de entrada
	got = inventory.CostCalculator(d("0"), d("80"), d("5"), d("120"))
	assert.True(t, d("120").Equal(got))
}
