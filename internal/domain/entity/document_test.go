package entity_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/comercial-api/internal/domain"
	"github.com/jhoicas/comercial-api/internal/domain/entity"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func saleWithTwoLines() *entity.Document {
	return &entity.Document{
		Kind:  entity.DocumentSale,
		State: entity.DocumentPending,
		Date:  time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		Lines: []entity.DocumentLine{
			{ProductID: "p1", Quantity: dec("3"), UnitPrice: dec("100"), TaxRate: dec("0.18")},
			{ProductID: "p2", Quantity: dec("1"), UnitPrice: dec("50"), TaxRate: dec("0.18")},
		},
		PaymentTermDays: 30,
	}
}

// ── Totales ───────────────────────────────────────────────────────────────────

func TestDocument_RecomputeTotals_Escenario350(t *testing.T) {
	doc := saleWithTwoLines()
	doc.RecomputeTotals()

	assert.True(t, dec("350").Equal(doc.Subtotal), "subtotal %s", doc.Subtotal)
	assert.True(t, dec("63").Equal(doc.Tax), "tax %s", doc.Tax)
	assert.True(t, dec("0").Equal(doc.Discount))
	assert.True(t, dec("413").Equal(doc.Total), "total %s", doc.Total)

	var sum decimal.Decimal
	for _, l := range doc.Lines {
		sum = sum.Add(l.Total)
	}
	assert.True(t, sum.Equal(doc.Total), "el total debe ser la suma de las líneas")
}

func TestDocument_RecomputeTotals_ConDescuentoYExento(t *testing.T) {
	doc := &entity.Document{Lines: []entity.DocumentLine{
		{ProductID: "p1", Quantity: dec("2"), UnitPrice: dec("100"), Discount: dec("20"), TaxRate: dec("0.16")},
		{ProductID: "p2", Quantity: dec("1"), UnitPrice: dec("75.50"), TaxRate: decimal.Zero},
	}}
	doc.RecomputeTotals()

	assert.True(t, dec("275.50").Equal(doc.Subtotal))
	assert.True(t, dec("32").Equal(doc.Tax))
	assert.True(t, dec("20").Equal(doc.Discount))
	assert.True(t, dec("287.50").Equal(doc.Total))
}

func TestDocument_RecomputeTotals_FraccionesDeCentavo(t *testing.T) {
	doc := &entity.Document{Lines: []entity.DocumentLine{
		{ProductID: "p1", Quantity: dec("1"), UnitPrice: dec("0.005"), TaxRate: decimal.Zero},
		{ProductID: "p2", Quantity: dec("1"), UnitPrice: dec("0.005"), TaxRate: decimal.Zero},
		{ProductID: "p3", Quantity: dec("1"), UnitPrice: dec("0.005"), TaxRate: decimal.Zero},
		{ProductID: "p4", Quantity: dec("0.333"), UnitPrice: dec("10.01"), Discount: dec("0.004"), TaxRate: dec("0.18")},
	}}
	doc.RecomputeTotals()

	// Las columnas monetarias guardan 2 decimales: nada debe cambiar al redondear.
	var sum decimal.Decimal
	for _, l := range doc.Lines {
		for _, v := range []decimal.Decimal{l.Subtotal, l.Tax, l.Discount, l.Total} {
			assert.True(t, v.Equal(v.Round(2)), "valor con fracción de centavo: %s", v)
		}
		sum = sum.Add(l.Total.Round(2))
	}
	assert.True(t, doc.Total.Equal(doc.Total.Round(2)))
	assert.True(t, sum.Equal(doc.Total.Round(2)), "total %s, suma de líneas %s", doc.Total, sum)

	assert.True(t, dec("0.01").Equal(doc.Lines[0].Total))
	assert.True(t, dec("3.33").Equal(doc.Lines[3].Subtotal))
	assert.True(t, dec("0.60").Equal(doc.Lines[3].Tax))
	assert.True(t, dec("3.93").Equal(doc.Lines[3].Total))
	assert.True(t, dec("3.96").Equal(doc.Total))
}

func TestDocumentLine_Validate(t *testing.T) {
	cases := []struct {
		name string
		line entity.DocumentLine
		ok   bool
	}{
		{"válida", entity.DocumentLine{ProductID: "p", Quantity: dec("1"), UnitPrice: dec("0")}, true},
		{"sin producto", entity.DocumentLine{Quantity: dec("1"), UnitPrice: dec("1")}, false},
		{"cantidad cero", entity.DocumentLine{ProductID: "p", Quantity: dec("0"), UnitPrice: dec("1")}, false},
		{"precio negativo", entity.DocumentLine{ProductID: "p", Quantity: dec("1"), UnitPrice: dec("-1")}, false},
		{"descuento negativo", entity.DocumentLine{ProductID: "p", Quantity: dec("1"), UnitPrice: dec("1"), Discount: dec("-1")}, false},
		{"descuento mayor al subtotal", entity.DocumentLine{ProductID: "p", Quantity: dec("2"), UnitPrice: dec("5"), Discount: dec("11")}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.line.Validate()
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, domain.ErrInvalidInput)
			}
		})
	}
}

// ── Estados ───────────────────────────────────────────────────────────────────

func TestDocument_Transiciones(t *testing.T) {
	now := time.Now()
	doc := saleWithTwoLines()

	require.NoError(t, doc.Complete(now))
	assert.Equal(t, entity.DocumentCompleted, doc.State)
	assert.ErrorIs(t, doc.Complete(now), domain.ErrInvalidTransition)

	doc.FiscalNumber = "B0200000001"
	require.NoError(t, doc.Void(now, "error de digitación"))
	assert.Equal(t, entity.DocumentVoid, doc.State)
	assert.Equal(t, "B0200000001", doc.FiscalNumber, "el NCF se conserva al anular")
	require.NotNil(t, doc.VoidedAt)

	err := doc.Void(now, "otra vez")
	assert.ErrorIs(t, err, domain.ErrAlreadyVoid)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestDocument_DueDateYCondicion(t *testing.T) {
	doc := saleWithTwoLines()
	assert.Equal(t, entity.ConditionCredit, doc.PaymentCondition())
	assert.Equal(t, time.Date(2026, 3, 31, 10, 0, 0, 0, time.UTC), doc.DueDate())

	doc.PaymentTermDays = 0
	assert.Equal(t, entity.ConditionCash, doc.PaymentCondition())
}
