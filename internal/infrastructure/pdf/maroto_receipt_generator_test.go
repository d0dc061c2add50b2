package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/comercial-api/internal/application/documents"
	"github.com/jhoicas/comercial-api/internal/domain/entity"
)

func TestMoney(t *testing.T) {
	g := NewMarotoReceiptGenerator(Issuer{Name: "Comercial SRL"})

	assert.Equal(t, "RD$1,234.50", g.money(decimal.RequireFromString("1234.5")))
	assert.Equal(t, "RD$413.00", g.money(decimal.NewFromInt(413)))
	assert.Equal(t, "RD$0.00", g.money(decimal.Zero))
}

func TestGenerateReceiptPDF(t *testing.T) {
	g := NewMarotoReceiptGenerator(Issuer{Name: "Comercial SRL", TaxID: "131246796"})
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	line := entity.DocumentLine{
		ProductID: "p1",
		Quantity:  decimal.NewFromInt(2),
		UnitPrice: decimal.NewFromInt(100),
		TaxRate:   decimal.RequireFromString("0.18"),
	}
	line.Compute()
	doc := &entity.Document{
		Kind:            entity.DocumentSale,
		Number:          "V-20250310-0001",
		Date:            now,
		FiscalNumber:    "B0200000001",
		FiscalType:      "02",
		Lines:           []entity.DocumentLine{line},
		State:           entity.DocumentCompleted,
		PaymentTermDays: 30,
	}
	doc.RecomputeTotals()
	customer := &entity.Counterparty{Name: "Cliente Uno", TaxID: "001-0000000-1"}

	out, err := g.GenerateReceiptPDF(context.Background(), doc, customer,
		[]documents.ReceiptLine{{DocumentLine: line, ProductName: "Producto A"}})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}
