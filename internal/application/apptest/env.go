// Package apptest arma los casos de uso sobre el almacenamiento en memoria para pruebas.
package apptest

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/comercial-api/internal/application/dto"
	"github.com/jhoicas/comercial-api/internal/application/ports"
	"github.com/jhoicas/comercial-api/internal/bootstrap"
	"github.com/jhoicas/comercial-api/internal/clock"
	"github.com/jhoicas/comercial-api/internal/domain/entity"
	"github.com/jhoicas/comercial-api/internal/infrastructure/memory"
	"github.com/jhoicas/comercial-api/internal/infrastructure/pdf"
	"github.com/jhoicas/comercial-api/pkg/dgii"
	"github.com/jhoicas/comercial-api/pkg/logger"
)

// Start fecha fija de las pruebas.
var Start = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

// Actor usuario de las pruebas.
var Actor = entity.ActorContext{UserID: "u-test", IP: "127.0.0.1", UserAgent: "go-test"}

// Env casos de uso conectados a un Store en memoria y a un reloj falso.
type Env struct {
	*bootstrap.Services
	Store *memory.Store
	Clock *clock.Fake
}

// New construye el entorno con métricas y logger vacíos.
func New(t *testing.T) *Env {
	return NewWithMetrics(t, ports.NopMetrics{})
}

// NewWithMetrics igual que New con un registrador de métricas propio.
func NewWithMetrics(t *testing.T, metrics ports.MetricsRecorder) *Env {
	t.Helper()
	store := memory.NewStore()
	clk := clock.NewFake(Start)
	svc := bootstrap.NewServices(store, store.Repos(), bootstrap.Options{
		Clock:   clk,
		Metrics: metrics,
		PDF:     pdf.NewMarotoReceiptGenerator(pdf.Issuer{Name: "Comercial SRL", TaxID: "131246796"}),
		Log:     logger.Nop(),
	})
	return &Env{Services: svc, Store: store, Clock: clk}
}

// Dec atajo para decimales literales.
func Dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// Sequence crea una secuencia serie B del tipo con el rango [1, end).
func (e *Env) Sequence(t *testing.T, docType string, end int64) *dto.SequenceResponse {
	t.Helper()
	seq, err := e.Sequences.Create(context.Background(), Actor, dto.CreateSequenceRequest{
		DocumentType: docType,
		Series:       dgii.SeriesPrinted,
		RangeStart:   1,
		RangeEnd:     end,
		Expiry:       Start.AddDate(1, 0, 0),
	})
	require.NoError(t, err)
	return seq
}

// Product crea un producto con stock inicial.
func (e *Env) Product(t *testing.T, sku, category, price, cost, stock string) *dto.ProductResponse {
	t.Helper()
	p, err := e.Catalog.CreateProduct(context.Background(), Actor, dto.CreateProductRequest{
		SKU:          sku,
		Name:         "Producto " + sku,
		TaxCategory:  category,
		Price:        Dec(price),
		Cost:         Dec(cost),
		InitialStock: Dec(stock),
	})
	require.NoError(t, err)
	return p
}

// Customer crea un cliente con el plazo indicado.
func (e *Env) Customer(t *testing.T, termDays int, taxID string) *dto.CounterpartyResponse {
	t.Helper()
	return e.counterparty(t, entity.CounterpartyCustomer, termDays, taxID)
}

// Supplier crea un proveedor con el plazo indicado.
func (e *Env) Supplier(t *testing.T, termDays int) *dto.CounterpartyResponse {
	t.Helper()
	return e.counterparty(t, entity.CounterpartySupplier, termDays, "")
}

func (e *Env) counterparty(t *testing.T, kind string, termDays int, taxID string) *dto.CounterpartyResponse {
	t.Helper()
	c, err := e.Catalog.CreateCounterparty(context.Background(), dto.CreateCounterpartyRequest{
		Kind:            kind,
		Name:            "Contraparte " + kind,
		TaxID:           taxID,
		PaymentTermDays: termDays,
	})
	require.NoError(t, err)
	return c
}

// Scenario413 venta a crédito de 30 días: 2 x 100 + 3 x 50 con ITBIS 18% = 413.
type Scenario413 struct {
	Customer *dto.CounterpartyResponse
	A, B     *dto.ProductResponse
	Sale     *dto.DocumentResponse
}

// Sale413 crea secuencia 02, productos, cliente y la venta de 413.
func (e *Env) Sale413(t *testing.T) Scenario413 {
	t.Helper()
	e.Sequence(t, dgii.TypeConsumo, 1000)
	s := Scenario413{
		Customer: e.Customer(t, 30, ""),
		A:        e.Product(t, "A", entity.TaxCategoryITBIS18, "100", "60", "10"),
		B:        e.Product(t, "B", entity.TaxCategoryITBIS18, "50", "30", "10"),
	}
	sale, err := e.Documents.CreateSale(context.Background(), Actor, dto.CreateSaleRequest{
		CustomerID: s.Customer.ID,
		Lines: []dto.DocumentLineRequest{
			{ProductID: s.A.ID, Quantity: Dec("2"), UnitPrice: Dec("100")},
			{ProductID: s.B.ID, Quantity: Dec("3"), UnitPrice: Dec("50")},
		},
	})
	require.NoError(t, err)
	s.Sale = sale
	return s
}

// Stock stock corriente del producto.
func (e *Env) Stock(t *testing.T, productID string) decimal.Decimal {
	t.Helper()
	p, err := e.Catalog.GetProduct(context.Background(), productID)
	require.NoError(t, err)
	return p.Stock
}
