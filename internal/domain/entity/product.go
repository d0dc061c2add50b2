package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Categorías de ITBIS del producto.
const (
	TaxCategoryITBIS18 = "ITBIS18"
	TaxCategoryITBIS16 = "ITBIS16"
	TaxCategoryExempt  = "EXENTO"
)

var taxRates = map[string]decimal.Decimal{
	TaxCategoryITBIS18: decimal.RequireFromString("0.18"),
	TaxCategoryITBIS16: decimal.RequireFromString("0.16"),
	TaxCategoryExempt:  decimal.Zero,
}

// TaxRateFor devuelve la tasa de ITBIS de la categoría. ok=false si la categoría no existe.
func TaxRateFor(category string) (decimal.Decimal, bool) {
	r, ok := taxRates[category]
	return r, ok
}

// Product representa un producto del catálogo.
// Stock es el contador corriente mantenido por el libro de inventario (nunca se escribe directo);
// Cost es el costo promedio ponderado actualizado por las compras.
type Product struct {
	ID          string
	SKU         string
	Name        string
	TaxCategory string
	Unit        string
	Price       decimal.Decimal // precio de venta sugerido
	Cost        decimal.Decimal
	Stock       decimal.Decimal
	MinStock    decimal.Decimal
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TaxRate tasa de ITBIS aplicable al producto (0 si la categoría es desconocida).
func (p *Product) TaxRate() decimal.Decimal {
	r, _ := TaxRateFor(p.TaxCategory)
	return r
}

// BelowMinimum indica si el stock llegó al mínimo configurado.
func (p *Product) BelowMinimum() bool {
	return p.MinStock.GreaterThan(decimal.Zero) && p.Stock.LessThanOrEqual(p.MinStock)
}
