package dto

import "github.com/shopspring/decimal"

// CreateProductRequest body para POST /api/products.
// InitialStock > 0 registra un movimiento INITIAL.
type CreateProductRequest struct {
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	TaxCategory  string          `json:"tax_category"` // ITBIS18 | ITBIS16 | EXENTO
	Unit         string          `json:"unit,omitempty"`
	Price        decimal.Decimal `json:"price"`
	Cost         decimal.Decimal `json:"cost"`
	MinStock     decimal.Decimal `json:"min_stock"`
	InitialStock decimal.Decimal `json:"initial_stock"`
}

// ProductResponse producto en respuestas.
type ProductResponse struct {
	ID          string          `json:"id"`
	SKU         string          `json:"sku"`
	Name        string          `json:"name"`
	TaxCategory string          `json:"tax_category"`
	Unit        string          `json:"unit,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Cost        decimal.Decimal `json:"cost"`
	Stock       decimal.Decimal `json:"stock"`
	MinStock    decimal.Decimal `json:"min_stock"`
	Active      bool            `json:"active"`
}

// CreateCounterpartyRequest body para POST /api/counterparties.
type CreateCounterpartyRequest struct {
	Kind            string `json:"kind"` // CUSTOMER | SUPPLIER
	Name            string `json:"name"`
	TaxID           string `json:"tax_id,omitempty"`
	Email           string `json:"email,omitempty"`
	Phone           string `json:"phone,omitempty"`
	PaymentTermDays int    `json:"payment_term_days"`
}

// CounterpartyResponse cliente o proveedor.
type CounterpartyResponse struct {
	ID              string `json:"id"`
	Kind            string `json:"kind"`
	Name            string `json:"name"`
	TaxID           string `json:"tax_id,omitempty"`
	Email           string `json:"email,omitempty"`
	Phone           string `json:"phone,omitempty"`
	PaymentTermDays int    `json:"payment_term_days"`
}
