package dto

import "github.com/shopspring/decimal"

// DocumentLineRequest línea de venta o compra. El total nunca viene del cliente.
type DocumentLineRequest struct {
	ProductID string          `json:"product_id"`
	UnitID    string          `json:"unit_id,omitempty"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Discount  decimal.Decimal `json:"discount"`
}

// CreateSaleRequest body para POST /api/sales.
// FiscalType: 01 crédito fiscal, 02 consumo (por defecto).
// PaymentTermDays nil toma el plazo del cliente; 0 es contado.
type CreateSaleRequest struct {
	CustomerID      string                `json:"customer_id"`
	FiscalType      string                `json:"fiscal_type,omitempty"`
	PaymentTermDays *int                  `json:"payment_term_days,omitempty"`
	Notes           string                `json:"notes,omitempty"`
	Lines           []DocumentLineRequest `json:"lines"`
}

// CreatePurchaseRequest body para POST /api/purchases. SupplierNCF es opcional.
type CreatePurchaseRequest struct {
	SupplierID      string                `json:"supplier_id"`
	SupplierNCF     string                `json:"supplier_ncf,omitempty"`
	PaymentTermDays *int                  `json:"payment_term_days,omitempty"`
	Notes           string                `json:"notes,omitempty"`
	Lines           []DocumentLineRequest `json:"lines"`
}

// VoidDocumentRequest body para POST /api/documents/:id/void.
type VoidDocumentRequest struct {
	Reason string `json:"reason"`
}

// DocumentResponse venta o compra con líneas y cuenta asociada.
type DocumentResponse struct {
	ID               string                 `json:"id"`
	Kind             string                 `json:"kind"`
	Number           string                 `json:"number"`
	CounterpartyID   string                 `json:"counterparty_id"`
	CounterpartyName string                 `json:"counterparty_name,omitempty"`
	Date             string                 `json:"date"`
	FiscalNumber     string                 `json:"fiscal_number,omitempty"`
	FiscalType       string                 `json:"fiscal_type,omitempty"`
	Subtotal         decimal.Decimal        `json:"subtotal"`
	Tax              decimal.Decimal        `json:"tax"`
	Discount         decimal.Decimal        `json:"discount"`
	Total            decimal.Decimal        `json:"total"`
	State            string                 `json:"state"`
	PaymentCondition string                 `json:"payment_condition"`
	PaymentTermDays  int                    `json:"payment_term_days"`
	Notes            string                 `json:"notes,omitempty"`
	VoidReason       string                 `json:"void_reason,omitempty"`
	Lines            []DocumentLineResponse `json:"lines"`
	Account          *AccountResponse       `json:"account,omitempty"`
}

// DocumentLineResponse línea con valores calculados.
type DocumentLineResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	UnitID    string          `json:"unit_id,omitempty"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Discount  decimal.Decimal `json:"discount"`
	TaxRate   decimal.Decimal `json:"tax_rate"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Tax       decimal.Decimal `json:"tax"`
	Total     decimal.Decimal `json:"total"`
}
