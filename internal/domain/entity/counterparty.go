package entity

import "time"

// Tipos de contraparte.
const (
	CounterpartyCustomer = "CUSTOMER"
	CounterpartySupplier = "SUPPLIER"
)

// Counterparty cliente o proveedor. PaymentTermDays > 0 indica crédito.
type Counterparty struct {
	ID              string
	Kind            string
	Name            string
	TaxID           string // RNC o cédula
	Email           string
	Phone           string
	PaymentTermDays int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
