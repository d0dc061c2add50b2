package dto

import "github.com/shopspring/decimal"

// AccountResponse cuenta por cobrar o por pagar.
type AccountResponse struct {
	ID             string          `json:"id"`
	Kind           string          `json:"kind"`
	DocumentID     string          `json:"document_id"`
	CounterpartyID string          `json:"counterparty_id"`
	OriginalAmount decimal.Decimal `json:"original_amount"`
	PendingAmount  decimal.Decimal `json:"pending_amount"`
	PaidAmount     decimal.Decimal `json:"paid_amount"`
	IssueDate      string          `json:"issue_date"`
	DueDate        string          `json:"due_date"`
	State          string          `json:"state"`
}

// PayRequest body para POST /api/accounts/:kind/:id/payments.
type PayRequest struct {
	Amount    decimal.Decimal `json:"amount"`
	Method    string          `json:"method"` // EFECTIVO | CHEQUE | TRANSFERENCIA | TARJETA
	Reference string          `json:"reference,omitempty"`
}

// PaymentResponse pago con el estado resultante de la cuenta.
type PaymentResponse struct {
	ID          string           `json:"id"`
	AccountKind string           `json:"account_kind"`
	AccountID   string           `json:"account_id"`
	Amount      decimal.Decimal  `json:"amount"`
	Method      string           `json:"method"`
	Reference   string           `json:"reference,omitempty"`
	Date        string           `json:"date"`
	State       string           `json:"state"`
	Account     *AccountResponse `json:"account,omitempty"`
}

// SweepResponse resultado del barrido de vencidas.
type SweepResponse struct {
	Updated int `json:"updated"`
}
