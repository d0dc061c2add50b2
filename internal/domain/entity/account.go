package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/comercial-api/internal/domain"
)

// Tipos de cuenta.
const (
	AccountReceivable = "RECEIVABLE"
	AccountPayable    = "PAYABLE"
)

// Estados de cuenta.
const (
	AccountPending = "PENDING"
	AccountPaid    = "PAID"
	AccountOverdue = "OVERDUE"
	AccountVoid    = "VOID"
)

// AccountRef referencia a una cuenta por cobrar o por pagar.
type AccountRef struct {
	Kind string
	ID   string
}

// IsValidAccountKind valida el tipo de cuenta.
func IsValidAccountKind(kind string) bool {
	return kind == AccountReceivable || kind == AccountPayable
}

// Account cuenta por cobrar (venta a crédito) o por pagar (compra a crédito).
// Invariante: 0 <= PendingAmount <= OriginalAmount.
type Account struct {
	ID             string
	Kind           string
	DocumentID     string
	CounterpartyID string
	OriginalAmount decimal.Decimal
	PendingAmount  decimal.Decimal
	IssueDate      time.Time
	DueDate        time.Time
	State          string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Ref referencia tipada de la cuenta.
func (a *Account) Ref() AccountRef {
	return AccountRef{Kind: a.Kind, ID: a.ID}
}

// PaidAmount monto abonado hasta ahora.
func (a *Account) PaidAmount() decimal.Decimal {
	return a.OriginalAmount.Sub(a.PendingAmount)
}

// Refresh marca OVERDUE si está pendiente y venció. Devuelve true si cambió.
func (a *Account) Refresh(now time.Time) bool {
	if a.State == AccountPending && now.After(a.DueDate) {
		a.State = AccountOverdue
		a.UpdatedAt = now
		return true
	}
	return false
}

// ApplyPayment descuenta el monto del pendiente. Rechaza montos mayores al pendiente.
func (a *Account) ApplyPayment(amount decimal.Decimal, now time.Time) error {
	if a.State == AccountVoid {
		return domain.ErrAccountVoid
	}
	if a.State != AccountPending && a.State != AccountOverdue {
		return domain.ErrAccountNotPayable
	}
	if !amount.GreaterThan(decimal.Zero) {
		return domain.Validation("el monto debe ser mayor que cero")
	}
	if amount.GreaterThan(a.PendingAmount) {
		return domain.ErrExcessPayment
	}
	a.PendingAmount = a.PendingAmount.Sub(amount)
	if a.PendingAmount.Sign() <= 0 {
		a.PendingAmount = decimal.Zero
		a.State = AccountPaid
	}
	a.UpdatedAt = now
	return nil
}

// RestorePayment devuelve al pendiente el monto de un pago anulado y recalcula el estado.
func (a *Account) RestorePayment(amount decimal.Decimal, now time.Time) error {
	if a.State == AccountVoid {
		return domain.ErrAccountVoid
	}
	restored := a.PendingAmount.Add(amount)
	if restored.GreaterThan(a.OriginalAmount) {
		return domain.ErrRestoreExceedsOriginal
	}
	a.PendingAmount = restored
	if a.PendingAmount.Sign() > 0 {
		a.State = AccountPending
		a.Refresh(now)
	}
	a.UpdatedAt = now
	return nil
}

// Void anula la cuenta; el pendiente queda como saldo castigado.
func (a *Account) Void(now time.Time) error {
	if a.State == AccountVoid {
		return domain.ErrAlreadyVoid
	}
	a.State = AccountVoid
	a.UpdatedAt = now
	return nil
}
