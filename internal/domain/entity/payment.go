package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/comercial-api/internal/domain"
)

// Métodos de pago aceptados.
const (
	PaymentCash     = "EFECTIVO"
	PaymentCheck    = "CHEQUE"
	PaymentTransfer = "TRANSFERENCIA"
	PaymentCard     = "TARJETA"
)

// Estados del pago.
const (
	PaymentActive = "ACTIVE"
	PaymentVoid   = "VOID"
)

// IsValidPaymentMethod valida el método de pago.
func IsValidPaymentMethod(m string) bool {
	switch m {
	case PaymentCash, PaymentCheck, PaymentTransfer, PaymentCard:
		return true
	}
	return false
}

// Payment abono aplicado a una cuenta por cobrar o por pagar.
type Payment struct {
	ID        string
	Account   AccountRef
	Amount    decimal.Decimal
	Method    string
	Reference string
	Date      time.Time
	State     string
	CreatedBy string
	VoidedAt  *time.Time
	CreatedAt time.Time
}

// Void ACTIVE -> VOID.
func (p *Payment) Void(now time.Time) error {
	if p.State == PaymentVoid {
		return domain.ErrAlreadyVoid
	}
	p.State = PaymentVoid
	p.VoidedAt = &now
	return nil
}
