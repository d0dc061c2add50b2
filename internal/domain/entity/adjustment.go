package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/comercial-api/internal/domain"
)

// Dirección del ajuste.
const (
	AdjustmentIn  = "IN"
	AdjustmentOut = "OUT"
)

// Estados del ajuste.
const (
	AdjustmentPending   = "PENDING"
	AdjustmentCompleted = "COMPLETED"
	AdjustmentVoid      = "VOID"
)

// Adjustment ajuste manual de inventario (conteo físico, merma, etc.). Todas las
// líneas van en la misma dirección y se aplican juntas.
type Adjustment struct {
	ID          string
	Number      string
	Direction   string
	Reason      string
	Lines       []AdjustmentLine
	State       string
	CreatedBy   string
	CompletedAt *time.Time
	VoidedAt    *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// AdjustmentLine producto y cantidad de un ajuste. Cost es el costo unitario de referencia.
type AdjustmentLine struct {
	ID           string
	AdjustmentID string
	ProductID    string
	UnitID       string
	Quantity     decimal.Decimal
	Cost         decimal.Decimal
	Note         string
}

// Validate cantidad > 0 y costo >= 0.
func (l *AdjustmentLine) Validate() error {
	if l.ProductID == "" {
		return domain.Validation("producto requerido")
	}
	if !l.Quantity.GreaterThan(decimal.Zero) {
		return domain.Validation("la cantidad debe ser mayor que cero")
	}
	if l.Cost.IsNegative() {
		return domain.Validation("el costo no puede ser negativo")
	}
	return nil
}

// Value costo total de la línea.
func (l *AdjustmentLine) Value() decimal.Decimal {
	return l.Quantity.Mul(l.Cost)
}

// AdjustmentNumber formato AJ-YYYYMMDD-NNNN.
func AdjustmentNumber(day time.Time, seq int) string {
	return fmt.Sprintf("AJ-%s-%04d", day.UTC().Format("20060102"), seq)
}

// MovementKind tipo de movimiento que aplica el ajuste al completarse.
func (a *Adjustment) MovementKind() string {
	if a.Direction == AdjustmentOut {
		return MovementAdjustOut
	}
	return MovementAdjustIn
}

// ReverseMovementKind tipo de movimiento que revierte un ajuste completado.
func (a *Adjustment) ReverseMovementKind() string {
	if a.Direction == AdjustmentOut {
		return MovementAdjustIn
	}
	return MovementAdjustOut
}

// Complete PENDING -> COMPLETED.
func (a *Adjustment) Complete(now time.Time) error {
	if a.State != AdjustmentPending {
		return domain.ErrInvalidTransition
	}
	a.State = AdjustmentCompleted
	a.CompletedAt = &now
	a.UpdatedAt = now
	return nil
}

// Void PENDING|COMPLETED -> VOID. wasCompleted indica si hay que revertir stock.
func (a *Adjustment) Void(now time.Time) (wasCompleted bool, err error) {
	if a.State == AdjustmentVoid {
		return false, domain.ErrAlreadyVoid
	}
	wasCompleted = a.State == AdjustmentCompleted
	a.State = AdjustmentVoid
	a.VoidedAt = &now
	a.UpdatedAt = now
	return wasCompleted, nil
}
