package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario.
const (
	MovementEntry     = "ENTRY"      // entrada por compra
	MovementExit      = "EXIT"       // salida por venta o devolución a proveedor
	MovementAdjustIn  = "ADJUST_IN"  // ajuste positivo
	MovementAdjustOut = "ADJUST_OUT" // ajuste negativo
	MovementReturn    = "RETURN"     // devolución de cliente (anulación de venta)
	MovementInitial   = "INITIAL"    // inventario inicial
)

// Tipos de causa de un movimiento.
const (
	CauseSale       = "SALE"
	CausePurchase   = "PURCHASE"
	CauseAdjustment = "ADJUSTMENT"
	CauseInitial    = "INITIAL"
)

// CauseRef referencia al origen del movimiento (documento, ajuste o carga inicial).
type CauseRef struct {
	Kind string
	ID   string
}

// IsDebit indica si el tipo de movimiento descuenta stock.
func IsDebit(kind string) bool {
	return kind == MovementExit || kind == MovementAdjustOut
}

// IsValidMovementKind valida el tipo de movimiento.
func IsValidMovementKind(kind string) bool {
	switch kind {
	case MovementEntry, MovementExit, MovementAdjustIn, MovementAdjustOut, MovementReturn, MovementInitial:
		return true
	}
	return false
}

// InventoryMovement registro inmutable de un cambio de stock.
// StockAfter = StockBefore ± Quantity; Seq ordena el historial de un producto.
type InventoryMovement struct {
	ID          string
	Seq         int64
	ProductID   string
	Kind        string
	Quantity    decimal.Decimal // siempre positivo; el signo lo da Kind
	StockBefore decimal.Decimal
	StockAfter  decimal.Decimal
	Cause       CauseRef
	UnitCost    decimal.Decimal
	Note        string
	CreatedBy   string
	CreatedAt   time.Time
}

// Delta cantidad con signo aplicada al stock.
func (m *InventoryMovement) Delta() decimal.Decimal {
	if IsDebit(m.Kind) {
		return m.Quantity.Neg()
	}
	return m.Quantity
}
