package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/comercial-api/internal/domain"
)

// Tipos de documento.
const (
	DocumentSale     = "SALE"
	DocumentPurchase = "PURCHASE"
)

// Estados del documento.
const (
	DocumentPending   = "PENDING"
	DocumentCompleted = "COMPLETED"
	DocumentVoid      = "VOID"
)

// Condiciones de pago.
const (
	ConditionCash   = "CASH"
	ConditionCredit = "CREDIT"
)

// Document cabecera de una venta o compra. Los totales se derivan de las líneas.
// FiscalNumber en ventas es el NCF emitido; en compras es el NCF del proveedor (opcional).
type Document struct {
	ID              string
	Kind            string
	Number          string
	CounterpartyID  string
	Date            time.Time
	FiscalNumber    string
	FiscalType      string
	Lines           []DocumentLine
	Subtotal        decimal.Decimal
	Tax             decimal.Decimal
	Discount        decimal.Decimal
	Total           decimal.Decimal
	State           string
	PaymentTermDays int
	Notes           string
	CreatedBy       string
	VoidReason      string
	VoidedAt        *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// DocumentNumber número interno V-YYYYMMDD-NNNN (ventas) o C-YYYYMMDD-NNNN (compras).
func DocumentNumber(kind string, day time.Time, seq int) string {
	prefix := "V"
	if kind == DocumentPurchase {
		prefix = "C"
	}
	return fmt.Sprintf("%s-%s-%04d", prefix, day.UTC().Format("20060102"), seq)
}

// PaymentCondition CREDIT si hay plazo, CASH en otro caso.
func (d *Document) PaymentCondition() string {
	if d.PaymentTermDays > 0 {
		return ConditionCredit
	}
	return ConditionCash
}

// CauseKind tipo de causa que usan los movimientos generados por el documento.
func (d *Document) CauseKind() string {
	if d.Kind == DocumentPurchase {
		return CausePurchase
	}
	return CauseSale
}

// RecomputeTotals recalcula los totales desde las líneas (nunca se confía en el cliente).
func (d *Document) RecomputeTotals() {
	d.Subtotal, d.Tax, d.Discount, d.Total = decimal.Zero, decimal.Zero, decimal.Zero, decimal.Zero
	for i := range d.Lines {
		l := &d.Lines[i]
		l.Compute()
		d.Subtotal = d.Subtotal.Add(l.Subtotal)
		d.Tax = d.Tax.Add(l.Tax)
		d.Discount = d.Discount.Add(l.Discount)
	}
	d.Total = d.Subtotal.Add(d.Tax).Sub(d.Discount)
}

// Complete PENDING -> COMPLETED.
func (d *Document) Complete(now time.Time) error {
	if d.State != DocumentPending {
		return domain.ErrInvalidTransition
	}
	d.State = DocumentCompleted
	d.UpdatedAt = now
	return nil
}

// Void PENDING|COMPLETED -> VOID. El número fiscal se conserva.
func (d *Document) Void(now time.Time, reason string) error {
	if d.State == DocumentVoid {
		return domain.ErrAlreadyVoid
	}
	d.State = DocumentVoid
	d.VoidReason = reason
	d.VoidedAt = &now
	d.UpdatedAt = now
	return nil
}

// DueDate fecha de vencimiento del crédito.
func (d *Document) DueDate() time.Time {
	return d.Date.AddDate(0, 0, d.PaymentTermDays)
}

// DocumentLine línea de un documento.
type DocumentLine struct {
	ID         string
	DocumentID string
	ProductID  string
	UnitID     string
	Quantity   decimal.Decimal
	UnitPrice  decimal.Decimal
	Discount   decimal.Decimal
	TaxRate    decimal.Decimal
	Subtotal   decimal.Decimal
	Tax        decimal.Decimal
	Total      decimal.Decimal
}

// Validate reglas de entrada de la línea: cantidad > 0, precio >= 0, 0 <= descuento <= subtotal.
func (l *DocumentLine) Validate() error {
	if l.ProductID == "" {
		return domain.Validation("producto requerido")
	}
	if !l.Quantity.GreaterThan(decimal.Zero) {
		return domain.Validation("la cantidad debe ser mayor que cero")
	}
	if l.UnitPrice.IsNegative() {
		return domain.Validation("el precio no puede ser negativo")
	}
	if l.Discount.IsNegative() {
		return domain.Validation("el descuento no puede ser negativo")
	}
	if l.Discount.GreaterThan(l.Quantity.Mul(l.UnitPrice)) {
		return domain.Validation("el descuento excede el subtotal de la línea")
	}
	return nil
}

// Compute subtotal = cant * precio; impuesto = subtotal * tasa; total = subtotal + impuesto - descuento.
// Subtotal, descuento e impuesto se llevan a centavos antes de sumar, así el total
// del documento coincide con la suma de las líneas tal como se guardan.
func (l *DocumentLine) Compute() {
	l.Subtotal = l.Quantity.Mul(l.UnitPrice).Round(2)
	l.Discount = l.Discount.Round(2)
	l.Tax = l.Subtotal.Mul(l.TaxRate).Round(2)
	l.Total = l.Subtotal.Add(l.Tax).Sub(l.Discount)
}
