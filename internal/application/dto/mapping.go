package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/comercial-api/internal/domain/entity"
	"github.com/jhoicas/comercial-api/pkg/dgii"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = time.RFC3339
)

// FromAccount mapea una cuenta a su respuesta.
func FromAccount(a *entity.Account) *AccountResponse {
	if a == nil {
		return nil
	}
	return &AccountResponse{
		ID:             a.ID,
		Kind:           a.Kind,
		DocumentID:     a.DocumentID,
		CounterpartyID: a.CounterpartyID,
		OriginalAmount: a.OriginalAmount,
		PendingAmount:  a.PendingAmount,
		PaidAmount:     a.PaidAmount(),
		IssueDate:      a.IssueDate.Format(dateLayout),
		DueDate:        a.DueDate.Format(dateLayout),
		State:          a.State,
	}
}

// FromPayment mapea un pago; acc puede ser nil.
func FromPayment(p *entity.Payment, acc *entity.Account) *PaymentResponse {
	return &PaymentResponse{
		ID:          p.ID,
		AccountKind: p.Account.Kind,
		AccountID:   p.Account.ID,
		Amount:      p.Amount,
		Method:      p.Method,
		Reference:   p.Reference,
		Date:        p.Date.Format(dateTimeLayout),
		State:       p.State,
		Account:     FromAccount(acc),
	}
}

// FromDocument mapea un documento con sus líneas; acc y counterparty pueden ser nil.
func FromDocument(d *entity.Document, counterparty *entity.Counterparty, acc *entity.Account) *DocumentResponse {
	resp := &DocumentResponse{
		ID:               d.ID,
		Kind:             d.Kind,
		Number:           d.Number,
		CounterpartyID:   d.CounterpartyID,
		Date:             d.Date.Format(dateTimeLayout),
		FiscalNumber:     d.FiscalNumber,
		FiscalType:       d.FiscalType,
		Subtotal:         d.Subtotal,
		Tax:              d.Tax,
		Discount:         d.Discount,
		Total:            d.Total,
		State:            d.State,
		PaymentCondition: d.PaymentCondition(),
		PaymentTermDays:  d.PaymentTermDays,
		Notes:            d.Notes,
		VoidReason:       d.VoidReason,
		Lines:            make([]DocumentLineResponse, 0, len(d.Lines)),
		Account:          FromAccount(acc),
	}
	if counterparty != nil {
		resp.CounterpartyName = counterparty.Name
	}
	for _, l := range d.Lines {
		resp.Lines = append(resp.Lines, DocumentLineResponse{
			ID:        l.ID,
			ProductID: l.ProductID,
			UnitID:    l.UnitID,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			Discount:  l.Discount,
			TaxRate:   l.TaxRate,
			Subtotal:  l.Subtotal,
			Tax:       l.Tax,
			Total:     l.Total,
		})
	}
	return resp
}

// FromMovement mapea un movimiento de inventario.
func FromMovement(m *entity.InventoryMovement) MovementResponse {
	return MovementResponse{
		ID:          m.ID,
		Seq:         m.Seq,
		ProductID:   m.ProductID,
		Kind:        m.Kind,
		Quantity:    m.Quantity,
		StockBefore: m.StockBefore,
		StockAfter:  m.StockAfter,
		CauseKind:   m.Cause.Kind,
		CauseID:     m.Cause.ID,
		UnitCost:    m.UnitCost,
		Note:        m.Note,
		CreatedBy:   m.CreatedBy,
		CreatedAt:   m.CreatedAt.Format(dateTimeLayout),
	}
}

// FromSequence mapea una secuencia NCF.
func FromSequence(s *entity.FiscalSequence) SequenceResponse {
	return SequenceResponse{
		ID:           s.ID,
		DocumentType: s.DocumentType,
		TypeName:     dgii.DocumentTypeNames[s.DocumentType],
		Prefix:       s.Prefix,
		Counter:      s.Counter,
		RangeStart:   s.RangeStart,
		RangeEnd:     s.RangeEnd,
		Remaining:    s.Remaining(),
		Expiry:       s.Expiry.Format(dateLayout),
		Active:       s.Active,
	}
}

// FromProduct mapea un producto.
func FromProduct(p *entity.Product) *ProductResponse {
	return &ProductResponse{
		ID:          p.ID,
		SKU:         p.SKU,
		Name:        p.Name,
		TaxCategory: p.TaxCategory,
		Unit:        p.Unit,
		Price:       p.Price,
		Cost:        p.Cost,
		Stock:       p.Stock,
		MinStock:    p.MinStock,
		Active:      p.Active,
	}
}

// FromCounterparty mapea un cliente o proveedor.
func FromCounterparty(c *entity.Counterparty) *CounterpartyResponse {
	return &CounterpartyResponse{
		ID:              c.ID,
		Kind:            c.Kind,
		Name:            c.Name,
		TaxID:           c.TaxID,
		Email:           c.Email,
		Phone:           c.Phone,
		PaymentTermDays: c.PaymentTermDays,
	}
}

// FromAdjustment mapea un ajuste con sus líneas.
func FromAdjustment(a *entity.Adjustment) *AdjustmentResponse {
	out := &AdjustmentResponse{
		ID:        a.ID,
		Number:    a.Number,
		Direction: a.Direction,
		Reason:    a.Reason,
		State:     a.State,
		Lines:     make([]AdjustmentLineResponse, 0, len(a.Lines)),
		Value:     decimal.Zero,
		CreatedAt: a.CreatedAt.Format(dateTimeLayout),
	}
	for _, l := range a.Lines {
		out.Lines = append(out.Lines, AdjustmentLineResponse{
			ProductID: l.ProductID,
			UnitID:    l.UnitID,
			Quantity:  l.Quantity,
			Cost:      l.Cost,
			Note:      l.Note,
		})
		out.Value = out.Value.Add(l.Value())
	}
	return out
}
