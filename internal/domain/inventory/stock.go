// Package inventory contiene las reglas puras del libro de inventario.
package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/comercial-api/internal/domain"
	"github.com/jhoicas/comercial-api/internal/domain/entity"
)

// NextStock calcula el stock resultante de aplicar un movimiento.
// Entradas (ENTRY, ADJUST_IN, RETURN, INITIAL) suman; salidas (EXIT, ADJUST_OUT)
// fallan con ErrInsufficientStock si el stock actual no alcanza.
func NextStock(kind string, before, qty decimal.Decimal) (decimal.Decimal, error) {
	if !qty.GreaterThan(decimal.Zero) {
		return before, domain.Validation("la cantidad debe ser mayor que cero")
	}
	switch kind {
	case entity.MovementEntry, entity.MovementAdjustIn, entity.MovementReturn, entity.MovementInitial:
		return before.Add(qty), nil
	case entity.MovementExit, entity.MovementAdjustOut:
		if before.LessThan(qty) {
			return before, domain.ErrInsufficientStock
		}
		return before.Sub(qty), nil
	}
	return before, domain.Validation("tipo de movimiento inválido: %s", kind)
}

// Break discontinuidad detectada al reproducir el libro.
type Break struct {
	MovementID string
	Seq        int64
	Reason     string
}

// Replay reproduce los movimientos (ordenados por Seq) desde cero y verifica continuidad:
// cada StockBefore debe igualar el StockAfter anterior y cada StockAfter = StockBefore ± Quantity.
func Replay(movements []*entity.InventoryMovement) (decimal.Decimal, []Break) {
	stock := decimal.Zero
	var breaks []Break
	for _, m := range movements {
		if !m.StockBefore.Equal(stock) {
			breaks = append(breaks, Break{MovementID: m.ID, Seq: m.Seq, Reason: "stock_before no coincide con el movimiento anterior"})
		}
		if !m.StockAfter.Equal(m.StockBefore.Add(m.Delta())) {
			breaks = append(breaks, Break{MovementID: m.ID, Seq: m.Seq, Reason: "stock_after no coincide con stock_before ± cantidad"})
		}
		stock = stock.Add(m.Delta())
	}
	return stock, breaks
}
