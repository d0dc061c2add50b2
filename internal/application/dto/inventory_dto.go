package dto

import "github.com/shopspring/decimal"

// MovementResponse movimiento del libro de inventario.
type MovementResponse struct {
	ID          string          `json:"id"`
	Seq         int64           `json:"seq"`
	ProductID   string          `json:"product_id"`
	Kind        string          `json:"kind"`
	Quantity    decimal.Decimal `json:"quantity"`
	StockBefore decimal.Decimal `json:"stock_before"`
	StockAfter  decimal.Decimal `json:"stock_after"`
	CauseKind   string          `json:"cause_kind"`
	CauseID     string          `json:"cause_id"`
	CauseNumber string          `json:"cause_number,omitempty"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
	Note        string          `json:"note,omitempty"`
	CreatedBy   string          `json:"created_by,omitempty"`
	CreatedAt   string          `json:"created_at"`
}

// ReconcileResponse resultado de reproducir el libro contra el contador del producto.
type ReconcileResponse struct {
	ProductID     string          `json:"product_id"`
	Movements     int             `json:"movements"`
	ReplayedStock decimal.Decimal `json:"replayed_stock"`
	CounterStock  decimal.Decimal `json:"counter_stock"`
	Consistent    bool            `json:"consistent"`
	Breaks        []LedgerBreak   `json:"breaks,omitempty"`
}

// LedgerBreak discontinuidad en el libro.
type LedgerBreak struct {
	MovementID string `json:"movement_id"`
	Seq        int64  `json:"seq"`
	Reason     string `json:"reason"`
}

// CreateAdjustmentRequest body para POST /api/adjustments.
type CreateAdjustmentRequest struct {
	Direction string                  `json:"direction"` // IN | OUT
	Reason    string                  `json:"reason"`
	Lines     []AdjustmentLineRequest `json:"lines"`
}

// AdjustmentLineRequest línea del ajuste.
type AdjustmentLineRequest struct {
	ProductID string          `json:"product_id"`
	UnitID    string          `json:"unit_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	Cost      decimal.Decimal `json:"cost"`
	Note      string          `json:"note"`
}

// AdjustmentResponse ajuste de inventario.
type AdjustmentResponse struct {
	ID        string                   `json:"id"`
	Number    string                   `json:"number"`
	Direction string                   `json:"direction"`
	Reason    string                   `json:"reason"`
	State     string                   `json:"state"`
	Lines     []AdjustmentLineResponse `json:"lines"`
	Value     decimal.Decimal          `json:"value"`
	CreatedAt string                   `json:"created_at"`
}

// AdjustmentLineResponse línea de un ajuste.
type AdjustmentLineResponse struct {
	ProductID string          `json:"product_id"`
	UnitID    string          `json:"unit_id,omitempty"`
	Quantity  decimal.Decimal `json:"quantity"`
	Cost      decimal.Decimal `json:"cost"`
	Note      string          `json:"note,omitempty"`
}

// LowStockDTO producto en o por debajo de su stock mínimo, con cantidad sugerida de reposición.
type LowStockDTO struct {
	ProductID         string          `json:"product_id"`
	SKU               string          `json:"sku"`
	ProductName       string          `json:"product_name"`
	CurrentStock      decimal.Decimal `json:"current_stock"`
	MinStock          decimal.Decimal `json:"min_stock"`
	SuggestedOrderQty decimal.Decimal `json:"suggested_order_qty"` // MinStock * 1.5 - CurrentStock
	UnitCost          decimal.Decimal `json:"unit_cost"`
	EstimatedCost     decimal.Decimal `json:"estimated_cost"`
}
