package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CostHistory registro de cambio de costo de un producto por una compra.
type CostHistory struct {
	ID           string
	ProductID    string
	PreviousCost decimal.Decimal
	NewCost      decimal.Decimal
	DocumentID   string
	CreatedBy    string
	CreatedAt    time.Time
}
