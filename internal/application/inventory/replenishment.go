package inventory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/comercial-api/internal/application/dto"
	"github.com/jhoicas/comercial-api/internal/domain/repository"
)

// LowStock devuelve los productos activos en o por debajo de su stock mínimo con la
// cantidad sugerida para volver al stock ideal (mínimo * 1.5).
func LowStock(ctx context.Context, products repository.ProductRepository) ([]dto.LowStockDTO, error) {
	all, err := products.List(ctx)
	if err != nil {
		return nil, err
	}
	factor := decimal.NewFromFloat(1.5)
	out := make([]dto.LowStockDTO, 0)
	for _, p := range all {
		if !p.Active || !p.BelowMinimum() {
			continue
		}
		suggested := p.MinStock.Mul(factor).Sub(p.Stock)
		if suggested.IsNegative() {
			suggested = decimal.Zero
		}
		out = append(out, dto.LowStockDTO{
			ProductID:         p.ID,
			SKU:               p.SKU,
			ProductName:       p.Name,
			CurrentStock:      p.Stock,
			MinStock:          p.MinStock,
			SuggestedOrderQty: suggested,
			UnitCost:          p.Cost,
			EstimatedCost:     suggested.Mul(p.Cost).Round(2),
		})
	}
	// Mayor déficit primero
	sort.SliceStable(out, func(i, j int) bool {
		di := out[i].MinStock.Sub(out[i].CurrentStock)
		dj := out[j].MinStock.Sub(out[j].CurrentStock)
		return di.GreaterThan(dj)
	})
	return out, nil
}
