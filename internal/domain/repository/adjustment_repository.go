package repository

import (
	"context"
	"time"

	"github.com/jhoicas/comercial-api/internal/domain/entity"
)

// AdjustmentRepository puerto de ajustes de inventario. Create guarda cabecera y líneas;
// los Get devuelven las líneas en su orden original.
type AdjustmentRepository interface {
	Create(ctx context.Context, a *entity.Adjustment) error
	GetByID(ctx context.Context, id string) (*entity.Adjustment, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Adjustment, error)
	Update(ctx context.Context, a *entity.Adjustment) error
	// NextNumber incrementa y devuelve el consecutivo diario (día UTC) de ajustes.
	NextNumber(ctx context.Context, day time.Time) (int, error)
}
