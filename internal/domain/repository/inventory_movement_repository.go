package repository

import (
	"context"

	"github.com/jhoicas/comercial-api/internal/domain/entity"
)

// InventoryMovementRepository define el puerto del libro de movimientos (solo inserción).
type InventoryMovementRepository interface {
	// Create inserta el movimiento y asigna Seq.
	Create(ctx context.Context, movement *entity.InventoryMovement) error
	// ListByProduct devuelve el historial del producto ordenado por Seq.
	ListByProduct(ctx context.Context, productID string) ([]*entity.InventoryMovement, error)
	ListByCause(ctx context.Context, cause entity.CauseRef) ([]*entity.InventoryMovement, error)
	CountByProduct(ctx context.Context, productID string) (int, error)
}
