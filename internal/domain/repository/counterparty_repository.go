package repository

import (
	"context"

	"github.com/jhoicas/comercial-api/internal/domain/entity"
)

// CounterpartyRepository puerto para clientes y proveedores.
type CounterpartyRepository interface {
	Create(ctx context.Context, c *entity.Counterparty) error
	GetByID(ctx context.Context, id string) (*entity.Counterparty, error)
	// GetForUpdate serializa la validación de NCF de un mismo proveedor.
	GetForUpdate(ctx context.Context, id string) (*entity.Counterparty, error)
}
