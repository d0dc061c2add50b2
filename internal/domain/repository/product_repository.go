package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/comercial-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para el catálogo de productos.
// GetByID y GetForUpdate devuelven (nil, nil) si el producto no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetForUpdate bloquea la fila del producto (SELECT FOR UPDATE) hasta el fin de la tx.
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	// UpdateStock escribe el contador corriente. Solo lo usa el libro de inventario.
	UpdateStock(ctx context.Context, id string, stock decimal.Decimal, at time.Time) error
	UpdateCost(ctx context.Context, id string, cost decimal.Decimal, at time.Time) error
	List(ctx context.Context) ([]*entity.Product, error)
}
