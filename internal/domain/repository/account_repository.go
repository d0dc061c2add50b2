package repository

import (
	"context"
	"time"

	"github.com/jhoicas/comercial-api/internal/domain/entity"
)

// AccountRepository puerto de cuentas por cobrar y por pagar.
type AccountRepository interface {
	// Create falla con domain.ErrAccountExists si el documento ya tiene cuenta.
	Create(ctx context.Context, acc *entity.Account) error
	GetByID(ctx context.Context, id string) (*entity.Account, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Account, error)
	GetByDocument(ctx context.Context, documentID string) (*entity.Account, error)
	Update(ctx context.Context, acc *entity.Account) error
	// ListDue cuentas PENDING con vencimiento anterior a now.
	ListDue(ctx context.Context, now time.Time) ([]*entity.Account, error)
}
