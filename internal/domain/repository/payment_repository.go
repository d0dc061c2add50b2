package repository

import (
	"context"

	"github.com/jhoicas/comercial-api/internal/domain/entity"
)

// PaymentRepository puerto de pagos.
type PaymentRepository interface {
	Create(ctx context.Context, p *entity.Payment) error
	GetByID(ctx context.Context, id string) (*entity.Payment, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Payment, error)
	Update(ctx context.Context, p *entity.Payment) error
	ListByAccount(ctx context.Context, ref entity.AccountRef) ([]*entity.Payment, error)
}
