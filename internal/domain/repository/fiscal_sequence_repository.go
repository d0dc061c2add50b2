package repository

import (
	"context"

	"github.com/jhoicas/comercial-api/internal/domain/entity"
)

// FiscalSequenceRepository puerto de las secuencias NCF.
type FiscalSequenceRepository interface {
	Create(ctx context.Context, seq *entity.FiscalSequence) error
	GetByID(ctx context.Context, id string) (*entity.FiscalSequence, error)
	// GetActiveForUpdate bloquea la secuencia activa del tipo; (nil, nil) si no hay ninguna.
	GetActiveForUpdate(ctx context.Context, documentType string) (*entity.FiscalSequence, error)
	GetActive(ctx context.Context, documentType string) (*entity.FiscalSequence, error)
	Update(ctx context.Context, seq *entity.FiscalSequence) error
	List(ctx context.Context) ([]*entity.FiscalSequence, error)
}
