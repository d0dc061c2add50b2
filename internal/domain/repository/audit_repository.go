package repository

import (
	"context"

	"github.com/jhoicas/comercial-api/internal/domain/entity"
)

// AuditRepository bitácora de auditoría (solo inserción).
type AuditRepository interface {
	Append(ctx context.Context, e *entity.AuditEntry) error
	ListByEntity(ctx context.Context, kind, id string) ([]*entity.AuditEntry, error)
}

// CostHistoryRepository historial de costos por producto.
type CostHistoryRepository interface {
	Create(ctx context.Context, h *entity.CostHistory) error
	ListByProduct(ctx context.Context, productID string) ([]*entity.CostHistory, error)
}
