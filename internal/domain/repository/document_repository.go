package repository

import (
	"context"
	"time"

	"github.com/jhoicas/comercial-api/internal/domain/entity"
)

// DocumentRepository puerto para ventas y compras con sus líneas.
type DocumentRepository interface {
	// Create persiste cabecera y líneas. Un NCF repetido devuelve domain.ErrDuplicateFiscalNumber.
	Create(ctx context.Context, doc *entity.Document) error
	GetByID(ctx context.Context, id string) (*entity.Document, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Document, error)
	// UpdateState persiste estado, motivo y fecha de anulación.
	UpdateState(ctx context.Context, doc *entity.Document) error
	// LastSupplierFiscalNumber último NCF aceptado del proveedor con el prefijo dado ("" si no hay).
	LastSupplierFiscalNumber(ctx context.Context, supplierID, prefix string) (string, error)
	ExistsSupplierFiscalNumber(ctx context.Context, supplierID, fiscalNumber string) (bool, error)
	// NextNumber incrementa y devuelve el consecutivo diario (día UTC) del tipo.
	// El contador queda bloqueado hasta el fin de la transacción.
	NextNumber(ctx context.Context, kind string, day time.Time) (int, error)
}
