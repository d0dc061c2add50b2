package repository

import "context"

// Repos agrupa los repositorios atados a una misma transacción.
type Repos struct {
	Products       ProductRepository
	Counterparties CounterpartyRepository
	Movements      InventoryMovementRepository
	Sequences      FiscalSequenceRepository
	Documents      DocumentRepository
	Accounts       AccountRepository
	Payments       PaymentRepository
	Adjustments    AdjustmentRepository
	Audit          AuditRepository
	CostHistory    CostHistoryRepository
}

// TxRunner ejecuta fn dentro de una transacción. Si fn devuelve error se hace
// rollback completo; si no, commit. Ningún efecto parcial es visible.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos Repos) error) error
}
