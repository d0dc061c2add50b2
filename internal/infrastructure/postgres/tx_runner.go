package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/comercial-api/internal/domain/repository"
)

var _ repository.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción READ COMMITTED, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
// La serialización entre transacciones la dan los SELECT ... FOR UPDATE de los repositorios.
func (r *TxRunner) Run(ctx context.Context, fn func(repos repository.Repos) error) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewRepos(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// NewRepos construye todos los repositorios sobre q (pool para lecturas, tx dentro de Run).
func NewRepos(q Querier) repository.Repos {
	return repository.Repos{
		Products:       NewProductRepository(q),
		Counterparties: NewCounterpartyRepository(q),
		Movements:      NewInventoryMovementRepository(q),
		Sequences:      NewFiscalSequenceRepository(q),
		Documents:      NewDocumentRepository(q),
		Accounts:       NewAccountRepository(q),
		Payments:       NewPaymentRepository(q),
		Adjustments:    NewAdjustmentRepository(q),
		Audit:          NewAuditRepository(q),
		CostHistory:    NewCostHistoryRepository(q),
	}
}
