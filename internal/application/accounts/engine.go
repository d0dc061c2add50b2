// Package accounts mantiene las cuentas por cobrar y por pagar abiertas por documentos a crédito.
package accounts

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/comercial-api/internal/application/dto"
	"github.com/jhoicas/comercial-api/internal/clock"
	"github.com/jhoicas/comercial-api/internal/domain"
	"github.com/jhoicas/comercial-api/internal/domain/entity"
	"github.com/jhoicas/comercial-api/internal/domain/repository"
	"github.com/jhoicas/comercial-api/pkg/logger"
)

// Engine abre, abona, restaura y anula cuentas. Toda mutación del balance pendiente
// ocurre con la fila de la cuenta bloqueada.
type Engine struct {
	tx    repository.TxRunner
	reads repository.Repos
	clock clock.Clock
	log   *logger.Logger
}

// NewEngine construye el motor de cuentas.
func NewEngine(tx repository.TxRunner, reads repository.Repos, clk clock.Clock, log *logger.Logger) *Engine {
	return &Engine{tx: tx, reads: reads, clock: clk, log: log.WithComponent("accounts")}
}

// KindFor tipo de cuenta que abre cada tipo de documento.
func KindFor(documentKind string) string {
	if documentKind == entity.DocumentPurchase {
		return entity.AccountPayable
	}
	return entity.AccountReceivable
}

// OpenIfCreditInTx abre la cuenta del documento si es a crédito; en contado devuelve (nil, nil).
func (e *Engine) OpenIfCreditInTx(ctx context.Context, repos repository.Repos, doc *entity.Document) (*entity.Account, error) {
	if doc.PaymentCondition() != entity.ConditionCredit {
		return nil, nil
	}
	now := e.clock.Now()
	acc := &entity.Account{
		ID:             uuid.New().String(),
		Kind:           KindFor(doc.Kind),
		DocumentID:     doc.ID,
		CounterpartyID: doc.CounterpartyID,
		OriginalAmount: doc.Total,
		PendingAmount:  doc.Total,
		IssueDate:      doc.Date,
		DueDate:        doc.DueDate(),
		State:          entity.AccountPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if doc.Total.Sign() == 0 {
		acc.State = entity.AccountPaid
	}
	if err := repos.Accounts.Create(ctx, acc); err != nil {
		return nil, fmt.Errorf("abrir cuenta: %w", err)
	}
	return acc, nil
}

// LockInTx bloquea la cuenta y valida su tipo; aplica el vencimiento pendiente.
func (e *Engine) LockInTx(ctx context.Context, repos repository.Repos, ref entity.AccountRef) (*entity.Account, error) {
	acc, err := repos.Accounts.GetForUpdate(ctx, ref.ID)
	if err != nil {
		return nil, err
	}
	if acc == nil || acc.Kind != ref.Kind {
		return nil, domain.NotFound("cuenta")
	}
	acc.Refresh(e.clock.Now())
	return acc, nil
}

// ApplyPaymentInTx descuenta amount del pendiente. Falla con EXCESS_PAYMENT si lo excede.
func (e *Engine) ApplyPaymentInTx(ctx context.Context, repos repository.Repos, ref entity.AccountRef, amount decimal.Decimal) (*entity.Account, error) {
	acc, err := e.LockInTx(ctx, repos, ref)
	if err != nil {
		return nil, err
	}
	if err := acc.ApplyPayment(amount, e.clock.Now()); err != nil {
		return nil, err
	}
	if err := repos.Accounts.Update(ctx, acc); err != nil {
		return nil, err
	}
	return acc, nil
}

// RestorePaymentInTx devuelve al pendiente el monto de un pago anulado.
func (e *Engine) RestorePaymentInTx(ctx context.Context, repos repository.Repos, ref entity.AccountRef, amount decimal.Decimal) (*entity.Account, error) {
	acc, err := e.LockInTx(ctx, repos, ref)
	if err != nil {
		return nil, err
	}
	if err := acc.RestorePayment(amount, e.clock.Now()); err != nil {
		return nil, err
	}
	if err := repos.Accounts.Update(ctx, acc); err != nil {
		return nil, err
	}
	return acc, nil
}

// VoidForDocumentInTx anula la cuenta del documento si existe. Los pagos quedan ACTIVE.
func (e *Engine) VoidForDocumentInTx(ctx context.Context, repos repository.Repos, documentID string) (*entity.Account, error) {
	acc, err := repos.Accounts.GetByDocument(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if acc == nil {
		return nil, nil
	}
	acc, err = repos.Accounts.GetForUpdate(ctx, acc.ID)
	if err != nil {
		return nil, err
	}
	if acc.State == entity.AccountVoid {
		return acc, nil
	}
	if err := acc.Void(e.clock.Now()); err != nil {
		return nil, err
	}
	if err := repos.Accounts.Update(ctx, acc); err != nil {
		return nil, err
	}
	return acc, nil
}

// Get devuelve la cuenta con el vencimiento evaluado al momento de la lectura.
func (e *Engine) Get(ctx context.Context, ref entity.AccountRef) (*dto.AccountResponse, error) {
	acc, err := e.reads.Accounts.GetByID(ctx, ref.ID)
	if err != nil {
		return nil, err
	}
	if acc == nil || acc.Kind != ref.Kind {
		return nil, domain.NotFound("cuenta")
	}
	acc.Refresh(e.clock.Now())
	return dto.FromAccount(acc), nil
}

// Payments lista los pagos de la cuenta.
func (e *Engine) Payments(ctx context.Context, ref entity.AccountRef) ([]*dto.PaymentResponse, error) {
	if _, err := e.Get(ctx, ref); err != nil {
		return nil, err
	}
	ps, err := e.reads.Payments.ListByAccount(ctx, ref)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.PaymentResponse, 0, len(ps))
	for _, p := range ps {
		out = append(out, dto.FromPayment(p, nil))
	}
	return out, nil
}

// SweepOverdue persiste OVERDUE en las cuentas pendientes vencidas.
func (e *Engine) SweepOverdue(ctx context.Context) (dto.SweepResponse, error) {
	var updated int
	err := e.tx.Run(ctx, func(repos repository.Repos) error {
		now := e.clock.Now()
		due, err := repos.Accounts.ListDue(ctx, now)
		if err != nil {
			return err
		}
		for _, d := range due {
			acc, err := repos.Accounts.GetForUpdate(ctx, d.ID)
			if err != nil {
				return err
			}
			if acc == nil || !acc.Refresh(now) {
				continue
			}
			if err := repos.Accounts.Update(ctx, acc); err != nil {
				return err
			}
			updated++
		}
		return nil
	})
	if err != nil {
		return dto.SweepResponse{}, err
	}
	if updated > 0 {
		e.log.Info().Int("updated", updated).Msg("cuentas marcadas como vencidas")
	}
	return dto.SweepResponse{Updated: updated}, nil
}
