// Package payments registra y anula pagos sobre cuentas por cobrar y por pagar.
package payments

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/comercial-api/internal/application/accounts"
	"github.com/jhoicas/comercial-api/internal/application/dto"
	"github.com/jhoicas/comercial-api/internal/application/ports"
	"github.com/jhoicas/comercial-api/internal/clock"
	"github.com/jhoicas/comercial-api/internal/domain"
	"github.com/jhoicas/comercial-api/internal/domain/entity"
	"github.com/jhoicas/comercial-api/internal/domain/repository"
	"github.com/jhoicas/comercial-api/pkg/logger"
)

// Processor aplica pagos. El pago y el descuento del pendiente se confirman juntos.
type Processor struct {
	tx      repository.TxRunner
	reads   repository.Repos
	engine  *accounts.Engine
	clock   clock.Clock
	metrics ports.MetricsRecorder
	log     *logger.Logger
}

// NewProcessor construye el procesador de pagos.
func NewProcessor(tx repository.TxRunner, reads repository.Repos, engine *accounts.Engine, clk clock.Clock, metrics ports.MetricsRecorder, log *logger.Logger) *Processor {
	return &Processor{tx: tx, reads: reads, engine: engine, clock: clk, metrics: metrics, log: log.WithComponent("payments")}
}

// Pay registra un pago ACTIVE sobre la cuenta y devuelve el estado resultante.
func (p *Processor) Pay(ctx context.Context, actor entity.ActorContext, ref entity.AccountRef, in dto.PayRequest) (*dto.PaymentResponse, error) {
	if !entity.IsValidAccountKind(ref.Kind) {
		return nil, domain.Validation("tipo de cuenta inválido: %s", ref.Kind)
	}
	method := strings.ToUpper(strings.TrimSpace(in.Method))
	if method == "" {
		method = entity.PaymentCash
	}
	if !entity.IsValidPaymentMethod(method) {
		return nil, domain.Validation("método de pago inválido: %s", in.Method)
	}
	if !in.Amount.IsPositive() {
		return nil, domain.Validation("el monto debe ser mayor que cero")
	}

	var pay *entity.Payment
	var acc *entity.Account
	err := p.tx.Run(ctx, func(repos repository.Repos) error {
		var err error
		acc, err = p.engine.ApplyPaymentInTx(ctx, repos, ref, in.Amount)
		if err != nil {
			return err
		}
		now := p.clock.Now()
		pay = &entity.Payment{
			ID:        uuid.New().String(),
			Account:   ref,
			Amount:    in.Amount,
			Method:    method,
			Reference: strings.TrimSpace(in.Reference),
			Date:      now,
			State:     entity.PaymentActive,
			CreatedBy: actor.UserID,
			CreatedAt: now,
		}
		if err := repos.Payments.Create(ctx, pay); err != nil {
			return err
		}
		return repos.Audit.Append(ctx, entity.NewAuditEntry(uuid.New().String(), actor,
			entity.AuditEntityPayment, pay.ID, entity.AuditPaid, nil, dto.FromPayment(pay, acc), now))
	})
	if err != nil {
		return nil, err
	}
	p.metrics.PaymentApplied(ref.Kind)
	p.log.Info().
		Str("account_id", acc.ID).
		Str("amount", pay.Amount.String()).
		Str("pending", acc.PendingAmount.String()).
		Str("state", acc.State).
		Msg("pago aplicado")
	return dto.FromPayment(pay, acc), nil
}

// VoidPayment anula un pago y devuelve su monto al pendiente de la cuenta.
func (p *Processor) VoidPayment(ctx context.Context, actor entity.ActorContext, paymentID string) (*dto.PaymentResponse, error) {
	var pay *entity.Payment
	var acc *entity.Account
	err := p.tx.Run(ctx, func(repos repository.Repos) error {
		var err error
		pay, err = repos.Payments.GetForUpdate(ctx, paymentID)
		if err != nil {
			return err
		}
		if pay == nil {
			return domain.NotFound("pago")
		}
		now := p.clock.Now()
		if err := pay.Void(now); err != nil {
			return err
		}
		acc, err = p.engine.RestorePaymentInTx(ctx, repos, pay.Account, pay.Amount)
		if err != nil {
			return err
		}
		if err := repos.Payments.Update(ctx, pay); err != nil {
			return err
		}
		return repos.Audit.Append(ctx, entity.NewAuditEntry(uuid.New().String(), actor,
			entity.AuditEntityPayment, pay.ID, entity.AuditVoided,
			map[string]string{"state": entity.PaymentActive}, map[string]string{"state": pay.State}, now))
	})
	if err != nil {
		return nil, err
	}
	p.metrics.PaymentVoided(pay.Account.Kind)
	p.log.Info().Str("payment_id", pay.ID).Str("account_id", acc.ID).Msg("pago anulado")
	return dto.FromPayment(pay, acc), nil
}

// Get devuelve un pago.
func (p *Processor) Get(ctx context.Context, paymentID string) (*dto.PaymentResponse, error) {
	pay, err := p.reads.Payments.GetByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if pay == nil {
		return nil, domain.NotFound("pago")
	}
	return dto.FromPayment(pay, nil), nil
}
