// Package fiscal emite números de comprobante fiscal (NCF) y administra sus secuencias.
package fiscal

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/comercial-api/internal/application/ports"
	"github.com/jhoicas/comercial-api/internal/clock"
	"github.com/jhoicas/comercial-api/internal/domain"
	"github.com/jhoicas/comercial-api/internal/domain/entity"
	"github.com/jhoicas/comercial-api/internal/domain/repository"
	"github.com/jhoicas/comercial-api/pkg/logger"
)

// Allocator emite NCF consumiendo la secuencia activa del tipo de comprobante.
// La lectura-modificación-escritura del contador ocurre bajo bloqueo de fila,
// por lo que dos transacciones concurrentes nunca obtienen el mismo número.
type Allocator struct {
	tx      repository.TxRunner
	clock   clock.Clock
	metrics ports.MetricsRecorder
	log     *logger.Logger
}

// NewAllocator construye el emisor.
func NewAllocator(tx repository.TxRunner, clk clock.Clock, metrics ports.MetricsRecorder, log *logger.Logger) *Allocator {
	return &Allocator{tx: tx, clock: clk, metrics: metrics, log: log.WithComponent("fiscal")}
}

// AllocateInTx emite el siguiente NCF dentro de una transacción existente.
// El incremento es irreversible: anular el documento no devuelve el número.
func (a *Allocator) AllocateInTx(ctx context.Context, repos repository.Repos, documentType string) (string, error) {
	seq, err := repos.Sequences.GetActiveForUpdate(ctx, documentType)
	if err != nil {
		return "", fmt.Errorf("bloquear secuencia NCF: %w", err)
	}
	if seq == nil {
		a.fail(documentType, domain.ErrNoActiveSequence)
		return "", domain.ErrNoActiveSequence
	}
	number, err := seq.Next(a.clock.Now())
	if err != nil {
		a.fail(documentType, err)
		return "", err
	}
	if err := repos.Sequences.Update(ctx, seq); err != nil {
		return "", fmt.Errorf("actualizar secuencia NCF: %w", err)
	}
	return number, nil
}

// Allocate emite un NCF en su propia transacción (reservas manuales).
func (a *Allocator) Allocate(ctx context.Context, actor entity.ActorContext, documentType string) (string, error) {
	var number string
	err := a.tx.Run(ctx, func(repos repository.Repos) error {
		n, err := a.AllocateInTx(ctx, repos, documentType)
		if err != nil {
			return err
		}
		number = n
		entry := entity.NewAuditEntry(uuid.New().String(), actor, entity.AuditEntitySequence, documentType,
			entity.AuditCreated, nil, map[string]string{"ncf": n}, a.clock.Now())
		return repos.Audit.Append(ctx, entry)
	})
	if err != nil {
		return "", err
	}
	a.metrics.FiscalNumberIssued(documentType)
	a.log.Info().Str("document_type", documentType).Str("ncf", number).Msg("NCF emitido")
	return number, nil
}

func (a *Allocator) fail(documentType string, err error) {
	code := domain.Code(err)
	a.metrics.FiscalAllocationFailed(documentType, code)
	a.log.Warn().Str("document_type", documentType).Str("code", code).Msg("no se pudo emitir NCF")
}
