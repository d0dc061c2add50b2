package documents

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/comercial-api/internal/application/dto"
	"github.com/jhoicas/comercial-api/internal/application/inventory"
	"github.com/jhoicas/comercial-api/internal/domain"
	"github.com/jhoicas/comercial-api/internal/domain/entity"
	"github.com/jhoicas/comercial-api/internal/domain/repository"
	"github.com/jhoicas/comercial-api/pkg/dgii"
)

// CreateSale registra una venta: salida de inventario por línea, totales, NCF,
// documento COMPLETED y cuenta por cobrar si es a crédito. Si cualquier paso
// falla no queda nada persistido y el NCF no se consume.
func (s *Service) CreateSale(ctx context.Context, actor entity.ActorContext, in dto.CreateSaleRequest) (*dto.DocumentResponse, error) {
	fiscalType := strings.TrimSpace(in.FiscalType)
	if fiscalType == "" {
		fiscalType = dgii.TypeConsumo
	}
	if fiscalType != dgii.TypeConsumo && fiscalType != dgii.TypeCreditoFiscal {
		return nil, domain.Validation("tipo de comprobante no permitido en ventas: %s", fiscalType)
	}
	customer, err := s.resolveCounterparty(ctx, in.CustomerID, entity.CounterpartyCustomer)
	if err != nil {
		return nil, err
	}
	if fiscalType == dgii.TypeCreditoFiscal && customer.TaxID == "" {
		return nil, domain.Validation("el crédito fiscal requiere RNC o cédula del cliente")
	}
	term, err := paymentTerm(in.PaymentTermDays, customer)
	if err != nil {
		return nil, err
	}
	lines, err := s.buildLines(ctx, in.Lines)
	if err != nil {
		return nil, err
	}

	var (
		doc  *entity.Document
		acc  *entity.Account
		movs []*entity.InventoryMovement
	)
	err = s.tx.Run(ctx, func(repos repository.Repos) error {
		now := s.clock.Now()
		doc = newDocument(entity.DocumentSale, customer, lines, term, in.Notes, actor, now)

		movs = make([]*entity.InventoryMovement, 0, len(doc.Lines))
		for i, l := range doc.Lines {
			m, err := s.ledger.RecordInTx(ctx, repos, actor, inventory.MovementInput{
				ProductID: l.ProductID,
				Kind:      entity.MovementExit,
				Quantity:  l.Quantity,
				Cause:     entity.CauseRef{Kind: entity.CauseSale, ID: doc.ID},
				UnitCost:  lines[i].product.Cost,
			})
			if err != nil {
				return err
			}
			movs = append(movs, m)
		}

		doc.RecomputeTotals()
		number, err := s.allocator.AllocateInTx(ctx, repos, fiscalType)
		if err != nil {
			return err
		}
		if err := assignNumber(ctx, repos, doc); err != nil {
			return err
		}
		doc.FiscalNumber = number
		doc.FiscalType = fiscalType
		if err := doc.Complete(now); err != nil {
			return err
		}
		if err := repos.Documents.Create(ctx, doc); err != nil {
			return fmt.Errorf("guardar venta: %w", err)
		}
		acc, err = s.accounts.OpenIfCreditInTx(ctx, repos, doc)
		if err != nil {
			return err
		}
		return repos.Audit.Append(ctx, entity.NewAuditEntry(uuid.New().String(), actor,
			entity.AuditEntityDocument, doc.ID, entity.AuditCreated, nil, dto.FromDocument(doc, customer, acc), now))
	})
	if err != nil {
		s.log.Warn().Str("customer_id", customer.ID).Str("code", domain.Code(err)).Err(err).Msg("venta rechazada")
		return nil, err
	}

	s.metrics.DocumentCreated(doc.Kind)
	s.metrics.FiscalNumberIssued(fiscalType)
	s.recordMetrics(movs)
	s.log.Info().
		Str("document_id", doc.ID).
		Str("number", doc.Number).
		Str("ncf", doc.FiscalNumber).
		Str("total", doc.Total.String()).
		Str("condition", doc.PaymentCondition()).
		Msg("venta registrada")
	return dto.FromDocument(doc, customer, acc), nil
}
