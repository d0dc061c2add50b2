package documents

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/comercial-api/internal/application/dto"
	"github.com/jhoicas/comercial-api/internal/application/inventory"
	"github.com/jhoicas/comercial-api/internal/domain"
	"github.com/jhoicas/comercial-api/internal/domain/entity"
	"github.com/jhoicas/comercial-api/internal/domain/repository"
)

// compensation movimiento inverso de cada movimiento original del documento.
var compensation = map[string]string{
	entity.MovementExit:  entity.MovementReturn,
	entity.MovementEntry: entity.MovementExit,
}

// Void anula el documento: revierte sus movimientos, anula la cuenta asociada
// (el pendiente queda castigado) y conserva el NCF. Anular una compra cuya
// mercancía ya salió falla con INSUFFICIENT_STOCK.
func (s *Service) Void(ctx context.Context, actor entity.ActorContext, documentID, reason string) (*dto.DocumentResponse, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, domain.Validation("el motivo de anulación es obligatorio")
	}

	var (
		doc          *entity.Document
		acc          *entity.Account
		counterparty *entity.Counterparty
		movs         []*entity.InventoryMovement
	)
	err := s.tx.Run(ctx, func(repos repository.Repos) error {
		var err error
		doc, err = repos.Documents.GetForUpdate(ctx, documentID)
		if err != nil {
			return err
		}
		if doc == nil {
			return domain.NotFound("documento")
		}
		prev := doc.State
		now := s.clock.Now()
		if err := doc.Void(now, reason); err != nil {
			return err
		}

		if prev == entity.DocumentCompleted {
			cause := entity.CauseRef{Kind: doc.CauseKind(), ID: doc.ID}
			originals, err := repos.Movements.ListByCause(ctx, cause)
			if err != nil {
				return err
			}
			for _, o := range originals {
				kind, ok := compensation[o.Kind]
				if !ok {
					continue
				}
				m, err := s.ledger.RecordInTx(ctx, repos, actor, inventory.MovementInput{
					ProductID: o.ProductID,
					Kind:      kind,
					Quantity:  o.Quantity,
					Cause:     cause,
					UnitCost:  o.UnitCost,
					Note:      "anulación " + doc.Number,
				})
				if err != nil {
					return err
				}
				movs = append(movs, m)
			}
		}

		acc, err = s.accounts.VoidForDocumentInTx(ctx, repos, doc.ID)
		if err != nil {
			return err
		}
		if err := repos.Documents.UpdateState(ctx, doc); err != nil {
			return err
		}
		counterparty, err = repos.Counterparties.GetByID(ctx, doc.CounterpartyID)
		if err != nil {
			return err
		}
		return repos.Audit.Append(ctx, entity.NewAuditEntry(uuid.New().String(), actor,
			entity.AuditEntityDocument, doc.ID, entity.AuditVoided,
			map[string]string{"state": prev},
			map[string]string{"state": doc.State, "reason": reason}, now))
	})
	if err != nil {
		return nil, err
	}

	s.metrics.DocumentVoided(doc.Kind)
	s.recordMetrics(movs)
	ev := s.log.Info().Str("document_id", doc.ID).Str("number", doc.Number).Int("reversed", len(movs))
	if acc != nil {
		ev = ev.Str("written_off", acc.PendingAmount.String())
	}
	ev.Msg("documento anulado")

	return dto.FromDocument(doc, counterparty, acc), nil
}
