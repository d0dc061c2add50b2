package inventory

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/comercial-api/internal/application/dto"
	"github.com/jhoicas/comercial-api/internal/domain"
	"github.com/jhoicas/comercial-api/internal/domain/entity"
	"github.com/jhoicas/comercial-api/internal/domain/repository"
)

// AdjustmentUseCase ajustes manuales de inventario. Un ajuste solo mueve stock al completarse;
// anular un ajuste completado registra el movimiento inverso.
type AdjustmentUseCase struct {
	ledger *Ledger
}

// NewAdjustmentUseCase construye el caso de uso.
func NewAdjustmentUseCase(ledger *Ledger) *AdjustmentUseCase {
	return &AdjustmentUseCase{ledger: ledger}
}

// Create registra un ajuste PENDING con número AJ-YYYYMMDD-NNNN. Las líneas sin costo
// toman el costo actual del producto.
func (uc *AdjustmentUseCase) Create(ctx context.Context, actor entity.ActorContext, in dto.CreateAdjustmentRequest) (*dto.AdjustmentResponse, error) {
	dir := strings.ToUpper(strings.TrimSpace(in.Direction))
	if dir != entity.AdjustmentIn && dir != entity.AdjustmentOut {
		return nil, domain.Validation("dirección inválida: use IN u OUT")
	}
	if strings.TrimSpace(in.Reason) == "" {
		return nil, domain.Validation("el motivo es obligatorio")
	}
	if len(in.Lines) == 0 {
		return nil, domain.Validation("el ajuste debe tener al menos una línea")
	}
	lines := make([]entity.AdjustmentLine, 0, len(in.Lines))
	for _, rl := range in.Lines {
		l := entity.AdjustmentLine{
			ProductID: strings.TrimSpace(rl.ProductID),
			UnitID:    strings.TrimSpace(rl.UnitID),
			Quantity:  rl.Quantity,
			Cost:      rl.Cost,
			Note:      strings.TrimSpace(rl.Note),
		}
		if err := l.Validate(); err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}

	var adj *entity.Adjustment
	err := uc.ledger.tx.Run(ctx, func(repos repository.Repos) error {
		now := uc.ledger.clock.Now()
		adj = &entity.Adjustment{
			ID:        uuid.New().String(),
			Direction: dir,
			Reason:    strings.TrimSpace(in.Reason),
			State:     entity.AdjustmentPending,
			CreatedBy: actor.UserID,
			CreatedAt: now,
			UpdatedAt: now,
		}
		for _, l := range lines {
			product, err := repos.Products.GetByID(ctx, l.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return domain.NotFound("producto")
			}
			l.ID = uuid.New().String()
			l.AdjustmentID = adj.ID
			if l.UnitID == "" {
				l.UnitID = product.Unit
			}
			if l.Cost.IsZero() {
				l.Cost = product.Cost
			}
			adj.Lines = append(adj.Lines, l)
		}
		n, err := repos.Adjustments.NextNumber(ctx, now)
		if err != nil {
			return err
		}
		adj.Number = entity.AdjustmentNumber(now, n)
		if err := repos.Adjustments.Create(ctx, adj); err != nil {
			return err
		}
		return repos.Audit.Append(ctx, entity.NewAuditEntry(uuid.New().String(), actor,
			entity.AuditEntityAdjustment, adj.ID, entity.AuditCreated, nil, dto.FromAdjustment(adj), now))
	})
	if err != nil {
		return nil, err
	}
	return dto.FromAdjustment(adj), nil
}

// Complete aplica todas las líneas al libro (ADJUST_IN o ADJUST_OUT). Si una línea
// falla no se aplica ninguna.
func (uc *AdjustmentUseCase) Complete(ctx context.Context, actor entity.ActorContext, id string) (*dto.AdjustmentResponse, error) {
	var adj *entity.Adjustment
	var movs []*entity.InventoryMovement
	err := uc.ledger.tx.Run(ctx, func(repos repository.Repos) error {
		var err error
		adj, err = lockAdjustment(ctx, repos, id)
		if err != nil {
			return err
		}
		now := uc.ledger.clock.Now()
		if err := adj.Complete(now); err != nil {
			return err
		}
		movs, err = uc.applyLines(ctx, repos, actor, adj, adj.MovementKind(), adj.Reason)
		if err != nil {
			return err
		}
		if err := repos.Adjustments.Update(ctx, adj); err != nil {
			return err
		}
		return repos.Audit.Append(ctx, entity.NewAuditEntry(uuid.New().String(), actor,
			entity.AuditEntityAdjustment, adj.ID, entity.AuditCompleted,
			map[string]string{"state": entity.AdjustmentPending}, map[string]string{"state": adj.State}, now))
	})
	if err != nil {
		uc.ledger.log.Warn().Err(err).Str("adjustment_id", id).Msg("ajuste no completado")
		return nil, err
	}
	for _, m := range movs {
		uc.ledger.metrics.MovementRecorded(m.Kind)
	}
	uc.ledger.log.Info().Str("adjustment", adj.Number).Str("direction", adj.Direction).Int("lines", len(movs)).Msg("ajuste completado")
	return dto.FromAdjustment(adj), nil
}

// Void anula el ajuste. Si estaba completado registra el movimiento inverso de cada
// línea, que puede fallar con INSUFFICIENT_STOCK si la mercancía ya salió.
func (uc *AdjustmentUseCase) Void(ctx context.Context, actor entity.ActorContext, id string) (*dto.AdjustmentResponse, error) {
	var adj *entity.Adjustment
	var reversed []*entity.InventoryMovement
	err := uc.ledger.tx.Run(ctx, func(repos repository.Repos) error {
		var err error
		adj, err = lockAdjustment(ctx, repos, id)
		if err != nil {
			return err
		}
		prev := adj.State
		now := uc.ledger.clock.Now()
		wasCompleted, err := adj.Void(now)
		if err != nil {
			return err
		}
		if wasCompleted {
			reversed, err = uc.applyLines(ctx, repos, actor, adj, adj.ReverseMovementKind(), "anulación "+adj.Number)
			if err != nil {
				return err
			}
		}
		if err := repos.Adjustments.Update(ctx, adj); err != nil {
			return err
		}
		return repos.Audit.Append(ctx, entity.NewAuditEntry(uuid.New().String(), actor,
			entity.AuditEntityAdjustment, adj.ID, entity.AuditVoided,
			map[string]string{"state": prev}, map[string]string{"state": adj.State}, now))
	})
	if err != nil {
		return nil, err
	}
	for _, m := range reversed {
		uc.ledger.metrics.MovementRecorded(m.Kind)
	}
	return dto.FromAdjustment(adj), nil
}

func (uc *AdjustmentUseCase) applyLines(ctx context.Context, repos repository.Repos, actor entity.ActorContext, adj *entity.Adjustment, kind, note string) ([]*entity.InventoryMovement, error) {
	movs := make([]*entity.InventoryMovement, 0, len(adj.Lines))
	for _, l := range adj.Lines {
		lineNote := note
		if l.Note != "" {
			lineNote = note + ": " + l.Note
		}
		m, err := uc.ledger.RecordInTx(ctx, repos, actor, MovementInput{
			ProductID: l.ProductID,
			Kind:      kind,
			Quantity:  l.Quantity,
			Cause:     entity.CauseRef{Kind: entity.CauseAdjustment, ID: adj.ID},
			UnitCost:  l.Cost,
			Note:      lineNote,
		})
		if err != nil {
			return nil, err
		}
		movs = append(movs, m)
	}
	return movs, nil
}

func lockAdjustment(ctx context.Context, repos repository.Repos, id string) (*entity.Adjustment, error) {
	adj, err := repos.Adjustments.GetForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if adj == nil {
		return nil, domain.NotFound("ajuste")
	}
	return adj, nil
}
