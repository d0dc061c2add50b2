// Package inventory implementa el libro de inventario (movimientos inmutables)
// y los ajustes manuales.
package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/comercial-api/internal/application/dto"
	"github.com/jhoicas/comercial-api/internal/application/ports"
	"github.com/jhoicas/comercial-api/internal/clock"
	"github.com/jhoicas/comercial-api/internal/domain"
	"github.com/jhoicas/comercial-api/internal/domain/entity"
	domaininv "github.com/jhoicas/comercial-api/internal/domain/inventory"
	"github.com/jhoicas/comercial-api/internal/domain/repository"
	"github.com/jhoicas/comercial-api/pkg/logger"
)

// MovementInput datos de un movimiento a registrar.
type MovementInput struct {
	ProductID string
	Kind      string
	Quantity  decimal.Decimal
	Cause     entity.CauseRef
	UnitCost  decimal.Decimal
	Note      string
}

// Ledger registra movimientos y mantiene el contador de stock del producto en la misma transacción.
type Ledger struct {
	tx      repository.TxRunner
	reads   repository.Repos
	clock   clock.Clock
	metrics ports.MetricsRecorder
	log     *logger.Logger
}

// NewLedger construye el libro. reads se usa para consultas fuera de transacción.
func NewLedger(tx repository.TxRunner, reads repository.Repos, clk clock.Clock, metrics ports.MetricsRecorder, log *logger.Logger) *Ledger {
	return &Ledger{tx: tx, reads: reads, clock: clk, metrics: metrics, log: log.WithComponent("inventory")}
}

// RecordInTx bloquea el producto, calcula el stock resultante, inserta el movimiento
// y actualiza el contador. Una salida sin stock suficiente devuelve ErrInsufficientStock
// y no escribe nada; el llamador debe abortar la transacción.
func (l *Ledger) RecordInTx(ctx context.Context, repos repository.Repos, actor entity.ActorContext, in MovementInput) (*entity.InventoryMovement, error) {
	if !entity.IsValidMovementKind(in.Kind) {
		return nil, domain.Validation("tipo de movimiento inválido: %s", in.Kind)
	}
	if _, ok := causeResolvers[in.Cause.Kind]; !ok || in.Cause.ID == "" {
		return nil, domain.Validation("causa del movimiento inválida")
	}
	product, err := repos.Products.GetForUpdate(ctx, in.ProductID)
	if err != nil {
		return nil, fmt.Errorf("bloquear producto: %w", err)
	}
	if product == nil {
		return nil, domain.NotFound("producto")
	}
	if in.Kind == entity.MovementInitial {
		n, err := repos.Movements.CountByProduct(ctx, product.ID)
		if err != nil {
			return nil, err
		}
		if n > 0 {
			return nil, domain.Validation("el inventario inicial solo aplica a productos sin movimientos")
		}
	}

	after, err := domaininv.NextStock(in.Kind, product.Stock, in.Quantity)
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientStock) {
			l.metrics.StockRejected(in.Kind)
			l.log.Warn().
				Str("product_id", product.ID).
				Str("kind", in.Kind).
				Str("stock", product.Stock.String()).
				Str("quantity", in.Quantity.String()).
				Msg("movimiento rechazado por stock insuficiente")
		}
		return nil, err
	}

	now := l.clock.Now()
	m := &entity.InventoryMovement{
		ID:          uuid.New().String(),
		ProductID:   product.ID,
		Kind:        in.Kind,
		Quantity:    in.Quantity,
		StockBefore: product.Stock,
		StockAfter:  after,
		Cause:       in.Cause,
		UnitCost:    in.UnitCost,
		Note:        in.Note,
		CreatedBy:   actor.UserID,
		CreatedAt:   now,
	}
	if err := repos.Movements.Create(ctx, m); err != nil {
		return nil, fmt.Errorf("insertar movimiento: %w", err)
	}
	if err := repos.Products.UpdateStock(ctx, product.ID, after, now); err != nil {
		return nil, fmt.Errorf("actualizar stock: %w", err)
	}
	return m, nil
}

// Record registra un movimiento en su propia transacción.
func (l *Ledger) Record(ctx context.Context, actor entity.ActorContext, in MovementInput) (*entity.InventoryMovement, error) {
	var m *entity.InventoryMovement
	err := l.tx.Run(ctx, func(repos repository.Repos) error {
		var err error
		m, err = l.RecordInTx(ctx, repos, actor, in)
		return err
	})
	if err != nil {
		return nil, err
	}
	l.metrics.MovementRecorded(m.Kind)
	return m, nil
}

// History historial del producto ordenado por secuencia, con el número de la causa resuelto.
func (l *Ledger) History(ctx context.Context, productID string) ([]dto.MovementResponse, error) {
	product, err := l.reads.Products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.NotFound("producto")
	}
	movs, err := l.reads.Movements.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovementResponse, 0, len(movs))
	for _, m := range movs {
		resp := dto.FromMovement(m)
		resp.CauseNumber, err = describeCause(ctx, l.reads, m.Cause)
		if err != nil {
			return nil, err
		}
		out = append(out, resp)
	}
	return out, nil
}

// Reconcile reproduce el libro del producto y lo compara con el contador corriente.
func (l *Ledger) Reconcile(ctx context.Context, productID string) (*dto.ReconcileResponse, error) {
	var resp *dto.ReconcileResponse
	err := l.tx.Run(ctx, func(repos repository.Repos) error {
		product, err := repos.Products.GetByID(ctx, productID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.NotFound("producto")
		}
		movs, err := repos.Movements.ListByProduct(ctx, productID)
		if err != nil {
			return err
		}
		resp = reconcile(product, movs)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if !resp.Consistent {
		l.log.Error().Str("product_id", productID).Int("breaks", len(resp.Breaks)).
			Str("replayed", resp.ReplayedStock.String()).Str("counter", resp.CounterStock.String()).
			Msg("libro de inventario inconsistente")
	}
	return resp, nil
}

// ReconcileAll reconcilia todos los productos del catálogo.
func (l *Ledger) ReconcileAll(ctx context.Context) ([]dto.ReconcileResponse, error) {
	products, err := l.reads.Products.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ReconcileResponse, 0, len(products))
	for _, p := range products {
		r, err := l.Reconcile(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, *r)
	}
	return out, nil
}

func reconcile(product *entity.Product, movs []*entity.InventoryMovement) *dto.ReconcileResponse {
	replayed, breaks := domaininv.Replay(movs)
	resp := &dto.ReconcileResponse{
		ProductID:     product.ID,
		Movements:     len(movs),
		ReplayedStock: replayed,
		CounterStock:  product.Stock,
	}
	for _, b := range breaks {
		resp.Breaks = append(resp.Breaks, dto.LedgerBreak{MovementID: b.MovementID, Seq: b.Seq, Reason: b.Reason})
	}
	resp.Consistent = len(breaks) == 0 && replayed.Equal(product.Stock)
	return resp
}
