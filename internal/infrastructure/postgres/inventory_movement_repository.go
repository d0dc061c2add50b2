package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/comercial-api/internal/domain/entity"
	"github.com/jhoicas/comercial-api/internal/domain/repository"
)

var _ repository.InventoryMovementRepository = (*InventoryMovementRepo)(nil)

const movementColumns = `seq, id, product_id, kind, quantity, stock_before, stock_after, cause_kind, cause_id, unit_cost, note, created_by, created_at`

// InventoryMovementRepo libro de movimientos sobre PostgreSQL (usable con pool o tx).
type InventoryMovementRepo struct {
	q Querier
}

// NewInventoryMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryMovementRepository(q Querier) *InventoryMovementRepo {
	return &InventoryMovementRepo{q: q}
}

// Create inserta el movimiento; seq lo asigna la base (BIGSERIAL).
func (r *InventoryMovementRepo) Create(ctx context.Context, m *entity.InventoryMovement) error {
	query := `
		INSERT INTO inventory_movements (id, product_id, kind, quantity, stock_before, stock_after, cause_kind, cause_id, unit_cost, note, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING seq`
	err := r.q.QueryRow(ctx, query,
		m.ID, m.ProductID, m.Kind, m.Quantity, m.StockBefore, m.StockAfter,
		m.Cause.Kind, m.Cause.ID, m.UnitCost, m.Note, m.CreatedBy, m.CreatedAt,
	).Scan(&m.Seq)
	if err != nil {
		return fmt.Errorf("create inventory movement: %w", err)
	}
	return nil
}

// ListByProduct historial del producto ordenado por seq.
func (r *InventoryMovementRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.InventoryMovement, error) {
	return r.list(ctx, `SELECT `+movementColumns+` FROM inventory_movements WHERE product_id = $1 ORDER BY seq`, productID)
}

// ListByCause movimientos generados por un documento o ajuste.
func (r *InventoryMovementRepo) ListByCause(ctx context.Context, cause entity.CauseRef) ([]*entity.InventoryMovement, error) {
	return r.list(ctx, `SELECT `+movementColumns+` FROM inventory_movements WHERE cause_kind = $1 AND cause_id = $2 ORDER BY seq`, cause.Kind, cause.ID)
}

func (r *InventoryMovementRepo) CountByProduct(ctx context.Context, productID string) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM inventory_movements WHERE product_id = $1`, productID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count movements: %w", err)
	}
	return n, nil
}

func (r *InventoryMovementRepo) list(ctx context.Context, query string, args ...any) ([]*entity.InventoryMovement, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var out []*entity.InventoryMovement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func scanMovement(row pgx.Row) (*entity.InventoryMovement, error) {
	var m entity.InventoryMovement
	err := row.Scan(&m.Seq, &m.ID, &m.ProductID, &m.Kind, &m.Quantity, &m.StockBefore, &m.StockAfter,
		&m.Cause.Kind, &m.Cause.ID, &m.UnitCost, &m.Note, &m.CreatedBy, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
