package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/comercial-api/internal/domain"
	"github.com/jhoicas/comercial-api/internal/domain/entity"
	"github.com/jhoicas/comercial-api/internal/domain/repository"
)

var _ repository.AdjustmentRepository = (*AdjustmentRepo)(nil)

const adjustmentColumns = `id, number, direction, reason, state, created_by, completed_at, voided_at, created_at, updated_at`

type AdjustmentRepo struct {
	q Querier
}

func NewAdjustmentRepository(q Querier) *AdjustmentRepo {
	return &AdjustmentRepo{q: q}
}

// Create inserta cabecera y líneas. Debe ejecutarse dentro de una transacción.
func (r *AdjustmentRepo) Create(ctx context.Context, a *entity.Adjustment) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO inventory_adjustments (`+adjustmentColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		a.ID, a.Number, a.Direction, a.Reason, a.State, a.CreatedBy,
		a.CompletedAt, a.VoidedAt, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert adjustment: %w", err)
	}
	for i, l := range a.Lines {
		_, err := r.q.Exec(ctx, `
			INSERT INTO inventory_adjustment_lines (id, adjustment_id, position, product_id, unit_id, quantity, cost, note)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			l.ID, a.ID, i+1, l.ProductID, l.UnitID, l.Quantity, l.Cost, l.Note,
		)
		if err != nil {
			return fmt.Errorf("insert adjustment line %d: %w", i+1, err)
		}
	}
	return nil
}

func (r *AdjustmentRepo) GetByID(ctx context.Context, id string) (*entity.Adjustment, error) {
	return r.get(ctx, `SELECT `+adjustmentColumns+` FROM inventory_adjustments WHERE id = $1`, id)
}

func (r *AdjustmentRepo) GetForUpdate(ctx context.Context, id string) (*entity.Adjustment, error) {
	return r.get(ctx, `SELECT `+adjustmentColumns+` FROM inventory_adjustments WHERE id = $1 FOR UPDATE`, id)
}

// Update persiste estado y fechas; las líneas no cambian después de creado el ajuste.
func (r *AdjustmentRepo) Update(ctx context.Context, a *entity.Adjustment) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE inventory_adjustments SET state = $2, completed_at = $3, voided_at = $4, updated_at = $5 WHERE id = $1`,
		a.ID, a.State, a.CompletedAt, a.VoidedAt, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update adjustment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("ajuste")
	}
	return nil
}

func (r *AdjustmentRepo) NextNumber(ctx context.Context, day time.Time) (int, error) {
	return nextDailyNumber(ctx, r.q, entity.CauseAdjustment, day)
}

func (r *AdjustmentRepo) get(ctx context.Context, query, id string) (*entity.Adjustment, error) {
	var a entity.Adjustment
	err := r.q.QueryRow(ctx, query, id).Scan(
		&a.ID, &a.Number, &a.Direction, &a.Reason, &a.State, &a.CreatedBy,
		&a.CompletedAt, &a.VoidedAt, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get adjustment: %w", err)
	}
	lines, err := r.lines(ctx, a.ID)
	if err != nil {
		return nil, err
	}
	a.Lines = lines
	return &a, nil
}

func (r *AdjustmentRepo) lines(ctx context.Context, adjustmentID string) ([]entity.AdjustmentLine, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, adjustment_id, product_id, unit_id, quantity, cost, note
		FROM inventory_adjustment_lines WHERE adjustment_id = $1 ORDER BY position`, adjustmentID)
	if err != nil {
		return nil, fmt.Errorf("list adjustment lines: %w", err)
	}
	defer rows.Close()
	var out []entity.AdjustmentLine
	for rows.Next() {
		var l entity.AdjustmentLine
		if err := rows.Scan(&l.ID, &l.AdjustmentID, &l.ProductID, &l.UnitID, &l.Quantity, &l.Cost, &l.Note); err != nil {
			return nil, fmt.Errorf("scan adjustment line: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}
