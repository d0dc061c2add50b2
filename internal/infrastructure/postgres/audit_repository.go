package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/comercial-api/internal/domain/entity"
	"github.com/jhoicas/comercial-api/internal/domain/repository"
)

var (
	_ repository.AuditRepository       = (*AuditRepo)(nil)
	_ repository.CostHistoryRepository = (*CostHistoryRepo)(nil)
)

// AuditRepo bitácora audit_log (solo inserción).
type AuditRepo struct {
	q Querier
}

func NewAuditRepository(q Querier) *AuditRepo {
	return &AuditRepo{q: q}
}

func (r *AuditRepo) Append(ctx context.Context, e *entity.AuditEntry) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO audit_log (id, entity_kind, entity_id, event, old_values, new_values, user_id, ip, user_agent, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		e.ID, e.EntityKind, e.EntityID, e.Event, jsonOrNil(e.OldValues), jsonOrNil(e.NewValues),
		e.UserID, e.IP, e.UserAgent, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

func (r *AuditRepo) ListByEntity(ctx context.Context, kind, id string) ([]*entity.AuditEntry, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, entity_kind, entity_id, event, old_values, new_values, user_id, ip, user_agent, created_at
		FROM audit_log WHERE entity_kind = $1 AND entity_id = $2 ORDER BY created_at, id`, kind, id)
	if err != nil {
		return nil, fmt.Errorf("list audit entries: %w", err)
	}
	defer rows.Close()
	var out []*entity.AuditEntry
	for rows.Next() {
		var (
			e              entity.AuditEntry
			oldVal, newVal []byte
		)
		if err := rows.Scan(&e.ID, &e.EntityKind, &e.EntityID, &e.Event, &oldVal, &newVal,
			&e.UserID, &e.IP, &e.UserAgent, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		e.OldValues, e.NewValues = oldVal, newVal
		out = append(out, &e)
	}
	return out, rows.Err()
}

// jsonOrNil evita insertar el literal JSON null en la columna.
func jsonOrNil(b []byte) any {
	if len(b) == 0 {
		return nil
	}
	return string(b)
}

// ── Historial de costos ───────────────────────────────────────────────────────

type CostHistoryRepo struct {
	q Querier
}

func NewCostHistoryRepository(q Querier) *CostHistoryRepo {
	return &CostHistoryRepo{q: q}
}

func (r *CostHistoryRepo) Create(ctx context.Context, h *entity.CostHistory) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO cost_history (id, product_id, previous_cost, new_cost, document_id, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		h.ID, h.ProductID, h.PreviousCost, h.NewCost, nullString(h.DocumentID), h.CreatedBy, h.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert cost history: %w", err)
	}
	return nil
}

func (r *CostHistoryRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.CostHistory, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, product_id, previous_cost, new_cost, document_id, created_by, created_at
		FROM cost_history WHERE product_id = $1 ORDER BY created_at, id`, productID)
	if err != nil {
		return nil, fmt.Errorf("list cost history: %w", err)
	}
	defer rows.Close()
	var out []*entity.CostHistory
	for rows.Next() {
		var (
			h     entity.CostHistory
			docID *string
		)
		if err := rows.Scan(&h.ID, &h.ProductID, &h.PreviousCost, &h.NewCost, &docID, &h.CreatedBy, &h.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan cost history: %w", err)
		}
		h.DocumentID = fromNullString(docID)
		out = append(out, &h)
	}
	return out, rows.Err()
}
