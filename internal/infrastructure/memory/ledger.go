package memory

import (
	"context"
	"time"

	"github.com/jhoicas/comercial-api/internal/domain"
	"github.com/jhoicas/comercial-api/internal/domain/entity"
	"github.com/jhoicas/comercial-api/internal/domain/repository"
)

var (
	_ repository.InventoryMovementRepository = (*movementRepo)(nil)
	_ repository.AuditRepository             = (*auditRepo)(nil)
	_ repository.CostHistoryRepository       = (*costHistoryRepo)(nil)
	_ repository.AdjustmentRepository        = (*adjustmentRepo)(nil)
)

type movementRepo struct {
	st func() *state
}

func (r *movementRepo) Create(_ context.Context, m *entity.InventoryMovement) error {
	s := r.st()
	s.movementSeq++
	m.Seq = s.movementSeq
	cp := *m
	s.movements = append(s.movements, &cp)
	return nil
}

func (r *movementRepo) ListByProduct(_ context.Context, productID string) ([]*entity.InventoryMovement, error) {
	var out []*entity.InventoryMovement
	for _, m := range r.st().movements {
		if m.ProductID == productID {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *movementRepo) ListByCause(_ context.Context, cause entity.CauseRef) ([]*entity.InventoryMovement, error) {
	var out []*entity.InventoryMovement
	for _, m := range r.st().movements {
		if m.Cause == cause {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *movementRepo) CountByProduct(_ context.Context, productID string) (int, error) {
	n := 0
	for _, m := range r.st().movements {
		if m.ProductID == productID {
			n++
		}
	}
	return n, nil
}

type auditRepo struct {
	st func() *state
}

func (r *auditRepo) Append(_ context.Context, e *entity.AuditEntry) error {
	s := r.st()
	cp := *e
	s.audit = append(s.audit, &cp)
	return nil
}

func (r *auditRepo) ListByEntity(_ context.Context, kind, id string) ([]*entity.AuditEntry, error) {
	var out []*entity.AuditEntry
	for _, e := range r.st().audit {
		if e.EntityKind == kind && e.EntityID == id {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out, nil
}

type costHistoryRepo struct {
	st func() *state
}

func (r *costHistoryRepo) Create(_ context.Context, h *entity.CostHistory) error {
	s := r.st()
	cp := *h
	s.costHistory = append(s.costHistory, &cp)
	return nil
}

func (r *costHistoryRepo) ListByProduct(_ context.Context, productID string) ([]*entity.CostHistory, error) {
	var out []*entity.CostHistory
	for _, h := range r.st().costHistory {
		if h.ProductID == productID {
			cp := *h
			out = append(out, &cp)
		}
	}
	return out, nil
}

type adjustmentRepo struct {
	st func() *state
}

func (r *adjustmentRepo) Create(_ context.Context, a *entity.Adjustment) error {
	r.st().adjustments[a.ID] = copyAdjustment(a)
	return nil
}

func (r *adjustmentRepo) GetByID(_ context.Context, id string) (*entity.Adjustment, error) {
	a, ok := r.st().adjustments[id]
	if !ok {
		return nil, nil
	}
	return copyAdjustment(a), nil
}

func (r *adjustmentRepo) GetForUpdate(ctx context.Context, id string) (*entity.Adjustment, error) {
	return r.GetByID(ctx, id)
}

func (r *adjustmentRepo) Update(_ context.Context, a *entity.Adjustment) error {
	s := r.st()
	if _, ok := s.adjustments[a.ID]; !ok {
		return domain.NotFound("ajuste")
	}
	s.adjustments[a.ID] = copyAdjustment(a)
	return nil
}

func (r *adjustmentRepo) NextNumber(_ context.Context, day time.Time) (int, error) {
	return nextNumber(r.st(), entity.CauseAdjustment, day), nil
}

// nextNumber consecutivo diario por ámbito; el día se toma en UTC como en postgres.
func nextNumber(s *state, scope string, day time.Time) int {
	key := scope + "/" + day.UTC().Format("20060102")
	s.counters[key]++
	return s.counters[key]
}
