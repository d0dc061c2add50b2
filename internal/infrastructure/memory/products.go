package memory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/comercial-api/internal/domain"
	"github.com/jhoicas/comercial-api/internal/domain/entity"
	"github.com/jhoicas/comercial-api/internal/domain/repository"
)

var (
	_ repository.ProductRepository      = (*productRepo)(nil)
	_ repository.CounterpartyRepository = (*counterpartyRepo)(nil)
)

type productRepo struct {
	st func() *state
}

func (r *productRepo) Create(_ context.Context, p *entity.Product) error {
	s := r.st()
	if _, ok := s.products[p.ID]; ok {
		return domain.ErrDuplicate
	}
	for _, existing := range s.products {
		if existing.SKU == p.SKU {
			return domain.ErrDuplicate
		}
	}
	s.products[p.ID] = copyProduct(p)
	return nil
}

func (r *productRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	p, ok := r.st().products[id]
	if !ok {
		return nil, nil
	}
	return copyProduct(p), nil
}

func (r *productRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *productRepo) UpdateStock(_ context.Context, id string, stock decimal.Decimal, at time.Time) error {
	p, ok := r.st().products[id]
	if !ok {
		return domain.NotFound("producto")
	}
	p.Stock = stock
	p.UpdatedAt = at
	return nil
}

func (r *productRepo) UpdateCost(_ context.Context, id string, cost decimal.Decimal, at time.Time) error {
	p, ok := r.st().products[id]
	if !ok {
		return domain.NotFound("producto")
	}
	p.Cost = cost
	p.UpdatedAt = at
	return nil
}

func (r *productRepo) List(_ context.Context) ([]*entity.Product, error) {
	s := r.st()
	out := make([]*entity.Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, copyProduct(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SKU < out[j].SKU })
	return out, nil
}

type counterpartyRepo struct {
	st func() *state
}

func (r *counterpartyRepo) Create(_ context.Context, c *entity.Counterparty) error {
	s := r.st()
	if _, ok := s.counterparties[c.ID]; ok {
		return domain.ErrDuplicate
	}
	cp := *c
	s.counterparties[c.ID] = &cp
	return nil
}

func (r *counterpartyRepo) GetByID(_ context.Context, id string) (*entity.Counterparty, error) {
	c, ok := r.st().counterparties[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *counterpartyRepo) GetForUpdate(ctx context.Context, id string) (*entity.Counterparty, error) {
	return r.GetByID(ctx, id)
}
