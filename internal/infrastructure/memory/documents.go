package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/comercial-api/internal/domain"
	"github.com/jhoicas/comercial-api/internal/domain/entity"
	"github.com/jhoicas/comercial-api/internal/domain/ncf"
	"github.com/jhoicas/comercial-api/internal/domain/repository"
)

var (
	_ repository.DocumentRepository = (*documentRepo)(nil)
	_ repository.AccountRepository  = (*accountRepo)(nil)
	_ repository.PaymentRepository  = (*paymentRepo)(nil)
)

type documentRepo struct {
	st func() *state
}

// Create aplica las mismas restricciones únicas que el esquema SQL:
// NCF por tipo en ventas y NCF por proveedor en compras.
func (r *documentRepo) Create(_ context.Context, d *entity.Document) error {
	s := r.st()
	if _, ok := s.documents[d.ID]; ok {
		return domain.ErrDuplicate
	}
	if d.FiscalNumber != "" {
		for _, other := range s.documents {
			if other.Kind != d.Kind || other.FiscalNumber != d.FiscalNumber {
				continue
			}
			if d.Kind == entity.DocumentSale || other.CounterpartyID == d.CounterpartyID {
				return domain.ErrDuplicateFiscalNumber
			}
		}
	}
	s.documents[d.ID] = copyDocument(d)
	return nil
}

func (r *documentRepo) GetByID(_ context.Context, id string) (*entity.Document, error) {
	d, ok := r.st().documents[id]
	if !ok {
		return nil, nil
	}
	return copyDocument(d), nil
}

func (r *documentRepo) GetForUpdate(ctx context.Context, id string) (*entity.Document, error) {
	return r.GetByID(ctx, id)
}

func (r *documentRepo) UpdateState(_ context.Context, d *entity.Document) error {
	cur, ok := r.st().documents[d.ID]
	if !ok {
		return domain.NotFound("documento")
	}
	cur.State = d.State
	cur.VoidReason = d.VoidReason
	cur.VoidedAt = d.VoidedAt
	cur.UpdatedAt = d.UpdatedAt
	return nil
}

func (r *documentRepo) LastSupplierFiscalNumber(_ context.Context, supplierID, prefix string) (string, error) {
	var candidates []string
	for _, d := range r.st().documents {
		if d.Kind == entity.DocumentPurchase && d.CounterpartyID == supplierID &&
			d.FiscalNumber != "" && ncf.Prefix(d.FiscalNumber) == prefix {
			candidates = append(candidates, d.FiscalNumber)
		}
	}
	if len(candidates) == 0 {
		return "", nil
	}
	// misma longitud y prefijo: el orden lexicográfico coincide con el numérico
	sort.Strings(candidates)
	return candidates[len(candidates)-1], nil
}

func (r *documentRepo) ExistsSupplierFiscalNumber(_ context.Context, supplierID, fiscalNumber string) (bool, error) {
	for _, d := range r.st().documents {
		if d.Kind == entity.DocumentPurchase && d.CounterpartyID == supplierID && d.FiscalNumber == fiscalNumber {
			return true, nil
		}
	}
	return false, nil
}

func (r *documentRepo) NextNumber(_ context.Context, kind string, day time.Time) (int, error) {
	return nextNumber(r.st(), kind, day), nil
}

type accountRepo struct {
	st func() *state
}

func (r *accountRepo) Create(_ context.Context, a *entity.Account) error {
	s := r.st()
	for _, other := range s.accounts {
		if other.DocumentID == a.DocumentID {
			return domain.ErrAccountExists
		}
	}
	s.accounts[a.ID] = copyAccount(a)
	return nil
}

func (r *accountRepo) GetByID(_ context.Context, id string) (*entity.Account, error) {
	a, ok := r.st().accounts[id]
	if !ok {
		return nil, nil
	}
	return copyAccount(a), nil
}

func (r *accountRepo) GetForUpdate(ctx context.Context, id string) (*entity.Account, error) {
	return r.GetByID(ctx, id)
}

func (r *accountRepo) GetByDocument(_ context.Context, documentID string) (*entity.Account, error) {
	for _, a := range r.st().accounts {
		if a.DocumentID == documentID {
			return copyAccount(a), nil
		}
	}
	return nil, nil
}

func (r *accountRepo) Update(_ context.Context, a *entity.Account) error {
	s := r.st()
	if _, ok := s.accounts[a.ID]; !ok {
		return domain.NotFound("cuenta")
	}
	s.accounts[a.ID] = copyAccount(a)
	return nil
}

func (r *accountRepo) ListDue(_ context.Context, now time.Time) ([]*entity.Account, error) {
	var out []*entity.Account
	for _, a := range r.st().accounts {
		if a.State == entity.AccountPending && now.After(a.DueDate) {
			out = append(out, copyAccount(a))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DueDate.Before(out[j].DueDate) })
	return out, nil
}

type paymentRepo struct {
	st func() *state
}

func (r *paymentRepo) Create(_ context.Context, p *entity.Payment) error {
	r.st().payments[p.ID] = copyPayment(p)
	return nil
}

func (r *paymentRepo) GetByID(_ context.Context, id string) (*entity.Payment, error) {
	p, ok := r.st().payments[id]
	if !ok {
		return nil, nil
	}
	return copyPayment(p), nil
}

func (r *paymentRepo) GetForUpdate(ctx context.Context, id string) (*entity.Payment, error) {
	return r.GetByID(ctx, id)
}

func (r *paymentRepo) Update(_ context.Context, p *entity.Payment) error {
	s := r.st()
	if _, ok := s.payments[p.ID]; !ok {
		return domain.NotFound("pago")
	}
	s.payments[p.ID] = copyPayment(p)
	return nil
}

func (r *paymentRepo) ListByAccount(_ context.Context, ref entity.AccountRef) ([]*entity.Payment, error) {
	var out []*entity.Payment
	for _, p := range r.st().payments {
		if p.Account == ref {
			out = append(out, copyPayment(p))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}
