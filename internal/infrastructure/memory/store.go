// Package memory implementa los repositorios sobre un estado en memoria con
// transacciones todo-o-nada. Se usa en pruebas y con STORE_DRIVER=memory.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/comercial-api/internal/domain/entity"
	"github.com/jhoicas/comercial-api/internal/domain/repository"
)

var _ repository.TxRunner = (*Store)(nil)

type state struct {
	products       map[string]*entity.Product
	counterparties map[string]*entity.Counterparty
	movements      []*entity.InventoryMovement
	movementSeq    int64
	sequences      map[string]*entity.FiscalSequence
	documents      map[string]*entity.Document
	accounts       map[string]*entity.Account
	payments       map[string]*entity.Payment
	adjustments    map[string]*entity.Adjustment
	counters       map[string]int
	audit          []*entity.AuditEntry
	costHistory    []*entity.CostHistory
}

func newState() *state {
	return &state{
		products:       map[string]*entity.Product{},
		counterparties: map[string]*entity.Counterparty{},
		sequences:      map[string]*entity.FiscalSequence{},
		documents:      map[string]*entity.Document{},
		accounts:       map[string]*entity.Account{},
		payments:       map[string]*entity.Payment{},
		adjustments:    map[string]*entity.Adjustment{},
		counters:       map[string]int{},
	}
}

// clone copia el estado; los movimientos, auditoría e historial de costos son inmutables
// y se comparten por puntero.
func (s *state) clone() *state {
	c := newState()
	for k, v := range s.products {
		c.products[k] = copyProduct(v)
	}
	for k, v := range s.counterparties {
		cp := *v
		c.counterparties[k] = &cp
	}
	c.movements = append([]*entity.InventoryMovement(nil), s.movements...)
	c.movementSeq = s.movementSeq
	for k, v := range s.sequences {
		c.sequences[k] = copySequence(v)
	}
	for k, v := range s.documents {
		c.documents[k] = copyDocument(v)
	}
	for k, v := range s.accounts {
		c.accounts[k] = copyAccount(v)
	}
	for k, v := range s.payments {
		c.payments[k] = copyPayment(v)
	}
	for k, v := range s.adjustments {
		c.adjustments[k] = copyAdjustment(v)
	}
	for k, v := range s.counters {
		c.counters[k] = v
	}
	c.audit = append([]*entity.AuditEntry(nil), s.audit...)
	c.costHistory = append([]*entity.CostHistory(nil), s.costHistory...)
	return c
}

// Store almacenamiento en memoria. Las transacciones se serializan con txMu,
// lo que equivale a bloquear todas las filas que toca cada una.
type Store struct {
	txMu      sync.Mutex
	mu        sync.RWMutex
	committed *state
}

// NewStore crea un almacenamiento vacío.
func NewStore() *Store {
	return &Store{committed: newState()}
}

// Run ejecuta fn sobre una copia del estado y la publica solo si fn no devuelve error.
func (s *Store) Run(ctx context.Context, fn func(repos repository.Repos) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.RLock()
	work := s.committed.clone()
	s.mu.RUnlock()

	if err := fn(reposFor(func() *state { return work })); err != nil {
		return err
	}

	s.mu.Lock()
	s.committed = work
	s.mu.Unlock()
	return nil
}

// Repos repositorios de lectura sobre el último estado confirmado.
// Las escrituras deben hacerse dentro de Run.
func (s *Store) Repos() repository.Repos {
	return reposFor(s.snapshot)
}

func (s *Store) snapshot() *state {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.committed
}

func reposFor(st func() *state) repository.Repos {
	return repository.Repos{
		Products:       &productRepo{st: st},
		Counterparties: &counterpartyRepo{st: st},
		Movements:      &movementRepo{st: st},
		Sequences:      &sequenceRepo{st: st},
		Documents:      &documentRepo{st: st},
		Accounts:       &accountRepo{st: st},
		Payments:       &paymentRepo{st: st},
		Adjustments:    &adjustmentRepo{st: st},
		Audit:          &auditRepo{st: st},
		CostHistory:    &costHistoryRepo{st: st},
	}
}

// ── Copias ────────────────────────────────────────────────────────────────────

func copyProduct(p *entity.Product) *entity.Product {
	c := *p
	return &c
}

func copySequence(s *entity.FiscalSequence) *entity.FiscalSequence {
	c := *s
	return &c
}

func copyDocument(d *entity.Document) *entity.Document {
	c := *d
	c.Lines = append([]entity.DocumentLine(nil), d.Lines...)
	return &c
}

func copyAccount(a *entity.Account) *entity.Account {
	c := *a
	return &c
}

func copyPayment(p *entity.Payment) *entity.Payment {
	c := *p
	return &c
}

func copyAdjustment(a *entity.Adjustment) *entity.Adjustment {
	c := *a
	c.Lines = append([]entity.AdjustmentLine(nil), a.Lines...)
	return &c
}
