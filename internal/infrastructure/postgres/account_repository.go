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

var (
	_ repository.AccountRepository = (*AccountRepo)(nil)
	_ repository.PaymentRepository = (*PaymentRepo)(nil)
)

const accountColumns = `id, kind, document_id, counterparty_id, original_amount, pending_amount, issue_date, due_date, state, created_at, updated_at`

// AccountRepo cuentas por cobrar y por pagar.
type AccountRepo struct {
	q Querier
}

// NewAccountRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAccountRepository(q Querier) *AccountRepo {
	return &AccountRepo{q: q}
}

// Create inserta la cuenta; una segunda cuenta para el mismo documento devuelve ErrAccountExists.
func (r *AccountRepo) Create(ctx context.Context, a *entity.Account) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO accounts (`+accountColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		a.ID, a.Kind, a.DocumentID, a.CounterpartyID, a.OriginalAmount, a.PendingAmount,
		a.IssueDate, a.DueDate, a.State, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAccountExists
		}
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

func (r *AccountRepo) GetByID(ctx context.Context, id string) (*entity.Account, error) {
	return r.get(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id)
}

func (r *AccountRepo) GetForUpdate(ctx context.Context, id string) (*entity.Account, error) {
	return r.get(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = $1 FOR UPDATE`, id)
}

func (r *AccountRepo) GetByDocument(ctx context.Context, documentID string) (*entity.Account, error) {
	return r.get(ctx, `SELECT `+accountColumns+` FROM accounts WHERE document_id = $1`, documentID)
}

func (r *AccountRepo) Update(ctx context.Context, a *entity.Account) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE accounts SET pending_amount = $2, state = $3, updated_at = $4 WHERE id = $1`,
		a.ID, a.PendingAmount, a.State, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update account: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("cuenta")
	}
	return nil
}

// ListDue cuentas PENDING vencidas a la fecha.
func (r *AccountRepo) ListDue(ctx context.Context, now time.Time) ([]*entity.Account, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+accountColumns+` FROM accounts WHERE state = 'PENDING' AND due_date < $1 ORDER BY due_date`, now)
	if err != nil {
		return nil, fmt.Errorf("list due accounts: %w", err)
	}
	defer rows.Close()
	var out []*entity.Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *AccountRepo) get(ctx context.Context, query, arg string) (*entity.Account, error) {
	a, err := scanAccount(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get account: %w", err)
	}
	return a, nil
}

func scanAccount(row pgx.Row) (*entity.Account, error) {
	var a entity.Account
	err := row.Scan(&a.ID, &a.Kind, &a.DocumentID, &a.CounterpartyID, &a.OriginalAmount, &a.PendingAmount,
		&a.IssueDate, &a.DueDate, &a.State, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// ── Pagos ─────────────────────────────────────────────────────────────────────

const paymentColumns = `id, account_kind, account_id, amount, method, reference, date, state, created_by, voided_at, created_at`

// PaymentRepo pagos sobre cuentas.
type PaymentRepo struct {
	q Querier
}

// NewPaymentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPaymentRepository(q Querier) *PaymentRepo {
	return &PaymentRepo{q: q}
}

func (r *PaymentRepo) Create(ctx context.Context, p *entity.Payment) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO payments (`+paymentColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		p.ID, p.Account.Kind, p.Account.ID, p.Amount, p.Method, p.Reference, p.Date, p.State,
		p.CreatedBy, p.VoidedAt, p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

func (r *PaymentRepo) GetByID(ctx context.Context, id string) (*entity.Payment, error) {
	return r.get(ctx, `SELECT `+paymentColumns+` FROM payments WHERE id = $1`, id)
}

func (r *PaymentRepo) GetForUpdate(ctx context.Context, id string) (*entity.Payment, error) {
	return r.get(ctx, `SELECT `+paymentColumns+` FROM payments WHERE id = $1 FOR UPDATE`, id)
}

func (r *PaymentRepo) Update(ctx context.Context, p *entity.Payment) error {
	tag, err := r.q.Exec(ctx, `UPDATE payments SET state = $2, voided_at = $3 WHERE id = $1`, p.ID, p.State, p.VoidedAt)
	if err != nil {
		return fmt.Errorf("update payment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("pago")
	}
	return nil
}

func (r *PaymentRepo) ListByAccount(ctx context.Context, ref entity.AccountRef) ([]*entity.Payment, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+paymentColumns+` FROM payments WHERE account_kind = $1 AND account_id = $2 ORDER BY date, id`,
		ref.Kind, ref.ID)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()
	var out []*entity.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PaymentRepo) get(ctx context.Context, query, id string) (*entity.Payment, error) {
	p, err := scanPayment(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get payment: %w", err)
	}
	return p, nil
}

func scanPayment(row pgx.Row) (*entity.Payment, error) {
	var p entity.Payment
	err := row.Scan(&p.ID, &p.Account.Kind, &p.Account.ID, &p.Amount, &p.Method, &p.Reference, &p.Date,
		&p.State, &p.CreatedBy, &p.VoidedAt, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
