package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/comercial-api/internal/domain"
	"github.com/jhoicas/comercial-api/internal/domain/entity"
	"github.com/jhoicas/comercial-api/internal/domain/repository"
)

var _ repository.DocumentRepository = (*DocumentRepo)(nil)

const documentColumns = `id, kind, number, counterparty_id, date, fiscal_number, fiscal_type, subtotal, tax, discount, total,
	state, payment_term_days, notes, created_by, void_reason, voided_at, created_at, updated_at`

// DocumentRepo ventas y compras con sus líneas.
type DocumentRepo struct {
	q Querier
}

// NewDocumentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDocumentRepository(q Querier) *DocumentRepo {
	return &DocumentRepo{q: q}
}

// Create inserta cabecera y líneas. Debe ejecutarse dentro de una transacción.
func (r *DocumentRepo) Create(ctx context.Context, d *entity.Document) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO documents (`+documentColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`,
		d.ID, d.Kind, d.Number, d.CounterpartyID, d.Date, nullString(d.FiscalNumber), nullString(d.FiscalType),
		d.Subtotal, d.Tax, d.Discount, d.Total, d.State, d.PaymentTermDays, d.Notes, d.CreatedBy,
		d.VoidReason, d.VoidedAt, d.CreatedAt, d.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			if strings.Contains(constraintName(err), "fiscal_number") {
				return domain.ErrDuplicateFiscalNumber
			}
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert document: %w", err)
	}

	for i, l := range d.Lines {
		_, err := r.q.Exec(ctx, `
			INSERT INTO document_lines (id, document_id, position, product_id, unit_id, quantity, unit_price, discount, tax_rate, subtotal, tax, total)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
			l.ID, d.ID, i+1, l.ProductID, l.UnitID, l.Quantity, l.UnitPrice, l.Discount, l.TaxRate, l.Subtotal, l.Tax, l.Total,
		)
		if err != nil {
			return fmt.Errorf("insert document line %d: %w", i+1, err)
		}
	}
	return nil
}

func (r *DocumentRepo) GetByID(ctx context.Context, id string) (*entity.Document, error) {
	return r.get(ctx, `SELECT `+documentColumns+` FROM documents WHERE id = $1`, id)
}

func (r *DocumentRepo) GetForUpdate(ctx context.Context, id string) (*entity.Document, error) {
	return r.get(ctx, `SELECT `+documentColumns+` FROM documents WHERE id = $1 FOR UPDATE`, id)
}

func (r *DocumentRepo) get(ctx context.Context, query, id string) (*entity.Document, error) {
	var (
		d                        entity.Document
		fiscalNumber, fiscalType *string
	)
	err := r.q.QueryRow(ctx, query, id).Scan(
		&d.ID, &d.Kind, &d.Number, &d.CounterpartyID, &d.Date, &fiscalNumber, &fiscalType,
		&d.Subtotal, &d.Tax, &d.Discount, &d.Total, &d.State, &d.PaymentTermDays, &d.Notes,
		&d.CreatedBy, &d.VoidReason, &d.VoidedAt, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get document: %w", err)
	}
	d.FiscalNumber = fromNullString(fiscalNumber)
	d.FiscalType = fromNullString(fiscalType)

	lines, err := r.lines(ctx, d.ID)
	if err != nil {
		return nil, err
	}
	d.Lines = lines
	return &d, nil
}

func (r *DocumentRepo) lines(ctx context.Context, documentID string) ([]entity.DocumentLine, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, document_id, product_id, unit_id, quantity, unit_price, discount, tax_rate, subtotal, tax, total
		FROM document_lines WHERE document_id = $1 ORDER BY position`, documentID)
	if err != nil {
		return nil, fmt.Errorf("list document lines: %w", err)
	}
	defer rows.Close()
	var out []entity.DocumentLine
	for rows.Next() {
		var l entity.DocumentLine
		if err := rows.Scan(&l.ID, &l.DocumentID, &l.ProductID, &l.UnitID, &l.Quantity, &l.UnitPrice,
			&l.Discount, &l.TaxRate, &l.Subtotal, &l.Tax, &l.Total); err != nil {
			return nil, fmt.Errorf("scan document line: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *DocumentRepo) UpdateState(ctx context.Context, d *entity.Document) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE documents SET state = $2, void_reason = $3, voided_at = $4, updated_at = $5 WHERE id = $1`,
		d.ID, d.State, d.VoidReason, d.VoidedAt, d.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update document state: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("documento")
	}
	return nil
}

// LastSupplierFiscalNumber mayor NCF aceptado del proveedor con el prefijo (mismo largo: orden textual = numérico).
func (r *DocumentRepo) LastSupplierFiscalNumber(ctx context.Context, supplierID, prefix string) (string, error) {
	var last *string
	err := r.q.QueryRow(ctx, `
		SELECT MAX(fiscal_number) FROM documents
		WHERE kind = 'PURCHASE' AND counterparty_id = $1 AND fiscal_number LIKE $2 || '%'`,
		supplierID, prefix,
	).Scan(&last)
	if err != nil {
		return "", fmt.Errorf("last supplier fiscal number: %w", err)
	}
	return fromNullString(last), nil
}

func (r *DocumentRepo) ExistsSupplierFiscalNumber(ctx context.Context, supplierID, fiscalNumber string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM documents WHERE kind = 'PURCHASE' AND counterparty_id = $1 AND fiscal_number = $2)`,
		supplierID, fiscalNumber,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists supplier fiscal number: %w", err)
	}
	return exists, nil
}

// NextNumber consecutivo diario del tipo (SALE o PURCHASE).
func (r *DocumentRepo) NextNumber(ctx context.Context, kind string, day time.Time) (int, error) {
	return nextDailyNumber(ctx, r.q, kind, day)
}
