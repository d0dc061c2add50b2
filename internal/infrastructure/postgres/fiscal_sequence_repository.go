package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/comercial-api/internal/domain"
	"github.com/jhoicas/comercial-api/internal/domain/entity"
	"github.com/jhoicas/comercial-api/internal/domain/repository"
)

var _ repository.FiscalSequenceRepository = (*FiscalSequenceRepo)(nil)

const sequenceColumns = `id, document_type, prefix, counter, range_start, range_end, expiry, active, created_at, updated_at`

// FiscalSequenceRepo secuencias NCF.
type FiscalSequenceRepo struct {
	q Querier
}

// NewFiscalSequenceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewFiscalSequenceRepository(q Querier) *FiscalSequenceRepo {
	return &FiscalSequenceRepo{q: q}
}

// Create inserta la secuencia; (tipo, prefijo) repetido o una segunda activa devuelven ErrSequenceExists.
func (r *FiscalSequenceRepo) Create(ctx context.Context, s *entity.FiscalSequence) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO fiscal_sequences (`+sequenceColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		s.ID, s.DocumentType, s.Prefix, s.Counter, s.RangeStart, s.RangeEnd, s.Expiry, s.Active, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrSequenceExists
		}
		return fmt.Errorf("insert fiscal sequence: %w", err)
	}
	return nil
}

func (r *FiscalSequenceRepo) GetByID(ctx context.Context, id string) (*entity.FiscalSequence, error) {
	return r.get(ctx, `SELECT `+sequenceColumns+` FROM fiscal_sequences WHERE id = $1`, id)
}

// GetActiveForUpdate bloquea la secuencia activa del tipo. Dos emisiones concurrentes
// esperan aquí y leen el contador ya incrementado por la anterior.
func (r *FiscalSequenceRepo) GetActiveForUpdate(ctx context.Context, documentType string) (*entity.FiscalSequence, error) {
	return r.get(ctx, `SELECT `+sequenceColumns+` FROM fiscal_sequences WHERE document_type = $1 AND active FOR UPDATE`, documentType)
}

func (r *FiscalSequenceRepo) GetActive(ctx context.Context, documentType string) (*entity.FiscalSequence, error) {
	return r.get(ctx, `SELECT `+sequenceColumns+` FROM fiscal_sequences WHERE document_type = $1 AND active`, documentType)
}

func (r *FiscalSequenceRepo) Update(ctx context.Context, s *entity.FiscalSequence) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE fiscal_sequences SET counter = $2, active = $3, updated_at = $4 WHERE id = $1`,
		s.ID, s.Counter, s.Active, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update fiscal sequence: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("secuencia")
	}
	return nil
}

func (r *FiscalSequenceRepo) List(ctx context.Context) ([]*entity.FiscalSequence, error) {
	rows, err := r.q.Query(ctx, `SELECT `+sequenceColumns+` FROM fiscal_sequences ORDER BY document_type, prefix`)
	if err != nil {
		return nil, fmt.Errorf("list fiscal sequences: %w", err)
	}
	defer rows.Close()
	var out []*entity.FiscalSequence
	for rows.Next() {
		s, err := scanSequence(rows)
		if err != nil {
			return nil, fmt.Errorf("scan fiscal sequence: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *FiscalSequenceRepo) get(ctx context.Context, query, arg string) (*entity.FiscalSequence, error) {
	s, err := scanSequence(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get fiscal sequence: %w", err)
	}
	return s, nil
}

func scanSequence(row pgx.Row) (*entity.FiscalSequence, error) {
	var s entity.FiscalSequence
	err := row.Scan(&s.ID, &s.DocumentType, &s.Prefix, &s.Counter, &s.RangeStart, &s.RangeEnd,
		&s.Expiry, &s.Active, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
