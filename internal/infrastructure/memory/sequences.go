package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/comercial-api/internal/domain"
	"github.com/jhoicas/comercial-api/internal/domain/entity"
	"github.com/jhoicas/comercial-api/internal/domain/repository"
)

var _ repository.FiscalSequenceRepository = (*sequenceRepo)(nil)

type sequenceRepo struct {
	st func() *state
}

func (r *sequenceRepo) Create(_ context.Context, seq *entity.FiscalSequence) error {
	s := r.st()
	for _, other := range s.sequences {
		if other.DocumentType == seq.DocumentType && other.Prefix == seq.Prefix {
			return domain.ErrSequenceExists
		}
	}
	s.sequences[seq.ID] = copySequence(seq)
	return nil
}

func (r *sequenceRepo) GetByID(_ context.Context, id string) (*entity.FiscalSequence, error) {
	seq, ok := r.st().sequences[id]
	if !ok {
		return nil, nil
	}
	return copySequence(seq), nil
}

func (r *sequenceRepo) GetActive(_ context.Context, documentType string) (*entity.FiscalSequence, error) {
	for _, seq := range r.st().sequences {
		if seq.DocumentType == documentType && seq.Active {
			return copySequence(seq), nil
		}
	}
	return nil, nil
}

func (r *sequenceRepo) GetActiveForUpdate(ctx context.Context, documentType string) (*entity.FiscalSequence, error) {
	return r.GetActive(ctx, documentType)
}

func (r *sequenceRepo) Update(_ context.Context, seq *entity.FiscalSequence) error {
	s := r.st()
	if _, ok := s.sequences[seq.ID]; !ok {
		return domain.NotFound("secuencia")
	}
	s.sequences[seq.ID] = copySequence(seq)
	return nil
}

func (r *sequenceRepo) List(_ context.Context) ([]*entity.FiscalSequence, error) {
	s := r.st()
	out := make([]*entity.FiscalSequence, 0, len(s.sequences))
	for _, seq := range s.sequences {
		out = append(out, copySequence(seq))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DocumentType != out[j].DocumentType {
			return out[i].DocumentType < out[j].DocumentType
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}
