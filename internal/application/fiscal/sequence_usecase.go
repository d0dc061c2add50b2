package fiscal

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/comercial-api/internal/application/dto"
	"github.com/jhoicas/comercial-api/internal/clock"
	"github.com/jhoicas/comercial-api/internal/domain"
	"github.com/jhoicas/comercial-api/internal/domain/entity"
	"github.com/jhoicas/comercial-api/internal/domain/ncf"
	"github.com/jhoicas/comercial-api/internal/domain/repository"
	"github.com/jhoicas/comercial-api/pkg/dgii"
)

// maxSequence mayor número representable en 8 dígitos.
const maxSequence = 99999999

// SequenceUseCase administra las secuencias NCF autorizadas.
type SequenceUseCase struct {
	tx    repository.TxRunner
	repo  repository.FiscalSequenceRepository
	clock clock.Clock
}

// NewSequenceUseCase construye el caso de uso. repo se usa para lecturas fuera de transacción.
func NewSequenceUseCase(tx repository.TxRunner, repo repository.FiscalSequenceRepository, clk clock.Clock) *SequenceUseCase {
	return &SequenceUseCase{tx: tx, repo: repo, clock: clk}
}

// Create registra una secuencia activa. Solo puede haber una activa por tipo.
func (uc *SequenceUseCase) Create(ctx context.Context, actor entity.ActorContext, in dto.CreateSequenceRequest) (*dto.SequenceResponse, error) {
	if in.Series == "" {
		in.Series = dgii.SeriesPrinted
	}
	prefix := dgii.Prefix(in.Series, in.DocumentType)
	if err := ncf.ValidPrefix(prefix, in.DocumentType); err != nil {
		return nil, err
	}
	if in.RangeStart < 1 || in.RangeEnd <= in.RangeStart || in.RangeEnd > maxSequence+1 {
		return nil, domain.Validation("rango inválido: %d-%d", in.RangeStart, in.RangeEnd)
	}
	now := uc.clock.Now()
	if !in.Expiry.After(now) {
		return nil, domain.Validation("la fecha de vencimiento debe ser futura")
	}

	seq := &entity.FiscalSequence{
		ID:           uuid.New().String(),
		DocumentType: in.DocumentType,
		Prefix:       prefix,
		Counter:      in.RangeStart,
		RangeStart:   in.RangeStart,
		RangeEnd:     in.RangeEnd,
		Expiry:       in.Expiry,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	err := uc.tx.Run(ctx, func(repos repository.Repos) error {
		current, err := repos.Sequences.GetActiveForUpdate(ctx, in.DocumentType)
		if err != nil {
			return fmt.Errorf("consultar secuencia activa: %w", err)
		}
		if current != nil {
			return domain.ErrSequenceExists
		}
		if err := repos.Sequences.Create(ctx, seq); err != nil {
			return err
		}
		return repos.Audit.Append(ctx, entity.NewAuditEntry(uuid.New().String(), actor,
			entity.AuditEntitySequence, seq.ID, entity.AuditCreated, nil, dto.FromSequence(seq), now))
	})
	if err != nil {
		return nil, err
	}
	resp := dto.FromSequence(seq)
	return &resp, nil
}

// List devuelve todas las secuencias.
func (uc *SequenceUseCase) List(ctx context.Context) ([]dto.SequenceResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SequenceResponse, 0, len(list))
	for _, s := range list {
		out = append(out, dto.FromSequence(s))
	}
	return out, nil
}

// Deactivate desactiva una secuencia; los números ya emitidos no cambian.
func (uc *SequenceUseCase) Deactivate(ctx context.Context, actor entity.ActorContext, id string) (*dto.SequenceResponse, error) {
	var seq *entity.FiscalSequence
	err := uc.tx.Run(ctx, func(repos repository.Repos) error {
		s, err := repos.Sequences.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if s == nil {
			return domain.NotFound("secuencia")
		}
		if !s.Active {
			return domain.ErrInvalidTransition
		}
		before := dto.FromSequence(s)
		s.Active = false
		s.UpdatedAt = uc.clock.Now()
		if err := repos.Sequences.Update(ctx, s); err != nil {
			return err
		}
		seq = s
		return repos.Audit.Append(ctx, entity.NewAuditEntry(uuid.New().String(), actor,
			entity.AuditEntitySequence, s.ID, entity.AuditVoided, before, dto.FromSequence(s), s.UpdatedAt))
	})
	if err != nil {
		return nil, err
	}
	resp := dto.FromSequence(seq)
	return &resp, nil
}

// ValidateNumber valida formato, tipo esperado y secuencia frente al último número conocido.
func ValidateNumber(in dto.ValidateFiscalNumberRequest) dto.ValidateFiscalNumberResponse {
	number := ncf.Normalize(in.Number)
	resp := dto.ValidateFiscalNumberResponse{Number: number}
	docType, err := ncf.ValidateFormat(number)
	if err == nil && in.DocumentType != "" && docType != in.DocumentType {
		err = domain.ErrFiscalTypeMismatch
	}
	if err == nil && in.Last != "" {
		err = ncf.ValidateSequence(number, ncf.Normalize(in.Last))
	}
	if err != nil {
		resp.Code = domain.Code(err)
		resp.Message = err.Error()
		return resp
	}
	resp.Valid = true
	resp.DocumentType = docType
	return resp
}
