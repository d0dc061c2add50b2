package documents

import (
	"context"

	"github.com/jhoicas/comercial-api/internal/application/dto"
	"github.com/jhoicas/comercial-api/internal/domain"
	"github.com/jhoicas/comercial-api/internal/domain/entity"
)

// Get devuelve el documento con su contraparte y cuenta (vencimiento evaluado al leer).
func (s *Service) Get(ctx context.Context, documentID string) (*dto.DocumentResponse, error) {
	doc, counterparty, err := s.load(ctx, documentID)
	if err != nil {
		return nil, err
	}
	acc, err := s.reads.Accounts.GetByDocument(ctx, doc.ID)
	if err != nil {
		return nil, err
	}
	if acc != nil {
		acc.Refresh(s.clock.Now())
	}
	return dto.FromDocument(doc, counterparty, acc), nil
}

func (s *Service) load(ctx context.Context, documentID string) (*entity.Document, *entity.Counterparty, error) {
	doc, err := s.reads.Documents.GetByID(ctx, documentID)
	if err != nil {
		return nil, nil, err
	}
	if doc == nil {
		return nil, nil, domain.NotFound("documento")
	}
	counterparty, err := s.reads.Counterparties.GetByID(ctx, doc.CounterpartyID)
	if err != nil {
		return nil, nil, err
	}
	return doc, counterparty, nil
}
