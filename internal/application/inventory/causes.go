package inventory

import (
	"context"

	"github.com/jhoicas/comercial-api/internal/domain/entity"
	"github.com/jhoicas/comercial-api/internal/domain/repository"
)

// causeResolver devuelve el número legible de la causa ("" si ya no existe).
type causeResolver func(ctx context.Context, repos repository.Repos, id string) (string, error)

// causeResolvers tabla de búsqueda por tipo de causa.
var causeResolvers = map[string]causeResolver{
	entity.CauseSale:       documentNumber,
	entity.CausePurchase:   documentNumber,
	entity.CauseAdjustment: adjustmentNumber,
	entity.CauseInitial: func(context.Context, repository.Repos, string) (string, error) {
		return "INICIAL", nil
	},
}

func documentNumber(ctx context.Context, repos repository.Repos, id string) (string, error) {
	d, err := repos.Documents.GetByID(ctx, id)
	if err != nil || d == nil {
		return "", err
	}
	if d.FiscalNumber != "" {
		return d.Number + " / " + d.FiscalNumber, nil
	}
	return d.Number, nil
}

func adjustmentNumber(ctx context.Context, repos repository.Repos, id string) (string, error) {
	a, err := repos.Adjustments.GetByID(ctx, id)
	if err != nil || a == nil {
		return "", err
	}
	return a.Number, nil
}

func describeCause(ctx context.Context, repos repository.Repos, cause entity.CauseRef) (string, error) {
	resolve, ok := causeResolvers[cause.Kind]
	if !ok {
		return "", nil
	}
	return resolve(ctx, repos, cause.ID)
}
