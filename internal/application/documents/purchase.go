package documents

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/comercial-api/internal/application/dto"
	"github.com/jhoicas/comercial-api/internal/application/inventory"
	"github.com/jhoicas/comercial-api/internal/domain"
	"github.com/jhoicas/comercial-api/internal/domain/entity"
	domaininv "github.com/jhoicas/comercial-api/internal/domain/inventory"
	"github.com/jhoicas/comercial-api/internal/domain/ncf"
	"github.com/jhoicas/comercial-api/internal/domain/repository"
)

// CreatePurchase registra una compra: valida el NCF del proveedor (si viene),
// entrada de inventario por línea con costo promedio ponderado y cuenta por pagar
// si es a crédito.
func (s *Service) CreatePurchase(ctx context.Context, actor entity.ActorContext, in dto.CreatePurchaseRequest) (*dto.DocumentResponse, error) {
	supplier, err := s.resolveCounterparty(ctx, in.SupplierID, entity.CounterpartySupplier)
	if err != nil {
		return nil, err
	}
	term, err := paymentTerm(in.PaymentTermDays, supplier)
	if err != nil {
		return nil, err
	}
	var supplierNCF, fiscalType string
	if in.SupplierNCF != "" {
		supplierNCF = ncf.Normalize(in.SupplierNCF)
		if fiscalType, err = ncf.ValidateFormat(supplierNCF); err != nil {
			return nil, err
		}
	}
	lines, err := s.buildLines(ctx, in.Lines)
	if err != nil {
		return nil, err
	}

	var (
		doc  *entity.Document
		acc  *entity.Account
		movs []*entity.InventoryMovement
	)
	err = s.tx.Run(ctx, func(repos repository.Repos) error {
		// El bloqueo del proveedor serializa la validación de sus NCF.
		if _, err := repos.Counterparties.GetForUpdate(ctx, supplier.ID); err != nil {
			return err
		}
		if supplierNCF != "" {
			if err := checkSupplierNCF(ctx, repos, supplier.ID, supplierNCF); err != nil {
				return err
			}
		}

		now := s.clock.Now()
		doc = newDocument(entity.DocumentPurchase, supplier, lines, term, in.Notes, actor, now)
		doc.FiscalNumber = supplierNCF
		doc.FiscalType = fiscalType

		movs = make([]*entity.InventoryMovement, 0, len(doc.Lines))
		for _, l := range doc.Lines {
			m, err := s.receiveLine(ctx, repos, actor, doc, l)
			if err != nil {
				return err
			}
			movs = append(movs, m)
		}

		doc.RecomputeTotals()
		if err := assignNumber(ctx, repos, doc); err != nil {
			return err
		}
		if err := doc.Complete(now); err != nil {
			return err
		}
		if err := repos.Documents.Create(ctx, doc); err != nil {
			return fmt.Errorf("guardar compra: %w", err)
		}
		acc, err = s.accounts.OpenIfCreditInTx(ctx, repos, doc)
		if err != nil {
			return err
		}
		return repos.Audit.Append(ctx, entity.NewAuditEntry(uuid.New().String(), actor,
			entity.AuditEntityDocument, doc.ID, entity.AuditCreated, nil, dto.FromDocument(doc, supplier, acc), now))
	})
	if err != nil {
		s.log.Warn().Str("supplier_id", supplier.ID).Str("code", domain.Code(err)).Err(err).Msg("compra rechazada")
		return nil, err
	}

	s.metrics.DocumentCreated(doc.Kind)
	s.recordMetrics(movs)
	s.log.Info().
		Str("document_id", doc.ID).
		Str("number", doc.Number).
		Str("supplier_ncf", doc.FiscalNumber).
		Str("total", doc.Total.String()).
		Msg("compra registrada")
	return dto.FromDocument(doc, supplier, acc), nil
}

// checkSupplierNCF NCF único por proveedor y estrictamente creciente dentro del prefijo.
func checkSupplierNCF(ctx context.Context, repos repository.Repos, supplierID, number string) error {
	exists, err := repos.Documents.ExistsSupplierFiscalNumber(ctx, supplierID, number)
	if err != nil {
		return err
	}
	if exists {
		return domain.ErrDuplicateFiscalNumber
	}
	last, err := repos.Documents.LastSupplierFiscalNumber(ctx, supplierID, ncf.Prefix(number))
	if err != nil {
		return err
	}
	return ncf.ValidateSequence(number, last)
}

// receiveLine registra la entrada y recalcula el costo promedio del producto.
func (s *Service) receiveLine(ctx context.Context, repos repository.Repos, actor entity.ActorContext, doc *entity.Document, l entity.DocumentLine) (*entity.InventoryMovement, error) {
	product, err := repos.Products.GetForUpdate(ctx, l.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.NotFound("producto")
	}
	m, err := s.ledger.RecordInTx(ctx, repos, actor, inventory.MovementInput{
		ProductID: l.ProductID,
		Kind:      entity.MovementEntry,
		Quantity:  l.Quantity,
		Cause:     entity.CauseRef{Kind: entity.CausePurchase, ID: doc.ID},
		UnitCost:  l.UnitPrice,
	})
	if err != nil {
		return nil, err
	}

	newCost := domaininv.CostCalculator(m.StockBefore, product.Cost, l.Quantity, l.UnitPrice)
	if newCost.Equal(product.Cost) {
		return m, nil
	}
	now := s.clock.Now()
	if err := repos.Products.UpdateCost(ctx, product.ID, newCost, now); err != nil {
		return nil, err
	}
	err = repos.CostHistory.Create(ctx, &entity.CostHistory{
		ID:           uuid.New().String(),
		ProductID:    product.ID,
		PreviousCost: product.Cost,
		NewCost:      newCost,
		DocumentID:   doc.ID,
		CreatedBy:    actor.UserID,
		CreatedAt:    now,
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}
