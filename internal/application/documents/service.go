// Package documents crea y anula ventas y compras. Cada operación es una sola
// transacción que abarca movimientos de inventario, NCF, cuenta y auditoría.
package documents

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/comercial-api/internal/application/accounts"
	"github.com/jhoicas/comercial-api/internal/application/dto"
	"github.com/jhoicas/comercial-api/internal/application/fiscal"
	"github.com/jhoicas/comercial-api/internal/application/inventory"
	"github.com/jhoicas/comercial-api/internal/application/ports"
	"github.com/jhoicas/comercial-api/internal/clock"
	"github.com/jhoicas/comercial-api/internal/domain"
	"github.com/jhoicas/comercial-api/internal/domain/entity"
	"github.com/jhoicas/comercial-api/internal/domain/repository"
	"github.com/jhoicas/comercial-api/pkg/logger"
)

// Service agregado de documentos comerciales.
type Service struct {
	tx        repository.TxRunner
	reads     repository.Repos
	ledger    *inventory.Ledger
	allocator *fiscal.Allocator
	accounts  *accounts.Engine
	pdf       ReceiptPDFGenerator
	clock     clock.Clock
	metrics   ports.MetricsRecorder
	log       *logger.Logger
}

// Deps dependencias del servicio.
type Deps struct {
	Tx        repository.TxRunner
	Reads     repository.Repos
	Ledger    *inventory.Ledger
	Allocator *fiscal.Allocator
	Accounts  *accounts.Engine
	PDF       ReceiptPDFGenerator
	Clock     clock.Clock
	Metrics   ports.MetricsRecorder
	Log       *logger.Logger
}

// NewService construye el servicio de documentos.
func NewService(d Deps) *Service {
	return &Service{
		tx:        d.Tx,
		reads:     d.Reads,
		ledger:    d.Ledger,
		allocator: d.Allocator,
		accounts:  d.Accounts,
		pdf:       d.PDF,
		clock:     d.Clock,
		metrics:   d.Metrics,
		log:       d.Log.WithComponent("documents"),
	}
}

// resolvedLine línea validada con su producto (leído fuera de la transacción).
type resolvedLine struct {
	line    entity.DocumentLine
	product *entity.Product
}

// buildLines valida las líneas y resuelve productos y tasas de ITBIS.
func (s *Service) buildLines(ctx context.Context, in []dto.DocumentLineRequest) ([]resolvedLine, error) {
	if len(in) == 0 {
		return nil, domain.Validation("el documento debe tener al menos una línea")
	}
	out := make([]resolvedLine, 0, len(in))
	for i, l := range in {
		product, err := s.reads.Products.GetByID(ctx, l.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.NotFound("producto")
		}
		if !product.Active {
			return nil, domain.Validation("línea %d: el producto %s está inactivo", i+1, product.SKU)
		}
		line := entity.DocumentLine{
			ID:        uuid.New().String(),
			ProductID: product.ID,
			UnitID:    l.UnitID,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			Discount:  l.Discount,
			TaxRate:   product.TaxRate(),
		}
		if err := line.Validate(); err != nil {
			return nil, domain.Validation("línea %d: %s", i+1, errMessage(err))
		}
		out = append(out, resolvedLine{line: line, product: product})
	}
	return out, nil
}

// resolveCounterparty valida existencia y tipo de la contraparte.
func (s *Service) resolveCounterparty(ctx context.Context, id, kind string) (*entity.Counterparty, error) {
	c, err := s.reads.Counterparties.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil || c.Kind != kind {
		if kind == entity.CounterpartySupplier {
			return nil, domain.NotFound("proveedor")
		}
		return nil, domain.NotFound("cliente")
	}
	return c, nil
}

// paymentTerm plazo explícito o, si no viene, el de la contraparte.
func paymentTerm(requested *int, c *entity.Counterparty) (int, error) {
	if requested == nil {
		return c.PaymentTermDays, nil
	}
	if *requested < 0 {
		return 0, domain.Validation("el plazo de pago no puede ser negativo")
	}
	return *requested, nil
}

func newDocument(kind string, c *entity.Counterparty, lines []resolvedLine, term int, notes string, actor entity.ActorContext, now time.Time) *entity.Document {
	doc := &entity.Document{
		ID:              uuid.New().String(),
		Kind:            kind,
		CounterpartyID:  c.ID,
		Date:            now,
		State:           entity.DocumentPending,
		PaymentTermDays: term,
		Notes:           strings.TrimSpace(notes),
		CreatedBy:       actor.UserID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	doc.Lines = make([]entity.DocumentLine, 0, len(lines))
	for _, rl := range lines {
		l := rl.line
		l.DocumentID = doc.ID
		doc.Lines = append(doc.Lines, l)
	}
	return doc
}

// assignNumber asigna el número interno consecutivo del día. El contador queda
// bloqueado hasta el fin de la transacción.
func assignNumber(ctx context.Context, repos repository.Repos, doc *entity.Document) error {
	n, err := repos.Documents.NextNumber(ctx, doc.Kind, doc.Date)
	if err != nil {
		return err
	}
	doc.Number = entity.DocumentNumber(doc.Kind, doc.Date, n)
	return nil
}

func errMessage(err error) string {
	var e *domain.Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

func (s *Service) recordMetrics(movs []*entity.InventoryMovement) {
	for _, m := range movs {
		s.metrics.MovementRecorded(m.Kind)
	}
}
