package documents

import (
	"context"
	"fmt"

	"github.com/jhoicas/comercial-api/internal/domain"
	"github.com/jhoicas/comercial-api/internal/domain/entity"
)

// ReceiptLine línea enriquecida con el nombre del producto para el PDF.
type ReceiptLine struct {
	entity.DocumentLine
	ProductName string
}

// ReceiptPDFGenerator puerto de salida para la representación impresa del documento.
type ReceiptPDFGenerator interface {
	GenerateReceiptPDF(ctx context.Context, doc *entity.Document, counterparty *entity.Counterparty, lines []ReceiptLine) ([]byte, error)
}

// ReceiptPDF genera el comprobante impreso de una venta.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - NOT_FOUND                  si el documento no existe.
//   - VALIDATION                 si el documento es una compra.
func (s *Service) ReceiptPDF(ctx context.Context, documentID string) ([]byte, string, error) {
	doc, counterparty, err := s.load(ctx, documentID)
	if err != nil {
		return nil, "", err
	}
	if doc.Kind != entity.DocumentSale {
		return nil, "", domain.Validation("solo las ventas tienen comprobante impreso")
	}
	if counterparty == nil {
		return nil, "", fmt.Errorf("pdf: cliente %s no encontrado", doc.CounterpartyID)
	}

	lines := make([]ReceiptLine, 0, len(doc.Lines))
	for _, l := range doc.Lines {
		name := "Producto " + l.ProductID
		if p, err := s.reads.Products.GetByID(ctx, l.ProductID); err == nil && p != nil {
			name = p.Name
		}
		lines = append(lines, ReceiptLine{DocumentLine: l, ProductName: name})
	}

	b, err := s.pdf.GenerateReceiptPDF(ctx, doc, counterparty, lines)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	return b, fmt.Sprintf("comprobante_%s.pdf", doc.FiscalNumber), nil
}
