// Package pdf genera la representación impresa de los comprobantes fiscales (NCF).
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Emisor + RNC          │  Tipo de comprobante + NCF  │
//	│  CLIENTE: Nombre + RNC/Cédula                               │
//	│  TABLA: Cant | Descripción | P.Unit | ITBIS | Total          │
//	│  TOTALES: Subtotal / Descuento / ITBIS / TOTAL               │
//	│  FOOTER: condición de pago + documento interno               │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/comercial-api/internal/application/documents"
	"github.com/jhoicas/comercial-api/internal/domain/entity"
	"github.com/jhoicas/comercial-api/pkg/dgii"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorRed     = &props.Color{Red: 180, Green: 20, Blue: 20}
)

// Issuer datos del contribuyente emisor.
type Issuer struct {
	Name    string
	TaxID   string
	Address string
	Phone   string
}

// ── Generator ─────────────────────────────────────────────────────────────────

var _ documents.ReceiptPDFGenerator = (*MarotoReceiptGenerator)(nil)

// MarotoReceiptGenerator implementa documents.ReceiptPDFGenerator usando Maroto v2.
type MarotoReceiptGenerator struct {
	issuer  Issuer
	printer *message.Printer
}

// NewMarotoReceiptGenerator construye el generador.
func NewMarotoReceiptGenerator(issuer Issuer) *MarotoReceiptGenerator {
	return &MarotoReceiptGenerator{
		issuer:  issuer,
		printer: message.NewPrinter(language.AmericanEnglish),
	}
}

// GenerateReceiptPDF genera el PDF y devuelve sus bytes.
func (g *MarotoReceiptGenerator) GenerateReceiptPDF(
	_ context.Context,
	doc *entity.Document,
	customer *entity.Counterparty,
	lines []documents.ReceiptLine,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Comprobante "+doc.FiscalNumber, true).
		WithAuthor(g.issuer.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(doc))
	if doc.State == entity.DocumentVoid {
		m.AddRows(voidRow(doc))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(customerRow(customer))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(g.tableDetailRows(lines)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(g.totalsRow(doc))

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(doc))

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return out.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func (g *MarotoReceiptGenerator) headerRow(doc *entity.Document) core.Row {
	title := dgii.DocumentTypeNames[doc.FiscalType]
	if title == "" {
		title = "COMPROBANTE"
	}
	return row.New(20).Add(
		col.New(7).Add(
			text.New(g.issuer.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("RNC: "+nonEmpty(g.issuer.TaxID, "-"), props.Text{
				Size: 9, Top: 8, Color: colorGray,
			}),
			text.New(fmt.Sprintf("%s   Tel: %s", nonEmpty(g.issuer.Address, "-"), nonEmpty(g.issuer.Phone, "-")), props.Text{
				Size: 8, Top: 13, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New("NCF: "+doc.FiscalNumber, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+doc.Date.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func voidRow(doc *entity.Document) core.Row {
	return row.New(10).Add(col.New(12).Add(
		text.New("ANULADO: "+doc.VoidReason, props.Text{
			Style: fontstyle.Bold, Size: 11, Align: align.Center, Color: colorRed, Top: 2,
		}),
	))
}

func customerRow(c *entity.Counterparty) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(c.Name, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("RNC/Cédula: %s   |   Tel: %s",
				nonEmpty(c.TaxID, "-"),
				nonEmpty(c.Phone, "-"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 1, align.Center),
		h("Descripción", 5, align.Left),
		h("Precio", 2, align.Right),
		h("ITBIS", 2, align.Right),
		h("Total", 2, align.Right),
	)
}

func (g *MarotoReceiptGenerator) tableDetailRows(lines []documents.ReceiptLine) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(l.Quantity.String(), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(5).Add(text.New(l.ProductName, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(2).Add(text.New(g.money(l.UnitPrice), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(g.money(l.Tax), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(g.money(l.Total), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

func (g *MarotoReceiptGenerator) totalsRow(doc *entity.Document) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	grand := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1})
	}

	return row.New(30).Add(
		col.New(6),
		col.New(3).Add(
			label("Subtotal:"),
			label("Descuento:"),
			label("ITBIS:"),
			label("TOTAL:"),
		),
		col.New(3).Add(
			value(g.money(doc.Subtotal)),
			value(g.money(doc.Discount)),
			value(g.money(doc.Tax)),
			grand(g.money(doc.Total)),
		),
	)
}

func footerRow(doc *entity.Document) core.Row {
	condition := "Contado"
	if doc.PaymentCondition() == entity.ConditionCredit {
		condition = fmt.Sprintf("Crédito a %d días (vence %s)", doc.PaymentTermDays, doc.DueDate().Format("02/01/2006"))
	}
	return row.New(10).Add(col.New(12).Add(
		text.New(fmt.Sprintf("Condición: %s   |   Documento interno: %s", condition, doc.Number), props.Text{
			Size: 8, Color: colorGray, Top: 2,
		}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// money formatea montos en pesos dominicanos: RD$1,234.50.
func (g *MarotoReceiptGenerator) money(d decimal.Decimal) string {
	return g.printer.Sprintf("RD$%.2f", d.Round(2).InexactFloat64())
}
