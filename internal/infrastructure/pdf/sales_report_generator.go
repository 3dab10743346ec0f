// Package pdf genera el reporte de ventas por producto en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre de la app      │  Período + fecha emisión   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: # | Producto | Cantidad | Ingreso                   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Unidades / Ingreso total                          │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

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

	"github.com/jhoicas/storetrack-api/internal/application/dto"
	"github.com/jhoicas/storetrack-api/internal/application/ports"
)

var _ ports.SalesReportPDFGenerator = (*MarotoPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa ports.SalesReportPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	appName string
	printer *message.Printer
}

// NewMarotoPDFGenerator construye el generador. Los montos se formatean con separadores en español.
func NewMarotoPDFGenerator(appName string) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{appName: appName, printer: message.NewPrinter(language.Spanish)}
}

// GenerateSalesByProductPDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateSalesByProductPDF(
	_ context.Context,
	rows []dto.SalesByProductDTO,
	from, to *time.Time,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Ventas por producto", true).
		WithAuthor(g.appName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(from, to))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	if len(rows) == 0 {
		m.AddRows(row.New(10).Add(col.New(12).Add(
			text.New("Sin ventas en el período.", props.Text{Size: 9, Align: align.Center, Color: colorGray, Top: 3}),
		)))
	}
	for i, r := range rows {
		m.AddRows(g.tableDetailRow(i+1, r))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(g.totalsRow(rows))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func (g *MarotoPDFGenerator) headerRow(from, to *time.Time) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(g.appName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Reporte de ventas por producto", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Período: "+periodLabel(from, to), props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 3,
			}),
			text.New("Emitido: "+time.Now().Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 10, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("#", 1, align.Center),
		h("Producto", 6, align.Left),
		h("Cantidad", 2, align.Right),
		h("Ingreso", 3, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func (g *MarotoPDFGenerator) tableDetailRow(n int, r dto.SalesByProductDTO) core.Row {
	return row.New(7).Add(
		col.New(1).Add(text.New(fmt.Sprint(n), props.Text{Size: 8, Align: align.Center, Top: 1})),
		col.New(6).Add(text.New(r.ProductName, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
		col.New(2).Add(text.New(g.printer.Sprintf("%d", r.TotalQuantity), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		col.New(3).Add(text.New(g.money(r.TotalRevenue), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
	)
}

func (g *MarotoPDFGenerator) totalsRow(rows []dto.SalesByProductDTO) core.Row {
	units, revenue := 0, decimal.Zero
	for _, r := range rows {
		units += r.TotalQuantity
		revenue = revenue.Add(r.TotalRevenue)
	}
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1})
	}
	return row.New(16).Add(
		col.New(6),
		col.New(3).Add(label("Unidades:"), label("Ingreso total:")),
		col.New(3).Add(value(g.printer.Sprintf("%d", units)), value(g.money(revenue))),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

// money formatea con separador de miles y dos decimales, p. ej. "$12.345,50".
func (g *MarotoPDFGenerator) money(d decimal.Decimal) string {
	return "$" + g.printer.Sprintf("%.2f", d.Round(2).InexactFloat64())
}

func periodLabel(from, to *time.Time) string {
	const layout = "02/01/2006"
	switch {
	case from == nil && to == nil:
		return "histórico"
	case from == nil:
		return "hasta " + to.Format(layout)
	case to == nil:
		return "desde " + from.Format(layout)
	}
	return from.Format(layout) + " – " + to.Format(layout)
}
