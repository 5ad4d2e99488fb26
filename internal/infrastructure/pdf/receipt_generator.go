// Package pdf genera el comprobante de devolución de un alquiler.
//
// Layout de la página A5:
//
//	┌───────────────────────────────────────────────┐
//	│  HEADER: Nombre del videoclub │ N° + Fecha    │
//	│  ───────────────────────────────────────────  │
//	│  CLIENTE / PELÍCULA / ATENDIÓ                 │
//	│  ───────────────────────────────────────────  │
//	│  FECHAS: Alquiler | Vencimiento | Devolución  │
//	│  ───────────────────────────────────────────  │
//	│  TOTALES: Alquiler / Recargo / TOTAL PAGADO   │
//	│  FOOTER: QR con el ID del alquiler            │
//	└───────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
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

	"github.com/jhoicas/videoclub-api/internal/application/rental"
)

const dateLayout = "02/01/2006"

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 120, Green: 20, Blue: 40}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ rental.ReceiptGenerator = (*MarotoReceiptGenerator)(nil)

// MarotoReceiptGenerator implementa rental.ReceiptGenerator usando Maroto v2.
type MarotoReceiptGenerator struct{}

// NewMarotoReceiptGenerator construye el generador.
func NewMarotoReceiptGenerator() *MarotoReceiptGenerator { return &MarotoReceiptGenerator{} }

// GenerateReturnReceipt genera el PDF del comprobante y devuelve sus bytes.
func (g *MarotoReceiptGenerator) GenerateReturnReceipt(_ context.Context, data rental.ReturnReceiptData) ([]byte, error) {
	if data.Rental == nil || data.Return == nil {
		return nil, fmt.Errorf("pdf: comprobante sin alquiler o devolución")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A5).
		WithLeftMargin(8).WithRightMargin(8).
		WithTopMargin(8).WithBottomMargin(8).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Comprobante de devolución", true).
		WithAuthor(nonEmpty(data.StoreName, "Videoclub"), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(partiesRows(data)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(datesRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(data))
	m.AddRows(line.NewRow(3))
	m.AddRows(footerRow(data))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(data rental.ReturnReceiptData) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New(nonEmpty(data.StoreName, "Videoclub"), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(5).Add(
			text.New("COMPROBANTE DE DEVOLUCIÓN", props.Text{
				Style: fontstyle.Bold, Size: 7, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(shortID(data.Return.ID), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 6,
			}),
			text.New("Fecha: "+data.Return.ReturnDate.Format(dateLayout), props.Text{
				Size: 8, Align: align.Right, Top: 11, Color: colorGray,
			}),
		),
	)
}

func partiesRows(data rental.ReturnReceiptData) []core.Row {
	field := func(label, value string) core.Row {
		return row.New(6).Add(
			col.New(3).Add(text.New(label, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1})),
			col.New(9).Add(text.New(nonEmpty(value, "-"), props.Text{Size: 9, Top: 1})),
		)
	}
	return []core.Row{
		field("Cliente", data.CustomerName),
		field("Película", data.MovieTitle),
		field("Atendió", data.EmployeeName),
	}
}

func datesRow(data rental.ReturnReceiptData) core.Row {
	cell := func(label, value string) core.Col {
		return col.New(4).Add(
			text.New(label, props.Text{Style: fontstyle.Bold, Size: 7, Align: align.Center, Color: colorGray, Top: 1}),
			text.New(value, props.Text{Size: 9, Align: align.Center, Top: 6}),
		)
	}
	return row.New(12).Add(
		cell("Alquiler", data.Rental.RentalDate.Format(dateLayout)),
		cell("Vencimiento", data.Rental.DueDate.Format(dateLayout)),
		cell("Devolución", data.Return.ReturnDate.Format(dateLayout)),
	)
}

func totalsRow(data rental.ReturnReceiptData) core.Row {
	label := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top})
	}
	value := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1, Top: top})
	}
	lateLabel := fmt.Sprintf("Recargo (%d día(s)):", data.Return.LateDays)

	return row.New(20).Add(
		col.New(4),
		col.New(5).Add(
			label("Alquiler:", 0),
			label(lateLabel, 5),
			text.New("TOTAL PAGADO:", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2, Top: 10,
			}),
		),
		col.New(3).Add(
			value(money(data.Rental.TotalCharge), 0),
			value(money(data.Return.LateFee), 5),
			text.New(money(data.Return.TotalPaid), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1, Top: 10,
			}),
		),
	)
}

func footerRow(data rental.ReturnReceiptData) core.Row {
	return row.New(30).Add(
		col.New(4).Add(code.NewQr(data.Rental.ID, props.Rect{Percent: 95, Center: true})),
		col.New(8).Add(
			text.New("Alquiler "+data.Rental.ID, props.Text{Size: 7, Top: 4, Left: 3, Color: colorGray}),
			text.New("Gracias por su visita.", props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 14, Left: 3, Color: colorPrimary,
			}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func money(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

func shortID(id string) string {
	if len(id) > 8 {
		return "N° " + id[:8]
	}
	return "N° " + id
}
