// Package pdf genera la representación imprimible de una orden de servicio.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Taller                │  N° Orden + Fecha           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLIENTE: Nombre / Tel / Email                               │
//	│  VEHÍCULO: Placa / Marca / Modelo / Año                      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Repuesto | Ref. | P.Unit | Subtotal           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Repuestos / Mano de obra / TOTAL                   │
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

	"github.com/jhoicas/taller-api/internal/application/serviceorder"
	"github.com/jhoicas/taller-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ serviceorder.DocumentGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa serviceorder.DocumentGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	shopName string
	printer  *message.Printer
}

// NewMarotoPDFGenerator construye el generador; shopName va en el encabezado.
func NewMarotoPDFGenerator(shopName string) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{
		shopName: shopName,
		printer:  message.NewPrinter(language.Spanish),
	}
}

// GenerateServiceOrderPDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateServiceOrderPDF(_ context.Context, doc serviceorder.OrderDocument) ([]byte, error) {
	if doc.Order == nil || doc.Client == nil || doc.Vehicle == nil {
		return nil, fmt.Errorf("pdf: documento incompleto")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(fmt.Sprintf("Orden de servicio %d", doc.Order.ID), true).
		WithAuthor(g.shopName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(doc.Order))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(clientRow(doc.Client))
	m.AddRows(vehicleRow(doc.Vehicle))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range g.tableDetailRows(doc.Order.Lines) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(g.totalsRow(doc.Order))

	m.AddRows(line.NewRow(3))
	m.AddRows(footerRow())

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return out.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func (g *MarotoPDFGenerator) headerRow(so *entity.ServiceOrder) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(g.shopName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(5).Add(
			text.New("ORDEN DE SERVICIO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("N° %06d", so.ID), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+so.CreatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func clientRow(c *entity.Client) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(c.Name, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New(fmt.Sprintf("Tel: %s   |   Email: %s",
				nonEmpty(c.Phone, "-"),
				nonEmpty(c.Email, "-"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

func vehicleRow(v *entity.Vehicle) core.Row {
	year := "-"
	if v.Year > 0 {
		year = fmt.Sprint(v.Year)
	}
	return row.New(12).Add(
		col.New(12).Add(
			text.New("VEHÍCULO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Placa: %s   |   %s %s   |   Año: %s",
				v.Plate, nonEmpty(v.Brand, ""), v.Model, year,
			), props.Text{Size: 9, Top: 6}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de repuestos.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 1, align.Center),
		h("Repuesto", 4, align.Left),
		h("Referencia", 2, align.Left),
		h("Precio Unit.", 2, align.Right),
		h("Subtotal", 3, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func (g *MarotoPDFGenerator) tableDetailRows(lines []entity.OrderLineItem) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(fmt.Sprint(l.Quantity), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(4).Add(text.New(l.PartName, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(2).Add(text.New(l.Reference, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1, Color: colorGray})),
			col.New(2).Add(text.New(g.money(l.UnitPrice), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(3).Add(text.New(g.money(l.LineTotal), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

func (g *MarotoPDFGenerator) totalsRow(so *entity.ServiceOrder) core.Row {
	label := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top})
	}
	value := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1, Top: top})
	}
	grand := props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 14}

	return row.New(22).Add(
		col.New(6),
		col.New(3).Add(
			label("Repuestos:", 1),
			label("Mano de obra:", 7),
			text.New("TOTAL:", grand),
		),
		col.New(3).Add(
			value(g.money(so.PartsSubtotal), 1),
			value(g.money(so.LaborCost), 7),
			text.New(g.money(so.Total), grand),
		),
	)
}

func footerRow() core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New("Los repuestos listados fueron descontados del inventario del taller al confirmar la orden.",
			props.Text{Size: 6.5, Color: colorGray, Top: 2}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// money formatea con separadores es-CO: 1234567.5 → "$1.234.567,50".
func (g *MarotoPDFGenerator) money(d decimal.Decimal) string {
	f, _ := d.Round(2).Float64()
	return g.printer.Sprintf("$%.2f", f)
}
