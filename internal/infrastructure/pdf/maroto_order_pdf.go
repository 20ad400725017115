// Package pdf genera la hoja imprimible de una orden con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Mar de Cortez       │  N° Orden + Fecha + Estado    │
//	│  CLIENTE / PROVEEDOR / RESPONSABLE                           │
//	│  TABLA: Cant | Producto | P.Unit | Subtotal                  │
//	│  TOTAL + renglones pendientes de cotizar                     │
//	│  NOTAS / MOTIVO DE CANCELACIÓN + QR con el número de orden   │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

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

	"github.com/jhoicas/mardecortez-api/internal/application/usecase"
	"github.com/jhoicas/mardecortez-api/internal/domain/entity"
)

var _ usecase.OrderDocumentGenerator = (*MarotoOrderPDF)(nil)

var (
	colorPrimary = &props.Color{Red: 0, Green: 82, Blue: 120}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

var statusLabels = map[string]string{
	entity.OrderPending:   "Pendiente",
	entity.OrderReceived:  "Recibido",
	entity.OrderInProcess: "En proceso",
	entity.OrderCompleted: "Completado",
	entity.OrderCancelled: "Cancelado",
}

// MarotoOrderPDF implementa usecase.OrderDocumentGenerator usando Maroto v2.
type MarotoOrderPDF struct{}

// NewMarotoOrderPDF construye el generador.
func NewMarotoOrderPDF() *MarotoOrderPDF { return &MarotoOrderPDF{} }

// GenerateOrderPDF genera el PDF y devuelve sus bytes.
func (g *MarotoOrderPDF) GenerateOrderPDF(_ context.Context, o *entity.Order) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Orden "+o.OrderNumber, true).
		WithAuthor("Mar de Cortez", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(o))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(partiesRow(o))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableLineRows(o.Lines)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(o))
	m.AddRows(line.NewRow(3))
	m.AddRows(footerRows(o)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(o *entity.Order) core.Row {
	return row.New(20).Add(
		col.New(7).Add(
			text.New("MAR DE CORTEZ", props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 1,
			}),
			text.New("Abastecimiento para embarcaciones", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(o.OrderNumber, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 1,
			}),
			text.New("Fecha: "+o.CreatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
			text.New("Estado: "+statusLabel(o.Status), props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 13, Color: colorPrimary,
			}),
		),
	)
}

func partiesRow(o *entity.Order) core.Row {
	supplier := "Sin asignar"
	if o.Claimed() {
		supplier = nonEmpty(o.SupplierName, o.SupplierID)
	}
	return row.New(14).Add(
		col.New(4).Add(
			text.New("CLIENTE", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(nonEmpty(o.ClientName, "-"), props.Text{Size: 9, Top: 6}),
		),
		col.New(4).Add(
			text.New("PROVEEDOR", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(supplier, props.Text{Size: 9, Top: 6}),
		),
		col.New(4).Add(
			text.New("RESPONSABLE", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(nonEmpty(o.AssignedTo, "-"), props.Text{Size: 9, Top: 6}),
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
	return row.New(8).WithStyle(&props.Cell{BackgroundColor: colorPrimary}).Add(
		h("Cant.", 1, align.Center),
		h("Producto", 6, align.Left),
		h("Precio Unit.", 2, align.Right),
		h("Subtotal", 3, align.Right),
	)
}

// tableLineRows una fila por renglón; los personalizados sin precio se marcan "Por cotizar".
func tableLineRows(lines []entity.OrderLine) []core.Row {
	rows := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		name := l.ProductName
		if l.IsCustom {
			name += " (personalizado)"
		}
		unit, subtotal := "Por cotizar", "-"
		if l.Price != nil {
			unit = money(*l.Price)
			subtotal = money(l.Price.Mul(decimal.NewFromInt(int64(l.Quantity))))
		}
		height := 7.0
		components := []core.Component{text.New(name, props.Text{Size: 8, Top: 1, Left: 1})}
		if l.Description != "" {
			height = 11
			components = append(components, text.New(l.Description, props.Text{Size: 7, Top: 5, Left: 1, Color: colorGray}))
		}
		rows = append(rows, row.New(height).Add(
			col.New(1).Add(text.New(strconv.Itoa(l.Quantity), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(6).Add(components...),
			col.New(2).Add(text.New(unit, props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(3).Add(text.New(subtotal, props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return rows
}

func totalRow(o *entity.Order) core.Row {
	pending := 0
	for _, l := range o.Lines {
		if l.Price == nil {
			pending++
		}
	}
	note := ""
	if pending > 0 {
		note = fmt.Sprintf("%d renglón(es) pendientes de cotizar no incluidos en el total", pending)
	}
	return row.New(10).Add(
		col.New(7).Add(text.New(note, props.Text{Size: 7, Top: 3, Color: colorGray})),
		col.New(2).Add(text.New("TOTAL:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 2, Right: 2,
		})),
		col.New(3).Add(text.New(money(o.Total), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 2, Right: 1,
		})),
	)
}

func footerRows(o *entity.Order) []core.Row {
	left := []core.Component{
		text.New("NOTAS", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
		text.New(nonEmpty(o.Notes, "-"), props.Text{Size: 8, Top: 6}),
	}
	if o.Status == entity.OrderCancelled && o.CancellationReason != "" {
		left = append(left,
			text.New("MOTIVO DE CANCELACIÓN", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 16}),
			text.New(o.CancellationReason, props.Text{Size: 8, Top: 21}),
		)
	}
	return []core.Row{
		row.New(35).Add(
			col.New(9).Add(left...),
			col.New(3).Add(code.NewQr(o.OrderNumber, props.Rect{Percent: 90, Center: true})),
		),
	}
}

func statusLabel(s string) string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return s
}

func money(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
