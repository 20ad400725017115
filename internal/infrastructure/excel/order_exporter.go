// Package excel exporta órdenes a una hoja de cálculo .xlsx con excelize.
package excel

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/mardecortez-api/internal/application/usecase"
	"github.com/jhoicas/mardecortez-api/internal/domain/entity"
	"github.com/jhoicas/mardecortez-api/internal/domain/order"
)

var _ usecase.OrderExporter = (*OrderExporter)(nil)

// SheetName nombre de la hoja con el listado.
const SheetName = "Ordenes"

// Headers columnas del listado, en orden.
var Headers = []string{
	"Número", "Fecha", "Cliente", "Proveedor", "Estado", "Etapa",
	"Responsable", "Renglones", "Sin cotizar", "Total", "Motivo cancelación", "Notas",
}

// OrderExporter implementa usecase.OrderExporter.
type OrderExporter struct{}

// NewOrderExporter construye el exportador.
func NewOrderExporter() *OrderExporter { return &OrderExporter{} }

// ExportOrders una fila por orden, con cabecera fija.
func (e *OrderExporter) ExportOrders(_ context.Context, orders []*entity.Order) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, fmt.Errorf("excel: renombrar hoja: %w", err)
	}

	header := make([]interface{}, len(Headers))
	for i, h := range Headers {
		header[i] = h
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("excel: cabecera: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"005278"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("excel: estilo: %w", err)
	}
	lastCol, _ := excelize.ColumnNumberToName(len(Headers))
	if err := f.SetCellStyle(SheetName, "A1", lastCol+"1", bold); err != nil {
		return nil, fmt.Errorf("excel: estilo cabecera: %w", err)
	}

	for i, o := range orders {
		pending := 0
		for _, l := range o.Lines {
			if l.Price == nil {
				pending++
			}
		}
		values := []interface{}{
			o.OrderNumber,
			o.CreatedAt.Format("2006-01-02 15:04"),
			o.ClientName,
			o.SupplierName,
			o.Status,
			order.Stage(o),
			o.AssignedTo,
			len(o.Lines),
			pending,
			o.Total.Round(2).InexactFloat64(),
			o.CancellationReason,
			o.Notes,
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return nil, fmt.Errorf("excel: fila %d: %w", i+2, err)
		}
	}

	if err := f.SetColWidth(SheetName, "A", "A", 24); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(SheetName, "B", lastCol, 16); err != nil {
		return nil, err
	}
	if err := f.SetPanes(SheetName, &excelize.Panes{
		Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft",
	}); err != nil {
		return nil, fmt.Errorf("excel: congelar cabecera: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("excel: escribir: %w", err)
	}
	return buf.Bytes(), nil
}
