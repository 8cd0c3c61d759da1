// Package excel exporta reportes del inventario a XLSX.
package excel

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/taller-api/internal/application/inventory"
	"github.com/jhoicas/taller-api/internal/domain/entity"
)

const summarySheet = "Resumen"

var summaryHeaders = []string{"ID", "Repuesto", "Referencia", "Entradas", "Salidas", "Saldo libro", "Stock", "Cuadra"}

var _ inventory.SummaryExporter = (*Exporter)(nil)

// Exporter genera libros XLSX con excelize.
type Exporter struct{}

// NewExporter construye el exportador.
func NewExporter() *Exporter { return &Exporter{} }

// ExportStockSummary una fila por repuesto; las filas con descuadre se resaltan.
func (e *Exporter) ExportStockSummary(_ context.Context, rows []entity.StockSummary) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if _, err := f.NewSheet(summarySheet); err != nil {
		return nil, fmt.Errorf("excel: crear hoja: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("excel: %w", err)
	}
	index, err := f.GetSheetIndex(summarySheet)
	if err != nil {
		return nil, fmt.Errorf("excel: %w", err)
	}
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#D3D3D3"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("excel: estilo de cabecera: %w", err)
	}
	driftStyle, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#F8D7DA"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("excel: estilo de descuadre: %w", err)
	}

	for i, h := range summaryHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(summarySheet, cell, h); err != nil {
			return nil, err
		}
	}
	last, _ := excelize.CoordinatesToCellName(len(summaryHeaders), 1)
	if err := f.SetCellStyle(summarySheet, "A1", last, headerStyle); err != nil {
		return nil, err
	}

	for i, r := range rows {
		rowNum := i + 2
		cell, _ := excelize.CoordinatesToCellName(1, rowNum)
		consistent := "sí"
		if !r.Consistent() {
			consistent = "no"
		}
		values := []any{r.PartID, r.PartName, r.Reference, r.TotalEntries, r.TotalExits, r.Balance, r.StockQuantity, consistent}
		if err := f.SetSheetRow(summarySheet, cell, &values); err != nil {
			return nil, fmt.Errorf("excel: fila %d: %w", rowNum, err)
		}
		if !r.Consistent() {
			end, _ := excelize.CoordinatesToCellName(len(summaryHeaders), rowNum)
			if err := f.SetCellStyle(summarySheet, cell, end, driftStyle); err != nil {
				return nil, err
			}
		}
	}

	if err := f.SetColWidth(summarySheet, "A", "A", 8); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(summarySheet, "B", "C", 28); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(summarySheet, "D", "H", 12); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("excel: escribir: %w", err)
	}
	return buf.Bytes(), nil
}
