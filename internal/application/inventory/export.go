package inventory

import (
	"context"
	"fmt"
	"time"
)

// ExportUseCase descarga del resumen del libro.
type ExportUseCase struct {
	ledger   *LedgerUseCase
	exporter SummaryExporter
	now      func() time.Time
}

// NewExportUseCase construye el caso de uso.
func NewExportUseCase(ledger *LedgerUseCase, exporter SummaryExporter) *ExportUseCase {
	return &ExportUseCase{ledger: ledger, exporter: exporter, now: time.Now}
}

// ExportStockSummary devuelve el archivo y su nombre (resumen_stock_AAAAMMDD.xlsx).
func (uc *ExportUseCase) ExportStockSummary(ctx context.Context) ([]byte, string, error) {
	rows, err := uc.ledger.StockSummary(ctx)
	if err != nil {
		return nil, "", err
	}
	data, err := uc.exporter.ExportStockSummary(ctx, rows)
	if err != nil {
		return nil, "", fmt.Errorf("exportar resumen: %w", err)
	}
	return data, "resumen_stock_" + uc.now().Format("20060102") + ".xlsx", nil
}
