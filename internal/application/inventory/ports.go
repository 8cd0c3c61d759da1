package inventory

import (
	"context"

	"github.com/jhoicas/taller-api/internal/domain/entity"
	"github.com/jhoicas/taller-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza atomicidad para el libro de stock: si fn devuelve error se hace Rollback.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		partRepo repository.PartRepository,
		movRepo repository.StockMovementRepository,
	) error) error
}

// SummaryExporter convierte el resumen del libro a un archivo descargable (XLSX).
type SummaryExporter interface {
	ExportStockSummary(ctx context.Context, rows []entity.StockSummary) ([]byte, error)
}
