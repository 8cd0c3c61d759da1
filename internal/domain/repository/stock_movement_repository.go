package repository

import (
	"context"

	"github.com/jhoicas/taller-api/internal/domain/entity"
)

// StockMovementRepository define el puerto de persistencia del libro de stock (solo inserción).
type StockMovementRepository interface {
	// Create agrega un movimiento; si CreatedAt es cero lo fija el almacenamiento.
	Create(ctx context.Context, movement *entity.StockMovement) error
	ListByPart(ctx context.Context, partID int64, limit, offset int) ([]*entity.StockMovement, error)
	ListByOrder(ctx context.Context, orderID int64) ([]*entity.StockMovement, error)
	// Summary devuelve, por repuesto, entradas, salidas, saldo y stock almacenado.
	Summary(ctx context.Context) ([]entity.StockSummary, error)
}
