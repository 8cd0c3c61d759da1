package serviceorder

import (
	"context"

	"github.com/jhoicas/taller-api/internal/domain/entity"
	"github.com/jhoicas/taller-api/internal/domain/order"
	"github.com/jhoicas/taller-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción que incluye repos de stock y órdenes.
// Si fn devuelve error se hace Rollback: ninguna escritura parcial queda visible.
type TxRunner interface {
	RunOrder(ctx context.Context, fn func(
		partRepo repository.PartRepository,
		movRepo repository.StockMovementRepository,
		orderRepo repository.ServiceOrderRepository,
	) error) error
}

// DraftStore guarda los borradores de orden por id de sesión.
// Load devuelve (nil, nil) si el borrador no existe o expiró.
type DraftStore interface {
	Save(ctx context.Context, id string, snap order.Snapshot) error
	Load(ctx context.Context, id string) (*order.Snapshot, error)
	Delete(ctx context.Context, id string) error
}

// OrderDocument datos de una orden confirmada para su representación gráfica.
type OrderDocument struct {
	Order   *entity.ServiceOrder // con Lines
	Client  *entity.Client
	Vehicle *entity.Vehicle
}

// DocumentGenerator produce el documento imprimible de una orden. No modifica estado.
type DocumentGenerator interface {
	GenerateServiceOrderPDF(ctx context.Context, doc OrderDocument) ([]byte, error)
}
