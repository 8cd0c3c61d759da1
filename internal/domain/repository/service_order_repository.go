package repository

import (
	"context"

	"github.com/jhoicas/taller-api/internal/domain/entity"
)

// ServiceOrderRepository define el puerto de persistencia para órdenes de servicio y sus líneas.
type ServiceOrderRepository interface {
	// Create persiste la cabecera y completa order.ID y order.CreatedAt.
	Create(ctx context.Context, order *entity.ServiceOrder) error
	CreateLineItem(ctx context.Context, line *entity.OrderLineItem) error
	GetByID(ctx context.Context, id int64) (*entity.ServiceOrder, error)
	GetLineItems(ctx context.Context, orderID int64) ([]entity.OrderLineItem, error)
	List(ctx context.Context, limit, offset int) ([]*entity.ServiceOrder, error)
}
