package repository

import (
	"context"

	"github.com/jhoicas/taller-api/internal/domain/entity"
)

// ClientRepository define el puerto de persistencia para Client.
type ClientRepository interface {
	Create(ctx context.Context, client *entity.Client) error
	GetByID(ctx context.Context, id int64) (*entity.Client, error)
	// FindByName devuelve los clientes con ese nombre exacto, ordenados por id.
	FindByName(ctx context.Context, name string) ([]*entity.Client, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Client, error)
}

// VehicleRepository define el puerto de persistencia para Vehicle.
type VehicleRepository interface {
	// Create falla con IntegrityError si la placa ya existe.
	Create(ctx context.Context, vehicle *entity.Vehicle) error
	GetByID(ctx context.Context, id int64) (*entity.Vehicle, error)
	ListByClient(ctx context.Context, clientID int64) ([]*entity.Vehicle, error)
	UpdateOwner(ctx context.Context, vehicleID, clientID int64) error
}
