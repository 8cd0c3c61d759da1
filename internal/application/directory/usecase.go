// Package directory expone clientes y vehículos: consultas sin efectos laterales
// y el mantenimiento básico de los datos de referencia.
package directory

import (
	"context"
	"errors"
	"strings"

	"github.com/jhoicas/taller-api/internal/application/dto"
	"github.com/jhoicas/taller-api/internal/domain"
	"github.com/jhoicas/taller-api/internal/domain/entity"
	"github.com/jhoicas/taller-api/internal/domain/repository"
)

// UseCase directorio de clientes y vehículos.
type UseCase struct {
	clientRepo  repository.ClientRepository
	vehicleRepo repository.VehicleRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(clientRepo repository.ClientRepository, vehicleRepo repository.VehicleRepository) *UseCase {
	return &UseCase{clientRepo: clientRepo, vehicleRepo: vehicleRepo}
}

// ListClients lista clientes por nombre.
func (uc *UseCase) ListClients(ctx context.Context, page dto.PageRequest) ([]dto.ClientResponse, error) {
	page = page.Normalize()
	list, err := uc.clientRepo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ClientResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toClientResponse(c))
	}
	return out, nil
}

// GetClient obtiene un cliente por ID.
func (uc *UseCase) GetClient(ctx context.Context, id int64) (*dto.ClientResponse, error) {
	c, err := uc.clientRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, &domain.NotFoundError{Resource: "cliente", Key: id}
	}
	resp := toClientResponse(c)
	return &resp, nil
}

// ListVehiclesForClient vehículos actuales del cliente; NotFoundError si el cliente no existe.
func (uc *UseCase) ListVehiclesForClient(ctx context.Context, clientID int64) ([]dto.VehicleResponse, error) {
	c, err := uc.clientRepo.GetByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, &domain.NotFoundError{Resource: "cliente", Key: clientID}
	}
	list, err := uc.vehicleRepo.ListByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.VehicleResponse, 0, len(list))
	for _, v := range list {
		out = append(out, toVehicleResponse(v))
	}
	return out, nil
}

// FindPhone teléfono del cliente con ese nombre. Con homónimos gana el de menor id.
// NotFoundError si no hay cliente o si no tiene teléfono registrado.
func (uc *UseCase) FindPhone(ctx context.Context, clientName string) (*dto.PhoneResponse, error) {
	name := strings.TrimSpace(clientName)
	if name == "" {
		return nil, domain.NewValidationError("name", "requerido")
	}
	list, err := uc.clientRepo.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, &domain.NotFoundError{Resource: "cliente", Key: name}
	}
	c := list[0]
	if c.Phone == "" {
		return nil, &domain.NotFoundError{Resource: "teléfono", Key: name}
	}
	return &dto.PhoneResponse{ClientID: c.ID, Name: c.Name, Phone: c.Phone}, nil
}

// CreateClient registra un cliente.
func (uc *UseCase) CreateClient(ctx context.Context, in dto.CreateClientRequest) (*dto.ClientResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.NewValidationError("name", "requerido")
	}
	c := &entity.Client{
		Name:  name,
		Phone: strings.TrimSpace(in.Phone),
		Email: strings.TrimSpace(in.Email),
	}
	if err := uc.clientRepo.Create(ctx, c); err != nil {
		return nil, err
	}
	resp := toClientResponse(c)
	return &resp, nil
}

// CreateVehicle registra un vehículo para un cliente existente. Placa duplicada: IntegrityError.
func (uc *UseCase) CreateVehicle(ctx context.Context, in dto.CreateVehicleRequest) (*dto.VehicleResponse, error) {
	plate := NormalizePlate(in.Plate)
	if plate == "" {
		return nil, domain.NewValidationError("plate", "requerida")
	}
	if strings.TrimSpace(in.Model) == "" {
		return nil, domain.NewValidationError("model", "requerido")
	}
	c, err := uc.clientRepo.GetByID(ctx, in.ClientID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, &domain.NotFoundError{Resource: "cliente", Key: in.ClientID}
	}
	v := &entity.Vehicle{
		ClientID: in.ClientID,
		Brand:    strings.TrimSpace(in.Brand),
		Model:    strings.TrimSpace(in.Model),
		Plate:    plate,
		Year:     in.Year,
	}
	if err := uc.vehicleRepo.Create(ctx, v); err != nil {
		return nil, err
	}
	resp := toVehicleResponse(v)
	return &resp, nil
}

// ReassignVehicle cambia el propietario de un vehículo; las órdenes pasadas conservan el cliente original.
func (uc *UseCase) ReassignVehicle(ctx context.Context, vehicleID, clientID int64) (*dto.VehicleResponse, error) {
	c, err := uc.clientRepo.GetByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, &domain.NotFoundError{Resource: "cliente", Key: clientID}
	}
	if err := uc.vehicleRepo.UpdateOwner(ctx, vehicleID, clientID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, &domain.NotFoundError{Resource: "vehículo", Key: vehicleID}
		}
		return nil, err
	}
	v, err := uc.vehicleRepo.GetByID(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, &domain.NotFoundError{Resource: "vehículo", Key: vehicleID}
	}
	resp := toVehicleResponse(v)
	return &resp, nil
}

// NormalizePlate placa en mayúsculas sin espacios ni guiones.
func NormalizePlate(p string) string {
	p = strings.ToUpper(strings.TrimSpace(p))
	return strings.NewReplacer(" ", "", "-", "").Replace(p)
}

func toClientResponse(c *entity.Client) dto.ClientResponse {
	return dto.ClientResponse{
		ID:        c.ID,
		Name:      c.Name,
		Phone:     c.Phone,
		Email:     c.Email,
		CreatedAt: c.CreatedAt,
	}
}

func toVehicleResponse(v *entity.Vehicle) dto.VehicleResponse {
	return dto.VehicleResponse{
		ID:        v.ID,
		ClientID:  v.ClientID,
		Brand:     v.Brand,
		Model:     v.Model,
		Plate:     v.Plate,
		Year:      v.Year,
		CreatedAt: v.CreatedAt,
	}
}
