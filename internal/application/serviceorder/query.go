package serviceorder

import (
	"context"

	"github.com/jhoicas/taller-api/internal/application/dto"
	"github.com/jhoicas/taller-api/internal/domain"
	"github.com/jhoicas/taller-api/internal/domain/entity"
	"github.com/jhoicas/taller-api/internal/domain/repository"
)

// QueryUseCase lectura de órdenes confirmadas.
type QueryUseCase struct {
	orderRepo   repository.ServiceOrderRepository
	clientRepo  repository.ClientRepository
	vehicleRepo repository.VehicleRepository
}

// NewQueryUseCase construye el caso de uso.
func NewQueryUseCase(
	orderRepo repository.ServiceOrderRepository,
	clientRepo repository.ClientRepository,
	vehicleRepo repository.VehicleRepository,
) *QueryUseCase {
	return &QueryUseCase{orderRepo: orderRepo, clientRepo: clientRepo, vehicleRepo: vehicleRepo}
}

// LoadOrder cabecera con sus líneas; NotFoundError si no existe.
func (uc *QueryUseCase) LoadOrder(ctx context.Context, id int64) (*entity.ServiceOrder, error) {
	so, err := uc.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if so == nil {
		return nil, &domain.NotFoundError{Resource: "orden de servicio", Key: id}
	}
	lines, err := uc.orderRepo.GetLineItems(ctx, id)
	if err != nil {
		return nil, err
	}
	so.Lines = lines
	return so, nil
}

// GetOrder orden con detalle, nombre del cliente y placa del vehículo.
func (uc *QueryUseCase) GetOrder(ctx context.Context, id int64) (*dto.OrderResponse, error) {
	so, err := uc.LoadOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToOrderResponse(so)
	if c, _ := uc.clientRepo.GetByID(ctx, so.ClientID); c != nil {
		resp.ClientName = c.Name
	}
	if v, _ := uc.vehicleRepo.GetByID(ctx, so.VehicleID); v != nil {
		resp.VehiclePlate = v.Plate
	}
	return resp, nil
}

// ListOrders lista cabeceras, más reciente primero.
func (uc *QueryUseCase) ListOrders(ctx context.Context, page dto.PageRequest) ([]dto.OrderResponse, error) {
	page = page.Normalize()
	list, err := uc.orderRepo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.OrderResponse, 0, len(list))
	for _, so := range list {
		out = append(out, *ToOrderResponse(so))
	}
	return out, nil
}

// ToOrderResponse convierte una orden a su DTO.
func ToOrderResponse(so *entity.ServiceOrder) *dto.OrderResponse {
	resp := &dto.OrderResponse{
		ID:            so.ID,
		ClientID:      so.ClientID,
		VehicleID:     so.VehicleID,
		LaborCost:     so.LaborCost,
		PartsSubtotal: so.PartsSubtotal,
		Total:         so.Total,
		CreatedAt:     so.CreatedAt,
		Lines:         make([]dto.OrderLineResponse, 0, len(so.Lines)),
	}
	for _, l := range so.Lines {
		resp.Lines = append(resp.Lines, dto.OrderLineResponse{
			ID:        l.ID,
			PartID:    l.PartID,
			PartName:  l.PartName,
			Reference: l.Reference,
			UnitPrice: l.UnitPrice,
			Quantity:  l.Quantity,
			LineTotal: l.LineTotal,
		})
	}
	return resp
}
