package serviceorder

import (
	"context"
	"fmt"

	"github.com/jhoicas/taller-api/internal/domain"
	"github.com/jhoicas/taller-api/internal/domain/repository"
)

// PDFUseCase genera la representación gráfica (PDF) de una orden de servicio confirmada.
// Solo lee: nunca modifica la orden ni el stock.
type PDFUseCase struct {
	query       *QueryUseCase
	clientRepo  repository.ClientRepository
	vehicleRepo repository.VehicleRepository
	generator   DocumentGenerator
}

// NewPDFUseCase construye el caso de uso inyectando todas sus dependencias.
func NewPDFUseCase(
	query *QueryUseCase,
	clientRepo repository.ClientRepository,
	vehicleRepo repository.VehicleRepository,
	generator DocumentGenerator,
) *PDFUseCase {
	return &PDFUseCase{
		query:       query,
		clientRepo:  clientRepo,
		vehicleRepo: vehicleRepo,
		generator:   generator,
	}
}

// DownloadOrderPDF recupera la orden con su detalle, el cliente y el vehículo y genera el PDF.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - domain.NotFoundError       si la orden, el cliente o el vehículo no existen.
func (uc *PDFUseCase) DownloadOrderPDF(ctx context.Context, orderID int64) (pdfBytes []byte, filename string, err error) {
	so, err := uc.query.LoadOrder(ctx, orderID)
	if err != nil {
		return nil, "", err
	}

	client, err := uc.clientRepo.GetByID(ctx, so.ClientID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener cliente: %w", err)
	}
	if client == nil {
		return nil, "", &domain.NotFoundError{Resource: "cliente", Key: so.ClientID}
	}

	vehicle, err := uc.vehicleRepo.GetByID(ctx, so.VehicleID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener vehículo: %w", err)
	}
	if vehicle == nil {
		return nil, "", &domain.NotFoundError{Resource: "vehículo", Key: so.VehicleID}
	}

	pdfBytes, err = uc.generator.GenerateServiceOrderPDF(ctx, OrderDocument{
		Order:   so,
		Client:  client,
		Vehicle: vehicle,
	})
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}

	filename = fmt.Sprintf("orden_%d.pdf", so.ID)
	return pdfBytes, filename, nil
}
