package inventory

import (
	"context"

	"github.com/jhoicas/taller-api/internal/application/dto"
	"github.com/jhoicas/taller-api/internal/domain/entity"
)

// RegisterMovementFromRequest adapta el request HTTP al caso de uso RegisterMovement(ctx, MovementInput).
// Los movimientos manuales nunca se asocian a una orden de servicio.
func (uc *LedgerUseCase) RegisterMovementFromRequest(ctx context.Context, in dto.RegisterMovementRequest) (*dto.MovementResponse, error) {
	mov, err := uc.RegisterMovement(ctx, MovementInput{
		PartID:    in.PartID,
		Direction: in.Direction,
		Quantity:  in.Quantity,
		Note:      in.Note,
	})
	if err != nil {
		return nil, err
	}
	return ToMovementResponse(mov), nil
}

// ToMovementResponse convierte un movimiento a su DTO.
func ToMovementResponse(m *entity.StockMovement) *dto.MovementResponse {
	return &dto.MovementResponse{
		ID:        m.ID,
		PartID:    m.PartID,
		Direction: m.Direction,
		Quantity:  m.Quantity,
		OrderID:   m.OrderID,
		Note:      m.Note,
		CreatedAt: m.CreatedAt,
	}
}

// ToSummaryResponse convierte el resumen del libro a DTOs.
func ToSummaryResponse(list []entity.StockSummary) []dto.StockSummaryResponse {
	out := make([]dto.StockSummaryResponse, 0, len(list))
	for _, s := range list {
		out = append(out, dto.StockSummaryResponse{
			PartID:        s.PartID,
			PartName:      s.PartName,
			Reference:     s.Reference,
			TotalEntries:  s.TotalEntries,
			TotalExits:    s.TotalExits,
			Balance:       s.Balance,
			StockQuantity: s.StockQuantity,
			Consistent:    s.Consistent(),
		})
	}
	return out
}
