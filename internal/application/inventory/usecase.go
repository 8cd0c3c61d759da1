package inventory

import (
	"context"

	"github.com/jhoicas/taller-api/internal/domain"
	"github.com/jhoicas/taller-api/internal/domain/entity"
	"github.com/jhoicas/taller-api/internal/domain/repository"
)

// LedgerUseCase expone el libro de stock: movimientos manuales (transaccionales),
// disponibilidad, resumen, conciliación e historial.
type LedgerUseCase struct {
	txRunner TxRunner
	partRepo repository.PartRepository
	movRepo  repository.StockMovementRepository
	ledger   *Ledger
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(
	txRunner TxRunner,
	partRepo repository.PartRepository,
	movRepo repository.StockMovementRepository,
) *LedgerUseCase {
	return &LedgerUseCase{
		txRunner: txRunner,
		partRepo: partRepo,
		movRepo:  movRepo,
		ledger:   NewLedger(partRepo, movRepo),
	}
}

// RegisterMovement registra una entrada o salida manual (devolución, baja, ajuste de conteo):
// valida, verifica suficiencia en salidas con la fila bloqueada, ajusta stock y agrega el
// movimiento, todo en una transacción.
func (uc *LedgerUseCase) RegisterMovement(ctx context.Context, in MovementInput) (*entity.StockMovement, error) {
	if !entity.ValidDirection(in.Direction) {
		return nil, domain.NewValidationError("direction", "debe ser entry o exit")
	}
	if in.Quantity <= 0 {
		return nil, domain.NewValidationError("quantity", "debe ser un entero mayor que cero")
	}

	var mov *entity.StockMovement
	err := uc.txRunner.Run(ctx, func(
		partRepo repository.PartRepository,
		movRepo repository.StockMovementRepository,
	) error {
		// Bloquea la fila del repuesto (SELECT FOR UPDATE) para evitar condiciones de carrera
		part, err := partRepo.GetForUpdate(ctx, in.PartID)
		if err != nil {
			return err
		}
		if part == nil {
			return &domain.NotFoundError{Resource: "repuesto", Key: in.PartID}
		}
		delta := in.Quantity
		if in.Direction == entity.MovementExit {
			if part.StockQuantity < in.Quantity {
				return &domain.InsufficientStockError{
					PartID: part.ID, PartName: part.Name,
					Requested: in.Quantity, Available: part.StockQuantity,
				}
			}
			delta = -in.Quantity
		}
		ledger := NewLedger(partRepo, movRepo)
		if _, err := ledger.AdjustStock(ctx, part.ID, delta); err != nil {
			return err
		}
		mov, err = ledger.RecordMovement(ctx, in)
		return err
	})
	if err != nil {
		return nil, err
	}
	return mov, nil
}

// Availability indica si hay stock suficiente para quantity unidades (false si no existe).
func (uc *LedgerUseCase) Availability(ctx context.Context, partID int64, quantity int) (bool, error) {
	if quantity <= 0 {
		return false, domain.NewValidationError("quantity", "debe ser un entero mayor que cero")
	}
	return uc.ledger.HasSufficientStock(ctx, partID, quantity)
}

// StockSummary resumen del libro por repuesto.
func (uc *LedgerUseCase) StockSummary(ctx context.Context) ([]entity.StockSummary, error) {
	return uc.ledger.StockSummary(ctx)
}

// Reconcile repuestos con descuadre entre libro y stock almacenado.
func (uc *LedgerUseCase) Reconcile(ctx context.Context) ([]entity.StockSummary, error) {
	return uc.ledger.Reconcile(ctx)
}

// ListMovementsByPart historial de un repuesto, más reciente primero.
func (uc *LedgerUseCase) ListMovementsByPart(ctx context.Context, partID int64, limit, offset int) ([]*entity.StockMovement, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	part, err := uc.partRepo.GetByID(ctx, partID)
	if err != nil {
		return nil, err
	}
	if part == nil {
		return nil, &domain.NotFoundError{Resource: "repuesto", Key: partID}
	}
	return uc.movRepo.ListByPart(ctx, partID, limit, offset)
}

// ListMovementsByOrder salidas asociadas a una orden de servicio.
func (uc *LedgerUseCase) ListMovementsByOrder(ctx context.Context, orderID int64) ([]*entity.StockMovement, error) {
	return uc.movRepo.ListByOrder(ctx, orderID)
}
