package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/taller-api/internal/domain"
	"github.com/jhoicas/taller-api/internal/domain/entity"
	"github.com/jhoicas/taller-api/internal/domain/repository"
)

// Ledger opera el stock por repuesto y su libro de movimientos.
// Se construye sobre repos del pool (lecturas) o sobre repos atados a una tx (escrituras
// dentro de CommitUseCase / UpsertPartOnSupply).
type Ledger struct {
	partRepo repository.PartRepository
	movRepo  repository.StockMovementRepository
}

// NewLedger construye el libro sobre los repositorios dados.
func NewLedger(partRepo repository.PartRepository, movRepo repository.StockMovementRepository) *Ledger {
	return &Ledger{partRepo: partRepo, movRepo: movRepo}
}

// MovementInput datos de un asiento del libro.
type MovementInput struct {
	PartID     int64
	Direction  string // entry, exit
	Quantity   int
	OrderID    *int64
	Note       string
	OccurredAt time.Time // cero = momento de inserción
}

// HasSufficientStock falla cerrado: false si el repuesto no existe.
func (l *Ledger) HasSufficientStock(ctx context.Context, partID int64, quantity int) (bool, error) {
	part, err := l.partRepo.GetByID(ctx, partID)
	if err != nil {
		return false, err
	}
	if part == nil {
		return false, nil
	}
	return part.StockQuantity >= quantity, nil
}

// AdjustStock aplica delta (con signo). El invariante stock >= 0 lo impone el almacenamiento;
// el llamador verifica suficiencia antes de una salida.
func (l *Ledger) AdjustStock(ctx context.Context, partID int64, delta int) (int, error) {
	qty, err := l.partRepo.AdjustStock(ctx, partID, delta)
	if err != nil {
		return 0, fmt.Errorf("ajustar stock del repuesto %d: %w", partID, err)
	}
	return qty, nil
}

// RecordMovement valida y agrega un movimiento inmutable.
func (l *Ledger) RecordMovement(ctx context.Context, in MovementInput) (*entity.StockMovement, error) {
	if !entity.ValidDirection(in.Direction) {
		return nil, domain.NewValidationError("direction", "debe ser entry o exit")
	}
	if in.Quantity <= 0 {
		return nil, domain.NewValidationError("quantity", "debe ser un entero mayor que cero")
	}
	if in.PartID <= 0 {
		return nil, domain.NewValidationError("part_id", "requerido")
	}
	mov := &entity.StockMovement{
		PartID:    in.PartID,
		Direction: in.Direction,
		Quantity:  in.Quantity,
		OrderID:   in.OrderID,
		Note:      in.Note,
		CreatedAt: in.OccurredAt,
	}
	if err := l.movRepo.Create(ctx, mov); err != nil {
		return nil, fmt.Errorf("registrar movimiento: %w", err)
	}
	return mov, nil
}

// StockSummary vista derivada: por repuesto, entradas, salidas y saldo.
func (l *Ledger) StockSummary(ctx context.Context) ([]entity.StockSummary, error) {
	return l.movRepo.Summary(ctx)
}

// Reconcile devuelve los repuestos cuyo saldo del libro no coincide con el stock almacenado.
func (l *Ledger) Reconcile(ctx context.Context) ([]entity.StockSummary, error) {
	summary, err := l.movRepo.Summary(ctx)
	if err != nil {
		return nil, err
	}
	drift := make([]entity.StockSummary, 0)
	for _, s := range summary {
		if !s.Consistent() {
			drift = append(drift, s)
		}
	}
	return drift, nil
}
