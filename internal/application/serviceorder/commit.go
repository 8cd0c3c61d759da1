package serviceorder

import (
	"context"
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"github.com/jhoicas/taller-api/internal/application/catalog"
	"github.com/jhoicas/taller-api/internal/application/inventory"
	"github.com/jhoicas/taller-api/internal/domain"
	"github.com/jhoicas/taller-api/internal/domain/entity"
	"github.com/jhoicas/taller-api/internal/domain/order"
	"github.com/jhoicas/taller-api/internal/domain/repository"
)

// CommitUseCase confirma una orden de servicio: verifica stock, inserta cabecera y líneas,
// descuenta stock y registra una salida por línea, todo en una sola transacción.
type CommitUseCase struct {
	txRunner    TxRunner
	clientRepo  repository.ClientRepository
	vehicleRepo repository.VehicleRepository
	log         zerolog.Logger
}

// NewCommitUseCase construye el caso de uso.
func NewCommitUseCase(
	txRunner TxRunner,
	clientRepo repository.ClientRepository,
	vehicleRepo repository.VehicleRepository,
	log zerolog.Logger,
) *CommitUseCase {
	return &CommitUseCase{
		txRunner:    txRunner,
		clientRepo:  clientRepo,
		vehicleRepo: vehicleRepo,
		log:         log,
	}
}

// resolvedLine línea del plan con su repuesto resuelto.
type resolvedLine struct {
	item   order.LineItem
	partID int64
}

// Commit confirma el Builder para el cliente y vehículo dados.
// Ante cualquier error la transacción se revierte y el Builder vuelve a Composing
// (o conserva su estado si la validación inicial falló).
func (uc *CommitUseCase) Commit(ctx context.Context, b *order.Builder, clientID, vehicleID int64) (*entity.ServiceOrder, error) {
	// 1) Precondiciones
	plan, err := b.Validate(clientID, vehicleID)
	if err != nil {
		return nil, err
	}
	so, err := uc.commitPlan(ctx, plan)
	if err != nil {
		b.Abort()
		uc.log.Warn().Err(err).
			Int64("client_id", clientID).
			Int64("vehicle_id", vehicleID).
			Msg("orden de servicio rechazada")
		return nil, err
	}
	if err := b.MarkCommitted(so.ID); err != nil {
		return nil, err
	}
	uc.log.Info().
		Int64("order_id", so.ID).
		Int("lines", len(so.Lines)).
		Str("total", so.Total.StringFixed(2)).
		Msg("orden de servicio confirmada")
	return so, nil
}

func (uc *CommitUseCase) commitPlan(ctx context.Context, plan order.Plan) (*entity.ServiceOrder, error) {
	client, err := uc.clientRepo.GetByID(ctx, plan.ClientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, &domain.NotFoundError{Resource: "cliente", Key: plan.ClientID}
	}
	vehicle, err := uc.vehicleRepo.GetByID(ctx, plan.VehicleID)
	if err != nil {
		return nil, err
	}
	if vehicle == nil {
		return nil, &domain.NotFoundError{Resource: "vehículo", Key: plan.VehicleID}
	}
	if vehicle.ClientID != plan.ClientID {
		return nil, domain.NewValidationError("vehicle_id", "el vehículo no pertenece al cliente")
	}

	var so *entity.ServiceOrder
	err = uc.txRunner.RunOrder(ctx, func(
		partRepo repository.PartRepository,
		movRepo repository.StockMovementRepository,
		orderRepo repository.ServiceOrderRepository,
	) error {
		// 2) Resolver cada nombre de repuesto a su id
		lines := make([]resolvedLine, 0, len(plan.Items))
		need := make(map[int64]int)
		for _, it := range plan.Items {
			id, err := catalog.ResolvePartID(ctx, partRepo, it.PartName)
			if err != nil {
				return err
			}
			lines = append(lines, resolvedLine{item: it, partID: id})
			need[id] += it.Quantity
		}

		// 3) Bloquear filas en orden de id y verificar stock sobre la cantidad total por repuesto
		ids := make([]int64, 0, len(need))
		for id := range need {
			ids = append(ids, id)
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
		parts := make(map[int64]*entity.Part, len(ids))
		for _, id := range ids {
			part, err := partRepo.GetForUpdate(ctx, id)
			if err != nil {
				return err
			}
			if part == nil {
				return &domain.NotFoundError{Resource: "repuesto", Key: id}
			}
			if part.StockQuantity < need[id] {
				return &domain.InsufficientStockError{
					PartID:    part.ID,
					PartName:  part.Name,
					Requested: need[id],
					Available: part.StockQuantity,
				}
			}
			parts[id] = part
		}

		// 4) Cabecera y líneas
		so = &entity.ServiceOrder{
			ClientID:      plan.ClientID,
			VehicleID:     plan.VehicleID,
			LaborCost:     plan.LaborCost,
			PartsSubtotal: plan.PartsSubtotal,
			Total:         plan.Total,
		}
		if err := orderRepo.Create(ctx, so); err != nil {
			return fmt.Errorf("insertar orden: %w", err)
		}
		for _, l := range lines {
			part := parts[l.partID]
			line := entity.OrderLineItem{
				OrderID:   so.ID,
				PartID:    part.ID,
				PartName:  part.Name,
				Reference: part.Reference,
				UnitPrice: l.item.UnitPrice,
				Quantity:  l.item.Quantity,
				LineTotal: l.item.LineTotal,
			}
			if err := orderRepo.CreateLineItem(ctx, &line); err != nil {
				return fmt.Errorf("insertar línea: %w", err)
			}
			so.Lines = append(so.Lines, line)
		}

		// 5) Descontar stock y registrar una salida por línea
		ledger := inventory.NewLedger(partRepo, movRepo)
		orderID := so.ID
		for _, l := range lines {
			if _, err := ledger.AdjustStock(ctx, l.partID, -l.item.Quantity); err != nil {
				return err
			}
			if _, err := ledger.RecordMovement(ctx, inventory.MovementInput{
				PartID:    l.partID,
				Direction: entity.MovementExit,
				Quantity:  l.item.Quantity,
				OrderID:   &orderID,
				Note:      fmt.Sprintf("orden de servicio #%d", orderID),
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return so, nil
}
