package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/taller-api/internal/domain"
	"github.com/jhoicas/taller-api/internal/domain/entity"
	"github.com/jhoicas/taller-api/internal/domain/repository"
)

var _ repository.ServiceOrderRepository = (*ServiceOrderRepo)(nil)

// ServiceOrderRepo órdenes de servicio y sus líneas sobre PostgreSQL (usable con pool o tx).
type ServiceOrderRepo struct {
	q Querier
}

// NewServiceOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewServiceOrderRepository(q Querier) *ServiceOrderRepo {
	return &ServiceOrderRepo{q: q}
}

// Create persiste la cabecera y completa ID y CreatedAt.
func (r *ServiceOrderRepo) Create(ctx context.Context, so *entity.ServiceOrder) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO service_orders (client_id, vehicle_id, labor_cost, parts_subtotal, total)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`,
		so.ClientID, so.VehicleID, so.LaborCost, so.PartsSubtotal, so.Total,
	).Scan(&so.ID, &so.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return &domain.IntegrityError{Constraint: constraintName(err), Err: err}
		}
		return fmt.Errorf("insert service order: %w", err)
	}
	return nil
}

// CreateLineItem persiste una línea y completa su ID.
func (r *ServiceOrderRepo) CreateLineItem(ctx context.Context, line *entity.OrderLineItem) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO order_line_items (order_id, part_id, unit_price, quantity, line_total)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		line.OrderID, line.PartID, line.UnitPrice, line.Quantity, line.LineTotal,
	).Scan(&line.ID)
	if err != nil {
		if isForeignKeyViolation(err) || isCheckViolation(err) {
			return &domain.IntegrityError{Constraint: constraintName(err), Err: err}
		}
		return fmt.Errorf("insert order line item: %w", err)
	}
	return nil
}

const orderColumns = `id, client_id, vehicle_id, labor_cost, parts_subtotal, total, created_at`

// GetByID obtiene la cabecera (sin líneas).
func (r *ServiceOrderRepo) GetByID(ctx context.Context, id int64) (*entity.ServiceOrder, error) {
	var so entity.ServiceOrder
	err := r.q.QueryRow(ctx, `SELECT `+orderColumns+` FROM service_orders WHERE id = $1`, id).Scan(
		&so.ID, &so.ClientID, &so.VehicleID, &so.LaborCost, &so.PartsSubtotal, &so.Total, &so.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get service order: %w", err)
	}
	return &so, nil
}

// GetLineItems líneas de la orden con nombre y referencia del repuesto.
func (r *ServiceOrderRepo) GetLineItems(ctx context.Context, orderID int64) ([]entity.OrderLineItem, error) {
	rows, err := r.q.Query(ctx, `
		SELECT l.id, l.order_id, l.part_id, p.name, p.reference, l.unit_price, l.quantity, l.line_total
		FROM order_line_items l
		JOIN parts p ON p.id = l.part_id
		WHERE l.order_id = $1
		ORDER BY l.id`, orderID)
	if err != nil {
		return nil, fmt.Errorf("get order line items: %w", err)
	}
	defer rows.Close()
	var out []entity.OrderLineItem
	for rows.Next() {
		var l entity.OrderLineItem
		if err := rows.Scan(&l.ID, &l.OrderID, &l.PartID, &l.PartName, &l.Reference, &l.UnitPrice, &l.Quantity, &l.LineTotal); err != nil {
			return nil, fmt.Errorf("scan order line item: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// List cabeceras, más reciente primero.
func (r *ServiceOrderRepo) List(ctx context.Context, limit, offset int) ([]*entity.ServiceOrder, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+orderColumns+` FROM service_orders ORDER BY created_at DESC, id DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list service orders: %w", err)
	}
	defer rows.Close()
	var out []*entity.ServiceOrder
	for rows.Next() {
		var so entity.ServiceOrder
		if err := rows.Scan(&so.ID, &so.ClientID, &so.VehicleID, &so.LaborCost, &so.PartsSubtotal, &so.Total, &so.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan service order: %w", err)
		}
		out = append(out, &so)
	}
	return out, rows.Err()
}
