package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/taller-api/internal/domain"
	"github.com/jhoicas/taller-api/internal/domain/entity"
	"github.com/jhoicas/taller-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo libro de movimientos sobre PostgreSQL (usable con pool o tx). Solo inserción.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create agrega un movimiento. created_at cero = now() del servidor.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	var createdAt any
	if !m.CreatedAt.IsZero() {
		createdAt = m.CreatedAt
	}
	err := r.q.QueryRow(ctx, `
		INSERT INTO stock_movements (part_id, direction, quantity, order_id, note, created_at)
		VALUES ($1, $2, $3, $4, $5, COALESCE($6::timestamptz, now()))
		RETURNING id, created_at`,
		m.PartID, m.Direction, m.Quantity, m.OrderID, m.Note, createdAt,
	).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return &domain.NotFoundError{Resource: "repuesto u orden", Key: m.PartID}
		}
		if isCheckViolation(err) {
			return &domain.IntegrityError{Constraint: constraintName(err), Err: err}
		}
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

const movementColumns = `id, part_id, direction, quantity, order_id, note, created_at`

func scanMovements(rows pgx.Rows) ([]*entity.StockMovement, error) {
	defer rows.Close()
	var out []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		if err := rows.Scan(&m.ID, &m.PartID, &m.Direction, &m.Quantity, &m.OrderID, &m.Note, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}

// ListByPart historial de un repuesto, más reciente primero.
func (r *StockMovementRepo) ListByPart(ctx context.Context, partID int64, limit, offset int) ([]*entity.StockMovement, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+movementColumns+` FROM stock_movements WHERE part_id = $1 ORDER BY created_at DESC, id DESC LIMIT $2 OFFSET $3`,
		partID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list movements by part: %w", err)
	}
	return scanMovements(rows)
}

// ListByOrder salidas de una orden en orden de inserción.
func (r *StockMovementRepo) ListByOrder(ctx context.Context, orderID int64) ([]*entity.StockMovement, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+movementColumns+` FROM stock_movements WHERE order_id = $1 ORDER BY id`, orderID)
	if err != nil {
		return nil, fmt.Errorf("list movements by order: %w", err)
	}
	return scanMovements(rows)
}

// Summary entradas, salidas y stock almacenado por repuesto (incluye repuestos sin movimientos).
func (r *StockMovementRepo) Summary(ctx context.Context) ([]entity.StockSummary, error) {
	rows, err := r.q.Query(ctx, `
		SELECT p.id, p.name, p.reference,
		       COALESCE(SUM(m.quantity) FILTER (WHERE m.direction = 'entry'), 0)::bigint,
		       COALESCE(SUM(m.quantity) FILTER (WHERE m.direction = 'exit'), 0)::bigint,
		       p.stock_quantity::bigint
		FROM parts p
		LEFT JOIN stock_movements m ON m.part_id = p.id
		GROUP BY p.id, p.name, p.reference, p.stock_quantity
		ORDER BY p.name, p.reference`)
	if err != nil {
		return nil, fmt.Errorf("stock summary: %w", err)
	}
	defer rows.Close()
	var out []entity.StockSummary
	for rows.Next() {
		var s entity.StockSummary
		if err := rows.Scan(&s.PartID, &s.PartName, &s.Reference, &s.TotalEntries, &s.TotalExits, &s.StockQuantity); err != nil {
			return nil, fmt.Errorf("scan stock summary: %w", err)
		}
		s.Balance = s.TotalEntries - s.TotalExits
		out = append(out, s)
	}
	return out, rows.Err()
}
