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

var _ repository.PartRepository = (*PartRepo)(nil)

// PartRepo implementación del puerto PartRepository sobre PostgreSQL (usable con pool o tx).
type PartRepo struct {
	q Querier
}

// NewPartRepository construye el adaptador de persistencia para repuestos. Pasar pool o tx (Querier).
func NewPartRepository(q Querier) *PartRepo {
	return &PartRepo{q: q}
}

const partColumns = `id, name, reference, manufacturer, description, purchase_price, sale_price, stock_quantity, created_at, updated_at`

func scanPart(row pgx.Row, p *entity.Part, extra ...any) error {
	dest := []any{
		&p.ID, &p.Name, &p.Reference, &p.Manufacturer, &p.Description,
		&p.PurchasePrice, &p.SalePrice, &p.StockQuantity, &p.CreatedAt, &p.UpdatedAt,
	}
	return row.Scan(append(dest, extra...)...)
}

// UpsertOnSupply inserta el repuesto o suma qty al stock del par (name, reference) existente.
// xmax = 0 solo en filas recién insertadas.
func (r *PartRepo) UpsertOnSupply(ctx context.Context, part *entity.Part, qty int) (bool, error) {
	query := `
		INSERT INTO parts (name, reference, manufacturer, description, purchase_price, sale_price, stock_quantity)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (name, reference) DO UPDATE
			SET stock_quantity = parts.stock_quantity + EXCLUDED.stock_quantity,
			    updated_at = now()
		RETURNING ` + partColumns + `, (xmax = 0)`
	var created bool
	err := scanPart(r.q.QueryRow(ctx, query,
		part.Name, part.Reference, part.Manufacturer, part.Description,
		part.PurchasePrice, part.SalePrice, qty,
	), part, &created)
	if err != nil {
		if isCheckViolation(err) {
			return false, &domain.IntegrityError{Constraint: constraintName(err), Err: err}
		}
		return false, fmt.Errorf("upsert part: %w", err)
	}
	return created, nil
}

func (r *PartRepo) getOne(ctx context.Context, query string, args ...any) (*entity.Part, error) {
	var p entity.Part
	if err := scanPart(r.q.QueryRow(ctx, query, args...), &p); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get part: %w", err)
	}
	return &p, nil
}

// GetByID obtiene un repuesto por ID.
func (r *PartRepo) GetByID(ctx context.Context, id int64) (*entity.Part, error) {
	return r.getOne(ctx, `SELECT `+partColumns+` FROM parts WHERE id = $1`, id)
}

// GetForUpdate obtiene el repuesto bloqueando su fila hasta el fin de la transacción.
func (r *PartRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Part, error) {
	return r.getOne(ctx, `SELECT `+partColumns+` FROM parts WHERE id = $1 FOR UPDATE`, id)
}

// GetByIdentity obtiene un repuesto por su identidad (name, reference).
func (r *PartRepo) GetByIdentity(ctx context.Context, name, reference string) (*entity.Part, error) {
	return r.getOne(ctx, `SELECT `+partColumns+` FROM parts WHERE name = $1 AND reference = $2`, name, reference)
}

// FindByName repuestos con ese nombre exacto, ordenados por id.
func (r *PartRepo) FindByName(ctx context.Context, name string) ([]*entity.Part, error) {
	return r.list(ctx, `SELECT `+partColumns+` FROM parts WHERE name = $1 ORDER BY id`, name)
}

// List lista repuestos ordenados por nombre y referencia.
func (r *PartRepo) List(ctx context.Context, limit, offset int) ([]*entity.Part, error) {
	return r.list(ctx, `SELECT `+partColumns+` FROM parts ORDER BY name, reference LIMIT $1 OFFSET $2`, limit, offset)
}

func (r *PartRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Part, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list parts: %w", err)
	}
	defer rows.Close()
	var out []*entity.Part
	for rows.Next() {
		var p entity.Part
		if err := scanPart(rows, &p); err != nil {
			return nil, fmt.Errorf("scan part: %w", err)
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}

// AdjustStock suma delta al stock en una sola sentencia; la CHECK (stock_quantity >= 0)
// rechaza un resultado negativo.
func (r *PartRepo) AdjustStock(ctx context.Context, id int64, delta int) (int, error) {
	var qty int
	err := r.q.QueryRow(ctx,
		`UPDATE parts SET stock_quantity = stock_quantity + $2, updated_at = now() WHERE id = $1 RETURNING stock_quantity`,
		id, delta,
	).Scan(&qty)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, &domain.NotFoundError{Resource: "repuesto", Key: id}
		}
		if isCheckViolation(err) {
			return 0, &domain.IntegrityError{Constraint: constraintName(err), Err: err}
		}
		return 0, fmt.Errorf("adjust stock: %w", err)
	}
	return qty, nil
}
