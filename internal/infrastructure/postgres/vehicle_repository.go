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

var _ repository.VehicleRepository = (*VehicleRepo)(nil)

// VehicleRepo implementación del puerto VehicleRepository sobre PostgreSQL.
type VehicleRepo struct {
	q Querier
}

// NewVehicleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewVehicleRepository(q Querier) *VehicleRepo {
	return &VehicleRepo{q: q}
}

const vehicleColumns = `id, client_id, brand, model, plate, year, created_at`

// Create persiste un vehículo. Placa repetida: IntegrityError (vehicles_plate_key).
func (r *VehicleRepo) Create(ctx context.Context, v *entity.Vehicle) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO vehicles (client_id, brand, model, plate, year)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`,
		v.ClientID, v.Brand, v.Model, v.Plate, v.Year,
	).Scan(&v.ID, &v.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return &domain.IntegrityError{Constraint: constraintName(err), Err: err}
		}
		if isForeignKeyViolation(err) {
			return &domain.NotFoundError{Resource: "cliente", Key: v.ClientID}
		}
		return fmt.Errorf("insert vehicle: %w", err)
	}
	return nil
}

// GetByID obtiene un vehículo por ID.
func (r *VehicleRepo) GetByID(ctx context.Context, id int64) (*entity.Vehicle, error) {
	var v entity.Vehicle
	err := r.q.QueryRow(ctx, `SELECT `+vehicleColumns+` FROM vehicles WHERE id = $1`, id).Scan(
		&v.ID, &v.ClientID, &v.Brand, &v.Model, &v.Plate, &v.Year, &v.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get vehicle: %w", err)
	}
	return &v, nil
}

// ListByClient vehículos actuales del cliente, por placa.
func (r *VehicleRepo) ListByClient(ctx context.Context, clientID int64) ([]*entity.Vehicle, error) {
	rows, err := r.q.Query(ctx, `SELECT `+vehicleColumns+` FROM vehicles WHERE client_id = $1 ORDER BY plate`, clientID)
	if err != nil {
		return nil, fmt.Errorf("list vehicles: %w", err)
	}
	defer rows.Close()
	var out []*entity.Vehicle
	for rows.Next() {
		var v entity.Vehicle
		if err := rows.Scan(&v.ID, &v.ClientID, &v.Brand, &v.Model, &v.Plate, &v.Year, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan vehicle: %w", err)
		}
		out = append(out, &v)
	}
	return out, rows.Err()
}

// UpdateOwner reasigna el vehículo a otro cliente.
func (r *VehicleRepo) UpdateOwner(ctx context.Context, vehicleID, clientID int64) error {
	cmd, err := r.q.Exec(ctx, `UPDATE vehicles SET client_id = $2 WHERE id = $1`, vehicleID, clientID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return &domain.NotFoundError{Resource: "cliente", Key: clientID}
		}
		return fmt.Errorf("update vehicle owner: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return &domain.NotFoundError{Resource: "vehículo", Key: vehicleID}
	}
	return nil
}
