package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/taller-api/internal/domain/entity"
	"github.com/jhoicas/taller-api/internal/domain/repository"
)

var _ repository.ClientRepository = (*ClientRepo)(nil)

// ClientRepo implementación del puerto ClientRepository sobre PostgreSQL.
type ClientRepo struct {
	q Querier
}

// NewClientRepository construye el adaptador. Pasar pool o tx (Querier).
func NewClientRepository(q Querier) *ClientRepo {
	return &ClientRepo{q: q}
}

// Create persiste un nuevo cliente y completa ID y CreatedAt.
func (r *ClientRepo) Create(ctx context.Context, c *entity.Client) error {
	err := r.q.QueryRow(ctx,
		`INSERT INTO clients (name, phone, email) VALUES ($1, $2, $3) RETURNING id, created_at`,
		c.Name, c.Phone, c.Email,
	).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert client: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente por ID.
func (r *ClientRepo) GetByID(ctx context.Context, id int64) (*entity.Client, error) {
	var c entity.Client
	err := r.q.QueryRow(ctx,
		`SELECT id, name, phone, email, created_at FROM clients WHERE id = $1`, id,
	).Scan(&c.ID, &c.Name, &c.Phone, &c.Email, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get client: %w", err)
	}
	return &c, nil
}

// FindByName clientes con ese nombre exacto, por id.
func (r *ClientRepo) FindByName(ctx context.Context, name string) ([]*entity.Client, error) {
	return r.list(ctx, `SELECT id, name, phone, email, created_at FROM clients WHERE name = $1 ORDER BY id`, name)
}

// List lista clientes por nombre con paginación.
func (r *ClientRepo) List(ctx context.Context, limit, offset int) ([]*entity.Client, error) {
	return r.list(ctx, `SELECT id, name, phone, email, created_at FROM clients ORDER BY name, id LIMIT $1 OFFSET $2`, limit, offset)
}

func (r *ClientRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Client, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()
	var out []*entity.Client
	for rows.Next() {
		var c entity.Client
		if err := rows.Scan(&c.ID, &c.Name, &c.Phone, &c.Email, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}
