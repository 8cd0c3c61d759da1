package repository

import (
	"context"

	"github.com/jhoicas/taller-api/internal/domain/entity"
)

// PartRepository define el puerto de persistencia para Part (DIP).
// Los Get* devuelven (nil, nil) cuando el repuesto no existe.
type PartRepository interface {
	// UpsertOnSupply crea el repuesto con qty como stock inicial o, si ya existe el par
	// (Name, Reference), suma qty a su stock. Sobrescribe part con la fila almacenada
	// (precios existentes incluidos).
	UpsertOnSupply(ctx context.Context, part *entity.Part, qty int) (created bool, err error)
	GetByID(ctx context.Context, id int64) (*entity.Part, error)
	// GetForUpdate bloquea la fila hasta el fin de la transacción (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id int64) (*entity.Part, error)
	GetByIdentity(ctx context.Context, name, reference string) (*entity.Part, error)
	FindByName(ctx context.Context, name string) ([]*entity.Part, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Part, error)
	// AdjustStock aplica delta con signo y devuelve el stock resultante.
	// Falla con IntegrityError si el resultado fuera negativo y NotFoundError si no existe.
	AdjustStock(ctx context.Context, id int64, delta int) (int, error)
}
