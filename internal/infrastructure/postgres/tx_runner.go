package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/taller-api/internal/application/inventory"
	"github.com/jhoicas/taller-api/internal/application/serviceorder"
	"github.com/jhoicas/taller-api/internal/domain/repository"
)

var _ inventory.TxRunner = (*TxRunner)(nil)
var _ serviceorder.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// inTx abre la transacción, ejecuta fn y hace Commit; cualquier error provoca Rollback.
func (r *TxRunner) inTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Run ejecuta fn con repos de repuestos y movimientos atados a la tx.
func (r *TxRunner) Run(ctx context.Context, fn func(
	partRepo repository.PartRepository,
	movRepo repository.StockMovementRepository,
) error) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		return fn(NewPartRepository(tx), NewStockMovementRepository(tx))
	})
}

// RunOrder ejecuta fn con repos de stock y órdenes atados a la tx (confirmación de órdenes).
func (r *TxRunner) RunOrder(ctx context.Context, fn func(
	partRepo repository.PartRepository,
	movRepo repository.StockMovementRepository,
	orderRepo repository.ServiceOrderRepository,
) error) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		return fn(NewPartRepository(tx), NewStockMovementRepository(tx), NewServiceOrderRepository(tx))
	})
}
