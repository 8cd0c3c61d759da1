package scheduler_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/taller-api/internal/domain/entity"
	"github.com/jhoicas/taller-api/internal/scheduler"
)

type fakeReconciler struct {
	drift []entity.StockSummary
	err   error
}

func (f fakeReconciler) Reconcile(context.Context) ([]entity.StockSummary, error) {
	return f.drift, f.err
}

type fakePurger struct{ calls int }

func (f *fakePurger) Purge() int { f.calls++; return 2 }

func TestRunReconcile_RegistraDescuadres(t *testing.T) {
	var buf bytes.Buffer
	s := scheduler.New(fakeReconciler{drift: []entity.StockSummary{
		{PartID: 4, PartName: "Filtro", Balance: 5, StockQuantity: 7},
	}}, nil, zerolog.New(&buf))

	s.RunReconcile()
	assert.Contains(t, buf.String(), "descuadre entre libro y stock")
	assert.Contains(t, buf.String(), `"drift":2`)
}

func TestRunReconcile_Error(t *testing.T) {
	var buf bytes.Buffer
	s := scheduler.New(fakeReconciler{err: errors.New("db caída")}, nil, zerolog.New(&buf))
	s.RunReconcile()
	assert.Contains(t, buf.String(), "conciliación de stock fallida")
}

func TestStart_ExpresionInvalida(t *testing.T) {
	s := scheduler.New(fakeReconciler{}, nil, zerolog.Nop())
	assert.Error(t, s.Start("no es cron"))
}

func TestStartStop(t *testing.T) {
	p := &fakePurger{}
	s := scheduler.New(fakeReconciler{}, p, zerolog.Nop())
	require.NoError(t, s.Start("0 3 * * *"))
	s.Stop()
	s.RunPurge()
	assert.Equal(t, 1, p.calls)
}
