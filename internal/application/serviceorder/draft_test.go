package serviceorder_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/taller-api/internal/application/dto"
	"github.com/jhoicas/taller-api/internal/application/serviceorder"
	"github.com/jhoicas/taller-api/internal/domain"
	"github.com/jhoicas/taller-api/internal/domain/order"
	"github.com/jhoicas/taller-api/internal/infrastructure/memory"
)

func dtoPage() dto.PageRequest { return dto.PageRequest{Limit: 20} }

func newDrafts(f *fixture) *serviceorder.DraftUseCase {
	return serviceorder.NewDraftUseCase(memory.NewDraftStore(time.Hour), f.commit, f.query)
}

func TestDraft_ComponerYConfirmar(t *testing.T) {
	f := newFixture(t)
	part := f.supply(t, "Filtro", 10)
	uc := newDrafts(f)
	ctx := context.Background()

	d, err := uc.Create(ctx)
	require.NoError(t, err)
	assert.Equal(t, string(order.StateEmpty), d.State)

	d, err = uc.AddItem(ctx, d.ID, dto.AddLineItemRequest{PartName: "Filtro", UnitPrice: decimal.NewFromInt(50), Quantity: 3})
	require.NoError(t, err)
	d, err = uc.AddItem(ctx, d.ID, dto.AddLineItemRequest{PartName: "Filtro", UnitPrice: decimal.NewFromInt(50), Quantity: 1})
	require.NoError(t, err)
	require.Len(t, d.Items, 2)

	d, err = uc.RemoveItem(ctx, d.ID, 1)
	require.NoError(t, err)
	require.Len(t, d.Items, 1)

	d, err = uc.SetLabor(ctx, d.ID, dto.SetLaborRequest{LaborCost: decimal.NewFromInt(20)})
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(170).Equal(d.Total))

	o, err := uc.Commit(ctx, d.ID, dto.CommitDraftRequest{ClientID: f.clientID, VehicleID: f.vehicleID})
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(170).Equal(o.Total))
	assert.Equal(t, 7, f.stock(t, part.ID))

	got, err := uc.Get(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, string(order.StateCommitted), got.State)

	_, err = uc.Commit(ctx, d.ID, dto.CommitDraftRequest{ClientID: f.clientID, VehicleID: f.vehicleID})
	assert.ErrorIs(t, err, domain.ErrConflict)
	_, err = uc.AddItem(ctx, d.ID, dto.AddLineItemRequest{PartName: "Filtro", UnitPrice: decimal.NewFromInt(50), Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, 7, f.stock(t, part.ID))
}

func TestDraft_ErrorNoModificaBorrador(t *testing.T) {
	f := newFixture(t)
	uc := newDrafts(f)
	ctx := context.Background()

	d, err := uc.Create(ctx)
	require.NoError(t, err)
	d, err = uc.AddItem(ctx, d.ID, dto.AddLineItemRequest{PartName: "Filtro", UnitPrice: decimal.NewFromInt(50), Quantity: 1})
	require.NoError(t, err)

	_, err = uc.AddItem(ctx, d.ID, dto.AddLineItemRequest{PartName: "Filtro", UnitPrice: decimal.Zero, Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = uc.RemoveItem(ctx, d.ID, 5)
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = uc.SetLabor(ctx, d.ID, dto.SetLaborRequest{LaborCost: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, domain.ErrValidation)

	got, err := uc.Get(ctx, d.ID)
	require.NoError(t, err)
	assert.Len(t, got.Items, 1)
	assert.False(t, got.LaborSet)
}

func TestDraft_ConfirmacionFallidaConservaBorrador(t *testing.T) {
	f := newFixture(t)
	f.supply(t, "Pastilla", 2)
	uc := newDrafts(f)
	ctx := context.Background()

	d, err := uc.Create(ctx)
	require.NoError(t, err)
	_, err = uc.AddItem(ctx, d.ID, dto.AddLineItemRequest{PartName: "Pastilla", UnitPrice: decimal.NewFromInt(40), Quantity: 5})
	require.NoError(t, err)
	_, err = uc.SetLabor(ctx, d.ID, dto.SetLaborRequest{LaborCost: decimal.Zero})
	require.NoError(t, err)

	_, err = uc.Commit(ctx, d.ID, dto.CommitDraftRequest{ClientID: f.clientID, VehicleID: f.vehicleID})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	got, err := uc.Get(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, string(order.StateComposing), got.State)
	assert.Len(t, got.Items, 1)
}

func TestDraft_IdInvalidoODesconocido(t *testing.T) {
	f := newFixture(t)
	uc := newDrafts(f)
	ctx := context.Background()

	_, err := uc.Get(ctx, "no-es-uuid")
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = uc.Get(ctx, uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDraft_DescartarEsIdempotente(t *testing.T) {
	f := newFixture(t)
	uc := newDrafts(f)
	ctx := context.Background()

	d, err := uc.Create(ctx)
	require.NoError(t, err)
	require.NoError(t, uc.Discard(ctx, d.ID))
	require.NoError(t, uc.Discard(ctx, d.ID))
	_, err = uc.Get(ctx, d.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// committedSaveFails falla al guardar un borrador ya confirmado.
type committedSaveFails struct {
	*memory.DraftStore
}

func (s committedSaveFails) Save(ctx context.Context, id string, snap order.Snapshot) error {
	if snap.State == order.StateCommitted {
		return errors.New("redis: connection refused")
	}
	return s.DraftStore.Save(ctx, id, snap)
}

func TestDraft_ConfirmadaAunqueFalleGuardarBorrador(t *testing.T) {
	f := newFixture(t)
	part := f.supply(t, "Filtro", 10)
	uc := serviceorder.NewDraftUseCase(committedSaveFails{memory.NewDraftStore(time.Hour)}, f.commit, f.query)
	ctx := context.Background()

	d, err := uc.Create(ctx)
	require.NoError(t, err)
	_, err = uc.AddItem(ctx, d.ID, dto.AddLineItemRequest{PartName: "Filtro", UnitPrice: decimal.NewFromInt(50), Quantity: 2})
	require.NoError(t, err)
	_, err = uc.SetLabor(ctx, d.ID, dto.SetLaborRequest{LaborCost: decimal.NewFromInt(10)})
	require.NoError(t, err)

	o, err := uc.Commit(ctx, d.ID, dto.CommitDraftRequest{ClientID: f.clientID, VehicleID: f.vehicleID})
	require.NoError(t, err)
	require.NotNil(t, o)
	assert.True(t, decimal.NewFromInt(110).Equal(o.Total))

	// el reintento no duplica la orden
	_, err = uc.Commit(ctx, d.ID, dto.CommitDraftRequest{ClientID: f.clientID, VehicleID: f.vehicleID})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	orders, err := f.query.ListOrders(ctx, dtoPage())
	require.NoError(t, err)
	assert.Len(t, orders, 1)
	assert.Equal(t, 8, f.stock(t, part.ID))
}

func TestDraft_NoRetieneMutexPorBorrador(t *testing.T) {
	f := newFixture(t)
	f.supply(t, "Filtro", 100)
	drafts := memory.NewDraftStore(20 * time.Millisecond)
	uc := serviceorder.NewDraftUseCase(drafts, f.commit, f.query)
	ctx := context.Background()

	d, err := uc.Create(ctx)
	require.NoError(t, err)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = uc.AddItem(ctx, d.ID, dto.AddLineItemRequest{PartName: "Filtro", UnitPrice: decimal.NewFromInt(5), Quantity: 1})
		}()
	}
	wg.Wait()
	assert.Equal(t, 0, serviceorder.ActiveDraftLocks(uc))

	// id inválido, desconocido y vencido
	_, err = uc.AddItem(ctx, "no-es-uuid", dto.AddLineItemRequest{PartName: "Filtro", UnitPrice: decimal.NewFromInt(5), Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = uc.SetLabor(ctx, uuid.NewString(), dto.SetLaborRequest{LaborCost: decimal.Zero})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	time.Sleep(40 * time.Millisecond)
	drafts.Purge()
	_, err = uc.Commit(ctx, d.ID, dto.CommitDraftRequest{ClientID: f.clientID, VehicleID: f.vehicleID})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 0, serviceorder.ActiveDraftLocks(uc))
}
