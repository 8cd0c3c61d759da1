package serviceorder_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/taller-api/internal/application/catalog"
	"github.com/jhoicas/taller-api/internal/application/inventory"
	"github.com/jhoicas/taller-api/internal/application/serviceorder"
	"github.com/jhoicas/taller-api/internal/domain"
	"github.com/jhoicas/taller-api/internal/domain/entity"
	"github.com/jhoicas/taller-api/internal/domain/order"
	"github.com/jhoicas/taller-api/internal/infrastructure/memory"
)

type fixture struct {
	store     *memory.Store
	catalog   *catalog.UseCase
	ledger    *inventory.LedgerUseCase
	commit    *serviceorder.CommitUseCase
	query     *serviceorder.QueryUseCase
	clientID  int64
	vehicleID int64
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	s := memory.NewStore()
	ctx := context.Background()
	c := &entity.Client{Name: "Ana Pérez", Phone: "3001234567"}
	require.NoError(t, s.Clients().Create(ctx, c))
	v := &entity.Vehicle{ClientID: c.ID, Brand: "Renault", Model: "Logan", Plate: "ABC123", Year: 2015}
	require.NoError(t, s.Vehicles().Create(ctx, v))

	return &fixture{
		store:     s,
		catalog:   catalog.NewUseCase(s, s.Parts()),
		ledger:    inventory.NewLedgerUseCase(s, s.Parts(), s.Movements()),
		commit:    serviceorder.NewCommitUseCase(s, s.Clients(), s.Vehicles(), zerolog.Nop()),
		query:     serviceorder.NewQueryUseCase(s.Orders(), s.Clients(), s.Vehicles()),
		clientID:  c.ID,
		vehicleID: v.ID,
	}
}

func (f *fixture) supply(t *testing.T, name string, qty int) *entity.Part {
	t.Helper()
	res, err := f.catalog.UpsertPartOnSupply(context.Background(), catalog.SupplyInput{
		Name: name, Reference: "REF-" + name,
		PurchasePrice: decimal.NewFromInt(30), SalePrice: decimal.NewFromInt(50),
		Quantity: qty,
	})
	require.NoError(t, err)
	return res.Part
}

func (f *fixture) stock(t *testing.T, id int64) int {
	t.Helper()
	p, err := f.store.Parts().GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.StockQuantity
}

func builderWith(t *testing.T, labor int64, lines ...order.LineItem) *order.Builder {
	t.Helper()
	b := order.NewBuilder()
	for _, l := range lines {
		_, err := b.AddLineItem(l.PartName, l.UnitPrice, l.Quantity)
		require.NoError(t, err)
	}
	require.NoError(t, b.SetLaborCost(decimal.NewFromInt(labor)))
	return b
}

func line(name string, price int64, qty int) order.LineItem {
	return order.LineItem{PartName: name, UnitPrice: decimal.NewFromInt(price), Quantity: qty}
}

func TestCommit_DescuentaStockYRegistraSalida(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	part := f.supply(t, "Filtro", 10)

	b := builderWith(t, 20, line("Filtro", 50, 3))
	so, err := f.commit.Commit(ctx, b, f.clientID, f.vehicleID)
	require.NoError(t, err)

	assert.True(t, decimal.NewFromInt(170).Equal(so.Total))
	assert.True(t, decimal.NewFromInt(150).Equal(so.PartsSubtotal))
	assert.Equal(t, order.StateCommitted, b.State())
	assert.Equal(t, so.ID, b.OrderID())
	assert.Equal(t, 7, f.stock(t, part.ID))

	movs, err := f.ledger.ListMovementsByOrder(ctx, so.ID)
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementExit, movs[0].Direction)
	assert.Equal(t, 3, movs[0].Quantity)
	require.NotNil(t, movs[0].OrderID)
	assert.Equal(t, so.ID, *movs[0].OrderID)

	got, err := f.query.GetOrder(ctx, so.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana Pérez", got.ClientName)
	assert.Equal(t, "ABC123", got.VehiclePlate)
	require.Len(t, got.Lines, 1)
	assert.Equal(t, "REF-Filtro", got.Lines[0].Reference)

	drift, err := f.ledger.Reconcile(ctx)
	require.NoError(t, err)
	assert.Empty(t, drift)
}

func TestCommit_StockInsuficienteNoEscribeNada(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	part := f.supply(t, "Pastilla", 2)

	b := builderWith(t, 0, line("Pastilla", 40, 5))
	_, err := f.commit.Commit(ctx, b, f.clientID, f.vehicleID)

	var ise *domain.InsufficientStockError
	require.True(t, errors.As(err, &ise))
	assert.Equal(t, part.ID, ise.PartID)
	assert.Equal(t, 3, ise.Shortfall())
	assert.Equal(t, order.StateComposing, b.State())

	assert.Equal(t, 2, f.stock(t, part.ID))
	orders, err := f.query.ListOrders(ctx, dtoPage())
	require.NoError(t, err)
	assert.Empty(t, orders)
	movs, err := f.ledger.ListMovementsByPart(ctx, part.ID, 10, 0)
	require.NoError(t, err)
	assert.Len(t, movs, 1, "solo la entrada del suministro")
}

func TestCommit_VerificaSobreCantidadTotalPorRepuesto(t *testing.T) {
	f := newFixture(t)
	part := f.supply(t, "Bujía", 5)

	b := builderWith(t, 10, line("Bujía", 12, 3), line("Bujía", 12, 3))
	_, err := f.commit.Commit(context.Background(), b, f.clientID, f.vehicleID)

	var ise *domain.InsufficientStockError
	require.True(t, errors.As(err, &ise))
	assert.Equal(t, 6, ise.Requested)
	assert.Equal(t, 5, ise.Available)
	assert.Equal(t, 5, f.stock(t, part.ID))
}

func TestCommit_FallaEnSegundaLineaNoDejaRastro(t *testing.T) {
	f := newFixture(t)
	a := f.supply(t, "Aceite", 10)
	f.supply(t, "Refrigerante", 1)

	b := builderWith(t, 0, line("Aceite", 20, 4), line("Refrigerante", 30, 2))
	_, err := f.commit.Commit(context.Background(), b, f.clientID, f.vehicleID)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 10, f.stock(t, a.ID))
}

func TestCommit_RepuestoDesconocido(t *testing.T) {
	f := newFixture(t)
	b := builderWith(t, 0, line("Inexistente", 10, 1))
	_, err := f.commit.Commit(context.Background(), b, f.clientID, f.vehicleID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCommit_NombreAmbiguo(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	for _, ref := range []string{"A-1", "B-2"} {
		_, err := f.catalog.UpsertPartOnSupply(ctx, catalog.SupplyInput{
			Name: "Filtro", Reference: ref, SalePrice: decimal.NewFromInt(1), Quantity: 3,
		})
		require.NoError(t, err)
	}
	b := builderWith(t, 0, line("Filtro", 10, 1))
	_, err := f.commit.Commit(ctx, b, f.clientID, f.vehicleID)
	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "part_name", ve.Field)
}

func TestCommit_Precondiciones(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.supply(t, "Filtro", 10)

	other := &entity.Client{Name: "Luis"}
	require.NoError(t, f.store.Clients().Create(ctx, other))

	cases := []struct {
		name      string
		builder   func() *order.Builder
		clientID  int64
		vehicleID int64
		target    error
		field     string
	}{
		{"sin cliente", func() *order.Builder { return builderWith(t, 0, line("Filtro", 1, 1)) }, 0, f.vehicleID, domain.ErrValidation, "client_id"},
		{"sin vehículo", func() *order.Builder { return builderWith(t, 0, line("Filtro", 1, 1)) }, f.clientID, 0, domain.ErrValidation, "vehicle_id"},
		{"sin líneas", func() *order.Builder { return builderWith(t, 0) }, f.clientID, f.vehicleID, domain.ErrValidation, "line_items"},
		{"sin mano de obra", func() *order.Builder {
			b := order.NewBuilder()
			_, _ = b.AddLineItem("Filtro", decimal.NewFromInt(1), 1)
			return b
		}, f.clientID, f.vehicleID, domain.ErrValidation, "labor_cost"},
		{"cliente inexistente", func() *order.Builder { return builderWith(t, 0, line("Filtro", 1, 1)) }, 999, f.vehicleID, domain.ErrNotFound, ""},
		{"vehículo de otro cliente", func() *order.Builder { return builderWith(t, 0, line("Filtro", 1, 1)) }, other.ID, f.vehicleID, domain.ErrValidation, "vehicle_id"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.commit.Commit(ctx, tc.builder(), tc.clientID, tc.vehicleID)
			require.ErrorIs(t, err, tc.target)
			if tc.field != "" {
				var ve *domain.ValidationError
				require.True(t, errors.As(err, &ve))
				assert.Equal(t, tc.field, ve.Field)
			}
		})
	}
}

func TestCommit_SegundaConfirmacionEsConflicto(t *testing.T) {
	f := newFixture(t)
	f.supply(t, "Filtro", 10)
	b := builderWith(t, 0, line("Filtro", 50, 1))
	_, err := f.commit.Commit(context.Background(), b, f.clientID, f.vehicleID)
	require.NoError(t, err)

	_, err = f.commit.Commit(context.Background(), b, f.clientID, f.vehicleID)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestCommit_ConcurrentesNoSobrevenden(t *testing.T) {
	f := newFixture(t)
	part := f.supply(t, "Amortiguador", 5)

	var wg sync.WaitGroup
	errs := make([]error, 4)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			b := order.NewBuilder()
			_, _ = b.AddLineItem("Amortiguador", decimal.NewFromInt(100), 2)
			_ = b.SetLaborCost(decimal.Zero)
			_, errs[i] = f.commit.Commit(context.Background(), b, f.clientID, f.vehicleID)
		}(i)
	}
	wg.Wait()

	ok := 0
	for _, err := range errs {
		if err == nil {
			ok++
		} else {
			assert.ErrorIs(t, err, domain.ErrInsufficientStock)
		}
	}
	assert.Equal(t, 2, ok)
	assert.Equal(t, 1, f.stock(t, part.ID))
}

func TestReconcile_SecuenciaMixtaSinDescuadre(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	cuadra := func(paso string) {
		t.Helper()
		drift, err := f.ledger.Reconcile(ctx)
		require.NoError(t, err)
		assert.Empty(t, drift, paso)
		sum, err := f.ledger.StockSummary(ctx)
		require.NoError(t, err)
		for _, s := range sum {
			assert.Equal(t, s.StockQuantity, s.Balance, "%s: %s", paso, s.PartName)
		}
	}

	filtro := f.supply(t, "Filtro", 5)
	bujia := f.supply(t, "Bujía", 8)
	cuadra("suministro inicial")

	_, err := f.commit.Commit(ctx, builderWith(t, 20, line("Filtro", 50, 2), line("Bujía", 12, 4)), f.clientID, f.vehicleID)
	require.NoError(t, err)
	cuadra("orden confirmada")

	_, err = f.commit.Commit(ctx, builderWith(t, 0, line("Bujía", 12, 1), line("Filtro", 50, 9)), f.clientID, f.vehicleID)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 3, f.stock(t, filtro.ID))
	assert.Equal(t, 4, f.stock(t, bujia.ID))
	cuadra("orden rechazada")

	_, err = f.ledger.RegisterMovement(ctx, inventory.MovementInput{PartID: bujia.ID, Direction: entity.MovementExit, Quantity: 1, Note: "merma"})
	require.NoError(t, err)
	_, err = f.ledger.RegisterMovement(ctx, inventory.MovementInput{PartID: filtro.ID, Direction: entity.MovementEntry, Quantity: 2, Note: "devolución"})
	require.NoError(t, err)
	cuadra("movimientos manuales")

	f.supply(t, "Filtro", 4)
	cuadra("reabastecimiento")
	assert.Equal(t, 9, f.stock(t, filtro.ID))
	assert.Equal(t, 3, f.stock(t, bujia.ID))
}
