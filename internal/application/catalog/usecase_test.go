package catalog_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/taller-api/internal/application/catalog"
	"github.com/jhoicas/taller-api/internal/application/dto"
	"github.com/jhoicas/taller-api/internal/domain"
	"github.com/jhoicas/taller-api/internal/domain/entity"
	"github.com/jhoicas/taller-api/internal/infrastructure/memory"
)

func newCatalog() (*catalog.UseCase, *memory.Store) {
	s := memory.NewStore()
	return catalog.NewUseCase(s, s.Parts()), s
}

func TestUpsertPartOnSupply_CreaYLuegoSuma(t *testing.T) {
	uc, s := newCatalog()
	ctx := context.Background()
	in := catalog.SupplyInput{
		Name: "Filtro de aceite", Reference: "FO-100", Manufacturer: "Bosch",
		PurchasePrice: decimal.NewFromInt(30), SalePrice: decimal.NewFromInt(50), Quantity: 4,
	}
	first, err := uc.UpsertPartOnSupply(ctx, in)
	require.NoError(t, err)
	assert.True(t, first.Created)
	assert.Equal(t, 4, first.Part.StockQuantity)

	in.Name = "  Filtro de aceite "
	in.Quantity = 6
	in.SalePrice = decimal.NewFromInt(80)
	second, err := uc.UpsertPartOnSupply(ctx, in)
	require.NoError(t, err)
	assert.False(t, second.Created)
	assert.Equal(t, first.Part.ID, second.Part.ID)
	assert.Equal(t, 10, second.Part.StockQuantity)
	assert.True(t, decimal.NewFromInt(50).Equal(second.Part.SalePrice), "el precio existente no cambia")

	movs, err := s.Movements().ListByPart(ctx, first.Part.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, movs, 2)
	for _, m := range movs {
		assert.Equal(t, entity.MovementEntry, m.Direction)
	}
}

func TestUpsertPartOnSupply_NormalizaUnicode(t *testing.T) {
	uc, _ := newCatalog()
	ctx := context.Background()
	// "Bujía" compuesta (NFC) y descompuesta (NFD)
	a, err := uc.UpsertPartOnSupply(ctx, catalog.SupplyInput{Name: "Bujía", Reference: "NGK", SalePrice: decimal.NewFromInt(1), Quantity: 1})
	require.NoError(t, err)
	b, err := uc.UpsertPartOnSupply(ctx, catalog.SupplyInput{Name: "Buji\u0301a", Reference: "NGK", SalePrice: decimal.NewFromInt(1), Quantity: 1})
	require.NoError(t, err)
	assert.Equal(t, a.Part.ID, b.Part.ID)
	assert.Equal(t, 2, b.Part.StockQuantity)
}

func TestUpsertPartOnSupply_ValidaAntesDeEscribir(t *testing.T) {
	uc, s := newCatalog()
	ctx := context.Background()
	cases := []struct {
		name  string
		in    catalog.SupplyInput
		field string
	}{
		{"sin nombre", catalog.SupplyInput{Reference: "R", Quantity: 1}, "name"},
		{"sin referencia", catalog.SupplyInput{Name: "N", Quantity: 1}, "reference"},
		{"cantidad cero", catalog.SupplyInput{Name: "N", Reference: "R"}, "quantity"},
		{"precio negativo", catalog.SupplyInput{Name: "N", Reference: "R", Quantity: 1, SalePrice: decimal.NewFromInt(-1)}, "sale_price"},
		{"venta con fracción de centavo", catalog.SupplyInput{Name: "N", Reference: "R", Quantity: 1, SalePrice: decimal.RequireFromString("0.004")}, "sale_price"},
		{"compra con fracción de centavo", catalog.SupplyInput{Name: "N", Reference: "R", Quantity: 1, PurchasePrice: decimal.RequireFromString("10.125")}, "purchase_price"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.UpsertPartOnSupply(ctx, tc.in)
			var ve *domain.ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, tc.field, ve.Field)
		})
	}
	list, err := s.Parts().List(ctx, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestSupplyFromRequest_InterpretaTexto(t *testing.T) {
	uc, _ := newCatalog()
	ctx := context.Background()
	resp, err := uc.SupplyFromRequest(ctx, dto.SupplyPartRequest{
		Name: "Pastillas", Reference: "PF-1", PurchasePrice: "12,50", SalePrice: "20.00", Quantity: " 3 ",
	})
	require.NoError(t, err)
	assert.True(t, resp.Created)
	assert.True(t, decimal.RequireFromString("12.5").Equal(resp.Part.PurchasePrice))
	assert.Equal(t, 3, resp.Part.StockQuantity)
	assert.NotZero(t, resp.MovementID)

	_, err = uc.SupplyFromRequest(ctx, dto.SupplyPartRequest{
		Name: "Pastillas", Reference: "PF-1", PurchasePrice: "abc", SalePrice: "1", Quantity: "1",
	})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = uc.SupplyFromRequest(ctx, dto.SupplyPartRequest{
		Name: "Pastillas", Reference: "PF-1", PurchasePrice: "1", SalePrice: "1", Quantity: "dos",
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestResolvePartID(t *testing.T) {
	uc, _ := newCatalog()
	ctx := context.Background()
	res, err := uc.UpsertPartOnSupply(ctx, catalog.SupplyInput{Name: "Correa", Reference: "C-1", SalePrice: decimal.NewFromInt(1), Quantity: 1})
	require.NoError(t, err)

	id, err := uc.ResolvePartID(ctx, " Correa ")
	require.NoError(t, err)
	assert.Equal(t, res.Part.ID, id)

	_, err = uc.ResolvePartID(ctx, "Radiador")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.UpsertPartOnSupply(ctx, catalog.SupplyInput{Name: "Correa", Reference: "C-2", SalePrice: decimal.NewFromInt(1), Quantity: 1})
	require.NoError(t, err)
	_, err = uc.ResolvePartID(ctx, "Correa")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestGetPart_NoExiste(t *testing.T) {
	uc, _ := newCatalog()
	_, err := uc.GetPart(context.Background(), 7)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
