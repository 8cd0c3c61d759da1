package directory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/taller-api/internal/application/directory"
	"github.com/jhoicas/taller-api/internal/application/dto"
	"github.com/jhoicas/taller-api/internal/domain"
	"github.com/jhoicas/taller-api/internal/infrastructure/memory"
)

func newDirectory() *directory.UseCase {
	s := memory.NewStore()
	return directory.NewUseCase(s.Clients(), s.Vehicles())
}

func TestFindPhone(t *testing.T) {
	uc := newDirectory()
	ctx := context.Background()
	first, err := uc.CreateClient(ctx, dto.CreateClientRequest{Name: "Ana Pérez", Phone: "3001"})
	require.NoError(t, err)
	_, err = uc.CreateClient(ctx, dto.CreateClientRequest{Name: "Ana Pérez", Phone: "3002"})
	require.NoError(t, err)
	_, err = uc.CreateClient(ctx, dto.CreateClientRequest{Name: "Luis"})
	require.NoError(t, err)

	got, err := uc.FindPhone(ctx, " Ana Pérez ")
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ClientID)
	assert.Equal(t, "3001", got.Phone)

	_, err = uc.FindPhone(ctx, "Luis")
	assert.ErrorIs(t, err, domain.ErrNotFound, "sin teléfono registrado")
	_, err = uc.FindPhone(ctx, "Nadie")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = uc.FindPhone(ctx, "  ")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestListVehiclesForClient(t *testing.T) {
	uc := newDirectory()
	ctx := context.Background()
	c, err := uc.CreateClient(ctx, dto.CreateClientRequest{Name: "Ana"})
	require.NoError(t, err)

	list, err := uc.ListVehiclesForClient(ctx, c.ID)
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = uc.CreateVehicle(ctx, dto.CreateVehicleRequest{ClientID: c.ID, Model: "Logan", Plate: "xyz-987"})
	require.NoError(t, err)
	_, err = uc.CreateVehicle(ctx, dto.CreateVehicleRequest{ClientID: c.ID, Model: "Twingo", Plate: "abc 123"})
	require.NoError(t, err)

	list, err = uc.ListVehiclesForClient(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "ABC123", list[0].Plate)
	assert.Equal(t, "XYZ987", list[1].Plate)

	_, err = uc.ListVehiclesForClient(ctx, 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateVehicle_PlacaDuplicadaYClienteInexistente(t *testing.T) {
	uc := newDirectory()
	ctx := context.Background()
	c, err := uc.CreateClient(ctx, dto.CreateClientRequest{Name: "Ana"})
	require.NoError(t, err)
	_, err = uc.CreateVehicle(ctx, dto.CreateVehicleRequest{ClientID: c.ID, Model: "Logan", Plate: "ABC123"})
	require.NoError(t, err)

	_, err = uc.CreateVehicle(ctx, dto.CreateVehicleRequest{ClientID: c.ID, Model: "Logan", Plate: "abc-123"})
	assert.ErrorIs(t, err, domain.ErrIntegrity)
	_, err = uc.CreateVehicle(ctx, dto.CreateVehicleRequest{ClientID: 999, Model: "Logan", Plate: "QQQ111"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = uc.CreateVehicle(ctx, dto.CreateVehicleRequest{ClientID: c.ID, Model: "Logan", Plate: " - "})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestReassignVehicle(t *testing.T) {
	uc := newDirectory()
	ctx := context.Background()
	ana, _ := uc.CreateClient(ctx, dto.CreateClientRequest{Name: "Ana"})
	luis, _ := uc.CreateClient(ctx, dto.CreateClientRequest{Name: "Luis"})
	v, err := uc.CreateVehicle(ctx, dto.CreateVehicleRequest{ClientID: ana.ID, Model: "Logan", Plate: "ABC123"})
	require.NoError(t, err)

	got, err := uc.ReassignVehicle(ctx, v.ID, luis.ID)
	require.NoError(t, err)
	assert.Equal(t, luis.ID, got.ClientID)

	list, err := uc.ListVehiclesForClient(ctx, ana.ID)
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = uc.ReassignVehicle(ctx, 999, luis.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = uc.ReassignVehicle(ctx, v.ID, 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListClients_Paginado(t *testing.T) {
	uc := newDirectory()
	ctx := context.Background()
	for _, n := range []string{"Carla", "Ana", "Beto"} {
		_, err := uc.CreateClient(ctx, dto.CreateClientRequest{Name: n})
		require.NoError(t, err)
	}
	list, err := uc.ListClients(ctx, dto.PageRequest{Limit: 2})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Ana", list[0].Name)
	assert.Equal(t, "Beto", list[1].Name)
}

func TestNormalizePlate(t *testing.T) {
	assert.Equal(t, "ABC123", directory.NormalizePlate(" abc-123 "))
	assert.Equal(t, "ABC123", directory.NormalizePlate("ABC 123"))
}
