package redisstore_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/taller-api/internal/domain/order"
	"github.com/jhoicas/taller-api/internal/infrastructure/redisstore"
)

func newStore(t *testing.T, ttl time.Duration) *redisstore.DraftStore {
	_ = godotenv.Load("../../../.env")
	url := os.Getenv("TEST_REDIS_URL")
	if url == "" {
		t.Skip("TEST_REDIS_URL no definido: se omite la prueba de Redis")
	}
	client, err := redisstore.NewClient(context.Background(), url)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return redisstore.NewDraftStore(client, ttl).WithPrefix("test:draft:" + uuid.NewString() + ":")
}

func TestDraftStore_GuardarCargarBorrar(t *testing.T) {
	s := newStore(t, time.Minute)
	ctx := context.Background()

	b := order.NewBuilder()
	_, err := b.AddLineItem("Filtro", decimal.RequireFromString("49.90"), 2)
	require.NoError(t, err)
	require.NoError(t, b.SetLaborCost(decimal.NewFromInt(20)))
	require.NoError(t, s.Save(ctx, "d1", b.Snapshot()))

	snap, err := s.Load(ctx, "d1")
	require.NoError(t, err)
	require.NotNil(t, snap)
	restored, err := order.Restore(*snap)
	require.NoError(t, err)
	assert.True(t, b.Total().Equal(restored.Total()))
	assert.True(t, restored.LaborSet())

	require.NoError(t, s.Delete(ctx, "d1"))
	snap, err = s.Load(ctx, "d1")
	require.NoError(t, err)
	assert.Nil(t, snap)
}

func TestDraftStore_Vencimiento(t *testing.T) {
	s := newStore(t, 50*time.Millisecond)
	ctx := context.Background()
	require.NoError(t, s.Save(ctx, "d1", order.NewBuilder().Snapshot()))
	time.Sleep(150 * time.Millisecond)
	snap, err := s.Load(ctx, "d1")
	require.NoError(t, err)
	assert.Nil(t, snap)
}
