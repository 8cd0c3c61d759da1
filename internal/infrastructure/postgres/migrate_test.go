package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrations_OrdenadasYConChecksum(t *testing.T) {
	ms, err := Migrations()
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(ms), 2)

	assert.Equal(t, "001", ms[0].Version)
	assert.Equal(t, "002", ms[1].Version)
	for _, m := range ms {
		assert.Len(t, m.Checksum, 64)
		assert.NotEmpty(t, m.SQL)
	}
	assert.Contains(t, ms[0].SQL, "parts_stock_quantity_check")
}
