package excel_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/taller-api/internal/domain/entity"
	"github.com/jhoicas/taller-api/internal/infrastructure/excel"
)

func TestExportStockSummary(t *testing.T) {
	rows := []entity.StockSummary{
		{PartID: 1, PartName: "Filtro", Reference: "F-1", TotalEntries: 10, TotalExits: 3, Balance: 7, StockQuantity: 7},
		{PartID: 2, PartName: "Bujía", Reference: "B-1", TotalEntries: 4, Balance: 4, StockQuantity: 6},
	}
	data, err := excel.NewExporter().ExportStockSummary(context.Background(), rows)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetRows("Resumen")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "Repuesto", got[0][1])
	assert.Equal(t, []string{"1", "Filtro", "F-1", "10", "3", "7", "7", "sí"}, got[1])
	assert.Equal(t, "no", got[2][7])
}
