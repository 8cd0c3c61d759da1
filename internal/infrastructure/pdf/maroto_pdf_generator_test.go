package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/taller-api/internal/application/serviceorder"
	"github.com/jhoicas/taller-api/internal/domain/entity"
)

func TestMoney_FormatoEspañol(t *testing.T) {
	g := NewMarotoPDFGenerator("Taller")
	assert.Equal(t, "$1.234.567,50", g.money(decimal.RequireFromString("1234567.5")))
	assert.Equal(t, "$170,00", g.money(decimal.NewFromInt(170)))
}

func TestGenerateServiceOrderPDF(t *testing.T) {
	g := NewMarotoPDFGenerator("Taller El Pistón")
	doc := serviceorder.OrderDocument{
		Order: &entity.ServiceOrder{
			ID: 12, LaborCost: decimal.NewFromInt(20), PartsSubtotal: decimal.NewFromInt(150),
			Total: decimal.NewFromInt(170), CreatedAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
			Lines: []entity.OrderLineItem{{
				PartName: "Filtro", Reference: "F-1", Quantity: 3,
				UnitPrice: decimal.NewFromInt(50), LineTotal: decimal.NewFromInt(150),
			}},
		},
		Client:  &entity.Client{Name: "Ana Pérez", Phone: "3001234567"},
		Vehicle: &entity.Vehicle{Plate: "ABC123", Brand: "Renault", Model: "Logan", Year: 2015},
	}
	out, err := g.GenerateServiceOrderPDF(context.Background(), doc)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))

	_, err = g.GenerateServiceOrderPDF(context.Background(), serviceorder.OrderDocument{})
	assert.Error(t, err)
}
