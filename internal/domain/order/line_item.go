package order

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/taller-api/internal/domain"
)

// LineItem línea de repuesto en composición. Forma fija, validada al construirse.
type LineItem struct {
	PartName  string          `json:"part_name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// NewLineItem valida precio > 0 y cantidad > 0 y calcula LineTotal = UnitPrice * Quantity.
func NewLineItem(partName string, unitPrice decimal.Decimal, quantity int) (LineItem, error) {
	name := strings.TrimSpace(partName)
	if name == "" {
		return LineItem{}, domain.NewValidationError("part_name", "requerido")
	}
	if !unitPrice.GreaterThan(decimal.Zero) {
		return LineItem{}, domain.NewValidationError("unit_price", "debe ser mayor que cero")
	}
	if !domain.InCents(unitPrice) {
		return LineItem{}, domain.NewValidationError("unit_price", "admite como máximo dos decimales")
	}
	if quantity <= 0 {
		return LineItem{}, domain.NewValidationError("quantity", "debe ser un entero mayor que cero")
	}
	return LineItem{
		PartName:  name,
		UnitPrice: unitPrice,
		Quantity:  quantity,
		LineTotal: unitPrice.Mul(decimal.NewFromInt(int64(quantity))),
	}, nil
}
