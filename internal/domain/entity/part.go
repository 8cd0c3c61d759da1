package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Part representa un repuesto del inventario del taller.
// Su identidad de negocio es el par (Name, Reference); StockQuantity nunca es negativo
// y solo cambia mediante movimientos de stock.
type Part struct {
	ID            int64
	Name          string
	Reference     string // código del fabricante o referencia interna
	Manufacturer  string
	Description   string
	PurchasePrice decimal.Decimal // precio de compra
	SalePrice     decimal.Decimal // precio de venta sugerido
	StockQuantity int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
