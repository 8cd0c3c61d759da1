package entity

import "github.com/shopspring/decimal"

// OrderLineItem representa una línea de repuesto consumido en una orden de servicio.
type OrderLineItem struct {
	ID        int64
	OrderID   int64
	PartID    int64
	PartName  string // solo lectura, resuelto desde parts
	Reference string // solo lectura, resuelto desde parts
	UnitPrice decimal.Decimal
	Quantity  int
	LineTotal decimal.Decimal // UnitPrice * Quantity
}
