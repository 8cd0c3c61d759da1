package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ServiceOrder representa la cabecera de una orden de servicio (trabajo sobre un vehículo).
// Se crea atómicamente con sus líneas y las salidas de stock; luego es inmutable.
type ServiceOrder struct {
	ID            int64
	ClientID      int64
	VehicleID     int64
	LaborCost     decimal.Decimal // mano de obra
	PartsSubtotal decimal.Decimal // Σ(unit_price * quantity)
	Total         decimal.Decimal // PartsSubtotal + LaborCost
	CreatedAt     time.Time
	Lines         []OrderLineItem
}
