package entity

import "time"

// Direcciones de movimiento de inventario.
const (
	MovementEntry = "entry" // entrada (compra, devolución)
	MovementExit  = "exit"  // salida (orden de servicio, baja)
)

// StockMovement es un asiento inmutable del libro de stock.
// Quantity siempre es positiva; la dirección indica el signo.
type StockMovement struct {
	ID        int64
	PartID    int64
	Direction string // entry, exit
	Quantity  int
	OrderID   *int64 // orden de servicio asociada (solo salidas por orden)
	Note      string
	CreatedAt time.Time
}

// SignedQuantity devuelve la cantidad con signo: positiva en entradas, negativa en salidas.
func (m *StockMovement) SignedQuantity() int {
	if m.Direction == MovementExit {
		return -m.Quantity
	}
	return m.Quantity
}

// ValidDirection indica si dir es una dirección admitida.
func ValidDirection(dir string) bool {
	return dir == MovementEntry || dir == MovementExit
}
