package dto

import "time"

// RegisterMovementRequest body para POST /api/inventory/movements (movimiento manual).
type RegisterMovementRequest struct {
	PartID    int64  `json:"part_id" validate:"required,gt=0"`
	Direction string `json:"direction" validate:"required,oneof=entry exit"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
	Note      string `json:"note,omitempty" validate:"omitempty,max=500"`
}

// MovementResponse asiento del libro de stock.
type MovementResponse struct {
	ID        int64     `json:"id"`
	PartID    int64     `json:"part_id"`
	Direction string    `json:"direction"`
	Quantity  int       `json:"quantity"`
	OrderID   *int64    `json:"order_id,omitempty"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// StockSummaryResponse fila del resumen del libro por repuesto.
type StockSummaryResponse struct {
	PartID        int64  `json:"part_id"`
	PartName      string `json:"part_name"`
	Reference     string `json:"reference"`
	TotalEntries  int64  `json:"total_entries"`
	TotalExits    int64  `json:"total_exits"`
	Balance       int64  `json:"balance"`        // entradas - salidas
	StockQuantity int64  `json:"stock_quantity"` // stock almacenado en parts
	Consistent    bool   `json:"consistent"`
}

// AvailabilityResponse respuesta de disponibilidad de stock.
type AvailabilityResponse struct {
	PartID     int64 `json:"part_id"`
	Quantity   int   `json:"quantity"`
	Sufficient bool  `json:"sufficient"`
}
