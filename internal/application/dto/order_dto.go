package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AddLineItemRequest body para POST /api/orders/drafts/:id/items.
type AddLineItemRequest struct {
	PartName  string          `json:"part_name" validate:"required"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
}

// SetLaborRequest body para PUT /api/orders/drafts/:id/labor.
type SetLaborRequest struct {
	LaborCost decimal.Decimal `json:"labor_cost"`
}

// CommitDraftRequest body para POST /api/orders/drafts/:id/commit.
type CommitDraftRequest struct {
	ClientID  int64 `json:"client_id"`
	VehicleID int64 `json:"vehicle_id"`
}

// DraftLineResponse línea de un borrador.
type DraftLineResponse struct {
	Index     int             `json:"index"`
	PartName  string          `json:"part_name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// DraftResponse estado de un borrador de orden de servicio.
type DraftResponse struct {
	ID            string              `json:"id"`
	State         string              `json:"state"`
	Items         []DraftLineResponse `json:"items"`
	LaborCost     decimal.Decimal     `json:"labor_cost"`
	LaborSet      bool                `json:"labor_set"`
	PartsSubtotal decimal.Decimal     `json:"parts_subtotal"`
	Total         decimal.Decimal     `json:"total"`
}

// OrderLineResponse línea de una orden confirmada.
type OrderLineResponse struct {
	ID        int64           `json:"id"`
	PartID    int64           `json:"part_id"`
	PartName  string          `json:"part_name"`
	Reference string          `json:"reference"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// OrderResponse orden de servicio con detalle para GET /api/orders/:id.
type OrderResponse struct {
	ID            int64               `json:"id"`
	ClientID      int64               `json:"client_id"`
	ClientName    string              `json:"client_name,omitempty"`
	VehicleID     int64               `json:"vehicle_id"`
	VehiclePlate  string              `json:"vehicle_plate,omitempty"`
	LaborCost     decimal.Decimal     `json:"labor_cost"`
	PartsSubtotal decimal.Decimal     `json:"parts_subtotal"`
	Total         decimal.Decimal     `json:"total"`
	CreatedAt     time.Time           `json:"created_at"`
	Lines         []OrderLineResponse `json:"lines"`
}
