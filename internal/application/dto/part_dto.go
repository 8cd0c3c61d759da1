package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SupplyPartRequest entrada de suministro (compra) de un repuesto.
// Precios y cantidad llegan como texto del formulario; el caso de uso los valida
// (numéricos, no negativos) antes de cualquier escritura.
type SupplyPartRequest struct {
	Name          string `json:"name" validate:"required,max=200"`
	Reference     string `json:"reference" validate:"required,max=100"`
	Manufacturer  string `json:"manufacturer" validate:"omitempty,max=200"`
	Description   string `json:"description"`
	PurchasePrice string `json:"purchase_price" validate:"required"`
	SalePrice     string `json:"sale_price" validate:"required"`
	Quantity      string `json:"quantity" validate:"required"`
}

// PartResponse salida de un repuesto.
type PartResponse struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	Reference     string          `json:"reference"`
	Manufacturer  string          `json:"manufacturer"`
	Description   string          `json:"description"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	SalePrice     decimal.Decimal `json:"sale_price"`
	StockQuantity int             `json:"stock_quantity"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// SupplyPartResponse resultado del suministro: repuesto resultante y movimiento de entrada.
type SupplyPartResponse struct {
	Part       PartResponse `json:"part"`
	Created    bool         `json:"created"`
	MovementID int64        `json:"movement_id"`
}

// PartListResponse lista paginada de repuestos.
type PartListResponse struct {
	Items []PartResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
