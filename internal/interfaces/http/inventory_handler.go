package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/taller-api/internal/application/dto"
	"github.com/jhoicas/taller-api/internal/application/inventory"
)

// InventoryHandler libro de stock: movimientos manuales, resumen y conciliación (protegido).
type InventoryHandler struct {
	ledger *inventory.LedgerUseCase
	export *inventory.ExportUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(ledger *inventory.LedgerUseCase, export *inventory.ExportUseCase) *InventoryHandler {
	return &InventoryHandler{ledger: ledger, export: export}
}

// RegisterMovement godoc
// @Summary      Registrar movimiento manual de inventario
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "part_id, direction (entry|exit), quantity, note"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [post]
func (h *InventoryHandler) RegisterMovement(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if err := bind(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.ledger.RegisterMovementFromRequest(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Summary godoc
// @Summary      Resumen del libro por repuesto
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.StockSummaryResponse
// @Router       /api/inventory/summary [get]
func (h *InventoryHandler) Summary(c *fiber.Ctx) error {
	list, err := h.ledger.StockSummary(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(inventory.ToSummaryResponse(list))
}

// SummaryXLSX GET /api/inventory/summary.xlsx
func (h *InventoryHandler) SummaryXLSX(c *fiber.Ctx) error {
	data, filename, err := h.export.ExportStockSummary(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}

// Reconcile GET /api/inventory/reconcile: repuestos con descuadre entre libro y stock.
func (h *InventoryHandler) Reconcile(c *fiber.Ctx) error {
	drift, err := h.ledger.Reconcile(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"consistent": len(drift) == 0,
		"drift":      inventory.ToSummaryResponse(drift),
	})
}

// OrderMovements GET /api/orders/:id/movements
func (h *InventoryHandler) OrderMovements(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	list, err := h.ledger.ListMovementsByOrder(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, *inventory.ToMovementResponse(m))
	}
	return c.JSON(out)
}
