package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/taller-api/internal/application/catalog"
	"github.com/jhoicas/taller-api/internal/application/dto"
	"github.com/jhoicas/taller-api/internal/application/inventory"
)

// PartHandler catálogo de repuestos (protegido).
type PartHandler struct {
	catalog *catalog.UseCase
	ledger  *inventory.LedgerUseCase
}

// NewPartHandler construye el handler.
func NewPartHandler(catalog *catalog.UseCase, ledger *inventory.LedgerUseCase) *PartHandler {
	return &PartHandler{catalog: catalog, ledger: ledger}
}

// Supply godoc
// @Summary      Registrar suministro de repuesto
// @Description  Crea el repuesto (nombre, referencia) o suma la cantidad al existente y registra la entrada.
// @Tags         parts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SupplyPartRequest  true  "Datos del suministro (precios y cantidad como texto)"
// @Success      201   {object}  dto.SupplyPartResponse
// @Success      200   {object}  dto.SupplyPartResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/parts/supply [post]
func (h *PartHandler) Supply(c *fiber.Ctx) error {
	var in dto.SupplyPartRequest
	if err := bind(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.catalog.SupplyFromRequest(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	status := fiber.StatusOK
	if out.Created {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(out)
}

// GetByID godoc
// @Summary      Obtener repuesto por ID
// @Tags         parts
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del repuesto"
// @Success      200  {object}  dto.PartResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/parts/{id} [get]
func (h *PartHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.catalog.GetPart(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List GET /api/parts?limit=&offset=
func (h *PartHandler) List(c *fiber.Ctx) error {
	out, err := h.catalog.ListParts(c.UserContext(), pageFromQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Availability GET /api/parts/:id/availability?quantity=
func (h *PartHandler) Availability(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	qty := c.QueryInt("quantity", 1)
	ok, err := h.ledger.Availability(c.UserContext(), id, qty)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.AvailabilityResponse{PartID: id, Quantity: qty, Sufficient: ok})
}

// Movements GET /api/parts/:id/movements?limit=&offset=
func (h *PartHandler) Movements(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	page := pageFromQuery(c)
	list, err := h.ledger.ListMovementsByPart(c.UserContext(), id, page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, *inventory.ToMovementResponse(m))
	}
	return c.JSON(dto.NewListResponse(out, page))
}
