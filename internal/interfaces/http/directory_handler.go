package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/taller-api/internal/application/directory"
	"github.com/jhoicas/taller-api/internal/application/dto"
)

// DirectoryHandler clientes y vehículos (protegido).
type DirectoryHandler struct {
	uc *directory.UseCase
}

// NewDirectoryHandler construye el handler.
func NewDirectoryHandler(uc *directory.UseCase) *DirectoryHandler {
	return &DirectoryHandler{uc: uc}
}

// ListClients GET /api/clients?limit=&offset=
func (h *DirectoryHandler) ListClients(c *fiber.Ctx) error {
	page := pageFromQuery(c)
	list, err := h.uc.ListClients(c.UserContext(), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewListResponse(list, page))
}

// CreateClient POST /api/clients
func (h *DirectoryHandler) CreateClient(c *fiber.Ctx) error {
	var in dto.CreateClientRequest
	if err := bind(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.CreateClient(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetClient GET /api/clients/:id
func (h *DirectoryHandler) GetClient(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.GetClient(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// FindPhone godoc
// @Summary      Teléfono de un cliente por nombre
// @Tags         clients
// @Security     Bearer
// @Produce      json
// @Param        name  query  string  true  "Nombre exacto del cliente"
// @Success      200   {object}  dto.PhoneResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/clients/phone [get]
func (h *DirectoryHandler) FindPhone(c *fiber.Ctx) error {
	out, err := h.uc.FindPhone(c.UserContext(), c.Query("name"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListVehicles GET /api/clients/:id/vehicles
func (h *DirectoryHandler) ListVehicles(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.ListVehiclesForClient(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CreateVehicle POST /api/vehicles
func (h *DirectoryHandler) CreateVehicle(c *fiber.Ctx) error {
	var in dto.CreateVehicleRequest
	if err := bind(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.CreateVehicle(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ReassignVehicle PUT /api/vehicles/:id/owner
func (h *DirectoryHandler) ReassignVehicle(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.ReassignVehicleRequest
	if err := bind(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.ReassignVehicle(c.UserContext(), id, in.ClientID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
