package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/taller-api/internal/application/dto"
	"github.com/jhoicas/taller-api/internal/application/serviceorder"
	"github.com/jhoicas/taller-api/internal/domain"
)

// OrderHandler borradores y órdenes de servicio confirmadas (protegido).
type OrderHandler struct {
	drafts *serviceorder.DraftUseCase
	query  *serviceorder.QueryUseCase
	pdf    *serviceorder.PDFUseCase
}

// NewOrderHandler construye el handler.
func NewOrderHandler(drafts *serviceorder.DraftUseCase, query *serviceorder.QueryUseCase, pdf *serviceorder.PDFUseCase) *OrderHandler {
	return &OrderHandler{drafts: drafts, query: query, pdf: pdf}
}

// CreateDraft POST /api/orders/drafts
func (h *OrderHandler) CreateDraft(c *fiber.Ctx) error {
	out, err := h.drafts.Create(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetDraft GET /api/orders/drafts/:id
func (h *OrderHandler) GetDraft(c *fiber.Ctx) error {
	out, err := h.drafts.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// AddItem godoc
// @Summary      Agregar línea al borrador
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID del borrador (UUID)"
// @Param        body  body  dto.AddLineItemRequest   true  "part_name, unit_price, quantity"
// @Success      200   {object}  dto.DraftResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/orders/drafts/{id}/items [post]
func (h *OrderHandler) AddItem(c *fiber.Ctx) error {
	var in dto.AddLineItemRequest
	if err := bind(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.drafts.AddItem(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// RemoveItem DELETE /api/orders/drafts/:id/items/:index
func (h *OrderHandler) RemoveItem(c *fiber.Ctx) error {
	index, err := c.ParamsInt("index")
	if err != nil {
		return respondError(c, domain.NewValidationError("index", "debe ser un entero"))
	}
	out, err := h.drafts.RemoveItem(c.UserContext(), c.Params("id"), index)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// SetLabor PUT /api/orders/drafts/:id/labor
func (h *OrderHandler) SetLabor(c *fiber.Ctx) error {
	var in dto.SetLaborRequest
	if err := bind(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.drafts.SetLabor(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Commit godoc
// @Summary      Confirmar orden de servicio
// @Description  Verifica stock de todas las líneas, guarda la orden, descuenta stock y registra las salidas en una sola transacción.
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID del borrador (UUID)"
// @Param        body  body  dto.CommitDraftRequest  true  "client_id, vehicle_id"
// @Success      201   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders/drafts/{id}/commit [post]
func (h *OrderHandler) Commit(c *fiber.Ctx) error {
	var in dto.CommitDraftRequest
	if err := bind(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.drafts.Commit(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// DiscardDraft DELETE /api/orders/drafts/:id
func (h *OrderHandler) DiscardDraft(c *fiber.Ctx) error {
	if err := h.drafts.Discard(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// List GET /api/orders?limit=&offset=
func (h *OrderHandler) List(c *fiber.Ctx) error {
	page := pageFromQuery(c)
	list, err := h.query.ListOrders(c.UserContext(), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewListResponse(list, page))
}

// GetByID GET /api/orders/:id
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.query.GetOrder(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DownloadPDF godoc
// @Summary      Descargar PDF de la orden de servicio
// @Tags         orders
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  int  true  "ID de la orden"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/pdf [get]
func (h *OrderHandler) DownloadPDF(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	data, filename, err := h.pdf.DownloadOrderPDF(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}
