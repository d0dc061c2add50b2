package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/comercial-api/internal/application/documents"
	"github.com/jhoicas/comercial-api/internal/application/dto"
)

// DocumentHandler ventas, compras y su anulación.
type DocumentHandler struct {
	svc *documents.Service
}

// NewDocumentHandler construye el handler.
func NewDocumentHandler(svc *documents.Service) *DocumentHandler {
	return &DocumentHandler{svc: svc}
}

// CreateSale godoc
// @Summary      Registrar venta con NCF
// @Tags         documents
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSaleRequest  true  "Venta"
// @Success      201   {object}  dto.DocumentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *DocumentHandler) CreateSale(c *fiber.Ctx) error {
	var in dto.CreateSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.svc.CreateSale(c.UserContext(), actorFrom(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// CreatePurchase godoc
// @Summary      Registrar compra
// @Tags         documents
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePurchaseRequest  true  "Compra"
// @Success      201   {object}  dto.DocumentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/purchases [post]
func (h *DocumentHandler) CreatePurchase(c *fiber.Ctx) error {
	var in dto.CreatePurchaseRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.svc.CreatePurchase(c.UserContext(), actorFrom(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener documento
// @Tags         documents
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del documento"
// @Success      200  {object}  dto.DocumentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/documents/{id} [get]
func (h *DocumentHandler) GetByID(c *fiber.Ctx) error {
	id, err := pathID(c, "id", "documento")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.svc.Get(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Void godoc
// @Summary      Anular documento
// @Tags         documents
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del documento"
// @Param        body  body  dto.VoidDocumentRequest  true  "Motivo"
// @Success      200   {object}  dto.DocumentResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/documents/{id}/void [post]
func (h *DocumentHandler) Void(c *fiber.Ctx) error {
	id, err := pathID(c, "id", "documento")
	if err != nil {
		return writeError(c, err)
	}
	var in dto.VoidDocumentRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.svc.Void(c.UserContext(), actorFrom(c), id, in.Reason)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// PDF godoc
// @Summary      Descargar comprobante impreso
// @Tags         documents
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la venta"
// @Success      200
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/documents/{id}/pdf [get]
func (h *DocumentHandler) PDF(c *fiber.Ctx) error {
	id, err := pathID(c, "id", "documento")
	if err != nil {
		return writeError(c, err)
	}
	b, filename, err := h.svc.ReceiptPDF(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(b)
}
