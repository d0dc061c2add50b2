package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/comercial-api/internal/application/dto"
	"github.com/jhoicas/comercial-api/internal/application/inventory"
)

// AdjustmentHandler ajustes manuales de inventario.
type AdjustmentHandler struct {
	uc *inventory.AdjustmentUseCase
}

func NewAdjustmentHandler(uc *inventory.AdjustmentUseCase) *AdjustmentHandler {
	return &AdjustmentHandler{uc: uc}
}

// Create godoc
// @Summary      Crear ajuste de inventario (PENDING)
// @Tags         adjustments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateAdjustmentRequest  true  "Ajuste"
// @Success      201   {object}  dto.AdjustmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/adjustments [post]
func (h *AdjustmentHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateAdjustmentRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), actorFrom(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Complete POST /api/adjustments/:id/complete
func (h *AdjustmentHandler) Complete(c *fiber.Ctx) error {
	id, err := pathID(c, "id", "ajuste")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Complete(c.UserContext(), actorFrom(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Void POST /api/adjustments/:id/void
func (h *AdjustmentHandler) Void(c *fiber.Ctx) error {
	id, err := pathID(c, "id", "ajuste")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Void(c.UserContext(), actorFrom(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
