package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/comercial-api/internal/application/catalog"
	"github.com/jhoicas/comercial-api/internal/application/dto"
)

// CounterpartyHandler clientes y proveedores.
type CounterpartyHandler struct {
	uc *catalog.UseCase
}

func NewCounterpartyHandler(uc *catalog.UseCase) *CounterpartyHandler {
	return &CounterpartyHandler{uc: uc}
}

// Create godoc
// @Summary      Crear cliente o proveedor
// @Tags         counterparties
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCounterpartyRequest  true  "Contraparte"
// @Success      201   {object}  dto.CounterpartyResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/counterparties [post]
func (h *CounterpartyHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCounterpartyRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.CreateCounterparty(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID GET /api/counterparties/:id
func (h *CounterpartyHandler) GetByID(c *fiber.Ctx) error {
	id, err := pathID(c, "id", "contraparte")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.GetCounterparty(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
