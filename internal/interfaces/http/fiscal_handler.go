package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/comercial-api/internal/application/dto"
	"github.com/jhoicas/comercial-api/internal/application/fiscal"
)

// FiscalHandler secuencias NCF y validación de números fiscales.
type FiscalHandler struct {
	uc *fiscal.SequenceUseCase
}

func NewFiscalHandler(uc *fiscal.SequenceUseCase) *FiscalHandler {
	return &FiscalHandler{uc: uc}
}

// CreateSequence godoc
// @Summary      Registrar rango NCF autorizado
// @Tags         fiscal
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSequenceRequest  true  "Secuencia"
// @Success      201   {object}  dto.SequenceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/fiscal-sequences [post]
func (h *FiscalHandler) CreateSequence(c *fiber.Ctx) error {
	var in dto.CreateSequenceRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), actorFrom(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListSequences GET /api/fiscal-sequences
func (h *FiscalHandler) ListSequences(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Deactivate POST /api/fiscal-sequences/:id/deactivate
func (h *FiscalHandler) Deactivate(c *fiber.Ctx) error {
	id, err := pathID(c, "id", "secuencia")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Deactivate(c.UserContext(), actorFrom(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Validate godoc
// @Summary      Validar un NCF (formato, tipo y secuencia)
// @Tags         fiscal
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ValidateFiscalNumberRequest  true  "NCF"
// @Success      200   {object}  dto.ValidateFiscalNumberResponse
// @Router       /api/fiscal-numbers/validate [post]
func (h *FiscalHandler) Validate(c *fiber.Ctx) error {
	var in dto.ValidateFiscalNumberRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	return c.JSON(fiscal.ValidateNumber(in))
}
