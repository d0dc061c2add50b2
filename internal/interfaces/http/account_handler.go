package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/comercial-api/internal/application/accounts"
	"github.com/jhoicas/comercial-api/internal/application/dto"
	"github.com/jhoicas/comercial-api/internal/application/payments"
	"github.com/jhoicas/comercial-api/internal/domain/entity"
)

// AccountHandler cuentas por cobrar/pagar y sus pagos.
type AccountHandler struct {
	engine    *accounts.Engine
	processor *payments.Processor
}

// NewAccountHandler construye el handler.
func NewAccountHandler(engine *accounts.Engine, processor *payments.Processor) *AccountHandler {
	return &AccountHandler{engine: engine, processor: processor}
}

// accountRef acepta "receivable"/"payable" en cualquier caja.
func accountRef(c *fiber.Ctx) (entity.AccountRef, error) {
	id, err := pathID(c, "id", "cuenta")
	if err != nil {
		return entity.AccountRef{}, err
	}
	return entity.AccountRef{Kind: strings.ToUpper(c.Params("kind")), ID: id}, nil
}

// Get godoc
// @Summary      Obtener cuenta
// @Tags         accounts
// @Security     Bearer
// @Produce      json
// @Param        kind  path  string  true  "receivable | payable"
// @Param        id    path  string  true  "ID de la cuenta"
// @Success      200   {object}  dto.AccountResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/accounts/{kind}/{id} [get]
func (h *AccountHandler) Get(c *fiber.Ctx) error {
	ref, err := accountRef(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.engine.Get(c.UserContext(), ref)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Payments godoc
// @Summary      Listar pagos de una cuenta
// @Tags         accounts
// @Security     Bearer
// @Produce      json
// @Param        kind  path  string  true  "receivable | payable"
// @Param        id    path  string  true  "ID de la cuenta"
// @Success      200   {array}   dto.PaymentResponse
// @Router       /api/accounts/{kind}/{id}/payments [get]
func (h *AccountHandler) Payments(c *fiber.Ctx) error {
	ref, err := accountRef(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.engine.Payments(c.UserContext(), ref)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Pay godoc
// @Summary      Aplicar pago
// @Tags         accounts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        kind  path  string  true  "receivable | payable"
// @Param        id    path  string  true  "ID de la cuenta"
// @Param        body  body  dto.PayRequest  true  "Pago"
// @Success      201   {object}  dto.PaymentResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/accounts/{kind}/{id}/payments [post]
func (h *AccountHandler) Pay(c *fiber.Ctx) error {
	ref, err := accountRef(c)
	if err != nil {
		return writeError(c, err)
	}
	var in dto.PayRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.processor.Pay(c.UserContext(), actorFrom(c), ref, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// VoidPayment godoc
// @Summary      Anular pago
// @Tags         accounts
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del pago"
// @Success      200  {object}  dto.PaymentResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/payments/{id}/void [post]
func (h *AccountHandler) VoidPayment(c *fiber.Ctx) error {
	id, err := pathID(c, "id", "pago")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.processor.VoidPayment(c.UserContext(), actorFrom(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetPayment GET /api/payments/:id
func (h *AccountHandler) GetPayment(c *fiber.Ctx) error {
	id, err := pathID(c, "id", "pago")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.processor.Get(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// SweepOverdue POST /api/accounts/sweep-overdue
func (h *AccountHandler) SweepOverdue(c *fiber.Ctx) error {
	out, err := h.engine.SweepOverdue(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
