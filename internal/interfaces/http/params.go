package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/comercial-api/internal/domain"
)

// pathID lee un id de la ruta. Un id que no es UUID no puede existir en el almacén.
func pathID(c *fiber.Ctx, name, entity string) (string, error) {
	id := c.Params(name)
	if _, err := uuid.Parse(id); err != nil {
		return "", domain.NotFound(entity)
	}
	return id, nil
}
