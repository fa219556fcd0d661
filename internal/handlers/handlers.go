package handlers

import "github.com/gofiber/fiber/v2"

// validationError renders all field-scoped failures at once so the client can
// highlight every offending input.
func validationError(c *fiber.Ctx, fields map[string]string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"error":   "validation failed",
		"fields":  fields,
	})
}
