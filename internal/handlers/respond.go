package handlers

import (
	"errors"
	"fmt"
	"log"

	"bistro/internal/apperr"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// respondError maps a service error to the structured JSON error body.
// Errors without a business kind are treated as internal faults.
func respondError(c *fiber.Ctx, err error) error {
	status := apperr.HTTPStatus(err)
	if status == fiber.StatusInternalServerError {
		log.Printf("Internal error handling %s %s: %v", c.Method(), c.Path(), err)
		return c.Status(status).JSON(fiber.Map{
			"message": "Internal server error",
			"error":   err.Error(),
		})
	}
	body := fiber.Map{"message": err.Error()}
	var appErr *apperr.Error
	if errors.As(err, &appErr) && len(appErr.Fields) > 0 {
		body["errors"] = appErr.Fields
	}
	return c.Status(status).JSON(body)
}

// respondValidation converts validator failures into the 400 body with
// per-field detail.
func respondValidation(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return respondError(c, apperr.Validationf("invalid request body"))
	}
	errorMessages := make(map[string]string)
	for _, e := range validationErrors {
		errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Validation failed",
		"errors":  errorMessages,
	})
}
