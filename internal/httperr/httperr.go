// Package httperr maps engine error kinds onto HTTP statuses in one
// place, so every handler package reports the taxonomy the same way.
package httperr

import (
	"feedlot-backend/internal/engine"

	"github.com/gofiber/fiber/v2"
)

// Engine converts an engine error into the fiber error the central
// error handler serializes. Validation is a 400, not_found a 404,
// consistency a 409, anything else a 500.
func Engine(err *engine.Error) error {
	switch err.Kind {
	case engine.ErrValidation:
		return fiber.NewError(fiber.StatusBadRequest, err.Detail)
	case engine.ErrNotFound:
		return fiber.NewError(fiber.StatusNotFound, err.Detail)
	case engine.ErrConsistency:
		return fiber.NewError(fiber.StatusConflict, err.Detail)
	default:
		return fiber.NewError(fiber.StatusInternalServerError, err.Detail)
	}
}
