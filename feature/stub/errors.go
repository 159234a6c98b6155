package stub

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Sentinel errors mapped to HTTP statuses by the handlers.
var (
	ErrNotFound   = errors.New("not found")
	ErrBadRequest = errors.New("bad request")
)

func badRequest(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrBadRequest, fmt.Sprintf(format, args...))
}

func notFound(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

// writeError renders err in the catalog's error shape.
func writeError(c *fiber.Ctx, err error) error {
	status, code := fiber.StatusInternalServerError, "ATLAN-500-00-001"
	switch {
	case errors.Is(err, ErrNotFound):
		status, code = fiber.StatusNotFound, "ATLAN-404-00-005"
	case errors.Is(err, ErrBadRequest):
		status, code = fiber.StatusBadRequest, "ATLAN-400-00-001"
	}
	return c.Status(status).JSON(fiber.Map{
		"errorCode":    code,
		"errorMessage": err.Error(),
	})
}
