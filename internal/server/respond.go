package server

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	apierr "github.com/synapselink/backend/internal/errors"
)

// APIResponse is the envelope every endpoint answers with.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// OK writes a success envelope.
func OK(c *fiber.Ctx, data interface{}) error {
	return c.JSON(APIResponse{Success: true, Data: data})
}

// Bad writes a 400 envelope with a human-readable message.
func Bad(c *fiber.Ctx, msg string) error {
	return c.Status(http.StatusBadRequest).JSON(APIResponse{Success: false, Error: msg})
}

// NotFound writes a 404 envelope.
func NotFound(c *fiber.Ctx, msg string) error {
	return c.Status(http.StatusNotFound).JSON(APIResponse{Success: false, Error: msg})
}

// Fail maps any error through the central mapper and writes the matching
// envelope. Unknown errors collapse to a generic 500 message.
func Fail(c *fiber.Ctx, err error) error {
	mapped := apierr.Map(err)
	var apiErr *apierr.APIError
	if errors.As(mapped, &apiErr) {
		return c.Status(apiErr.Status).JSON(APIResponse{Success: false, Error: apiErr.Message})
	}
	return c.Status(http.StatusInternalServerError).JSON(APIResponse{Success: false, Error: "internal server error"})
}
