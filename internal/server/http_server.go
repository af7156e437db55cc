package server

import (
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/synapselink/backend/internal/config"
	"github.com/synapselink/backend/internal/logger"
)

// NewApp builds the fiber application with shared middleware and all
// provided route registrars attached. Exposed separately from StartHTTPServer
// so tests can drive it with app.Test.
func NewApp(registrars ...Registrar) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := http.StatusInternalServerError
			if e, isFiber := err.(*fiber.Error); isFiber {
				code = e.Code
			}
			logger.Error("unhandled request error", "path", c.Path(), "err", err)
			return c.Status(code).JSON(APIResponse{Success: false, Error: "internal server error"})
		},
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("OK")
	})

	for _, r := range registrars {
		r.Register(app)
	}

	return app
}

// StartHTTPServer boots the HTTP server on the configured address.
func StartHTTPServer(cfg *config.Config, registrars ...Registrar) error {
	app := NewApp(registrars...)
	addr := fmt.Sprintf("%s:%s", cfg.HTTP.Host, cfg.HTTP.Port)
	return app.Listen(addr)
}
