package profile

import (
	"github.com/gofiber/fiber/v2"

	"github.com/synapselink/backend/internal/app"
)

// Registrar ties the profile service into the HTTP server
type Registrar struct {
	appCtx *app.AppContext
}

// NewRegistrar creates a new Registrar for the profile service
func NewRegistrar(appCtx *app.AppContext) *Registrar {
	return &Registrar{appCtx: appCtx}
}

// Register attaches the profile routes to the fiber app
func (r *Registrar) Register(appFiber *fiber.App) {
	service := NewService(r.appCtx)

	appFiber.Post("/api/auth/login", service.Login)
	appFiber.Get("/api/auth/me/:id", service.Me)
	appFiber.Post("/api/profiles", service.Save)
	appFiber.Get("/api/profiles/search", service.Search)
}
