package ranking

import (
	"github.com/gofiber/fiber/v2"

	"github.com/synapselink/backend/internal/app"
)

// Registrar ties the ranking service into the HTTP server
type Registrar struct {
	appCtx *app.AppContext
}

func NewRegistrar(appCtx *app.AppContext) *Registrar {
	return &Registrar{appCtx: appCtx}
}

func (r *Registrar) Register(appFiber *fiber.App) {
	service := NewService(r.appCtx)

	appFiber.Get("/api/leaderboard", service.Leaderboard)
}
