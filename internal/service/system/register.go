// Package system holds development-only endpoints. Its registrar is only
// attached when the app runs in the development environment.
package system

import (
	"github.com/gofiber/fiber/v2"

	"github.com/synapselink/backend/internal/app"
	"github.com/synapselink/backend/internal/db"
	"github.com/synapselink/backend/internal/leaderboard"
	"github.com/synapselink/backend/internal/server"
)

type Registrar struct {
	appCtx *app.AppContext
}

func NewRegistrar(appCtx *app.AppContext) *Registrar {
	return &Registrar{appCtx: appCtx}
}

func (r *Registrar) Register(appFiber *fiber.App) {
	appFiber.Post("/api/seed", r.seed)
}

// seed resets the store to the demo dataset and drops cached rankings.
func (r *Registrar) seed(c *fiber.Ctx) error {
	if err := db.SeedTestData(r.appCtx.DB); err != nil {
		r.appCtx.Logger.Error("seed failed", "err", err)
		return server.Fail(c, err)
	}
	if err := r.appCtx.RedisCache.InvalidateLeaderboard(
		c.Context(), leaderboard.KindSkills, leaderboard.KindConnectors,
	); err != nil {
		r.appCtx.Logger.Warn("leaderboard cache invalidation failed", "err", err)
	}
	return server.OK(c, fiber.Map{"message": "Demo data seeded."})
}
